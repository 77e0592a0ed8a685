// Package writer persists a parsed dataset as a five-file Parquet columnar
// store: files, symbols, imports, comments and errors. Every file is written
// to a temp path under the output directory and renamed into place, so a
// reader never observes a half-written table.
package writer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/google/uuid"

	"github.com/nullpilot/codesweep/internal/model"
)

var filesSchema = arrow.NewSchema([]arrow.Field{
	{Name: "path", Type: arrow.BinaryTypes.String},
	{Name: "name", Type: arrow.BinaryTypes.String},
	{Name: "language", Type: arrow.BinaryTypes.String},
	{Name: "size_bytes", Type: arrow.PrimitiveTypes.Int64},
	{Name: "line_count", Type: arrow.PrimitiveTypes.Int64},
}, nil)

var symbolsSchema = arrow.NewSchema([]arrow.Field{
	{Name: "name", Type: arrow.BinaryTypes.String},
	{Name: "kind", Type: arrow.BinaryTypes.String},
	{Name: "file_path", Type: arrow.BinaryTypes.String},
	{Name: "start_line", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "start_column", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "end_line", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "end_column", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "is_exported", Type: arrow.FixedWidthTypes.Boolean},
}, nil)

var importsSchema = arrow.NewSchema([]arrow.Field{
	{Name: "source_file", Type: arrow.BinaryTypes.String},
	{Name: "module_specifier", Type: arrow.BinaryTypes.String},
	{Name: "imported_name", Type: arrow.BinaryTypes.String},
	{Name: "local_name", Type: arrow.BinaryTypes.String},
	{Name: "kind", Type: arrow.BinaryTypes.String},
	{Name: "is_type_only", Type: arrow.FixedWidthTypes.Boolean},
	{Name: "line", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "is_external", Type: arrow.FixedWidthTypes.Boolean},
}, nil)

var commentsSchema = arrow.NewSchema([]arrow.Field{
	{Name: "file_path", Type: arrow.BinaryTypes.String},
	{Name: "text", Type: arrow.BinaryTypes.String},
	{Name: "kind", Type: arrow.BinaryTypes.String},
	{Name: "start_line", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "end_line", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "associated_symbol", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "associated_symbol_kind", Type: arrow.BinaryTypes.String, Nullable: true},
}, nil)

var errorsSchema = arrow.NewSchema([]arrow.Field{
	{Name: "file_path", Type: arrow.BinaryTypes.String},
	{Name: "language", Type: arrow.BinaryTypes.String},
	{Name: "error_type", Type: arrow.BinaryTypes.String},
	{Name: "message", Type: arrow.BinaryTypes.String},
}, nil)

// DatasetFiles lists every file a Write call can produce, in the order
// they're written. push/pull sync uses this as the authoritative file list
// rather than re-deriving it from Dataset's field names.
var DatasetFiles = []string{
	"files.parquet",
	"symbols.parquet",
	"imports.parquet",
	"comments.parquet",
	"errors.parquet",
	"manifest.json",
}

// Dataset is everything a Write call persists in one pass.
type Dataset struct {
	Files    []model.FileMetadata
	Symbols  []model.SymbolInfo
	Imports  []model.ImportInfo
	Comments []model.CommentInfo
	Errors   []model.ErrorRecord
}

// Manifest records metadata about a single Write call: a unique run ID so
// push/pull can tell two dataset snapshots apart, and the row counts for
// each table, without a reader having to open every Parquet file just to
// learn how big the dataset is.
type Manifest struct {
	RunID       string    `json:"run_id"`
	WrittenAt   time.Time `json:"written_at"`
	FileCount   int       `json:"file_count"`
	SymbolCount int       `json:"symbol_count"`
	ImportCount int       `json:"import_count"`
	CommentCount int      `json:"comment_count"`
	ErrorCount  int       `json:"error_count"`
}

// Writer atomically persists a Dataset as five Parquet files under an output
// directory, via a temp-file-then-rename sequence per file.
type Writer struct {
	outputDir string
	tempDir   string
	mem       memory.Allocator
}

// New prepares outputDir and its .tmp staging directory, clearing any stale
// temp files left behind by a prior interrupted write.
func New(outputDir string) (*Writer, error) {
	tempDir := filepath.Join(outputDir, ".tmp")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.RemoveAll(tempDir); err != nil {
		return nil, fmt.Errorf("failed to clean temp directory: %w", err)
	}
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &Writer{outputDir: outputDir, tempDir: tempDir, mem: memory.NewGoAllocator()}, nil
}

// Write persists every table in ds, each via its own atomic rename. Tables
// are independent: a failure on one does not roll back tables already
// written, matching the five-file contract's per-file atomicity.
func (w *Writer) Write(ds Dataset) error {
	if err := w.writeTable("files.parquet", filesSchema, func(b *array.RecordBuilder) {
		appendFiles(b, ds.Files)
	}); err != nil {
		return err
	}
	if err := w.writeTable("symbols.parquet", symbolsSchema, func(b *array.RecordBuilder) {
		appendSymbols(b, ds.Symbols)
	}); err != nil {
		return err
	}
	if err := w.writeTable("imports.parquet", importsSchema, func(b *array.RecordBuilder) {
		appendImports(b, ds.Imports)
	}); err != nil {
		return err
	}
	if err := w.writeTable("comments.parquet", commentsSchema, func(b *array.RecordBuilder) {
		appendComments(b, ds.Comments)
	}); err != nil {
		return err
	}
	if err := w.writeTable("errors.parquet", errorsSchema, func(b *array.RecordBuilder) {
		appendErrors(b, ds.Errors)
	}); err != nil {
		return err
	}
	return w.writeManifest(ds)
}

func (w *Writer) writeManifest(ds Dataset) error {
	manifest := Manifest{
		RunID:        uuid.NewString(),
		WrittenAt:    time.Now().UTC(),
		FileCount:    len(ds.Files),
		SymbolCount:  len(ds.Symbols),
		ImportCount:  len(ds.Imports),
		CommentCount: len(ds.Comments),
		ErrorCount:   len(ds.Errors),
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	tempPath := filepath.Join(w.tempDir, "manifest.json")
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	finalPath := filepath.Join(w.outputDir, "manifest.json")
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename manifest into place: %w", err)
	}
	return nil
}

func (w *Writer) writeTable(filename string, schema *arrow.Schema, fill func(*array.RecordBuilder)) error {
	bldr := array.NewRecordBuilder(w.mem, schema)
	defer bldr.Release()
	fill(bldr)
	rec := bldr.NewRecord()
	defer rec.Release()

	tempPath := filepath.Join(w.tempDir, filename)
	f, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", filename, err)
	}

	fw, err := pqarrow.NewFileWriter(schema, f, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	if err != nil {
		f.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to create parquet writer for %s: %w", filename, err)
	}

	if err := fw.WriteBuffered(rec); err != nil {
		fw.Close()
		f.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := fw.Close(); err != nil {
		f.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to close parquet writer for %s: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file for %s: %w", filename, err)
	}

	finalPath := filepath.Join(w.outputDir, filename)
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename %s into place: %w", filename, err)
	}
	return nil
}

func appendFiles(b *array.RecordBuilder, files []model.FileMetadata) {
	path := b.Field(0).(*array.StringBuilder)
	name := b.Field(1).(*array.StringBuilder)
	language := b.Field(2).(*array.StringBuilder)
	size := b.Field(3).(*array.Int64Builder)
	lines := b.Field(4).(*array.Int64Builder)

	for _, f := range files {
		path.Append(f.Path)
		name.Append(f.Name)
		language.Append(f.Language)
		size.Append(f.SizeBytes)
		lines.Append(int64(f.LineCount))
	}
}

func appendSymbols(b *array.RecordBuilder, symbols []model.SymbolInfo) {
	name := b.Field(0).(*array.StringBuilder)
	kind := b.Field(1).(*array.StringBuilder)
	filePath := b.Field(2).(*array.StringBuilder)
	startLine := b.Field(3).(*array.Uint32Builder)
	startCol := b.Field(4).(*array.Uint32Builder)
	endLine := b.Field(5).(*array.Uint32Builder)
	endCol := b.Field(6).(*array.Uint32Builder)
	exported := b.Field(7).(*array.BooleanBuilder)

	for _, s := range symbols {
		name.Append(s.Name)
		kind.Append(s.Kind)
		filePath.Append(s.FilePath)
		startLine.Append(s.StartLine)
		startCol.Append(s.StartColumn)
		endLine.Append(s.EndLine)
		endCol.Append(s.EndColumn)
		exported.Append(s.IsExported)
	}
}

func appendImports(b *array.RecordBuilder, imports []model.ImportInfo) {
	sourceFile := b.Field(0).(*array.StringBuilder)
	moduleSpec := b.Field(1).(*array.StringBuilder)
	importedName := b.Field(2).(*array.StringBuilder)
	localName := b.Field(3).(*array.StringBuilder)
	kind := b.Field(4).(*array.StringBuilder)
	typeOnly := b.Field(5).(*array.BooleanBuilder)
	line := b.Field(6).(*array.Uint32Builder)
	external := b.Field(7).(*array.BooleanBuilder)

	for _, i := range imports {
		sourceFile.Append(i.SourceFile)
		moduleSpec.Append(i.ModuleSpecifier)
		importedName.Append(i.ImportedName)
		localName.Append(i.LocalName)
		kind.Append(i.Kind)
		typeOnly.Append(i.IsTypeOnly)
		line.Append(i.Line)
		external.Append(i.IsExternal)
	}
}

func appendComments(b *array.RecordBuilder, comments []model.CommentInfo) {
	filePath := b.Field(0).(*array.StringBuilder)
	text := b.Field(1).(*array.StringBuilder)
	kind := b.Field(2).(*array.StringBuilder)
	startLine := b.Field(3).(*array.Uint32Builder)
	endLine := b.Field(4).(*array.Uint32Builder)
	assocSymbol := b.Field(5).(*array.StringBuilder)
	assocKind := b.Field(6).(*array.StringBuilder)

	for _, c := range comments {
		filePath.Append(c.FilePath)
		text.Append(c.Text)
		kind.Append(c.Kind)
		startLine.Append(c.StartLine)
		endLine.Append(c.EndLine)
		if c.AssociatedSymbol != nil {
			assocSymbol.Append(*c.AssociatedSymbol)
		} else {
			assocSymbol.AppendNull()
		}
		if c.AssociatedSymbolKind != nil {
			assocKind.Append(*c.AssociatedSymbolKind)
		} else {
			assocKind.AppendNull()
		}
	}
}

func appendErrors(b *array.RecordBuilder, errs []model.ErrorRecord) {
	filePath := b.Field(0).(*array.StringBuilder)
	language := b.Field(1).(*array.StringBuilder)
	errorType := b.Field(2).(*array.StringBuilder)
	message := b.Field(3).(*array.StringBuilder)

	for _, e := range errs {
		filePath.Append(e.FilePath)
		language.Append(e.Language)
		errorType.Append(e.ErrorType)
		message.Append(e.Message)
	}
}
