package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullpilot/codesweep/internal/model"
	"github.com/nullpilot/codesweep/internal/query"
	"github.com/nullpilot/codesweep/internal/writer"
)

func TestOpenFailsWithoutParquetFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := query.Open(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "files.parquet not found")
}

func seedDataset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	w, err := writer.New(dir)
	require.NoError(t, err)

	symbol := "greet"
	kind := "function"
	require.NoError(t, w.Write(writer.Dataset{
		Files: []model.FileMetadata{
			{Path: "src/main.go", Name: "main.go", Language: "go", SizeBytes: 200, LineCount: 20},
			{Path: "src/util.py", Name: "util.py", Language: "python", SizeBytes: 100, LineCount: 10},
		},
		Symbols: []model.SymbolInfo{
			{Name: "greet", Kind: "function", FilePath: "src/main.go", StartLine: 1, EndLine: 5, IsExported: true},
			{Name: "helper", Kind: "function", FilePath: "src/util.py", StartLine: 1, EndLine: 2, IsExported: false},
		},
		Imports: []model.ImportInfo{
			{SourceFile: "src/main.go", ModuleSpecifier: "fmt", ImportedName: "fmt", LocalName: "fmt", Kind: "named", Line: 2, IsExternal: true},
			{SourceFile: "src/util.py", ModuleSpecifier: "./main", ImportedName: "greet", LocalName: "greet", Kind: "named", Line: 1, IsExternal: false},
		},
		Comments: []model.CommentInfo{
			{FilePath: "src/main.go", Text: "// greets the caller", Kind: "doc", StartLine: 0, EndLine: 0, AssociatedSymbol: &symbol, AssociatedSymbolKind: &kind},
		},
		Errors: []model.ErrorRecord{
			{FilePath: "src/broken.rs", Language: "rust", ErrorType: "parse_error", Message: "unexpected token"},
		},
	}))
	return dir
}

func TestEngineAcrossAllTables(t *testing.T) {
	dir := seedDataset(t)
	e, err := query.Open(dir)
	require.NoError(t, err)
	defer e.Close()

	assert.True(t, e.HasImports())
	assert.True(t, e.HasComments())
	assert.True(t, e.HasErrors())

	files, err := e.RunFiles("", "", "path", 10, 0)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	goFiles, err := e.RunFiles("go", "", "path", 10, 0)
	require.NoError(t, err)
	require.Len(t, goFiles, 1)
	assert.Equal(t, "src/main.go", goFiles[0].Path)

	bySize, err := e.RunFiles("", "", "size", 10, 0)
	require.NoError(t, err)
	require.Len(t, bySize, 2)
	assert.Equal(t, "src/util.py", bySize[0].Path)

	symbols, err := e.RunSearch("greet", "", false, 10, 0)
	require.NoError(t, err)
	require.NotEmpty(t, symbols)
	assert.Equal(t, "greet", symbols[0].Name)
	assert.Equal(t, int64(1), symbols[0].UsageCount)

	outline, err := e.RunOutline("src/main.go")
	require.NoError(t, err)
	assert.Equal(t, "go", outline.Language)
	require.Len(t, outline.Symbols, 1)
	assert.Equal(t, "greet", outline.Symbols[0].Name)

	deps, err := e.RunDeps("src/main.go")
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "fmt", deps[0].ModuleSpecifier)

	dependents, err := e.RunDependents("main.go")
	require.NoError(t, err)
	require.Len(t, dependents, 1)
	assert.Equal(t, "src/util.py", dependents[0].SourceFile)

	callers, err := e.RunCallers("greet", 10)
	require.NoError(t, err)
	require.NotEmpty(t, callers)

	imports, err := e.RunImports(query.ImportFilter{External: true}, 10)
	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.Equal(t, "fmt", imports[0].ModuleSpecifier)

	comments, err := e.RunComments(query.CommentFilter{Documented: true}, 10)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.NotNil(t, comments[0].AssociatedSymbol)
	assert.Equal(t, "greet", *comments[0].AssociatedSymbol)

	errs, err := e.RunErrors("", "", 10)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "parse_error", errs[0].ErrorType)

	overview, err := e.RunOverview()
	require.NoError(t, err)
	assert.Len(t, overview.Languages, 2)
	assert.NotEmpty(t, overview.TopSymbols)
	assert.NotEmpty(t, overview.Directories)
	require.NotEmpty(t, overview.HubFiles)
	assert.Equal(t, "src/main.go", overview.HubFiles[0].FilePath)
	assert.Equal(t, 1, overview.HubFiles[0].Dependents)
	require.NotEmpty(t, overview.ImportKinds)
	assert.Equal(t, "named", overview.ImportKinds[0].Kind)
	assert.Equal(t, int64(2), overview.ImportKinds[0].Count)
}

func TestEngineWithoutOptionalTables(t *testing.T) {
	dir := t.TempDir()
	w, err := writer.New(dir)
	require.NoError(t, err)
	require.NoError(t, w.Write(writer.Dataset{
		Files:   []model.FileMetadata{{Path: "a.go", Name: "a.go", Language: "go"}},
		Symbols: []model.SymbolInfo{{Name: "A", Kind: "function", FilePath: "a.go"}},
	}))

	e, err := query.Open(dir)
	require.NoError(t, err)
	defer e.Close()

	assert.False(t, e.HasImports())
	assert.False(t, e.HasComments())
	assert.False(t, e.HasErrors())

	_, err = e.RunDeps("a.go")
	assert.ErrorIs(t, err, query.ErrNoImports)

	_, err = e.RunComments(query.CommentFilter{}, 10)
	assert.ErrorIs(t, err, query.ErrNoComments)

	_, err = e.RunErrors("", "", 10)
	assert.ErrorIs(t, err, query.ErrNoErrors)

	overview, err := e.RunOverview()
	require.NoError(t, err)
	assert.Empty(t, overview.HubFiles)
	assert.Empty(t, overview.ImportKinds)
}

func TestFormatRowsJSONTableCSV(t *testing.T) {
	dir := seedDataset(t)
	e, err := query.Open(dir)
	require.NoError(t, err)
	defer e.Close()

	for _, format := range []query.Format{query.FormatJSON, query.FormatTable, query.FormatCSV} {
		out, err := e.FormatFiles("", "", "path", 10, 0, format)
		require.NoError(t, err)
		assert.NotEmpty(t, out)
	}
}

func TestFormatSearchNoResultsTable(t *testing.T) {
	dir := seedDataset(t)
	e, err := query.Open(dir)
	require.NoError(t, err)
	defer e.Close()

	out, err := e.FormatSearch("nonexistent_symbol_xyz", "", false, 10, 0, query.FormatTable)
	require.NoError(t, err)
	assert.Equal(t, "(no results)\n", out)
}
