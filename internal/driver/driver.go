// Package driver runs the parallel parse-and-extract pipeline: a bounded
// pool of goroutines, each owning one reused tree-sitter parser, pulling
// discovered files off a channel and handing results back for the writer.
package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/nullpilot/codesweep/internal/discovery"
	"github.com/nullpilot/codesweep/internal/extract"
	"github.com/nullpilot/codesweep/internal/model"
)

// ProgressReporter receives callbacks as the driver walks the file list.
// A nil reporter is replaced with NoOpProgressReporter.
type ProgressReporter interface {
	OnDiscoveryComplete(total int)
	OnFileProcessed(path string)
	OnComplete(processed, errored int)
}

// NoOpProgressReporter discards every callback; used when Options.Progress
// is nil.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnDiscoveryComplete(int) {}
func (NoOpProgressReporter) OnFileProcessed(string)  {}
func (NoOpProgressReporter) OnComplete(int, int)     {}

// FileResult is one file's outcome: either a populated extract.Result or an
// ErrorRecord, never both.
type FileResult struct {
	File     discovery.File
	Metadata model.FileMetadata
	Data     extract.Result
	Error    *model.ErrorRecord
}

// Options configures a Run.
type Options struct {
	// Workers is the goroutine pool size. Zero means runtime.NumCPU().
	Workers int
	Progress ProgressReporter
}

// Run parses every file in files against reg, fanning work out across a
// bounded worker pool. Each worker owns one *sitter.Parser for its lifetime,
// reusing it across files via Parser.Reset() rather than allocating a fresh
// parser per file.
func Run(files []discovery.File, reg extract.Registry, opts Options) []FileResult {
	progress := opts.Progress
	if progress == nil {
		progress = NoOpProgressReporter{}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) && len(files) > 0 {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	progress.OnDiscoveryComplete(len(files))

	jobs := make(chan discovery.File)
	resultsCh := make(chan FileResult, len(files))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			worker(jobs, resultsCh, reg, progress)
		}()
	}

	go func() {
		defer close(jobs)
		for _, f := range files {
			jobs <- f
		}
	}()

	wg.Wait()
	close(resultsCh)

	results := make([]FileResult, 0, len(files))
	errored := 0
	for r := range resultsCh {
		if r.Error != nil {
			errored++
		}
		results = append(results, r)
	}
	progress.OnComplete(len(results)-errored, errored)
	return results
}

func worker(jobs <-chan discovery.File, out chan<- FileResult, reg extract.Registry, progress ProgressReporter) {
	parser := sitter.NewParser()
	defer parser.Close()

	for file := range jobs {
		out <- parseOne(parser, file, reg)
		progress.OnFileProcessed(file.RelPath)
	}
}

func parseOne(parser *sitter.Parser, file discovery.File, reg extract.Registry) FileResult {
	entry, ok := reg[file.Lang]
	if !ok {
		return FileResult{File: file, Error: &model.ErrorRecord{
			FilePath: file.RelPath, Language: file.Lang.String(),
			ErrorType: "unsupported_language", Message: "no extractor registered for language",
		}}
	}

	source, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return FileResult{File: file, Error: &model.ErrorRecord{
			FilePath: file.RelPath, Language: file.Lang.String(),
			ErrorType: "read_error", Message: err.Error(),
		}}
	}

	parser.Reset()
	parser.SetLanguage(entry.Language)
	tree := parser.Parse(source, nil)
	if tree == nil {
		return FileResult{File: file, Error: &model.ErrorRecord{
			FilePath: file.RelPath, Language: file.Lang.String(),
			ErrorType: "parse_error", Message: "tree-sitter returned no tree",
		}}
	}
	defer tree.Close()

	meta := model.FileMetadata{
		Path:      file.RelPath,
		Name:      filepath.Base(file.RelPath),
		Language:  file.Lang.String(),
		SizeBytes: int64(len(source)),
		LineCount: countLines(source),
	}

	return FileResult{File: file, Metadata: meta, Data: extract.File(entry, tree, source, file.RelPath)}
}

// countLines counts newline-terminated lines the way wc -l would, plus one
// for a final unterminated line.
func countLines(source []byte) int {
	if len(source) == 0 {
		return 0
	}
	n := bytes.Count(source, []byte{'\n'})
	if source[len(source)-1] != '\n' {
		n++
	}
	return n
}
