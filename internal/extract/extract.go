// Package extract builds the per-language extractor table and exposes the
// single entry point the driver calls for each discovered file: compile
// every language's queries once at startup, then dispatch by language tag.
package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/nullpilot/codesweep/internal/lang"
	"github.com/nullpilot/codesweep/internal/lang/clang"
	"github.com/nullpilot/codesweep/internal/lang/cpp"
	"github.com/nullpilot/codesweep/internal/lang/csharp"
	"github.com/nullpilot/codesweep/internal/lang/golang"
	"github.com/nullpilot/codesweep/internal/lang/java"
	"github.com/nullpilot/codesweep/internal/lang/php"
	"github.com/nullpilot/codesweep/internal/lang/python"
	"github.com/nullpilot/codesweep/internal/lang/rust"
	"github.com/nullpilot/codesweep/internal/lang/treesitter"
	"github.com/nullpilot/codesweep/internal/lang/typescript"
	"github.com/nullpilot/codesweep/internal/langkit"
	"github.com/nullpilot/codesweep/internal/model"
)

// Entry is one language's compiled tree-sitter language plus its extractor.
// A worker keeps one *sitter.Parser per goroutine (see internal/driver) and
// resets it with the Language field between files of the same language.
type Entry struct {
	Language  *sitter.Language
	Extractor *langkit.Extractor
}

// Registry maps every supported language tag to its compiled Entry. Built
// once at startup and shared read-only across the worker pool.
type Registry map[lang.Language]*Entry

// Build compiles the tree-sitter grammar and extractor queries for every
// language in lang.All(). Returns an error immediately if any language
// fails to compile — a broken grammar or malformed query is a startup
// defect, not a per-file one.
func Build() (Registry, error) {
	reg := make(Registry, len(lang.All()))

	for _, l := range lang.All() {
		tsLang, err := treesitter.For(l)
		if err != nil {
			return nil, err
		}

		var ext *langkit.Extractor
		switch l {
		case lang.TypeScript, lang.Tsx, lang.JavaScript, lang.Jsx:
			ext, err = typescript.New(tsLang, l)
		case lang.C:
			ext, err = clang.New(tsLang)
		case lang.Cpp:
			ext, err = cpp.New(tsLang)
		case lang.CSharp:
			ext, err = csharp.New(tsLang)
		case lang.Rust:
			ext, err = rust.New(tsLang)
		case lang.Python:
			ext, err = python.New(tsLang)
		case lang.Go:
			ext, err = golang.New(tsLang)
		case lang.Java:
			ext, err = java.New(tsLang)
		case lang.Php:
			ext, err = php.New(tsLang)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}

		reg[l] = &Entry{Language: tsLang, Extractor: ext}
	}

	return reg, nil
}

// Close releases every compiled query across the registry.
func (r Registry) Close() {
	for _, e := range r {
		e.Extractor.Queries.Close()
	}
}

// Result is everything extracted from one file.
type Result struct {
	Symbols  []model.SymbolInfo
	Imports  []model.ImportInfo
	Comments []model.CommentInfo
}

// File runs the full symbol/import/comment extraction pipeline for one
// file's source against the language it resolved to. The caller owns
// parsing (the driver reuses one *sitter.Parser per worker); tree must have
// been parsed with the same *sitter.Language as entry.Language.
func File(entry *Entry, tree *sitter.Tree, source []byte, path string) Result {
	ext := entry.Extractor
	var res Result
	if ext.Queries.Symbol != nil {
		res.Symbols = ext.ExtractSymbols(tree, source, ext.Queries.Symbol, path)
	}
	if ext.Queries.Import != nil {
		res.Imports = ext.ExtractImports(tree, source, ext.Queries.Import, path)
	}
	if ext.Queries.Comment != nil {
		res.Comments = ext.ExtractComments(tree, source, ext.Queries.Comment, path)
	}
	return res
}
