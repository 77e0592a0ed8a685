// Package treesitter adapts each tree-sitter grammar package in the module
// into the *sitter.Language the parser and compiled queries need, keyed by
// the language tag in package lang.
package treesitter

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tscsharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tsc "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tscpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tsgo "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tsjava "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tsjavascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tsphp "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tspython "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tsrust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tstypescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/nullpilot/codesweep/internal/lang"
)

// For returns the compiled *sitter.Language backing a language tag.
func For(l lang.Language) (*sitter.Language, error) {
	switch l {
	case lang.TypeScript:
		return sitter.NewLanguage(tstypescript.LanguageTypescript()), nil
	case lang.Tsx:
		return sitter.NewLanguage(tstypescript.LanguageTSX()), nil
	case lang.JavaScript, lang.Jsx:
		return sitter.NewLanguage(tsjavascript.Language()), nil
	case lang.C:
		return sitter.NewLanguage(tsc.Language()), nil
	case lang.Cpp:
		return sitter.NewLanguage(tscpp.Language()), nil
	case lang.CSharp:
		return sitter.NewLanguage(tscsharp.Language()), nil
	case lang.Rust:
		return sitter.NewLanguage(tsrust.Language()), nil
	case lang.Python:
		return sitter.NewLanguage(tspython.Language()), nil
	case lang.Go:
		return sitter.NewLanguage(tsgo.Language()), nil
	case lang.Java:
		return sitter.NewLanguage(tsjava.Language()), nil
	case lang.Php:
		return sitter.NewLanguage(tsphp.LanguagePHP()), nil
	default:
		return nil, errUnsupported(l)
	}
}

type unsupportedLanguageError struct{ lang lang.Language }

func (e *unsupportedLanguageError) Error() string {
	return "unsupported language: " + string(e.lang)
}

func errUnsupported(l lang.Language) error {
	return &unsupportedLanguageError{lang: l}
}

// Parse builds a tree-sitter parse tree for source using language l.
func Parse(l *sitter.Language, source []byte) *sitter.Tree {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(l)
	return parser.Parse(source, nil)
}
