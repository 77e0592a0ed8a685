package golang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullpilot/codesweep/internal/lang"
	"github.com/nullpilot/codesweep/internal/lang/golang"
	"github.com/nullpilot/codesweep/internal/lang/treesitter"
	"github.com/nullpilot/codesweep/internal/model"
)

func extractSymbols(t *testing.T, source string) []model.SymbolInfo {
	t.Helper()
	tsLang, err := treesitter.For(lang.Go)
	require.NoError(t, err)
	ext, err := golang.New(tsLang)
	require.NoError(t, err)
	tree := treesitter.Parse(tsLang, []byte(source))
	require.NotNil(t, tree)
	return ext.ExtractSymbols(tree, []byte(source), ext.Queries.Symbol, "test.go")
}

func extractImports(t *testing.T, source string) []model.ImportInfo {
	t.Helper()
	tsLang, err := treesitter.For(lang.Go)
	require.NoError(t, err)
	ext, err := golang.New(tsLang)
	require.NoError(t, err)
	tree := treesitter.Parse(tsLang, []byte(source))
	require.NotNil(t, tree)
	return ext.ExtractImports(tree, []byte(source), ext.Queries.Import, "test.go")
}

func extractComments(t *testing.T, source string) []model.CommentInfo {
	t.Helper()
	tsLang, err := treesitter.For(lang.Go)
	require.NoError(t, err)
	ext, err := golang.New(tsLang)
	require.NoError(t, err)
	tree := treesitter.Parse(tsLang, []byte(source))
	require.NotNil(t, tree)
	return ext.ExtractComments(tree, []byte(source), ext.Queries.Comment, "test.go")
}

func findSymbol(symbols []model.SymbolInfo, name string) *model.SymbolInfo {
	for i := range symbols {
		if symbols[i].Name == name {
			return &symbols[i]
		}
	}
	return nil
}

func TestExtractFunction(t *testing.T) {
	syms := extractSymbols(t, "package main\nfunc main() {}")
	f := findSymbol(syms, "main")
	require.NotNil(t, f)
	assert.Equal(t, "function", f.Kind)
	assert.False(t, f.IsExported)
}

func TestExtractExportedFunction(t *testing.T) {
	syms := extractSymbols(t, "package main\nfunc Hello() {}")
	f := findSymbol(syms, "Hello")
	require.NotNil(t, f)
	assert.True(t, f.IsExported)
}

func TestExtractMethod(t *testing.T) {
	syms := extractSymbols(t, "package main\ntype Foo struct{}\nfunc (f Foo) Bar() {}")
	m := findSymbol(syms, "Bar")
	require.NotNil(t, m)
	assert.Equal(t, "method", m.Kind)
}

func TestExtractStruct(t *testing.T) {
	syms := extractSymbols(t, "package main\ntype Point struct { X int; Y int }")
	s := findSymbol(syms, "Point")
	require.NotNil(t, s)
	assert.Equal(t, "struct", s.Kind)
	assert.True(t, s.IsExported)
}

func TestExtractInterface(t *testing.T) {
	syms := extractSymbols(t, "package main\ntype Reader interface { Read() }")
	s := findSymbol(syms, "Reader")
	require.NotNil(t, s)
	assert.Equal(t, "interface", s.Kind)
}

func TestExtractConst(t *testing.T) {
	syms := extractSymbols(t, "package main\nconst MaxSize = 100")
	s := findSymbol(syms, "MaxSize")
	require.NotNil(t, s)
	assert.Equal(t, "constant", s.Kind)
	assert.True(t, s.IsExported)
}

func TestExtractVar(t *testing.T) {
	syms := extractSymbols(t, "package main\nvar count int = 0")
	s := findSymbol(syms, "count")
	require.NotNil(t, s)
	assert.Equal(t, "variable", s.Kind)
	assert.False(t, s.IsExported)
}

func TestEmptySourceNoSymbols(t *testing.T) {
	syms := extractSymbols(t, "package main")
	assert.Empty(t, syms)
}

func TestSingleImport(t *testing.T) {
	imports := extractImports(t, "package main\nimport \"fmt\"")
	require.Len(t, imports, 1)
	assert.Equal(t, "fmt", imports[0].ModuleSpecifier)
	assert.Equal(t, "fmt", imports[0].ImportedName)
	assert.Equal(t, "import", imports[0].Kind)
	assert.True(t, imports[0].IsExternal)
}

func TestGroupedImports(t *testing.T) {
	imports := extractImports(t, "package main\nimport (\n\t\"fmt\"\n\t\"os\"\n)")
	require.Len(t, imports, 2)
	assert.Equal(t, "fmt", imports[0].ModuleSpecifier)
	assert.Equal(t, "os", imports[1].ModuleSpecifier)
}

func TestImportWithPath(t *testing.T) {
	imports := extractImports(t, "package main\nimport \"net/http\"")
	require.Len(t, imports, 1)
	assert.Equal(t, "net/http", imports[0].ModuleSpecifier)
	assert.Equal(t, "http", imports[0].ImportedName)
}

func TestLineComment(t *testing.T) {
	comments := extractComments(t, "package main\n// a comment")
	found := false
	for _, c := range comments {
		if c.Kind == "line" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBlockComment(t *testing.T) {
	comments := extractComments(t, "package main\n/* block */")
	found := false
	for _, c := range comments {
		if c.Kind == "block" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCommentAssociatedSymbol(t *testing.T) {
	comments := extractComments(t, "package main\n// Hello says hello\nfunc Hello() {}")
	var target *model.CommentInfo
	for i := range comments {
		if comments[i].AssociatedSymbol != nil {
			target = &comments[i]
		}
	}
	require.NotNil(t, target)
	assert.Equal(t, "Hello", *target.AssociatedSymbol)
}
