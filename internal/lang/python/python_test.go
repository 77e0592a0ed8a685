package python_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullpilot/codesweep/internal/lang"
	"github.com/nullpilot/codesweep/internal/lang/python"
	"github.com/nullpilot/codesweep/internal/lang/treesitter"
	"github.com/nullpilot/codesweep/internal/model"
)

func extractSymbols(t *testing.T, source string) []model.SymbolInfo {
	t.Helper()
	tsLang, err := treesitter.For(lang.Python)
	require.NoError(t, err)
	ext, err := python.New(tsLang)
	require.NoError(t, err)
	tree := treesitter.Parse(tsLang, []byte(source))
	require.NotNil(t, tree)
	return ext.ExtractSymbols(tree, []byte(source), ext.Queries.Symbol, "test.py")
}

func extractImports(t *testing.T, source string) []model.ImportInfo {
	t.Helper()
	tsLang, err := treesitter.For(lang.Python)
	require.NoError(t, err)
	ext, err := python.New(tsLang)
	require.NoError(t, err)
	tree := treesitter.Parse(tsLang, []byte(source))
	require.NotNil(t, tree)
	return ext.ExtractImports(tree, []byte(source), ext.Queries.Import, "test.py")
}

func extractComments(t *testing.T, source string) []model.CommentInfo {
	t.Helper()
	tsLang, err := treesitter.For(lang.Python)
	require.NoError(t, err)
	ext, err := python.New(tsLang)
	require.NoError(t, err)
	tree := treesitter.Parse(tsLang, []byte(source))
	require.NotNil(t, tree)
	return ext.ExtractComments(tree, []byte(source), ext.Queries.Comment, "test.py")
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
	syms := extractSymbols(t, "def hello():\n    pass")
	require.Len(t, syms, 1)
	assert.Equal(t, "hello", syms[0].Name)
	assert.Equal(t, "function", syms[0].Kind)
	assert.True(t, syms[0].IsExported)
}

func TestExtractPrivateFunction(t *testing.T) {
	syms := extractSymbols(t, "def _helper():\n    pass")
	require.Len(t, syms, 1)
	assert.False(t, syms[0].IsExported)
}

func TestExtractClass(t *testing.T) {
	syms := extractSymbols(t, "class Foo:\n    pass")
	require.Len(t, syms, 1)
	assert.Equal(t, "Foo", syms[0].Name)
	assert.Equal(t, "class", syms[0].Kind)
}

func TestExtractMethod(t *testing.T) {
	syms := extractSymbols(t, "class Foo:\n    def bar(self):\n        pass")
	m := findSymbol(syms, "bar")
	require.NotNil(t, m)
	assert.Equal(t, "method", m.Kind)
}

func TestExtractDecoratedFunction(t *testing.T) {
	syms := extractSymbols(t, "@decorator\ndef hello():\n    pass")
	require.Len(t, syms, 1)
	assert.Equal(t, "hello", syms[0].Name)
	assert.Equal(t, "function", syms[0].Kind)
}

func TestExtractModuleVariable(t *testing.T) {
	syms := extractSymbols(t, "MAX_SIZE = 100")
	require.Len(t, syms, 1)
	assert.Equal(t, "MAX_SIZE", syms[0].Name)
	assert.Equal(t, "variable", syms[0].Kind)
}

func TestImportStatement(t *testing.T) {
	imports := extractImports(t, "import os")
	require.Len(t, imports, 1)
	assert.Equal(t, "os", imports[0].ModuleSpecifier)
	assert.Equal(t, "import", imports[0].Kind)
	assert.True(t, imports[0].IsExternal)
}

func TestFromImport(t *testing.T) {
	imports := extractImports(t, "from os import path")
	require.Len(t, imports, 1)
	assert.Equal(t, "os", imports[0].ModuleSpecifier)
	assert.Equal(t, "path", imports[0].ImportedName)
	assert.Equal(t, "from", imports[0].Kind)
}

func TestRelativeImport(t *testing.T) {
	imports := extractImports(t, "from . import utils")
	require.NotEmpty(t, imports)
	assert.False(t, imports[0].IsExternal)
}

func TestLineComment(t *testing.T) {
	comments := extractComments(t, "# This is a comment")
	require.Len(t, comments, 1)
	assert.Equal(t, "line", comments[0].Kind)
}

func TestDocstring(t *testing.T) {
	comments := extractComments(t, "def foo():\n    \"\"\"This is a docstring.\"\"\"\n    pass")
	var doc *model.CommentInfo
	for i := range comments {
		if comments[i].Kind == "doc" {
			doc = &comments[i]
		}
	}
	require.NotNil(t, doc)
	require.NotNil(t, doc.AssociatedSymbol)
	assert.Equal(t, "foo", *doc.AssociatedSymbol)
}

func TestEmptySourceNoSymbols(t *testing.T) {
	syms := extractSymbols(t, "")
	assert.Empty(t, syms)
}
