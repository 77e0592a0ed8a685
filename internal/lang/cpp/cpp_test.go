package cpp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullpilot/codesweep/internal/lang"
	"github.com/nullpilot/codesweep/internal/lang/cpp"
	"github.com/nullpilot/codesweep/internal/lang/treesitter"
	"github.com/nullpilot/codesweep/internal/model"
)

func extractSymbols(t *testing.T, source string) []model.SymbolInfo {
	t.Helper()
	tsLang, err := treesitter.For(lang.Cpp)
	require.NoError(t, err)
	ext, err := cpp.New(tsLang)
	require.NoError(t, err)
	tree := treesitter.Parse(tsLang, []byte(source))
	require.NotNil(t, tree)
	return ext.ExtractSymbols(tree, []byte(source), ext.Queries.Symbol, "test.cpp")
}

func extractImports(t *testing.T, source string) []model.ImportInfo {
	t.Helper()
	tsLang, err := treesitter.For(lang.Cpp)
	require.NoError(t, err)
	ext, err := cpp.New(tsLang)
	require.NoError(t, err)
	tree := treesitter.Parse(tsLang, []byte(source))
	require.NotNil(t, tree)
	return ext.ExtractImports(tree, []byte(source), ext.Queries.Import, "test.cpp")
}

func findSymbol(symbols []model.SymbolInfo, name string) *model.SymbolInfo {
	for i := range symbols {
		if symbols[i].Name == name {
			return &symbols[i]
		}
	}
	return nil
}

func TestExtractClass(t *testing.T) {
	syms := extractSymbols(t, "class Foo { };")
	assert.NotNil(t, findSymbol(syms, "Foo"))
}

func TestExtractNamespace(t *testing.T) {
	syms := extractSymbols(t, "namespace MyApp { }")
	assert.NotNil(t, findSymbol(syms, "MyApp"))
}

func TestExtractFunction(t *testing.T) {
	syms := extractSymbols(t, "int main() { return 0; }")
	require.Len(t, syms, 1)
	assert.Equal(t, "main", syms[0].Name)
}

func TestExtractStruct(t *testing.T) {
	syms := extractSymbols(t, "struct Point { int x; int y; };")
	assert.NotNil(t, findSymbol(syms, "Point"))
}

func TestExtractEnum(t *testing.T) {
	syms := extractSymbols(t, "enum Color { RED, GREEN, BLUE };")
	assert.NotNil(t, findSymbol(syms, "Color"))
}

func TestStaticFunctionNotExported(t *testing.T) {
	syms := extractSymbols(t, "static void helper() { }")
	require.Len(t, syms, 1)
	assert.False(t, syms[0].IsExported)
}

func TestIncludeDirective(t *testing.T) {
	imports := extractImports(t, "#include <iostream>\n#include \"myclass.h\"")
	require.Len(t, imports, 2)
	assert.Equal(t, "iostream", imports[0].ModuleSpecifier)
}

func TestEmptySourceNoSymbols(t *testing.T) {
	syms := extractSymbols(t, "")
	assert.Empty(t, syms)
}
