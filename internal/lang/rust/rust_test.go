package rust_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullpilot/codesweep/internal/lang"
	"github.com/nullpilot/codesweep/internal/lang/rust"
	"github.com/nullpilot/codesweep/internal/lang/treesitter"
	"github.com/nullpilot/codesweep/internal/model"
)

func extractSymbols(t *testing.T, source string) []model.SymbolInfo {
	t.Helper()
	tsLang, err := treesitter.For(lang.Rust)
	require.NoError(t, err)
	ext, err := rust.New(tsLang)
	require.NoError(t, err)
	tree := treesitter.Parse(tsLang, []byte(source))
	require.NotNil(t, tree)
	return ext.ExtractSymbols(tree, []byte(source), ext.Queries.Symbol, "test.rs")
}

func extractImports(t *testing.T, source string) []model.ImportInfo {
	t.Helper()
	tsLang, err := treesitter.For(lang.Rust)
	require.NoError(t, err)
	ext, err := rust.New(tsLang)
	require.NoError(t, err)
	tree := treesitter.Parse(tsLang, []byte(source))
	require.NotNil(t, tree)
	return ext.ExtractImports(tree, []byte(source), ext.Queries.Import, "test.rs")
}

func extractComments(t *testing.T, source string) []model.CommentInfo {
	t.Helper()
	tsLang, err := treesitter.For(lang.Rust)
	require.NoError(t, err)
	ext, err := rust.New(tsLang)
	require.NoError(t, err)
	tree := treesitter.Parse(tsLang, []byte(source))
	require.NotNil(t, tree)
	return ext.ExtractComments(tree, []byte(source), ext.Queries.Comment, "test.rs")
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
	syms := extractSymbols(t, "fn main() {}")
	require.Len(t, syms, 1)
}

func TestExtractPubFunction(t *testing.T) {
	syms := extractSymbols(t, "pub fn hello() {}")
	require.Len(t, syms, 1)
	assert.True(t, syms[0].IsExported)
}

func TestExtractStruct(t *testing.T) {
	syms := extractSymbols(t, "pub struct Point { x: i32, y: i32 }")
	require.Len(t, syms, 1)
	assert.Equal(t, "struct", syms[0].Kind)
}

func TestExtractEnum(t *testing.T) {
	syms := extractSymbols(t, "enum Color { Red, Green, Blue }")
	s := findSymbol(syms, "Color")
	require.NotNil(t, s)
	assert.Equal(t, "enum", s.Kind)
}

func TestExtractTrait(t *testing.T) {
	syms := extractSymbols(t, "pub trait Display { fn fmt(&self); }")
	tr := findSymbol(syms, "Display")
	require.NotNil(t, tr)
	assert.Equal(t, "trait", tr.Kind)
}

func TestExtractMethodInImpl(t *testing.T) {
	syms := extractSymbols(t, "struct Foo {}\nimpl Foo { fn bar(&self) {} }")
	m := findSymbol(syms, "bar")
	require.NotNil(t, m)
	assert.Equal(t, "method", m.Kind)
}

func TestExtractConst(t *testing.T) {
	syms := extractSymbols(t, "const MAX: u32 = 100;")
	require.Len(t, syms, 1)
	assert.Equal(t, "constant", syms[0].Kind)
}

func TestExtractStatic(t *testing.T) {
	syms := extractSymbols(t, "static COUNT: u32 = 0;")
	require.Len(t, syms, 1)
	assert.Equal(t, "variable", syms[0].Kind)
}

func TestExtractTypeAlias(t *testing.T) {
	syms := extractSymbols(t, "type Result<T> = std::result::Result<T, Error>;")
	require.Len(t, syms, 1)
	assert.Equal(t, "type_alias", syms[0].Kind)
}

func TestExtractModule(t *testing.T) {
	syms := extractSymbols(t, "mod utils {}")
	require.Len(t, syms, 1)
	assert.Equal(t, "module", syms[0].Kind)
}

func TestExtractMacro(t *testing.T) {
	syms := extractSymbols(t, "macro_rules! my_macro { () => {} }")
	require.Len(t, syms, 1)
	assert.Equal(t, "macro", syms[0].Kind)
}

func TestExtractUnion(t *testing.T) {
	syms := extractSymbols(t, "union MyUnion { i: i32, f: f32 }")
	require.Len(t, syms, 1)
	assert.Equal(t, "union", syms[0].Kind)
}

func TestSimpleUseImport(t *testing.T) {
	imports := extractImports(t, "use std::collections::HashMap;")
	require.Len(t, imports, 1)
	assert.Equal(t, "HashMap", imports[0].ImportedName)
	assert.True(t, imports[0].IsExternal)
}

func TestCrateInternalImport(t *testing.T) {
	imports := extractImports(t, "use crate::models::SymbolInfo;")
	require.Len(t, imports, 1)
	assert.False(t, imports[0].IsExternal)
}

func TestSelfImport(t *testing.T) {
	imports := extractImports(t, "use self::utils::helper;")
	require.Len(t, imports, 1)
	assert.False(t, imports[0].IsExternal)
}

func TestSuperImport(t *testing.T) {
	imports := extractImports(t, "use super::models::SymbolKind;")
	require.Len(t, imports, 1)
	assert.False(t, imports[0].IsExternal)
}

func TestWildcardImport(t *testing.T) {
	imports := extractImports(t, "use std::io::*;")
	require.Len(t, imports, 1)
	assert.Equal(t, "*", imports[0].ImportedName)
}

func TestAliasedImport(t *testing.T) {
	imports := extractImports(t, "use std::collections::HashMap as Map;")
	require.Len(t, imports, 1)
	assert.Equal(t, "HashMap", imports[0].ImportedName)
	assert.Equal(t, "Map", imports[0].LocalName)
}

func TestDocComment(t *testing.T) {
	comments := extractComments(t, "/// This is a doc comment\nfn foo() {}")
	require.Len(t, comments, 1)
	assert.Equal(t, "doc", comments[0].Kind)
}

func TestInnerDocComment(t *testing.T) {
	comments := extractComments(t, "//! Module doc")
	require.Len(t, comments, 1)
	assert.Equal(t, "doc", comments[0].Kind)
}

func TestLineComment(t *testing.T) {
	comments := extractComments(t, "// Just a comment")
	require.Len(t, comments, 1)
	assert.Equal(t, "line", comments[0].Kind)
}

func TestBlockComment(t *testing.T) {
	comments := extractComments(t, "/* block */")
	require.Len(t, comments, 1)
	assert.Equal(t, "block", comments[0].Kind)
}

func TestEmptySourceNoSymbols(t *testing.T) {
	syms := extractSymbols(t, "")
	assert.Empty(t, syms)
}
