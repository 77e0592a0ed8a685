package java_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullpilot/codesweep/internal/lang"
	"github.com/nullpilot/codesweep/internal/lang/java"
	"github.com/nullpilot/codesweep/internal/lang/treesitter"
	"github.com/nullpilot/codesweep/internal/model"
)

func extractSymbols(t *testing.T, source string) []model.SymbolInfo {
	t.Helper()
	tsLang, err := treesitter.For(lang.Java)
	require.NoError(t, err)
	ext, err := java.New(tsLang)
	require.NoError(t, err)
	tree := treesitter.Parse(tsLang, []byte(source))
	require.NotNil(t, tree)
	return ext.ExtractSymbols(tree, []byte(source), ext.Queries.Symbol, "Test.java")
}

func extractImports(t *testing.T, source string) []model.ImportInfo {
	t.Helper()
	tsLang, err := treesitter.For(lang.Java)
	require.NoError(t, err)
	ext, err := java.New(tsLang)
	require.NoError(t, err)
	tree := treesitter.Parse(tsLang, []byte(source))
	require.NotNil(t, tree)
	return ext.ExtractImports(tree, []byte(source), ext.Queries.Import, "Test.java")
}

func extractComments(t *testing.T, source string) []model.CommentInfo {
	t.Helper()
	tsLang, err := treesitter.For(lang.Java)
	require.NoError(t, err)
	ext, err := java.New(tsLang)
	require.NoError(t, err)
	tree := treesitter.Parse(tsLang, []byte(source))
	require.NotNil(t, tree)
	return ext.ExtractComments(tree, []byte(source), ext.Queries.Comment, "Test.java")
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
	syms := extractSymbols(t, "public class Foo { }")
	s := findSymbol(syms, "Foo")
	require.NotNil(t, s)
	assert.True(t, s.IsExported)
}

func TestExtractPrivateClass(t *testing.T) {
	syms := extractSymbols(t, "private class Foo { }")
	s := findSymbol(syms, "Foo")
	require.NotNil(t, s)
	assert.False(t, s.IsExported)
}

func TestExtractPackagePrivateClass(t *testing.T) {
	syms := extractSymbols(t, "class Foo { }")
	s := findSymbol(syms, "Foo")
	require.NotNil(t, s)
	assert.False(t, s.IsExported)
}

func TestExtractInterface(t *testing.T) {
	syms := extractSymbols(t, "public interface Foo { }")
	s := findSymbol(syms, "Foo")
	require.NotNil(t, s)
	assert.Equal(t, "interface", s.Kind)
}

func TestExtractEnum(t *testing.T) {
	syms := extractSymbols(t, "public enum Color { RED, GREEN, BLUE }")
	s := findSymbol(syms, "Color")
	require.NotNil(t, s)
	assert.Equal(t, "enum", s.Kind)
}

func TestExtractMethod(t *testing.T) {
	syms := extractSymbols(t, "public class Foo { public void bar() { } }")
	m := findSymbol(syms, "bar")
	require.NotNil(t, m)
	assert.Equal(t, "method", m.Kind)
}

func TestExtractConstructor(t *testing.T) {
	syms := extractSymbols(t, "public class Foo { public Foo() { } }")
	var ctor *model.SymbolInfo
	for i := range syms {
		if syms[i].Name == "Foo" && syms[i].Kind == "method" {
			ctor = &syms[i]
		}
	}
	require.NotNil(t, ctor)
}

func TestExtractField(t *testing.T) {
	syms := extractSymbols(t, "public class Foo { private int count; }")
	f := findSymbol(syms, "count")
	require.NotNil(t, f)
	assert.Equal(t, "variable", f.Kind)
}

func TestExtractRecord(t *testing.T) {
	syms := extractSymbols(t, "public record Point(int x, int y) { }")
	s := findSymbol(syms, "Point")
	require.NotNil(t, s)
	assert.Equal(t, "class", s.Kind)
}

func TestExtractAnnotationType(t *testing.T) {
	syms := extractSymbols(t, "public @interface MyAnnotation { }")
	s := findSymbol(syms, "MyAnnotation")
	require.NotNil(t, s)
	assert.Equal(t, "interface", s.Kind)
}

func TestSimpleImport(t *testing.T) {
	imports := extractImports(t, "import java.util.List;")
	require.Len(t, imports, 1)
	assert.Equal(t, "java.util.List", imports[0].ModuleSpecifier)
	assert.Equal(t, "List", imports[0].ImportedName)
	assert.True(t, imports[0].IsExternal)
}

func TestWildcardImport(t *testing.T) {
	imports := extractImports(t, "import java.util.*;")
	require.Len(t, imports, 1)
	assert.Equal(t, "java.util.*", imports[0].ModuleSpecifier)
	assert.Equal(t, "*", imports[0].ImportedName)
}

func TestStaticImport(t *testing.T) {
	imports := extractImports(t, "import static java.lang.Math.PI;")
	require.Len(t, imports, 1)
	assert.Equal(t, "java.lang.Math.PI", imports[0].ModuleSpecifier)
	assert.Equal(t, "static", imports[0].Kind)
}

func TestLineComment(t *testing.T) {
	comments := extractComments(t, "// a line comment\nclass Foo {}")
	c := findCommentContaining(comments, "a line comment")
	require.NotNil(t, c)
	assert.Equal(t, "line", c.Kind)
}

func TestBlockComment(t *testing.T) {
	comments := extractComments(t, "/* block comment */\nclass Foo {}")
	c := findCommentContaining(comments, "block comment")
	require.NotNil(t, c)
	assert.Equal(t, "block", c.Kind)
}

func TestDocComment(t *testing.T) {
	comments := extractComments(t, "/** Javadoc */\npublic class Foo {}")
	c := findCommentContaining(comments, "Javadoc")
	require.NotNil(t, c)
	assert.Equal(t, "doc", c.Kind)
}

func TestCommentAssociatedSymbol(t *testing.T) {
	comments := extractComments(t, "/** Describes Foo */\npublic class Foo {}")
	c := findCommentContaining(comments, "Describes Foo")
	require.NotNil(t, c)
	require.NotNil(t, c.AssociatedSymbol)
	assert.Equal(t, "Foo", *c.AssociatedSymbol)
}

func TestEmptySourceNoSymbols(t *testing.T) {
	syms := extractSymbols(t, "")
	assert.Empty(t, syms)
}

func findCommentContaining(comments []model.CommentInfo, substr string) *model.CommentInfo {
	for i := range comments {
		if len(comments[i].Text) >= len(substr) && contains(comments[i].Text, substr) {
			return &comments[i]
		}
	}
	return nil
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
