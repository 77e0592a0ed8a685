package typescript_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullpilot/codesweep/internal/lang"
	"github.com/nullpilot/codesweep/internal/lang/treesitter"
	"github.com/nullpilot/codesweep/internal/lang/typescript"
	"github.com/nullpilot/codesweep/internal/model"
)

func extractSymbols(t *testing.T, source string, variant lang.Language) []model.SymbolInfo {
	t.Helper()
	tsLang, err := treesitter.For(variant)
	require.NoError(t, err)
	ext, err := typescript.New(tsLang, variant)
	require.NoError(t, err)
	tree := treesitter.Parse(tsLang, []byte(source))
	require.NotNil(t, tree)
	return ext.ExtractSymbols(tree, []byte(source), ext.Queries.Symbol, "test.ts")
}

func extractImports(t *testing.T, source string, variant lang.Language) []model.ImportInfo {
	t.Helper()
	tsLang, err := treesitter.For(variant)
	require.NoError(t, err)
	ext, err := typescript.New(tsLang, variant)
	require.NoError(t, err)
	tree := treesitter.Parse(tsLang, []byte(source))
	require.NotNil(t, tree)
	return ext.ExtractImports(tree, []byte(source), ext.Queries.Import, "test.ts")
}

func findSymbol(symbols []model.SymbolInfo, name string) *model.SymbolInfo {
	for i := range symbols {
		if symbols[i].Name == name {
			return &symbols[i]
		}
	}
	return nil
}

func TestExtractExportedFunction(t *testing.T) {
	syms := extractSymbols(t, "export function greet() {}", lang.TypeScript)
	require.Len(t, syms, 1)
	assert.Equal(t, "greet", syms[0].Name)
	assert.Equal(t, "function", syms[0].Kind)
	assert.True(t, syms[0].IsExported)
}

func TestExtractNonExportedFunction(t *testing.T) {
	syms := extractSymbols(t, "function helper() {}", lang.TypeScript)
	require.Len(t, syms, 1)
	assert.Equal(t, "helper", syms[0].Name)
	assert.False(t, syms[0].IsExported)
}

func TestExtractClassWithMethod(t *testing.T) {
	syms := extractSymbols(t, "class Foo { bar() {} }", lang.TypeScript)
	foo := findSymbol(syms, "Foo")
	require.NotNil(t, foo)
	assert.Equal(t, "class", foo.Kind)
	bar := findSymbol(syms, "bar")
	require.NotNil(t, bar)
	assert.Equal(t, "method", bar.Kind)
}

func TestExtractArrowFunctionVsVariable(t *testing.T) {
	syms := extractSymbols(t, "const handler = () => {};\nconst PI = 3.14;", lang.TypeScript)
	handler := findSymbol(syms, "handler")
	require.NotNil(t, handler)
	assert.Equal(t, "arrow_function", handler.Kind)
	pi := findSymbol(syms, "PI")
	require.NotNil(t, pi)
	assert.Equal(t, "variable", pi.Kind)
}

func TestExtractInterfaceTypeEnum(t *testing.T) {
	source := `
interface User { id: number; }
type UserId = number;
enum Role { Admin, User }
`
	syms := extractSymbols(t, source, lang.TypeScript)
	assert.NotNil(t, findSymbol(syms, "User"))
	assert.NotNil(t, findSymbol(syms, "UserId"))
	assert.NotNil(t, findSymbol(syms, "Role"))
}

func TestDestructuredVariablesSkipped(t *testing.T) {
	syms := extractSymbols(t, "const { a, b } = { a: 1, b: 2 };", lang.TypeScript)
	assert.Empty(t, syms)
}

func TestExtractJSSymbols(t *testing.T) {
	source := "function add() {}\nclass Calc {}\nconst x = 1;\nconst f = () => {};"
	syms := extractSymbols(t, source, lang.JavaScript)
	assert.Len(t, syms, 4)
}

func TestEmptySourceNoSymbols(t *testing.T) {
	syms := extractSymbols(t, "", lang.TypeScript)
	assert.Empty(t, syms)
}

func TestPositionsAreSane(t *testing.T) {
	syms := extractSymbols(t, "function foo() {\n  return 1;\n}", lang.TypeScript)
	require.Len(t, syms, 1)
	assert.Equal(t, uint32(0), syms[0].StartLine)
	assert.GreaterOrEqual(t, syms[0].EndLine, syms[0].StartLine)
}

func TestStaticNamedImport(t *testing.T) {
	imports := extractImports(t, `import { foo, bar } from "./utils";`, lang.TypeScript)
	require.Len(t, imports, 2)
	assert.Equal(t, "foo", imports[0].ImportedName)
	assert.Equal(t, "foo", imports[0].LocalName)
	assert.Equal(t, "./utils", imports[0].ModuleSpecifier)
	assert.Equal(t, "static", imports[0].Kind)
	assert.False(t, imports[0].IsTypeOnly)
	assert.False(t, imports[0].IsExternal)
	assert.Equal(t, "bar", imports[1].ImportedName)
}

func TestDefaultImport(t *testing.T) {
	imports := extractImports(t, `import React from "react";`, lang.TypeScript)
	require.Len(t, imports, 1)
	assert.Equal(t, "default", imports[0].ImportedName)
	assert.Equal(t, "React", imports[0].LocalName)
	assert.Equal(t, "react", imports[0].ModuleSpecifier)
	assert.True(t, imports[0].IsExternal)
}

func TestNamespaceImport(t *testing.T) {
	imports := extractImports(t, `import * as path from "path";`, lang.TypeScript)
	require.Len(t, imports, 1)
	assert.Equal(t, "*", imports[0].ImportedName)
	assert.Equal(t, "path", imports[0].LocalName)
}

func TestAliasedImport(t *testing.T) {
	imports := extractImports(t, `import { foo as myFoo } from "./utils";`, lang.TypeScript)
	require.Len(t, imports, 1)
	assert.Equal(t, "foo", imports[0].ImportedName)
	assert.Equal(t, "myFoo", imports[0].LocalName)
}

func TestTypeOnlyImport(t *testing.T) {
	imports := extractImports(t, `import type { User } from "./models";`, lang.TypeScript)
	require.Len(t, imports, 1)
	assert.Equal(t, "User", imports[0].ImportedName)
	assert.True(t, imports[0].IsTypeOnly)
}

func TestSideEffectImport(t *testing.T) {
	imports := extractImports(t, `import "./polyfill";`, lang.TypeScript)
	require.Len(t, imports, 1)
	assert.Equal(t, "*", imports[0].ImportedName)
	assert.Equal(t, "*", imports[0].LocalName)
	assert.Equal(t, "./polyfill", imports[0].ModuleSpecifier)
}

func TestDynamicImport(t *testing.T) {
	imports := extractImports(t, `const mod = import("./lazy");`, lang.TypeScript)
	require.Len(t, imports, 1)
	assert.Equal(t, "dynamic", imports[0].Kind)
	assert.Equal(t, "./lazy", imports[0].ModuleSpecifier)
}

func TestReexportStar(t *testing.T) {
	imports := extractImports(t, `export * from "./base";`, lang.TypeScript)
	require.Len(t, imports, 1)
	assert.Equal(t, "re_export", imports[0].Kind)
	assert.Equal(t, "*", imports[0].ImportedName)
}

func TestReexportNamed(t *testing.T) {
	imports := extractImports(t, `export { foo, bar as baz } from "./helpers";`, lang.TypeScript)
	require.Len(t, imports, 2)
	assert.Equal(t, "re_export", imports[0].Kind)
	assert.Equal(t, "foo", imports[0].ImportedName)
	assert.Equal(t, "foo", imports[0].LocalName)
	assert.Equal(t, "bar", imports[1].ImportedName)
	assert.Equal(t, "baz", imports[1].LocalName)
}

func TestRequireCall(t *testing.T) {
	imports := extractImports(t, `const express = require("express");`, lang.JavaScript)
	require.Len(t, imports, 1)
	assert.Equal(t, "require", imports[0].Kind)
	assert.Equal(t, "express", imports[0].ModuleSpecifier)
	assert.True(t, imports[0].IsExternal)
}

func TestNonRequireCallIgnored(t *testing.T) {
	imports := extractImports(t, `const result = fetch("https://api.com");`, lang.JavaScript)
	assert.Empty(t, imports)
}

func TestDefaultAndNamedCombined(t *testing.T) {
	imports := extractImports(t, `import React, { useState, useEffect } from "react";`, lang.TypeScript)
	require.Len(t, imports, 3)
	assert.Equal(t, "default", imports[0].ImportedName)
	assert.Equal(t, "React", imports[0].LocalName)
	assert.Equal(t, "useState", imports[1].ImportedName)
	assert.Equal(t, "useEffect", imports[2].ImportedName)
}

func TestEmptySourceNoImports(t *testing.T) {
	imports := extractImports(t, "", lang.TypeScript)
	assert.Empty(t, imports)
}

func TestIsExternalClassification(t *testing.T) {
	source := `
import { useState } from "react";
import { helper } from "./utils";
import type { Config } from "@scope/config";
export { foo } from "../shared";
const lazy = import("./lazy-module");
const fs = require("fs");
`
	imports := extractImports(t, source, lang.TypeScript)
	require.Len(t, imports, 6)

	assert.Equal(t, "react", imports[0].ModuleSpecifier)
	assert.True(t, imports[0].IsExternal)

	assert.Equal(t, "./utils", imports[1].ModuleSpecifier)
	assert.False(t, imports[1].IsExternal)

	assert.Equal(t, "@scope/config", imports[2].ModuleSpecifier)
	assert.True(t, imports[2].IsExternal)

	assert.Equal(t, "../shared", imports[3].ModuleSpecifier)
	assert.False(t, imports[3].IsExternal)

	assert.Equal(t, "./lazy-module", imports[4].ModuleSpecifier)
	assert.False(t, imports[4].IsExternal)

	assert.Equal(t, "fs", imports[5].ModuleSpecifier)
	assert.True(t, imports[5].IsExternal)
}

func TestLineNumbersCorrect(t *testing.T) {
	source := "// comment\nimport { foo } from \"./bar\";\n"
	imports := extractImports(t, source, lang.TypeScript)
	require.Len(t, imports, 1)
	assert.Equal(t, uint32(1), imports[0].Line)
}
