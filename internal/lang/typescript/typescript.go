// Package typescript extracts symbols, imports and comments shared across
// TypeScript, TSX, JavaScript and JSX. The four variants share one grammar
// family closely enough that only the symbol query text differs
// between the TS-flavored dialects (TypeScript, Tsx) and the plain JS ones
// (JavaScript, Jsx); everything downstream of the query match is identical.
package typescript

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/nullpilot/codesweep/internal/lang"
	"github.com/nullpilot/codesweep/internal/langkit"
	"github.com/nullpilot/codesweep/internal/model"
)

const tsSymbolQuery = `
(function_declaration
  name: (identifier) @name) @definition

(class_declaration
  name: (type_identifier) @name) @definition

(method_definition
  name: (property_identifier) @name) @definition

(lexical_declaration
  (variable_declarator
    name: (identifier) @name
    value: (_) @value)) @definition

(variable_declaration
  (variable_declarator
    name: (identifier) @name
    value: (_) @value)) @definition

(interface_declaration
  name: (type_identifier) @name) @definition

(type_alias_declaration
  name: (type_identifier) @name) @definition

(enum_declaration
  name: (identifier) @name) @definition
`

const jsSymbolQuery = `
(function_declaration
  name: (identifier) @name) @definition

(class_declaration
  name: (identifier) @name) @definition

(method_definition
  name: (property_identifier) @name) @definition

(lexical_declaration
  (variable_declarator
    name: (identifier) @name
    value: (_) @value)) @definition

(variable_declaration
  (variable_declarator
    name: (identifier) @name
    value: (_) @value)) @definition
`

const importQuery = `
(import_statement source: (string) @source) @import

(export_statement source: (string) @source) @reexport

(call_expression
  function: (import)
  arguments: (arguments (string) @source)) @dynamic_import

(call_expression
  function: (identifier) @fn_name
  arguments: (arguments (string) @source)) @call
`

const commentQuery = `(comment) @comment`

// New compiles the queries for one of the four JS-family dialects. variant
// picks which symbol query text applies (the import query is shared by all
// four); TypeScript and Tsx share the
// TS-flavored grammar additions (interfaces, type aliases, enums), while
// JavaScript and Jsx get the plain query.
func New(tsLang *sitter.Language, variant lang.Language) (*langkit.Extractor, error) {
	symbolSource := tsSymbolQuery
	if variant == lang.JavaScript || variant == lang.Jsx {
		symbolSource = jsSymbolQuery
	}

	symQ, err := sitter.NewQuery(tsLang, symbolSource)
	if err != nil {
		return nil, err
	}
	impQ, err := sitter.NewQuery(tsLang, importQuery)
	if err != nil {
		return nil, err
	}
	comQ, err := sitter.NewQuery(tsLang, commentQuery)
	if err != nil {
		return nil, err
	}
	return &langkit.Extractor{
		Queries:         langkit.Queries{Symbol: symQ, Import: impQ, Comment: comQ},
		ExtractSymbols:  extractSymbols,
		ExtractImports:  extractImports,
		ExtractComments: extractComments,
	}, nil
}

func extractSymbols(tree *sitter.Tree, source []byte, query *sitter.Query, path string) []model.SymbolInfo {
	var symbols []model.SymbolInfo
	for _, m := range langkit.Matches(query, tree.RootNode(), source) {
		nameNode := langkit.CaptureByName(query, m, "name")
		defNode := langkit.CaptureByName(query, m, "definition")
		if nameNode == nil || defNode == nil {
			continue
		}
		name := langkit.Text(nameNode, source)
		if name == "" {
			continue
		}
		valueKind := ""
		if valueNode := langkit.CaptureByName(query, m, "value"); valueNode != nil {
			valueKind = valueNode.Kind()
		}
		kind, ok := determineKind(defNode.Kind(), valueKind)
		if !ok {
			continue
		}
		isExported := false
		if parent := defNode.Parent(); parent != nil {
			isExported = parent.Kind() == "export_statement"
		}
		symbols = append(symbols, model.SymbolInfo{
			Name:        name,
			Kind:        kind,
			FilePath:    path,
			StartLine:   uint32(defNode.StartPosition().Row),
			StartColumn: uint32(defNode.StartPosition().Column),
			EndLine:     uint32(defNode.EndPosition().Row),
			EndColumn:   uint32(defNode.EndPosition().Column),
			IsExported:  isExported,
		})
	}
	return symbols
}

func determineKind(defKind, valueKind string) (string, bool) {
	switch defKind {
	case "function_declaration":
		return "function", true
	case "class_declaration":
		return "class", true
	case "method_definition":
		return "method", true
	case "interface_declaration":
		return "interface", true
	case "type_alias_declaration":
		return "type_alias", true
	case "enum_declaration":
		return "enum", true
	case "lexical_declaration", "variable_declaration":
		if valueKind == "arrow_function" {
			return "arrow_function", true
		}
		return "variable", true
	default:
		return "", false
	}
}

// ── Import extraction ──

func extractImports(tree *sitter.Tree, source []byte, query *sitter.Query, path string) []model.ImportInfo {
	var imports []model.ImportInfo
	for _, m := range langkit.Matches(query, tree.RootNode(), source) {
		sourceNode := langkit.CaptureByName(query, m, "source")
		if sourceNode == nil {
			continue
		}
		spec := stripQuotes(langkit.Text(sourceNode, source))
		if spec == "" {
			continue
		}
		isExternal := isExternalSpecifier(spec)

		if importNode := langkit.CaptureByName(query, m, "import"); importNode != nil {
			imports = append(imports, staticImports(importNode, source, path, spec, isExternal)...)
			continue
		}
		if reexportNode := langkit.CaptureByName(query, m, "reexport"); reexportNode != nil {
			imports = append(imports, reexportImports(reexportNode, source, path, spec, isExternal)...)
			continue
		}
		if dynamicNode := langkit.CaptureByName(query, m, "dynamic_import"); dynamicNode != nil {
			imports = append(imports, model.ImportInfo{
				SourceFile: path, ModuleSpecifier: spec, ImportedName: "*", LocalName: "*",
				Kind: "dynamic", IsTypeOnly: false, Line: uint32(dynamicNode.StartPosition().Row), IsExternal: isExternal,
			})
			continue
		}
		if fnNameNode := langkit.CaptureByName(query, m, "fn_name"); fnNameNode != nil {
			if langkit.Text(fnNameNode, source) != "require" {
				continue
			}
			callNode := langkit.CaptureByName(query, m, "call")
			if callNode == nil {
				continue
			}
			imports = append(imports, model.ImportInfo{
				SourceFile: path, ModuleSpecifier: spec, ImportedName: "*", LocalName: "*",
				Kind: "require", IsTypeOnly: false, Line: uint32(callNode.StartPosition().Row), IsExternal: isExternal,
			})
		}
	}
	return imports
}

func staticImports(importNode *sitter.Node, source []byte, path, spec string, isExternal bool) []model.ImportInfo {
	line := uint32(importNode.StartPosition().Row)
	isTypeOnly := hasTypeKeyword(importNode)
	bindings := extractImportBindings(importNode, source)

	if len(bindings) == 0 {
		return []model.ImportInfo{{
			SourceFile: path, ModuleSpecifier: spec, ImportedName: "*", LocalName: "*",
			Kind: "static", IsTypeOnly: isTypeOnly, Line: line, IsExternal: isExternal,
		}}
	}
	out := make([]model.ImportInfo, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, model.ImportInfo{
			SourceFile: path, ModuleSpecifier: spec, ImportedName: b.imported, LocalName: b.local,
			Kind: "static", IsTypeOnly: isTypeOnly || b.isType, Line: line, IsExternal: isExternal,
		})
	}
	return out
}

func reexportImports(reexportNode *sitter.Node, source []byte, path, spec string, isExternal bool) []model.ImportInfo {
	line := uint32(reexportNode.StartPosition().Row)
	isTypeOnly := hasTypeKeyword(reexportNode)
	bindings := extractReexportBindings(reexportNode, source)

	if len(bindings) == 0 {
		return []model.ImportInfo{{
			SourceFile: path, ModuleSpecifier: spec, ImportedName: "*", LocalName: "*",
			Kind: "re_export", IsTypeOnly: isTypeOnly, Line: line, IsExternal: isExternal,
		}}
	}
	out := make([]model.ImportInfo, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, model.ImportInfo{
			SourceFile: path, ModuleSpecifier: spec, ImportedName: b.imported, LocalName: b.local,
			Kind: "re_export", IsTypeOnly: isTypeOnly, Line: line, IsExternal: isExternal,
		})
	}
	return out
}

// ── Import helpers ──

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '`' && last == '`') {
		return s[1 : len(s)-1]
	}
	return s
}

func isExternalSpecifier(spec string) bool {
	return !(strings.HasPrefix(spec, ".") || strings.HasPrefix(spec, "#"))
}

func hasTypeKeyword(node *sitter.Node) bool {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child != nil && child.Kind() == "type" && !child.IsNamed() {
			return true
		}
	}
	return false
}

type binding struct {
	imported string
	local    string
	isType   bool
}

func extractImportBindings(importNode *sitter.Node, source []byte) []binding {
	var out []binding
	count := int(importNode.ChildCount())
	for i := 0; i < count; i++ {
		child := importNode.Child(uint(i))
		if child != nil && child.Kind() == "import_clause" {
			extractImportClause(child, source, &out)
		}
	}
	return out
}

func extractImportClause(clause *sitter.Node, source []byte, out *[]binding) {
	count := int(clause.ChildCount())
	for i := 0; i < count; i++ {
		child := clause.Child(uint(i))
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "identifier":
			name := langkit.Text(child, source)
			if name != "" {
				*out = append(*out, binding{imported: "default", local: name})
			}
		case "namespace_import":
			*out = append(*out, binding{imported: "*", local: namespaceLocal(child, source)})
		case "named_imports":
			extractNamedImports(child, source, out)
		}
	}
}

func namespaceLocal(node *sitter.Node, source []byte) string {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child != nil && child.Kind() == "identifier" {
			return langkit.Text(child, source)
		}
	}
	return "*"
}

func extractNamedImports(node *sitter.Node, source []byte, out *[]binding) {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child == nil || child.Kind() != "import_specifier" {
			continue
		}
		imported, local, isType := extractIdentifierPair(child, source)
		if imported != "" {
			*out = append(*out, binding{imported: imported, local: local, isType: isType})
		}
	}
}

// extractIdentifierPair collects identifier/type_identifier children plus a
// bare `type` keyword child, used by both import_specifier ("x as y",
// possibly `import type`) and export_specifier nodes.
func extractIdentifierPair(node *sitter.Node, source []byte) (imported, local string, isType bool) {
	var ids []string
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "identifier", "type_identifier":
			ids = append(ids, langkit.Text(child, source))
		case "type":
			isType = true
		}
	}
	switch len(ids) {
	case 0:
		return "", "", isType
	case 1:
		return ids[0], ids[0], isType
	default:
		return ids[0], ids[1], isType
	}
}

func extractReexportBindings(exportNode *sitter.Node, source []byte) []binding {
	var out []binding
	count := int(exportNode.ChildCount())
	for i := 0; i < count; i++ {
		child := exportNode.Child(uint(i))
		if child == nil || child.Kind() != "export_clause" {
			continue
		}
		specCount := int(child.ChildCount())
		for j := 0; j < specCount; j++ {
			spec := child.Child(uint(j))
			if spec == nil || spec.Kind() != "export_specifier" {
				continue
			}
			imported, local, _ := extractIdentifierPair(spec, source)
			if imported != "" {
				out = append(out, binding{imported: imported, local: local})
			}
		}
	}
	return out
}

// ── Comment extraction ──
//
// TS/JS comments use the same grammar node kind ("comment") as every other
// C-style language in this module, so the query and the associated-symbol
// heuristic mirror the Go package's rather than anything typescript.rs
// defines directly.

func extractComments(tree *sitter.Tree, source []byte, query *sitter.Query, path string) []model.CommentInfo {
	var comments []model.CommentInfo
	for _, m := range langkit.Matches(query, tree.RootNode(), source) {
		node := langkit.CaptureByName(query, m, "comment")
		if node == nil {
			continue
		}
		text := langkit.Text(node, source)
		if text == "" {
			continue
		}
		kind := "line"
		if strings.HasPrefix(strings.TrimSpace(text), "/**") {
			kind = "doc"
		} else if strings.HasPrefix(strings.TrimSpace(text), "/*") {
			kind = "block"
		}
		symbol, symbolKind := findAssociatedSymbol(node, source)
		comments = append(comments, model.CommentInfo{
			FilePath:             path,
			Text:                 text,
			Kind:                 kind,
			StartLine:            uint32(node.StartPosition().Row),
			EndLine:              uint32(node.EndPosition().Row),
			AssociatedSymbol:     symbol,
			AssociatedSymbolKind: symbolKind,
		})
	}
	return comments
}

func findAssociatedSymbol(comment *sitter.Node, source []byte) (*string, *string) {
	sibling := comment.NextNamedSibling()
	if sibling == nil {
		return nil, nil
	}
	// export statements wrap the declaration they export; unwrap one level
	// so a doc comment above `export function foo` still associates with foo.
	if sibling.Kind() == "export_statement" {
		if inner := sibling.NamedChild(0); inner != nil {
			sibling = inner
		}
	}
	switch sibling.Kind() {
	case "function_declaration", "class_declaration", "interface_declaration",
		"type_alias_declaration", "enum_declaration":
		return fieldName(sibling, source), strPtr(declKind(sibling.Kind()))
	case "lexical_declaration", "variable_declaration":
		return declaratorName(sibling, source)
	default:
		return nil, nil
	}
}

func declKind(nodeKind string) string {
	switch nodeKind {
	case "function_declaration":
		return "function"
	case "class_declaration":
		return "class"
	case "interface_declaration":
		return "interface"
	case "type_alias_declaration":
		return "type_alias"
	case "enum_declaration":
		return "enum"
	default:
		return ""
	}
}

func fieldName(node *sitter.Node, source []byte) *string {
	n := node.ChildByFieldName("name")
	if n == nil {
		return nil
	}
	return strPtr(langkit.Text(n, source))
}

func declaratorName(node *sitter.Node, source []byte) (*string, *string) {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child == nil || child.Kind() != "variable_declarator" {
			continue
		}
		name := child.ChildByFieldName("name")
		if name == nil {
			continue
		}
		value := child.ChildByFieldName("value")
		kind := "variable"
		if value != nil && value.Kind() == "arrow_function" {
			kind = "arrow_function"
		}
		return strPtr(langkit.Text(name, source)), strPtr(kind)
	}
	return nil, nil
}

func strPtr(s string) *string { return &s }
