// Package golang extracts symbols, imports and comments from Go source
// using the tree-sitter Go grammar, with the same query shapes and
// classification rules used across every other language package.
package golang

import (
	"strings"
	"unicode"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/nullpilot/codesweep/internal/langkit"
	"github.com/nullpilot/codesweep/internal/model"
)

const symbolQuery = `
(function_declaration
  name: (identifier) @name) @definition

(method_declaration
  name: (field_identifier) @name) @definition

(type_declaration
  (type_spec
    name: (type_identifier) @name) @definition)

(const_declaration
  (const_spec
    name: (identifier) @name) @definition)

(var_declaration
  (var_spec
    name: (identifier) @name) @definition)
`

const importQuery = `
(import_declaration
  (import_spec
    path: (interpreted_string_literal) @path) @import)

(import_declaration
  (import_spec_list
    (import_spec
      path: (interpreted_string_literal) @path) @import))
`

const commentQuery = `(comment) @comment`

// New compiles the Go queries and returns the extractor dispatch uses.
func New(tsLang *sitter.Language) (*langkit.Extractor, error) {
	symQ, err := sitter.NewQuery(tsLang, symbolQuery)
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
		Queries: langkit.Queries{Symbol: symQ, Import: impQ, Comment: comQ},
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
		kind, ok := determineKind(defNode)
		if !ok {
			continue
		}
		symbols = append(symbols, model.SymbolInfo{
			Name:        name,
			Kind:        kind,
			FilePath:    path,
			StartLine:   uint32(defNode.StartPosition().Row),
			StartColumn: uint32(defNode.StartPosition().Column),
			EndLine:     uint32(defNode.EndPosition().Row),
			EndColumn:   uint32(defNode.EndPosition().Column),
			IsExported:  isExported(name),
		})
	}
	return symbols
}

func isExported(name string) bool {
	r := []rune(name)
	return len(r) > 0 && unicode.IsUpper(r[0])
}

func determineKind(def *sitter.Node) (string, bool) {
	switch def.Kind() {
	case "function_declaration":
		return "function", true
	case "method_declaration":
		return "method", true
	case "type_spec":
		typeChild := def.ChildByFieldName("type")
		if typeChild == nil {
			return "type_alias", true
		}
		switch typeChild.Kind() {
		case "struct_type":
			return "struct", true
		case "interface_type":
			return "interface", true
		default:
			return "type_alias", true
		}
	case "const_spec":
		return "constant", true
	case "var_spec":
		return "variable", true
	default:
		return "", false
	}
}

func extractImports(tree *sitter.Tree, source []byte, query *sitter.Query, path string) []model.ImportInfo {
	var imports []model.ImportInfo
	for _, m := range langkit.Matches(query, tree.RootNode(), source) {
		pathNode := langkit.CaptureByName(query, m, "path")
		importNode := langkit.CaptureByName(query, m, "import")
		if pathNode == nil || importNode == nil {
			continue
		}
		raw := langkit.Text(pathNode, source)
		spec := strings.Trim(raw, `"`)
		if spec == "" {
			continue
		}
		importedName := spec
		if idx := strings.LastIndex(spec, "/"); idx >= 0 {
			importedName = spec[idx+1:]
		}
		localName := importedName
		if aliasNode := importNode.ChildByFieldName("name"); aliasNode != nil {
			localName = langkit.Text(aliasNode, source)
		}
		imports = append(imports, model.ImportInfo{
			SourceFile:      path,
			ModuleSpecifier: spec,
			ImportedName:    importedName,
			LocalName:       localName,
			Kind:            "import",
			IsTypeOnly:      false,
			Line:            uint32(importNode.StartPosition().Row),
			IsExternal:      true, // Go has no syntactic internal/external import distinction
		})
	}
	return imports
}

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
	return symbolFromNode(sibling, source)
}

func symbolFromNode(node *sitter.Node, source []byte) (*string, *string) {
	switch node.Kind() {
	case "function_declaration":
		return fieldName(node, source), strPtr("function")
	case "method_declaration":
		return fieldName(node, source), strPtr("method")
	case "type_declaration":
		return childSpecName(node, source, "type_spec")
	case "const_declaration":
		return childSpecName(node, source, "const_spec")
	case "var_declaration":
		return childSpecName(node, source, "var_spec")
	default:
		return nil, nil
	}
}

func fieldName(node *sitter.Node, source []byte) *string {
	n := node.ChildByFieldName("name")
	if n == nil {
		return nil
	}
	return strPtr(langkit.Text(n, source))
}

func childSpecName(node *sitter.Node, source []byte, specKind string) (*string, *string) {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child == nil || child.Kind() != specKind {
			continue
		}
		name := fieldName(child, source)
		switch specKind {
		case "type_spec":
			typeChild := child.ChildByFieldName("type")
			kind := "type_alias"
			if typeChild != nil {
				switch typeChild.Kind() {
				case "struct_type":
					kind = "struct"
				case "interface_type":
					kind = "interface"
				}
			}
			return name, strPtr(kind)
		case "const_spec":
			return name, strPtr("constant")
		case "var_spec":
			return name, strPtr("variable")
		}
	}
	return nil, nil
}

func strPtr(s string) *string { return &s }
