// Package java extracts symbols, imports and comments from Java source.
package java

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/nullpilot/codesweep/internal/langkit"
	"github.com/nullpilot/codesweep/internal/model"
)

const symbolQuery = `
(class_declaration
  name: (identifier) @name) @definition

(interface_declaration
  name: (identifier) @name) @definition

(enum_declaration
  name: (identifier) @name) @definition

(record_declaration
  name: (identifier) @name) @definition

(annotation_type_declaration
  name: (identifier) @name) @definition

(method_declaration
  name: (identifier) @name) @definition

(constructor_declaration
  name: (identifier) @name) @definition

(field_declaration
  declarator: (variable_declarator
    name: (identifier) @name)) @definition
`

const importQuery = `(import_declaration) @import`

const commentQuery = `
[
  (line_comment) @comment
  (block_comment) @comment
]
`

// New compiles the Java queries and returns the extractor dispatch uses.
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
			IsExported:  isExported(defNode, source),
		})
	}
	return symbols
}

func determineKind(def *sitter.Node) (string, bool) {
	switch def.Kind() {
	case "class_declaration", "record_declaration":
		return "class", true
	case "interface_declaration", "annotation_type_declaration":
		return "interface", true
	case "enum_declaration":
		return "enum", true
	case "method_declaration", "constructor_declaration":
		return "method", true
	case "field_declaration":
		return "variable", true
	default:
		return "", false
	}
}

// isExported walks a definition's modifiers child looking for an explicit
// public/private/protected keyword. Package-private (no modifier) is
// conservatively treated as not exported.
func isExported(def *sitter.Node, source []byte) bool {
	count := int(def.ChildCount())
	for i := 0; i < count; i++ {
		child := def.Child(uint(i))
		if child == nil || child.Kind() != "modifiers" {
			continue
		}
		modCount := int(child.ChildCount())
		for j := 0; j < modCount; j++ {
			modifier := child.Child(uint(j))
			if modifier == nil {
				continue
			}
			switch langkit.Text(modifier, source) {
			case "public":
				return true
			case "private", "protected":
				return false
			}
		}
	}
	return false
}

func extractImports(tree *sitter.Tree, source []byte, query *sitter.Query, path string) []model.ImportInfo {
	var imports []model.ImportInfo
	for _, m := range langkit.Matches(query, tree.RootNode(), source) {
		node := langkit.CaptureByName(query, m, "import")
		if node == nil {
			continue
		}
		text := langkit.Text(node, source)
		spec, importedName, isStatic := parseImport(text)
		if spec == "" {
			continue
		}
		kind := "import"
		if isStatic {
			kind = "static"
		}
		imports = append(imports, model.ImportInfo{
			SourceFile:      path,
			ModuleSpecifier: spec,
			ImportedName:    importedName,
			LocalName:       importedName,
			Kind:            kind,
			IsTypeOnly:      false,
			Line:            uint32(node.StartPosition().Row),
			IsExternal:      true, // Java has no relative imports
		})
	}
	return imports
}

func parseImport(text string) (spec, importedName string, isStatic bool) {
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(strings.TrimPrefix(text, "import"))
	isStatic = strings.HasPrefix(text, "static")
	if isStatic {
		text = strings.TrimSpace(strings.TrimPrefix(text, "static"))
	}
	text = strings.TrimSpace(strings.TrimSuffix(text, ";"))
	if text == "" {
		return "", "", isStatic
	}
	spec = text
	if strings.HasSuffix(text, ".*") {
		importedName = "*"
	} else if idx := strings.LastIndex(text, "."); idx >= 0 {
		importedName = text[idx+1:]
	} else {
		importedName = text
	}
	return spec, importedName, isStatic
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
		symbol, symbolKind := findAssociatedSymbol(node, source)
		comments = append(comments, model.CommentInfo{
			FilePath:             path,
			Text:                 text,
			Kind:                 classifyComment(text),
			StartLine:            uint32(node.StartPosition().Row),
			EndLine:              uint32(node.EndPosition().Row),
			AssociatedSymbol:     symbol,
			AssociatedSymbolKind: symbolKind,
		})
	}
	return comments
}

// classifyComment only distinguishes Javadoc (/**) and block (/*) comments;
// Java has no triple-slash doc-comment convention.
func classifyComment(text string) string {
	trimmed := strings.TrimLeft(text, " \t")
	switch {
	case strings.HasPrefix(trimmed, "/**"):
		return "doc"
	case strings.HasPrefix(trimmed, "/*"):
		return "block"
	default:
		return "line"
	}
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
	case "class_declaration", "record_declaration":
		return fieldName(node, source), strPtr("class")
	case "interface_declaration", "annotation_type_declaration":
		return fieldName(node, source), strPtr("interface")
	case "enum_declaration":
		return fieldName(node, source), strPtr("enum")
	case "method_declaration", "constructor_declaration":
		return fieldName(node, source), strPtr("method")
	case "field_declaration":
		return extractFieldName(node, source), strPtr("variable")
	default:
		return nil, nil
	}
}

func extractFieldName(node *sitter.Node, source []byte) *string {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child == nil || child.Kind() != "variable_declarator" {
			continue
		}
		return fieldName(child, source)
	}
	return nil
}

func fieldName(node *sitter.Node, source []byte) *string {
	n := node.ChildByFieldName("name")
	if n == nil {
		return nil
	}
	return strPtr(langkit.Text(n, source))
}

func strPtr(s string) *string { return &s }
