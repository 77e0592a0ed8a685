// Package php extracts symbols, imports and comments from PHP source.
package php

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/nullpilot/codesweep/internal/langkit"
	"github.com/nullpilot/codesweep/internal/model"
)

const symbolQuery = `
(function_definition
  name: (name) @name) @definition

(class_declaration
  name: (name) @name) @definition

(interface_declaration
  name: (name) @name) @definition

(trait_declaration
  name: (name) @name) @definition

(enum_declaration
  name: (name) @name) @definition

(method_declaration
  name: (name) @name) @definition

(property_declaration) @definition

(const_declaration) @definition

(namespace_definition
  name: (namespace_name) @name) @definition
`

const importQuery = `
(namespace_use_declaration) @import

(expression_statement
  (require_expression) @require)

(expression_statement
  (require_once_expression) @require)

(expression_statement
  (include_expression) @include)

(expression_statement
  (include_once_expression) @include)
`

const commentQuery = `(comment) @comment`

// New compiles the PHP queries and returns the extractor dispatch uses.
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
		defNode := langkit.CaptureByName(query, m, "definition")
		if defNode == nil {
			continue
		}
		kind, ok := determineKind(defNode)
		if !ok {
			continue
		}

		var name string
		switch defNode.Kind() {
		case "property_declaration":
			n := extractPropertyName(defNode, source)
			if n == nil {
				continue
			}
			name = *n
		case "const_declaration":
			n := extractConstName(defNode, source)
			if n == nil {
				continue
			}
			name = *n
		default:
			nameNode := langkit.CaptureByName(query, m, "name")
			if nameNode == nil {
				continue
			}
			name = langkit.Text(nameNode, source)
			if name == "" {
				continue
			}
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
	case "function_definition":
		return "function", true
	case "class_declaration":
		return "class", true
	case "interface_declaration":
		return "interface", true
	case "trait_declaration":
		return "trait", true
	case "enum_declaration":
		return "enum", true
	case "method_declaration":
		return "method", true
	case "property_declaration":
		return "property", true
	case "const_declaration":
		return "constant", true
	case "namespace_definition":
		return "namespace", true
	default:
		return "", false
	}
}

func extractPropertyName(node *sitter.Node, source []byte) *string {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child == nil || child.Kind() != "property_element" {
			continue
		}
		innerCount := int(child.ChildCount())
		for j := 0; j < innerCount; j++ {
			inner := child.Child(uint(j))
			if inner == nil || inner.Kind() != "variable_name" {
				continue
			}
			text := langkit.Text(inner, source)
			name := strings.TrimPrefix(text, "$")
			if name != "" {
				return &name
			}
		}
	}
	return nil
}

func extractConstName(node *sitter.Node, source []byte) *string {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child == nil || child.Kind() != "const_element" {
			continue
		}
		innerCount := int(child.ChildCount())
		for j := 0; j < innerCount; j++ {
			inner := child.Child(uint(j))
			if inner == nil || inner.Kind() != "name" {
				continue
			}
			text := langkit.Text(inner, source)
			if text != "" {
				return &text
			}
		}
	}
	return nil
}

// isExported mirrors PHP visibility rules: top-level constructs are always
// exported, class members default to exported unless explicitly marked
// private/protected (PHP's default member visibility is public).
func isExported(def *sitter.Node, source []byte) bool {
	switch def.Kind() {
	case "function_definition", "class_declaration", "interface_declaration",
		"trait_declaration", "enum_declaration", "namespace_definition":
		return true
	case "method_declaration", "property_declaration", "const_declaration":
		count := int(def.ChildCount())
		for i := 0; i < count; i++ {
			child := def.Child(uint(i))
			if child != nil && child.Kind() == "visibility_modifier" {
				return langkit.Text(child, source) == "public"
			}
		}
		return true
	default:
		return true
	}
}

func extractImports(tree *sitter.Tree, source []byte, query *sitter.Query, path string) []model.ImportInfo {
	var imports []model.ImportInfo
	for _, m := range langkit.Matches(query, tree.RootNode(), source) {
		if node := langkit.CaptureByName(query, m, "import"); node != nil {
			text := langkit.Text(node, source)
			imports = append(imports, parseUseDeclaration(text, path, uint32(node.StartPosition().Row))...)
			continue
		}
		if node := langkit.CaptureByName(query, m, "require"); node != nil {
			text := langkit.Text(node, source)
			if p := extractStringArg(text); p != "" {
				imports = append(imports, pathImport(path, p, "require", uint32(node.StartPosition().Row)))
			}
			continue
		}
		if node := langkit.CaptureByName(query, m, "include"); node != nil {
			text := langkit.Text(node, source)
			if p := extractStringArg(text); p != "" {
				imports = append(imports, pathImport(path, p, "include", uint32(node.StartPosition().Row)))
			}
			continue
		}
	}
	return imports
}

func pathImport(path, modulePath, kind string, line uint32) model.ImportInfo {
	imported := modulePath
	if idx := strings.LastIndex(modulePath, "/"); idx >= 0 {
		imported = modulePath[idx+1:]
	}
	return model.ImportInfo{
		SourceFile:      path,
		ModuleSpecifier: modulePath,
		ImportedName:    imported,
		LocalName:       "*",
		Kind:            kind,
		IsTypeOnly:      false,
		Line:            line,
		IsExternal:      !strings.HasPrefix(modulePath, "."),
	}
}

func parseUseDeclaration(text, path string, line uint32) []model.ImportInfo {
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(strings.TrimPrefix(text, "use"))
	text = strings.TrimSpace(strings.TrimSuffix(text, ";"))
	if text == "" {
		return nil
	}

	if braceStart := strings.Index(text, "{"); braceStart >= 0 {
		prefix := strings.TrimRight(strings.TrimSpace(text[:braceStart]), `\`)
		braceEnd := strings.LastIndex(text, "}")
		if braceEnd < 0 {
			braceEnd = len(text)
		}
		inner := text[braceStart+1 : braceEnd]

		var imports []model.ImportInfo
		for _, item := range strings.Split(inner, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			var importedName, localName, itemPath string
			if name, alias, ok := strings.Cut(item, " as "); ok {
				itemPath = strings.TrimSpace(name)
				importedName = lastSegment(itemPath, `\`)
				localName = strings.TrimSpace(alias)
			} else {
				itemPath = item
				importedName = lastSegment(item, `\`)
				localName = importedName
			}
			module := prefix + `\` + itemPath
			imports = append(imports, model.ImportInfo{
				SourceFile: path, ModuleSpecifier: module, ImportedName: importedName,
				LocalName: localName, Kind: "use", IsTypeOnly: false, Line: line, IsExternal: true,
			})
		}
		return imports
	}

	var modulePath, localName string
	if p, alias, ok := strings.Cut(text, " as "); ok {
		modulePath = strings.TrimSpace(p)
		localName = strings.TrimSpace(alias)
	} else {
		modulePath = text
		localName = lastSegment(text, `\`)
	}
	importedName := lastSegment(modulePath, `\`)

	return []model.ImportInfo{{
		SourceFile: path, ModuleSpecifier: modulePath, ImportedName: importedName,
		LocalName: localName, Kind: "use", IsTypeOnly: false, Line: line, IsExternal: true,
	}}
}

func lastSegment(s, sep string) string {
	if idx := strings.LastIndex(s, sep); idx >= 0 {
		return s[idx+len(sep):]
	}
	return s
}

func extractStringArg(text string) string {
	singleStart := strings.IndexByte(text, '\'')
	doubleStart := strings.IndexByte(text, '"')

	var start int
	var quote byte
	switch {
	case singleStart >= 0 && doubleStart >= 0:
		if singleStart < doubleStart {
			start, quote = singleStart, '\''
		} else {
			start, quote = doubleStart, '"'
		}
	case singleStart >= 0:
		start, quote = singleStart, '\''
	case doubleStart >= 0:
		start, quote = doubleStart, '"'
	default:
		return ""
	}

	rest := text[start+1:]
	end := strings.IndexByte(rest, quote)
	if end < 0 {
		return ""
	}
	return rest[:end]
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

// classifyComment treats // and # uniformly as line comments, matching PHP's
// two line-comment spellings.
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
	case "function_definition":
		return fieldName(node, source), strPtr("function")
	case "class_declaration":
		return fieldName(node, source), strPtr("class")
	case "interface_declaration":
		return fieldName(node, source), strPtr("interface")
	case "trait_declaration":
		return fieldName(node, source), strPtr("trait")
	case "enum_declaration":
		return fieldName(node, source), strPtr("enum")
	case "method_declaration":
		return fieldName(node, source), strPtr("method")
	case "namespace_definition":
		return fieldName(node, source), strPtr("namespace")
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

func strPtr(s string) *string { return &s }
