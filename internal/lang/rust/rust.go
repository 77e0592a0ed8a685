// Package rust extracts symbols, imports and comments from Rust source.
package rust

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/nullpilot/codesweep/internal/langkit"
	"github.com/nullpilot/codesweep/internal/model"
)

const symbolQuery = `
(function_item
  name: (identifier) @name) @definition

(struct_item
  name: (type_identifier) @name) @definition

(enum_item
  name: (type_identifier) @name) @definition

(trait_item
  name: (type_identifier) @name) @definition

(type_item
  name: (type_identifier) @name) @definition

(const_item
  name: (identifier) @name) @definition

(static_item
  name: (identifier) @name) @definition

(union_item
  name: (type_identifier) @name) @definition

(mod_item
  name: (identifier) @name) @definition

(macro_definition
  name: (identifier) @name) @definition
`

const importQuery = `
(use_declaration
  argument: (_) @path) @import
`

const commentQuery = `
[
  (line_comment) @comment
  (block_comment) @comment
]
`

// New compiles the Rust queries and returns the extractor dispatch uses.
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
			IsExported:  isExportedRust(defNode),
		})
	}
	return symbols
}

func determineKind(def *sitter.Node) (string, bool) {
	switch def.Kind() {
	case "function_item":
		if isInsideImplOrTrait(def) {
			return "method", true
		}
		return "function", true
	case "struct_item":
		return "struct", true
	case "enum_item":
		return "enum", true
	case "trait_item":
		return "trait", true
	case "type_item":
		return "type_alias", true
	case "const_item":
		return "constant", true
	case "static_item":
		return "variable", true
	case "union_item":
		return "union", true
	case "mod_item":
		return "module", true
	case "macro_definition":
		return "macro", true
	default:
		return "", false
	}
}

func isInsideImplOrTrait(node *sitter.Node) bool {
	current := node.Parent()
	for current != nil {
		switch current.Kind() {
		case "impl_item", "trait_item":
			return true
		case "declaration_list":
			current = current.Parent()
			continue
		default:
			return false
		}
	}
	return false
}

func isExportedRust(def *sitter.Node) bool {
	count := int(def.ChildCount())
	for i := 0; i < count; i++ {
		child := def.Child(uint(i))
		if child != nil && child.Kind() == "visibility_modifier" {
			return true
		}
	}
	return false
}

// ── Import extraction ──

func extractImports(tree *sitter.Tree, source []byte, query *sitter.Query, path string) []model.ImportInfo {
	var imports []model.ImportInfo
	for _, m := range langkit.Matches(query, tree.RootNode(), source) {
		pathNode := langkit.CaptureByName(query, m, "path")
		importNode := langkit.CaptureByName(query, m, "import")
		if pathNode == nil || importNode == nil {
			continue
		}
		line := uint32(importNode.StartPosition().Row)
		pathText := langkit.Text(pathNode, source)
		if pathText == "" {
			continue
		}
		imports = append(imports, extractUseImports(pathText, path, line)...)
	}
	return imports
}

func extractUseImports(pathText, filePath string, line uint32) []model.ImportInfo {
	isInternal := strings.HasPrefix(pathText, "crate::") ||
		strings.HasPrefix(pathText, "self::") ||
		strings.HasPrefix(pathText, "super::")

	if braceStart := strings.Index(pathText, "{"); braceStart >= 0 {
		prefix := pathText[:braceStart]
		braceEnd := strings.LastIndex(pathText, "}")
		if braceEnd < 0 {
			braceEnd = len(pathText)
		}
		inner := pathText[braceStart+1 : braceEnd]

		var out []model.ImportInfo
		for _, item := range strings.Split(inner, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			var importedName, localName string
			if name, alias, ok := strings.Cut(item, " as "); ok {
				importedName, localName = strings.TrimSpace(name), strings.TrimSpace(alias)
			} else {
				name := lastSegment(item)
				importedName, localName = name, name
			}
			module := strings.TrimSpace(prefix + item)
			out = append(out, model.ImportInfo{
				SourceFile: filePath, ModuleSpecifier: module, ImportedName: importedName, LocalName: localName,
				Kind: "use", IsTypeOnly: false, Line: line, IsExternal: !isInternal,
			})
		}
		return out
	}

	var module, importedName, localName string
	if p, alias, ok := strings.Cut(pathText, " as "); ok {
		name := lastSegment(p)
		module, importedName, localName = strings.TrimSpace(p), name, strings.TrimSpace(alias)
	} else if strings.HasSuffix(pathText, "::*") {
		module, importedName, localName = pathText, "*", "*"
	} else {
		name := lastSegment(pathText)
		module, importedName, localName = pathText, name, name
	}

	return []model.ImportInfo{{
		SourceFile: filePath, ModuleSpecifier: module, ImportedName: importedName, LocalName: localName,
		Kind: "use", IsTypeOnly: false, Line: line, IsExternal: !isInternal,
	}}
}

func lastSegment(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.LastIndex(s, "::"); idx >= 0 {
		return strings.TrimSpace(s[idx+2:])
	}
	return s
}

// ── Comment extraction ──

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

func classifyComment(text string) string {
	trimmed := strings.TrimLeft(text, " \t")
	switch {
	case strings.HasPrefix(trimmed, "///"), strings.HasPrefix(trimmed, "//!"):
		return "doc"
	case strings.HasPrefix(trimmed, "/**"), strings.HasPrefix(trimmed, "/*!"):
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
	case "function_item":
		kind := "function"
		if isInsideImplOrTrait(node) {
			kind = "method"
		}
		return fieldName(node, source), strPtr(kind)
	case "struct_item":
		return fieldName(node, source), strPtr("struct")
	case "enum_item":
		return fieldName(node, source), strPtr("enum")
	case "trait_item":
		return fieldName(node, source), strPtr("trait")
	case "type_item":
		return fieldName(node, source), strPtr("type_alias")
	case "const_item":
		return fieldName(node, source), strPtr("constant")
	case "static_item":
		return fieldName(node, source), strPtr("variable")
	case "union_item":
		return fieldName(node, source), strPtr("union")
	case "mod_item":
		return fieldName(node, source), strPtr("module")
	case "macro_definition":
		return fieldName(node, source), strPtr("macro")
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
