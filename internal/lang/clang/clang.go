// Package clang extracts symbols, imports and comments from C source. Named
// clang (not c) to avoid colliding with Go's builtin "C" pseudo-package name.
package clang

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/nullpilot/codesweep/internal/langkit"
	"github.com/nullpilot/codesweep/internal/model"
)

const symbolQuery = `
(function_definition
  declarator: (function_declarator
    declarator: (identifier) @name)) @definition

(function_definition
  declarator: (pointer_declarator
    declarator: (function_declarator
      declarator: (identifier) @name))) @definition

(declaration
  declarator: (function_declarator
    declarator: (identifier) @name)) @definition

(declaration
  declarator: (init_declarator
    declarator: (identifier) @name)) @definition

(declaration
  declarator: (identifier) @name) @definition

(struct_specifier
  name: (type_identifier) @name
  body: (field_declaration_list)) @definition

(union_specifier
  name: (type_identifier) @name
  body: (field_declaration_list)) @definition

(enum_specifier
  name: (type_identifier) @name
  body: (enumerator_list)) @definition

(type_definition
  declarator: (type_identifier) @name) @definition

(preproc_def
  name: (identifier) @name) @definition

(preproc_function_def
  name: (identifier) @name) @definition
`

const importQuery = `
(preproc_include
  path: (_) @path) @include
`

const commentQuery = `(comment) @comment`

// New compiles the C queries and returns the extractor dispatch uses.
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
		kind, ok := DetermineKind(defNode)
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
			IsExported:  IsExported(defNode, source),
		})
	}
	return symbols
}

// DetermineKind maps a C definition node to a symbol kind. Exported so the
// cpp package can extend it with class_specifier/namespace_definition.
func DetermineKind(def *sitter.Node) (string, bool) {
	switch def.Kind() {
	case "function_definition":
		return "function", true
	case "declaration":
		if HasChildKind(def, "function_declarator") {
			return "function", true
		}
		return "variable", true
	case "struct_specifier":
		return "struct", true
	case "union_specifier":
		return "union", true
	case "enum_specifier":
		return "enum", true
	case "type_definition":
		return "typedef", true
	case "preproc_def", "preproc_function_def":
		return "macro", true
	default:
		return "", false
	}
}

// IsExported reports whether def has external linkage.
func IsExported(def *sitter.Node, source []byte) bool {
	switch def.Kind() {
	case "preproc_def", "preproc_function_def", "struct_specifier", "union_specifier",
		"enum_specifier", "type_definition":
		return true
	}
	count := int(def.ChildCount())
	for i := 0; i < count; i++ {
		child := def.Child(uint(i))
		if child != nil && child.Kind() == "storage_class_specifier" && langkit.Text(child, source) == "static" {
			return false
		}
	}
	return true
}

// HasChildKind reports whether node has a direct child of the given kind.
func HasChildKind(node *sitter.Node, kind string) bool {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child != nil && child.Kind() == kind {
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
		includeNode := langkit.CaptureByName(query, m, "include")
		if pathNode == nil || includeNode == nil {
			continue
		}
		raw := langkit.Text(pathNode, source)
		if raw == "" {
			continue
		}
		isSystem := pathNode.Kind() == "system_lib_string"
		spec := StripIncludePath(raw)
		imports = append(imports, model.ImportInfo{
			SourceFile: path, ModuleSpecifier: spec, ImportedName: "*", LocalName: "*",
			Kind: "include", IsTypeOnly: false, Line: uint32(includeNode.StartPosition().Row), IsExternal: isSystem,
		})
	}
	return imports
}

// StripIncludePath strips the <...> or "..." delimiters from an #include path.
func StripIncludePath(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '<' && s[len(s)-1] == '>') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
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
		symbol, symbolKind := FindAssociatedSymbol(node, source)
		comments = append(comments, model.CommentInfo{
			FilePath: path, Text: text, Kind: ClassifyComment(text),
			StartLine: uint32(node.StartPosition().Row), EndLine: uint32(node.EndPosition().Row),
			AssociatedSymbol: symbol, AssociatedSymbolKind: symbolKind,
		})
	}
	return comments
}

// ClassifyComment classifies a C-style comment as doc, block or line.
func ClassifyComment(text string) string {
	trimmed := strings.TrimLeft(text, " \t")
	switch {
	case strings.HasPrefix(trimmed, "/**"), strings.HasPrefix(trimmed, "///"):
		return "doc"
	case strings.HasPrefix(trimmed, "/*"):
		return "block"
	default:
		return "line"
	}
}

// FindAssociatedSymbol looks at a comment's next named sibling to find the
// symbol it documents. Exported so the cpp package can reuse it directly.
func FindAssociatedSymbol(comment *sitter.Node, source []byte) (*string, *string) {
	sibling := comment.NextNamedSibling()
	if sibling == nil {
		return nil, nil
	}
	return SymbolFromNode(sibling, source)
}

// SymbolFromNode extracts a (name, kind) pair from a definition node.
func SymbolFromNode(node *sitter.Node, source []byte) (*string, *string) {
	switch node.Kind() {
	case "function_definition":
		return strPtrOpt(extractFunctionName(node, source)), strPtr("function")
	case "declaration":
		kind := "variable"
		if HasChildKind(node, "function_declarator") {
			kind = "function"
		}
		return strPtrOpt(extractDeclarationName(node, source)), strPtr(kind)
	case "struct_specifier":
		return fieldName(node, source), strPtr("struct")
	case "union_specifier":
		return fieldName(node, source), strPtr("union")
	case "enum_specifier":
		return fieldName(node, source), strPtr("enum")
	case "type_definition":
		return strPtrOpt(extractTypedefName(node, source)), strPtr("typedef")
	case "preproc_def", "preproc_function_def":
		return fieldName(node, source), strPtr("macro")
	default:
		return nil, nil
	}
}

func extractFunctionName(node *sitter.Node, source []byte) string {
	decl := node.ChildByFieldName("declarator")
	if decl == nil {
		return ""
	}
	return findIdentifierRecursive(decl, source)
}

func extractDeclarationName(node *sitter.Node, source []byte) string {
	decl := node.ChildByFieldName("declarator")
	if decl == nil {
		return ""
	}
	return findIdentifierRecursive(decl, source)
}

func extractTypedefName(node *sitter.Node, source []byte) string {
	decl := node.ChildByFieldName("declarator")
	if decl == nil {
		return ""
	}
	return langkit.Text(decl, source)
}

func findIdentifierRecursive(node *sitter.Node, source []byte) string {
	if node.Kind() == "identifier" {
		return langkit.Text(node, source)
	}
	if inner := node.ChildByFieldName("declarator"); inner != nil {
		return findIdentifierRecursive(inner, source)
	}
	return ""
}

func fieldName(node *sitter.Node, source []byte) *string {
	n := node.ChildByFieldName("name")
	if n == nil {
		return nil
	}
	return strPtr(langkit.Text(n, source))
}

func strPtrOpt(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strPtr(s string) *string { return &s }
