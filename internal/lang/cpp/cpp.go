// Package cpp extracts symbols, imports and comments from C++ source. It
// reuses clang's import/comment extraction verbatim (#include directives
// and comment grammar are identical) and extends the symbol vocabulary with
// classes and namespaces.
package cpp

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/nullpilot/codesweep/internal/lang/clang"
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

(class_specifier
  name: (type_identifier) @name
  body: (field_declaration_list)) @definition

(namespace_definition
  name: (_) @name) @definition

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

// New compiles the C++ queries and returns the extractor dispatch uses.
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
	case "class_specifier":
		return "class", true
	case "namespace_definition":
		return "namespace", true
	default:
		return clang.DetermineKind(def)
	}
}

func isExported(def *sitter.Node, source []byte) bool {
	switch def.Kind() {
	case "class_specifier", "namespace_definition":
		return true
	default:
		return clang.IsExported(def, source)
	}
}

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
		spec := clang.StripIncludePath(raw)
		imports = append(imports, model.ImportInfo{
			SourceFile: path, ModuleSpecifier: spec, ImportedName: "*", LocalName: "*",
			Kind: "include", IsTypeOnly: false, Line: uint32(includeNode.StartPosition().Row), IsExternal: isSystem,
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
		symbol, symbolKind := findAssociatedSymbol(node, source)
		comments = append(comments, model.CommentInfo{
			FilePath: path, Text: text, Kind: clang.ClassifyComment(text),
			StartLine: uint32(node.StartPosition().Row), EndLine: uint32(node.EndPosition().Row),
			AssociatedSymbol: symbol, AssociatedSymbolKind: symbolKind,
		})
	}
	return comments
}

func findAssociatedSymbol(comment *sitter.Node, source []byte) (*string, *string) {
	sibling := comment.NextNamedSibling()
	if sibling == nil {
		return nil, nil
	}
	switch sibling.Kind() {
	case "class_specifier":
		n := sibling.ChildByFieldName("name")
		if n == nil {
			return nil, strPtr("class")
		}
		name := langkit.Text(n, source)
		return &name, strPtr("class")
	case "namespace_definition":
		n := sibling.ChildByFieldName("name")
		if n == nil {
			return nil, strPtr("namespace")
		}
		name := langkit.Text(n, source)
		return &name, strPtr("namespace")
	default:
		return clang.SymbolFromNode(sibling, source)
	}
}

func strPtr(s string) *string { return &s }
