// Package python extracts symbols, imports and comments from Python source.
package python

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/nullpilot/codesweep/internal/langkit"
	"github.com/nullpilot/codesweep/internal/model"
)

const symbolQuery = `
(function_definition
  name: (identifier) @name) @definition

(class_definition
  name: (identifier) @name) @definition

(decorated_definition
  definition: (function_definition
    name: (identifier) @name)) @definition

(decorated_definition
  definition: (class_definition
    name: (identifier) @name)) @definition

(expression_statement
  (assignment) @definition)
`

const importQuery = `
(import_statement
  name: (dotted_name) @path) @import

(import_from_statement) @import
`

const commentQuery = `
(comment) @comment

(expression_statement
  (string) @docstring)
`

// New compiles the Python queries and returns the extractor dispatch uses.
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

		var name string
		if defNode.Kind() == "assignment" {
			left := defNode.ChildByFieldName("left")
			if left == nil || left.Kind() != "identifier" {
				continue
			}
			name = langkit.Text(left, source)
		} else {
			nameNode := langkit.CaptureByName(query, m, "name")
			if nameNode == nil {
				continue
			}
			name = langkit.Text(nameNode, source)
		}
		if name == "" {
			continue
		}

		if (defNode.Kind() == "function_definition" || defNode.Kind() == "class_definition") &&
			defNode.Parent() != nil && defNode.Parent().Kind() == "decorated_definition" {
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
			IsExported:  !strings.HasPrefix(name, "_"),
		})
	}
	return symbols
}

func determineKind(def *sitter.Node) (string, bool) {
	switch def.Kind() {
	case "function_definition":
		if isInsideClass(def) {
			return "method", true
		}
		return "function", true
	case "class_definition":
		return "class", true
	case "decorated_definition":
		inner := def.ChildByFieldName("definition")
		if inner == nil {
			return "", false
		}
		switch inner.Kind() {
		case "function_definition":
			if isInsideClass(def) {
				return "method", true
			}
			return "function", true
		case "class_definition":
			return "class", true
		default:
			return "", false
		}
	case "assignment":
		parent := def.Parent()
		if parent == nil {
			return "", false
		}
		grandparent := parent.Parent()
		if grandparent != nil && grandparent.Kind() == "module" {
			return "variable", true
		}
		return "", false
	default:
		return "", false
	}
}

func isInsideClass(node *sitter.Node) bool {
	current := node.Parent()
	for current != nil {
		switch current.Kind() {
		case "class_definition":
			return true
		case "function_definition":
			return false
		default:
			current = current.Parent()
		}
	}
	return false
}

// ── Import extraction ──

func extractImports(tree *sitter.Tree, source []byte, query *sitter.Query, path string) []model.ImportInfo {
	var imports []model.ImportInfo
	for _, m := range langkit.Matches(query, tree.RootNode(), source) {
		importNode := langkit.CaptureByName(query, m, "import")
		if importNode == nil {
			continue
		}
		line := uint32(importNode.StartPosition().Row)

		switch importNode.Kind() {
		case "import_statement":
			pathNode := langkit.CaptureByName(query, m, "path")
			if pathNode == nil {
				continue
			}
			module := langkit.Text(pathNode, source)
			if module == "" {
				continue
			}
			name := lastDotSegment(module)
			imports = append(imports, model.ImportInfo{
				SourceFile: path, ModuleSpecifier: module, ImportedName: name, LocalName: name,
				Kind: "import", IsTypeOnly: false, Line: line, IsExternal: true,
			})
		case "import_from_statement":
			imports = append(imports, extractFromImport(importNode, source, path, line)...)
		}
	}
	return imports
}

func lastDotSegment(s string) string {
	if idx := strings.LastIndex(s, "."); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

func extractFromImport(importNode *sitter.Node, source []byte, path string, line uint32) []model.ImportInfo {
	module := extractFromModule(importNode, source)
	isInternal := strings.HasPrefix(module, ".")

	var out []model.ImportInfo
	foundNames := false
	count := int(importNode.ChildCount())
	for i := 0; i < count; i++ {
		child := importNode.Child(uint(i))
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "dotted_name":
			if foundNames || isImportNamePosition(importNode, child) {
				name := langkit.Text(child, source)
				if name != "" && name != module {
					out = append(out, model.ImportInfo{
						SourceFile: path, ModuleSpecifier: module, ImportedName: name, LocalName: name,
						Kind: "from", IsTypeOnly: false, Line: line, IsExternal: !isInternal,
					})
				}
			}
		case "aliased_import":
			foundNames = true
			nameNode := child.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			name := langkit.Text(nameNode, source)
			local := name
			if aliasNode := child.ChildByFieldName("alias"); aliasNode != nil {
				local = langkit.Text(aliasNode, source)
			}
			if name != "" {
				out = append(out, model.ImportInfo{
					SourceFile: path, ModuleSpecifier: module, ImportedName: name, LocalName: local,
					Kind: "from", IsTypeOnly: false, Line: line, IsExternal: !isInternal,
				})
			}
		case "wildcard_import":
			foundNames = true
			out = append(out, model.ImportInfo{
				SourceFile: path, ModuleSpecifier: module, ImportedName: "*", LocalName: "*",
				Kind: "from", IsTypeOnly: false, Line: line, IsExternal: !isInternal,
			})
		case "import":
			foundNames = true
		}
	}
	return out
}

func extractFromModule(importNode *sitter.Node, source []byte) string {
	if moduleNode := importNode.ChildByFieldName("module_name"); moduleNode != nil {
		return langkit.Text(moduleNode, source)
	}

	count := int(importNode.ChildCount())
	foundFrom := false
	for i := 0; i < count; i++ {
		child := importNode.Child(uint(i))
		if child == nil {
			continue
		}
		if child.Kind() == "from" {
			foundFrom = true
			continue
		}
		if foundFrom && child.Kind() == "import" {
			break
		}
		if foundFrom {
			switch child.Kind() {
			case "dotted_name", "relative_import":
				return langkit.Text(child, source)
			}
		}
	}
	return ""
}

func isImportNamePosition(importNode, nameNode *sitter.Node) bool {
	count := int(importNode.ChildCount())
	pastImport := false
	for i := 0; i < count; i++ {
		child := importNode.Child(uint(i))
		if child == nil {
			continue
		}
		if child.Kind() == "import" {
			pastImport = true
			continue
		}
		if pastImport && child.StartByte() == nameNode.StartByte() {
			return true
		}
	}
	return false
}

// ── Comment extraction ──

func extractComments(tree *sitter.Tree, source []byte, query *sitter.Query, path string) []model.CommentInfo {
	var comments []model.CommentInfo
	for _, m := range langkit.Matches(query, tree.RootNode(), source) {
		if node := langkit.CaptureByName(query, m, "comment"); node != nil {
			text := langkit.Text(node, source)
			if text == "" {
				continue
			}
			symbol, symbolKind := findAssociatedSymbol(node, source)
			comments = append(comments, model.CommentInfo{
				FilePath: path, Text: text, Kind: "line",
				StartLine: uint32(node.StartPosition().Row), EndLine: uint32(node.EndPosition().Row),
				AssociatedSymbol: symbol, AssociatedSymbolKind: symbolKind,
			})
			continue
		}
		if node := langkit.CaptureByName(query, m, "docstring"); node != nil {
			text := langkit.Text(node, source)
			if text == "" || !isDocstringPosition(node) {
				continue
			}
			symbol, symbolKind := findDocstringSymbol(node, source)
			comments = append(comments, model.CommentInfo{
				FilePath: path, Text: text, Kind: "doc",
				StartLine: uint32(node.StartPosition().Row), EndLine: uint32(node.EndPosition().Row),
				AssociatedSymbol: symbol, AssociatedSymbolKind: symbolKind,
			})
		}
	}
	return comments
}

func isDocstringPosition(stringNode *sitter.Node) bool {
	exprStmt := stringNode.Parent()
	if exprStmt == nil || exprStmt.Kind() != "expression_statement" {
		return false
	}
	parent := exprStmt.Parent()
	if parent == nil {
		return false
	}
	switch parent.Kind() {
	case "module", "block":
		return firstNamedChildStart(parent) == exprStmt.StartByte()
	default:
		return false
	}
}

func firstNamedChildStart(node *sitter.Node) uint {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child != nil && child.IsNamed() {
			return child.StartByte()
		}
	}
	return 0
}

func findDocstringSymbol(stringNode *sitter.Node, source []byte) (*string, *string) {
	exprStmt := stringNode.Parent()
	if exprStmt == nil {
		return nil, nil
	}
	block := exprStmt.Parent()
	if block == nil {
		return nil, nil
	}
	container := block.Parent()
	if container == nil {
		return nil, nil
	}

	switch container.Kind() {
	case "function_definition":
		kind := "function"
		if isInsideClass(container) {
			kind = "method"
		}
		return fieldName(container, source), strPtr(kind)
	case "class_definition":
		return fieldName(container, source), strPtr("class")
	default:
		return nil, nil
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
		kind := "function"
		if isInsideClass(node) {
			kind = "method"
		}
		return fieldName(node, source), strPtr(kind)
	case "class_definition":
		return fieldName(node, source), strPtr("class")
	case "decorated_definition":
		if inner := node.ChildByFieldName("definition"); inner != nil {
			return symbolFromNode(inner, source)
		}
		return nil, nil
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
