// Package langkit holds the shared contract every per-language extractor
// package implements: a set of compiled tree-sitter queries plus the three
// extraction functions internal/extract calls uniformly. Keeping the contract
// separate from the language packages avoids an import cycle between them
// and the dispatch table.
package langkit

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/nullpilot/codesweep/internal/model"
)

// Queries holds the one compiled query per extraction kind a language
// package needs. A language with no imports worth modeling (none in the
// current set) would leave Import nil; dispatch skips nil queries.
type Queries struct {
	Symbol  *sitter.Query
	Import  *sitter.Query
	Comment *sitter.Query
}

// Close releases the underlying tree-sitter query objects.
func (q *Queries) Close() {
	if q.Symbol != nil {
		q.Symbol.Close()
	}
	if q.Import != nil {
		q.Import.Close()
	}
	if q.Comment != nil {
		q.Comment.Close()
	}
}

// Extractor is what every internal/lang/<language> package produces. The
// three Extract funcs are pure: given a parsed tree, its source bytes, the
// matching compiled query and the file's relative path, they return rows.
// They never touch the filesystem or mutate shared state, so one Extractor
// value is safely reused by every worker in the driver's pool.
type Extractor struct {
	Queries         Queries
	ExtractSymbols  func(tree *sitter.Tree, source []byte, query *sitter.Query, path string) []model.SymbolInfo
	ExtractImports  func(tree *sitter.Tree, source []byte, query *sitter.Query, path string) []model.ImportInfo
	ExtractComments func(tree *sitter.Tree, source []byte, query *sitter.Query, path string) []model.CommentInfo
}

// Matches runs a compiled query against a tree's root node and returns every
// match with its captures copied; capture names are resolved separately by
// CaptureByName. Centralizing this loop is what lets each language package read like a
// flat list of capture-name-to-field rules instead of reimplementing the
// streaming-iterator dance nine times.
func Matches(query *sitter.Query, root *sitter.Node, source []byte) []*sitter.QueryMatch {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	names := query.CaptureNames()
	iter := cursor.Matches(query, root, source)

	var out []*sitter.QueryMatch
	for match := iter.Next(); match != nil; match = iter.Next() {
		// Next() reuses its underlying buffer on each call, so the match
		// (and its Captures slice) must be copied before advancing the
		// iterator again.
		m := *match
		m.Captures = append([]sitter.QueryCapture(nil), match.Captures...)
		out = append(out, &m)
	}
	_ = names
	return out
}

// CaptureByName returns the first capture in a match whose name equals
// name, or nil if the pattern didn't bind one.
func CaptureByName(query *sitter.Query, match *sitter.QueryMatch, name string) *sitter.Node {
	names := query.CaptureNames()
	for _, c := range match.Captures {
		if int(c.Index) < len(names) && names[c.Index] == name {
			n := c.Node
			return &n
		}
	}
	return nil
}

// Text returns the source slice a node spans.
func Text(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// Line returns a node's 0-based start row.
func Line(node *sitter.Node) uint32 {
	return uint32(node.StartPosition().Row)
}
