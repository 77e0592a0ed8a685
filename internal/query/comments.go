package query

import (
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// ErrNoComments is returned by any operation that reads the comments table
// when the dataset has no comments.parquet.
var ErrNoComments = errors.New("comments.parquet not found; re-run `codesweep parse` to generate comment data")

// CommentEntry is one standalone or doc comment.
type CommentEntry struct {
	FilePath             string  `json:"file_path"`
	Text                 string  `json:"text"`
	Kind                 string  `json:"kind"`
	StartLine            int64   `json:"start_line"`
	EndLine              int64   `json:"end_line"`
	AssociatedSymbol     *string `json:"associated_symbol"`
	AssociatedSymbolKind *string `json:"associated_symbol_kind"`
}

var commentsHeaders = []string{
	"file_path", "text", "kind", "start_line", "end_line", "associated_symbol", "associated_symbol_kind",
}

// CommentFilter narrows RunComments; zero values mean "don't filter".
type CommentFilter struct {
	File        string
	Kind        string
	Documented  bool
	Symbol      string
}

// RunComments lists comments, optionally filtered.
func (e *Engine) RunComments(filter CommentFilter, limit int) ([]CommentEntry, error) {
	if !e.HasComments() {
		return nil, ErrNoComments
	}

	b := sq.Select(
		"file_path", "text", "kind",
		"CAST(start_line AS INTEGER)", "CAST(end_line AS INTEGER)",
		"associated_symbol", "associated_symbol_kind",
	).From("comments").OrderBy("file_path", "start_line").Limit(uint64(limit))

	if filter.File != "" {
		b = b.Where(sq.Like{"file_path": filter.File + "%"})
	}
	if filter.Kind != "" {
		b = b.Where(sq.Eq{"kind": filter.Kind})
	}
	if filter.Documented {
		b = b.Where(sq.NotEq{"associated_symbol": nil})
	}
	if filter.Symbol != "" {
		b = b.Where(sq.Like{"associated_symbol": "%" + filter.Symbol + "%"})
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build comments query: %w", err)
	}

	rows, err := e.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute comments query: %w", err)
	}
	defer rows.Close()

	results := []CommentEntry{}
	for rows.Next() {
		var c CommentEntry
		var assocSymbol, assocKind sql.NullString
		if err := rows.Scan(&c.FilePath, &c.Text, &c.Kind, &c.StartLine, &c.EndLine, &assocSymbol, &assocKind); err != nil {
			return nil, fmt.Errorf("failed to scan comments row: %w", err)
		}
		if assocSymbol.Valid {
			c.AssociatedSymbol = &assocSymbol.String
		}
		if assocKind.Valid {
			c.AssociatedSymbolKind = &assocKind.String
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// FormatComments runs RunComments and renders it in format.
func (e *Engine) FormatComments(filter CommentFilter, limit int, format Format) (string, error) {
	rows, err := e.RunComments(filter, limit)
	if err != nil {
		return "", err
	}
	return FormatRows(rows, commentsHeaders, format)
}
