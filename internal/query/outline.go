package query

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// OutlineEntry is one symbol in a file's outline.
type OutlineEntry struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	StartLine  int64  `json:"start_line"`
	EndLine    int64  `json:"end_line"`
	IsExported bool   `json:"is_exported"`
}

// FileOutline is a file's language plus its ordered symbol outline.
type FileOutline struct {
	Language string         `json:"language"`
	Symbols  []OutlineEntry `json:"symbols"`
}

var outlineHeaders = []string{"name", "kind", "start_line", "end_line", "is_exported"}

// RunOutline returns filePath's language and the symbols declared in it,
// ordered by position.
func (e *Engine) RunOutline(filePath string) (FileOutline, error) {
	language, err := e.fileLanguage(filePath)
	if err != nil {
		return FileOutline{}, err
	}
	symbols, err := e.fileSymbols(filePath)
	if err != nil {
		return FileOutline{}, err
	}
	return FileOutline{Language: language, Symbols: symbols}, nil
}

func (e *Engine) fileLanguage(filePath string) (string, error) {
	sqlStr, args, err := sq.Select("language").From("files").
		Where(sq.Eq{"path": filePath}).Limit(1).ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build language query: %w", err)
	}

	var language string
	if err := e.db.QueryRow(sqlStr, args...).Scan(&language); err != nil {
		return "unknown", nil
	}
	return language, nil
}

func (e *Engine) fileSymbols(filePath string) ([]OutlineEntry, error) {
	sqlStr, args, err := sq.Select(
		"name", "kind", "CAST(start_line AS INTEGER)", "CAST(end_line AS INTEGER)", "is_exported",
	).From("symbols").
		Where(sq.Eq{"file_path": filePath}).
		OrderBy("start_line").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build outline query: %w", err)
	}

	rows, err := e.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute outline query: %w", err)
	}
	defer rows.Close()

	results := []OutlineEntry{}
	for rows.Next() {
		var o OutlineEntry
		if err := rows.Scan(&o.Name, &o.Kind, &o.StartLine, &o.EndLine, &o.IsExported); err != nil {
			return nil, fmt.Errorf("failed to scan outline row: %w", err)
		}
		results = append(results, o)
	}
	return results, rows.Err()
}

// FormatOutline runs RunOutline and renders it in format. JSON output
// returns the whole FileOutline; table/csv output renders just the symbol
// rows, prefixed with a one-line file/language header.
func (e *Engine) FormatOutline(filePath string, format Format) (string, error) {
	outline, err := e.RunOutline(filePath)
	if err != nil {
		return "", err
	}

	if format == FormatJSON {
		data, err := json.MarshalIndent(outline, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal outline: %w", err)
		}
		return string(data), nil
	}

	body, err := FormatRows(outline.Symbols, outlineHeaders, format)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("File: %s  Language: %s\n\n%s", filePath, outline.Language, body), nil
}
