package query

import (
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// ErrNoErrors is returned by any operation that reads the errors table when
// the dataset has no errors.parquet.
var ErrNoErrors = errors.New("errors.parquet not found; re-run `codesweep parse` to generate error data")

// ErrorEntry is one file that failed to parse or extract cleanly.
type ErrorEntry struct {
	FilePath  string `json:"file_path"`
	Language  string `json:"language"`
	ErrorType string `json:"error_type"`
	Message   string `json:"message"`
}

var errorsHeaders = []string{"file_path", "language", "error_type", "message"}

// RunErrors lists parse/extraction errors, optionally filtered by error type
// and/or language.
func (e *Engine) RunErrors(errorType, language string, limit int) ([]ErrorEntry, error) {
	if !e.HasErrors() {
		return nil, ErrNoErrors
	}

	b := sq.Select("file_path", "language", "error_type", "message").
		From("errors").OrderBy("file_path").Limit(uint64(limit))

	if errorType != "" {
		b = b.Where(sq.Eq{"error_type": errorType})
	}
	if language != "" {
		b = b.Where(sq.Eq{"language": language})
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build errors query: %w", err)
	}

	rows, err := e.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute errors query: %w", err)
	}
	defer rows.Close()

	results := []ErrorEntry{}
	for rows.Next() {
		var r ErrorEntry
		if err := rows.Scan(&r.FilePath, &r.Language, &r.ErrorType, &r.Message); err != nil {
			return nil, fmt.Errorf("failed to scan errors row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// FormatErrors runs RunErrors and renders it in format.
func (e *Engine) FormatErrors(errorType, language string, limit int, format Format) (string, error) {
	rows, err := e.RunErrors(errorType, language, limit)
	if err != nil {
		return "", err
	}
	return FormatRows(rows, errorsHeaders, format)
}
