package query

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// FileEntry is one row of the files listing.
type FileEntry struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Language  string `json:"language"`
	SizeBytes int64  `json:"size_bytes"`
	LineCount int64  `json:"line_count"`
}

var filesHeaders = []string{"path", "name", "language", "size_bytes", "line_count"}

// fileSortColumns maps the --sort flag's accepted values to the column they
// order by; anything else falls back to "path" rather than erroring, since
// sort order is a display preference, not a filter.
var fileSortColumns = map[string]string{
	"path":     "path",
	"name":     "name",
	"language": "language",
	"size":     "size_bytes",
	"lines":    "line_count",
}

// RunFiles lists scanned files, optionally filtered by language and/or a
// directory path prefix, ordered by sortBy (one of path/name/language/
// size/lines; defaults to path for an unrecognized value).
func (e *Engine) RunFiles(language, directory, sortBy string, limit, offset int) ([]FileEntry, error) {
	column, ok := fileSortColumns[sortBy]
	if !ok {
		column = "path"
	}

	b := sq.Select(
		"path", "name", "language",
		"CAST(size_bytes AS BIGINT)", "CAST(line_count AS BIGINT)",
	).From("files").OrderBy(column).
		Limit(uint64(limit)).Offset(uint64(offset))

	if language != "" {
		b = b.Where(sq.Eq{"language": language})
	}
	if directory != "" {
		b = b.Where(sq.Like{"path": directory + "%"})
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build files query: %w", err)
	}

	rows, err := e.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute files query: %w", err)
	}
	defer rows.Close()

	results := []FileEntry{}
	for rows.Next() {
		var f FileEntry
		if err := rows.Scan(&f.Path, &f.Name, &f.Language, &f.SizeBytes, &f.LineCount); err != nil {
			return nil, fmt.Errorf("failed to scan files row: %w", err)
		}
		results = append(results, f)
	}
	return results, rows.Err()
}

// FormatFiles runs RunFiles and renders it in format.
func (e *Engine) FormatFiles(language, directory, sortBy string, limit, offset int, format Format) (string, error) {
	rows, err := e.RunFiles(language, directory, sortBy, limit, offset)
	if err != nil {
		return "", err
	}
	return FormatRows(rows, filesHeaders, format)
}
