package query

import (
	"fmt"
	"path"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// DependentEntry is one file that imports a given file.
type DependentEntry struct {
	SourceFile   string `json:"source_file"`
	ImportedName string `json:"imported_name"`
	LocalName    string `json:"local_name"`
	Kind         string `json:"kind"`
	Line         int64  `json:"line"`
}

var dependentsHeaders = []string{"source_file", "imported_name", "local_name", "kind", "line"}

// RunDependents lists files that import filePath, matched by stripping the
// file's extension and any leading "./" and looking for that stem inside
// each import's module specifier.
func (e *Engine) RunDependents(filePath string) ([]DependentEntry, error) {
	if !e.HasImports() {
		return nil, ErrNoImports
	}

	stem := strings.TrimPrefix(filePath, "./")
	stem = strings.TrimSuffix(stem, path.Ext(stem))

	sqlStr, args, err := sq.Select(
		"source_file", "imported_name", "local_name", "kind",
		"CAST(line AS INTEGER)",
	).From("imports").
		Where(sq.Like{"module_specifier": "%" + stem + "%"}).
		OrderBy("source_file", "line").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build dependents query: %w", err)
	}

	rows, err := e.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute dependents query: %w", err)
	}
	defer rows.Close()

	results := []DependentEntry{}
	for rows.Next() {
		var d DependentEntry
		if err := rows.Scan(&d.SourceFile, &d.ImportedName, &d.LocalName, &d.Kind, &d.Line); err != nil {
			return nil, fmt.Errorf("failed to scan dependents row: %w", err)
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

// FormatDependents runs RunDependents and renders it in format.
func (e *Engine) FormatDependents(filePath string, format Format) (string, error) {
	rows, err := e.RunDependents(filePath)
	if err != nil {
		return "", err
	}
	return FormatRows(rows, dependentsHeaders, format)
}
