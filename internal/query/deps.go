package query

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// DepEntry is one import edge out of a file.
type DepEntry struct {
	ModuleSpecifier string `json:"module_specifier"`
	ImportedName    string `json:"imported_name"`
	LocalName       string `json:"local_name"`
	Kind            string `json:"kind"`
	IsTypeOnly      bool   `json:"is_type_only"`
	Line            int64  `json:"line"`
}

var depsHeaders = []string{"module_specifier", "imported_name", "local_name", "kind", "is_type_only", "line"}

// RunDeps lists the files/modules filePath imports.
func (e *Engine) RunDeps(filePath string) ([]DepEntry, error) {
	if !e.HasImports() {
		return nil, ErrNoImports
	}

	sqlStr, args, err := sq.Select(
		"module_specifier", "imported_name", "local_name", "kind", "is_type_only",
		"CAST(line AS INTEGER)",
	).From("imports").
		Where(sq.Eq{"source_file": filePath}).
		OrderBy("line").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build deps query: %w", err)
	}

	rows, err := e.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute deps query: %w", err)
	}
	defer rows.Close()

	results := []DepEntry{}
	for rows.Next() {
		var d DepEntry
		if err := rows.Scan(&d.ModuleSpecifier, &d.ImportedName, &d.LocalName, &d.Kind, &d.IsTypeOnly, &d.Line); err != nil {
			return nil, fmt.Errorf("failed to scan deps row: %w", err)
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

// FormatDeps runs RunDeps and renders it in format.
func (e *Engine) FormatDeps(filePath string, format Format) (string, error) {
	rows, err := e.RunDeps(filePath)
	if err != nil {
		return "", err
	}
	return FormatRows(rows, depsHeaders, format)
}
