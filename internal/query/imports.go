package query

import (
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// ErrNoImports is returned by any operation that reads the imports table
// when the dataset has no imports.parquet.
var ErrNoImports = errors.New("imports.parquet not found; re-run `codesweep parse` to generate import data")

// ImportEntry is one row of the imports listing.
type ImportEntry struct {
	SourceFile      string `json:"source_file"`
	ModuleSpecifier string `json:"module_specifier"`
	ImportedName    string `json:"imported_name"`
	LocalName       string `json:"local_name"`
	Kind            string `json:"kind"`
	IsTypeOnly      bool   `json:"is_type_only"`
	Line            int64  `json:"line"`
	IsExternal      bool   `json:"is_external"`
}

var importsHeaders = []string{
	"source_file", "module_specifier", "imported_name", "local_name",
	"kind", "is_type_only", "line", "is_external",
}

// ImportFilter narrows RunImports; zero values mean "don't filter".
type ImportFilter struct {
	Module     string
	Kind       string
	File       string
	TypeOnly   bool
	External   bool
	Internal   bool
}

// RunImports lists import edges, optionally filtered.
func (e *Engine) RunImports(filter ImportFilter, limit int) ([]ImportEntry, error) {
	if !e.HasImports() {
		return nil, ErrNoImports
	}

	b := sq.Select(
		"source_file", "module_specifier", "imported_name", "local_name", "kind",
		"is_type_only", "CAST(line AS INTEGER)", "is_external",
	).From("imports").OrderBy("source_file", "line").Limit(uint64(limit))

	if filter.Module != "" {
		b = b.Where(sq.Like{"module_specifier": "%" + filter.Module + "%"})
	}
	if filter.Kind != "" {
		b = b.Where(sq.Eq{"kind": filter.Kind})
	}
	if filter.File != "" {
		b = b.Where(sq.Like{"source_file": filter.File + "%"})
	}
	if filter.TypeOnly {
		b = b.Where(sq.Eq{"is_type_only": true})
	}
	if filter.External {
		b = b.Where(sq.Eq{"is_external": true})
	}
	if filter.Internal {
		b = b.Where(sq.Eq{"is_external": false})
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build imports query: %w", err)
	}

	rows, err := e.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute imports query: %w", err)
	}
	defer rows.Close()

	results := []ImportEntry{}
	for rows.Next() {
		var i ImportEntry
		if err := rows.Scan(&i.SourceFile, &i.ModuleSpecifier, &i.ImportedName, &i.LocalName,
			&i.Kind, &i.IsTypeOnly, &i.Line, &i.IsExternal); err != nil {
			return nil, fmt.Errorf("failed to scan imports row: %w", err)
		}
		results = append(results, i)
	}
	return results, rows.Err()
}

// FormatImports runs RunImports and renders it in format.
func (e *Engine) FormatImports(filter ImportFilter, limit int, format Format) (string, error) {
	rows, err := e.RunImports(filter, limit)
	if err != nil {
		return "", err
	}
	return FormatRows(rows, importsHeaders, format)
}
