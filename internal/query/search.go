package query

import (
	"fmt"
	"strings"
)

// SymbolMatch is one row of a symbol search, optionally enriched with
// import-derived usage counts.
type SymbolMatch struct {
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	FilePath      string `json:"file_path"`
	StartLine     int64  `json:"start_line"`
	EndLine       int64  `json:"end_line"`
	IsExported    bool   `json:"is_exported"`
	UsageCount    int64  `json:"usage_count"`
	InternalUsage int64  `json:"internal_usage"`
	ExternalUsage int64  `json:"external_usage"`
}

var searchHeaders = []string{
	"name", "kind", "file_path", "start_line", "end_line",
	"is_exported", "usage_count", "internal_usage", "external_usage",
}

// RunSearch finds symbols matching query, optionally filtered by kind and
// exported-only, ranked by exact-name match then (when imports.parquet is
// present) by how widely the symbol is imported. The join against imports is
// a bespoke enough shape (a grouped subquery plus a CASE-ranked ORDER BY)
// that it's hand-written here with positional placeholders rather than built
// through the squirrel query builder used for the simpler filter-list
// queries elsewhere in this package.
func (e *Engine) RunSearch(query, kind string, exported bool, limit, offset int) ([]SymbolMatch, error) {
	var conditions []string
	args := []any{"%" + query + "%"}
	conditions = append(conditions, "s.name ILIKE ?")

	if kind != "" {
		conditions = append(conditions, "s.kind = ?")
		args = append(args, kind)
	}
	if exported {
		conditions = append(conditions, "s.is_exported = true")
	}
	where := strings.Join(conditions, " AND ")

	var sqlStr string
	if e.HasImports() {
		sqlStr = fmt.Sprintf(`SELECT s.name, s.kind, s.file_path,
			CAST(s.start_line AS INTEGER), CAST(s.end_line AS INTEGER), s.is_exported,
			COALESCE(ic.usage_count, 0), COALESCE(ic.internal_usage, 0), COALESCE(ic.external_usage, 0)
			FROM symbols s
			LEFT JOIN (
				SELECT imported_name,
				  COUNT(DISTINCT source_file) AS usage_count,
				  COUNT(DISTINCT CASE WHEN NOT is_external THEN source_file END) AS internal_usage,
				  COUNT(DISTINCT CASE WHEN is_external THEN source_file END) AS external_usage
				FROM imports GROUP BY imported_name
			) ic ON s.name = ic.imported_name AND s.is_exported = true
			WHERE %s
			ORDER BY
			  CASE WHEN lower(s.name) = lower(?) THEN 0 ELSE 1 END,
			  COALESCE(ic.internal_usage, 0) DESC,
			  COALESCE(ic.usage_count, 0) DESC,
			  length(s.name), s.name
			LIMIT ? OFFSET ?`, where)
	} else {
		sqlStr = fmt.Sprintf(`SELECT s.name, s.kind, s.file_path,
			CAST(s.start_line AS INTEGER), CAST(s.end_line AS INTEGER), s.is_exported,
			0, 0, 0
			FROM symbols s
			WHERE %s
			ORDER BY
			  CASE WHEN lower(s.name) = lower(?) THEN 0 ELSE 1 END,
			  length(s.name), s.name
			LIMIT ? OFFSET ?`, where)
	}
	args = append(args, query, limit, offset)

	rows, err := e.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	results := []SymbolMatch{}
	for rows.Next() {
		var m SymbolMatch
		if err := rows.Scan(&m.Name, &m.Kind, &m.FilePath, &m.StartLine, &m.EndLine,
			&m.IsExported, &m.UsageCount, &m.InternalUsage, &m.ExternalUsage); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

// FormatSearch runs a search and renders it in format.
func (e *Engine) FormatSearch(query, kind string, exported bool, limit, offset int, format Format) (string, error) {
	rows, err := e.RunSearch(query, kind, exported, limit, offset)
	if err != nil {
		return "", err
	}
	return FormatRows(rows, searchHeaders, format)
}
