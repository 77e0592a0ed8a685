package query

import "fmt"

// CallerEntry is one import site referencing a symbol.
type CallerEntry struct {
	SourceFile      string `json:"source_file"`
	ModuleSpecifier string `json:"module_specifier"`
	LocalName       string `json:"local_name"`
	Kind            string `json:"kind"`
	IsTypeOnly      bool   `json:"is_type_only"`
	Line            int64  `json:"line"`
	IsExternal      bool   `json:"is_external"`
}

var callersHeaders = []string{
	"source_file", "module_specifier", "local_name", "kind", "is_type_only", "line", "is_external",
}

// RunCallers finds every import site whose imported name matches symbolName,
// ranked by exact match first and internal callers before external ones.
// The ranking mixes a CASE expression into ORDER BY, which squirrel has no
// native support for binding — so, like RunSearch, this is hand-written SQL.
func (e *Engine) RunCallers(symbolName string, limit int) ([]CallerEntry, error) {
	if !e.HasImports() {
		return nil, ErrNoImports
	}

	sqlStr := `SELECT source_file, module_specifier, local_name, kind, is_type_only,
		CAST(line AS INTEGER), is_external
		FROM imports
		WHERE imported_name ILIKE ?
		ORDER BY
		  CASE WHEN lower(imported_name) = lower(?) THEN 0 ELSE 1 END,
		  is_external ASC,
		  source_file, line
		LIMIT ?`

	rows, err := e.db.Query(sqlStr, "%"+symbolName+"%", symbolName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute callers query: %w", err)
	}
	defer rows.Close()

	results := []CallerEntry{}
	for rows.Next() {
		var c CallerEntry
		if err := rows.Scan(&c.SourceFile, &c.ModuleSpecifier, &c.LocalName, &c.Kind,
			&c.IsTypeOnly, &c.Line, &c.IsExternal); err != nil {
			return nil, fmt.Errorf("failed to scan callers row: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// FormatCallers runs RunCallers and renders it in format.
func (e *Engine) FormatCallers(symbolName string, limit int, format Format) (string, error) {
	rows, err := e.RunCallers(symbolName, limit)
	if err != nil {
		return "", err
	}
	return FormatRows(rows, callersHeaders, format)
}
