package query

import (
	"fmt"
)

// RunQuery executes a read-only SQL statement against the registered views
// (files, symbols, and whichever of imports/comments/errors are present) and
// returns its rows as a column-name-keyed map per row, the Go analogue of
// the original tool's direct serde_json::Value row representation. Unlike
// every other operation in this package, the SQL text here is exactly what
// the caller supplies — it's the one command whose entire purpose is to run
// an arbitrary query, so there is no filter value to parameterize against.
func (e *Engine) RunQuery(sqlStr string) ([]map[string]any, []string, error) {
	rows, err := e.db.Query(sqlStr)
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	results := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan query row: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			// DuckDB's driver hands back VARCHAR columns as []byte; convert
			// to string so the JSON round-trip in format.go renders them as
			// text instead of base64.
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}
	return results, columns, rows.Err()
}

// FormatQuery runs sqlStr and renders its result in format.
func (e *Engine) FormatQuery(sqlStr string, format Format) (string, error) {
	rows, columns, err := e.RunQuery(sqlStr)
	if err != nil {
		return "", err
	}
	return FormatRows(rows, columns, format)
}
