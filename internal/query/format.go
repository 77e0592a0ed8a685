package query

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
)

// Format selects how FormatRows renders a result set.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// FormatRows renders rows (a slice of any JSON-serializable struct) in the
// requested format. Table and csv output project only the given headers, in
// that order, and each struct's `json` tags determine which field a header
// name maps to; json output marshals the rows whole and ignores headers.
func FormatRows(rows any, headers []string, format Format) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal rows as json: %w", err)
		}
		return string(data), nil
	case FormatCSV:
		return formatCSV(rows, headers)
	default:
		return formatTable(rows, headers)
	}
}

// toMaps re-marshals rows through JSON so arbitrary struct shapes can be
// projected by header name without per-type switch code.
func toMaps(rows any) ([]map[string]any, error) {
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rows: %w", err)
	}
	var maps []map[string]any
	if err := json.Unmarshal(data, &maps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rows: %w", err)
	}
	return maps, nil
}

func cellDisplay(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func formatCSV(rows any, headers []string) (string, error) {
	maps, err := toMaps(rows)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return "", err
	}
	for _, row := range maps {
		record := make([]string, len(headers))
		for i, h := range headers {
			record[i] = cellDisplay(row[h])
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatTable(rows any, headers []string) (string, error) {
	maps, err := toMaps(rows)
	if err != nil {
		return "", err
	}
	if len(maps) == 0 {
		return "(no results)\n", nil
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	cells := make([][]string, len(maps))
	for r, row := range maps {
		cells[r] = make([]string, len(headers))
		for i, h := range headers {
			c := cellDisplay(row[h])
			cells[r][i] = c
			if len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}

	var out strings.Builder
	writeRow := func(cols []string) {
		padded := make([]string, len(cols))
		for i, c := range cols {
			padded[i] = c + strings.Repeat(" ", widths[i]-len(c))
		}
		out.WriteString(strings.Join(padded, "  "))
		out.WriteByte('\n')
	}

	writeRow(headers)
	sep := make([]string, len(headers))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	out.WriteString(strings.Join(sep, "  "))
	out.WriteByte('\n')

	for _, row := range cells {
		writeRow(row)
	}
	return out.String(), nil
}

// FormatSection wraps content with a labeled banner, used by the overview
// command to stitch several result sets into one table/csv report.
func FormatSection(title, content string) string {
	return fmt.Sprintf("=== %s ===\n%s\n", title, content)
}
