package query

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"
)

// LanguageBreakdown summarizes one language's share of the scanned tree.
type LanguageBreakdown struct {
	Language   string `json:"language"`
	FileCount  int64  `json:"file_count"`
	TotalBytes int64  `json:"total_bytes"`
	TotalLines int64  `json:"total_lines"`
}

// TopSymbol is one of the largest symbols by line span.
type TopSymbol struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	FilePath string `json:"file_path"`
	LineSpan int64  `json:"line_span"`
}

// DirectoryBreakdown is one directory's file count.
type DirectoryBreakdown struct {
	Directory string `json:"directory"`
	FileCount int64  `json:"file_count"`
}

// HubFile is a file ranked by how many other files import it — the files
// most expensive to change.
type HubFile struct {
	FilePath   string `json:"file_path"`
	Dependents int    `json:"dependents"`
}

// ImportKindBreakdown is one import kind's share of the total import edges.
type ImportKindBreakdown struct {
	Kind  string `json:"kind"`
	Count int64  `json:"count"`
}

// Overview bundles the summary panels RunOverview assembles.
type Overview struct {
	Languages   []LanguageBreakdown   `json:"languages"`
	TopSymbols  []TopSymbol           `json:"top_symbols"`
	Directories []DirectoryBreakdown  `json:"directories"`
	HubFiles    []HubFile             `json:"hub_files"`
	ImportKinds []ImportKindBreakdown `json:"import_kinds"`
}

var languageHeaders = []string{"language", "file_count", "total_bytes", "total_lines"}
var topSymbolHeaders = []string{"name", "kind", "file_path", "line_span"}
var directoryHeaders = []string{"directory", "file_count"}
var hubFileHeaders = []string{"file_path", "dependents"}
var importKindHeaders = []string{"kind", "count"}

// RunOverview computes a dataset-wide summary: a per-language breakdown, the
// ten largest symbols by line span, a per-directory file count, the ten
// files most imported by the rest of the tree, and an import-kind
// distribution. The last two panels are empty when imports.parquet wasn't
// part of the dataset.
func (e *Engine) RunOverview() (Overview, error) {
	languages, err := e.languageBreakdown()
	if err != nil {
		return Overview{}, err
	}
	topSymbols, err := e.topSymbols()
	if err != nil {
		return Overview{}, err
	}
	directories, err := e.directoryBreakdown()
	if err != nil {
		return Overview{}, err
	}
	hubFiles, err := e.hubFiles()
	if err != nil {
		return Overview{}, err
	}
	importKinds, err := e.importKindBreakdown()
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		Languages:   languages,
		TopSymbols:  topSymbols,
		Directories: directories,
		HubFiles:    hubFiles,
		ImportKinds: importKinds,
	}, nil
}

func (e *Engine) languageBreakdown() ([]LanguageBreakdown, error) {
	rows, err := e.db.Query(`SELECT language, COUNT(*), SUM(size_bytes), SUM(line_count)
		FROM files GROUP BY language ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query language breakdown: %w", err)
	}
	defer rows.Close()

	results := []LanguageBreakdown{}
	for rows.Next() {
		var l LanguageBreakdown
		if err := rows.Scan(&l.Language, &l.FileCount, &l.TotalBytes, &l.TotalLines); err != nil {
			return nil, fmt.Errorf("failed to scan language breakdown row: %w", err)
		}
		results = append(results, l)
	}
	return results, rows.Err()
}

func (e *Engine) topSymbols() ([]TopSymbol, error) {
	rows, err := e.db.Query(`SELECT name, kind, file_path,
		CAST(end_line AS INTEGER) - CAST(start_line AS INTEGER) AS line_span
		FROM symbols ORDER BY line_span DESC LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("failed to query top symbols: %w", err)
	}
	defer rows.Close()

	results := []TopSymbol{}
	for rows.Next() {
		var s TopSymbol
		if err := rows.Scan(&s.Name, &s.Kind, &s.FilePath, &s.LineSpan); err != nil {
			return nil, fmt.Errorf("failed to scan top symbol row: %w", err)
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

func (e *Engine) directoryBreakdown() ([]DirectoryBreakdown, error) {
	rows, err := e.db.Query(`SELECT CASE WHEN position('/' IN path) > 0
		THEN regexp_replace(path, '/[^/]+$', '')
		ELSE '.' END AS directory, COUNT(*)
		FROM files GROUP BY directory ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query directory breakdown: %w", err)
	}
	defer rows.Close()

	results := []DirectoryBreakdown{}
	for rows.Next() {
		var d DirectoryBreakdown
		if err := rows.Scan(&d.Directory, &d.FileCount); err != nil {
			return nil, fmt.Errorf("failed to scan directory breakdown row: %w", err)
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

// hubFiles ranks files by in-degree in the import graph: an edge runs from
// an importing file to the file its module specifier resolves to, matched
// the same loose LIKE-based way RunDependents matches a single target.
// Resolution and edge collection happen in SQL; ranking runs on an
// in-memory directed graph so the "most depended-upon" computation is a
// real graph query rather than a raw COUNT.
func (e *Engine) hubFiles() ([]HubFile, error) {
	if !e.HasImports() {
		return nil, nil
	}

	rows, err := e.db.Query(`SELECT DISTINCT i.source_file, f.path
		FROM imports i
		JOIN files f ON f.path LIKE '%' || replace(i.module_specifier, './', '') || '%'
		WHERE f.path != i.source_file`)
	if err != nil {
		return nil, fmt.Errorf("failed to query import edges: %w", err)
	}
	defer rows.Close()

	g := graph.New(func(path string) string { return path }, graph.Directed())
	for rows.Next() {
		var from, to string
		if err := rows.Scan(&from, &to); err != nil {
			return nil, fmt.Errorf("failed to scan import edge row: %w", err)
		}
		_ = g.AddVertex(from)
		_ = g.AddVertex(to)
		_ = g.AddEdge(from, to)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	predecessors, err := g.PredecessorMap()
	if err != nil {
		return nil, fmt.Errorf("failed to compute predecessor map: %w", err)
	}

	hubs := make([]HubFile, 0, len(predecessors))
	for path, preds := range predecessors {
		if len(preds) == 0 {
			continue
		}
		hubs = append(hubs, HubFile{FilePath: path, Dependents: len(preds)})
	}
	sort.Slice(hubs, func(i, j int) bool {
		if hubs[i].Dependents != hubs[j].Dependents {
			return hubs[i].Dependents > hubs[j].Dependents
		}
		return hubs[i].FilePath < hubs[j].FilePath
	})
	if len(hubs) > 10 {
		hubs = hubs[:10]
	}
	return hubs, nil
}

func (e *Engine) importKindBreakdown() ([]ImportKindBreakdown, error) {
	if !e.HasImports() {
		return nil, nil
	}

	rows, err := e.db.Query(`SELECT kind, COUNT(*) FROM imports GROUP BY kind ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query import kind breakdown: %w", err)
	}
	defer rows.Close()

	results := []ImportKindBreakdown{}
	for rows.Next() {
		var k ImportKindBreakdown
		if err := rows.Scan(&k.Kind, &k.Count); err != nil {
			return nil, fmt.Errorf("failed to scan import kind row: %w", err)
		}
		results = append(results, k)
	}
	return results, rows.Err()
}

// FormatOverview runs RunOverview and renders its panels in format.
func (e *Engine) FormatOverview(format Format) (string, error) {
	overview, err := e.RunOverview()
	if err != nil {
		return "", err
	}

	if format == FormatJSON {
		data, err := json.MarshalIndent(overview, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal overview: %w", err)
		}
		return string(data), nil
	}

	langSection, err := FormatRows(overview.Languages, languageHeaders, format)
	if err != nil {
		return "", err
	}
	symSection, err := FormatRows(overview.TopSymbols, topSymbolHeaders, format)
	if err != nil {
		return "", err
	}
	dirSection, err := FormatRows(overview.Directories, directoryHeaders, format)
	if err != nil {
		return "", err
	}

	var out string
	out += FormatSection("Languages", langSection)
	out += FormatSection("Top Symbols (by line span)", symSection)
	out += FormatSection("Directories", dirSection)

	if len(overview.HubFiles) > 0 {
		hubSection, err := FormatRows(overview.HubFiles, hubFileHeaders, format)
		if err != nil {
			return "", err
		}
		out += FormatSection("Hub Files (most imported)", hubSection)
	}
	if len(overview.ImportKinds) > 0 {
		kindSection, err := FormatRows(overview.ImportKinds, importKindHeaders, format)
		if err != nil {
			return "", err
		}
		out += FormatSection("Import Kinds", kindSection)
	}
	return out, nil
}
