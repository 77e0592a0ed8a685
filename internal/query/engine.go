// Package query provides a DuckDB-backed read interface over the five
// Parquet tables a parse run produces: files, symbols, imports, comments and
// errors. The imports/comments/errors tables are optional — older datasets
// may only have files and symbols — so every operation that depends on one
// checks its presence first and fails with a clear message instead of a
// DuckDB "table not found" error.
package query

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// Engine is an open DuckDB connection with views registered over one
// dataset directory's Parquet tables.
type Engine struct {
	db       *sql.DB
	dataDir  string
	imports  bool
	comments bool
	errors   bool
}

// Open registers views over the Parquet tables in dataDir. files.parquet and
// symbols.parquet must exist; the other three tables are optional.
func Open(dataDir string) (*Engine, error) {
	filesPath := filepath.Join(dataDir, "files.parquet")
	symbolsPath := filepath.Join(dataDir, "symbols.parquet")

	if _, err := os.Stat(filesPath); err != nil {
		return nil, fmt.Errorf("files.parquet not found in %s", dataDir)
	}
	if _, err := os.Stat(symbolsPath); err != nil {
		return nil, fmt.Errorf("symbols.parquet not found in %s", dataDir)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb connection: %w", err)
	}

	e := &Engine{db: db, dataDir: dataDir}

	if err := e.createView("files", filesPath); err != nil {
		db.Close()
		return nil, err
	}
	if err := e.createView("symbols", symbolsPath); err != nil {
		db.Close()
		return nil, err
	}

	importsPath := filepath.Join(dataDir, "imports.parquet")
	if _, err := os.Stat(importsPath); err == nil {
		e.imports = true
		hasIsExternal, err := e.columnExists(importsPath, "is_external")
		if err != nil {
			db.Close()
			return nil, err
		}
		var viewSQL string
		if hasIsExternal {
			viewSQL = fmt.Sprintf("CREATE VIEW imports AS SELECT * FROM read_parquet(%s)", quoteLiteral(importsPath))
		} else {
			// Older datasets predate the is_external column; synthesize it
			// from the module specifier so callers never branch on schema
			// version.
			viewSQL = fmt.Sprintf(
				"CREATE VIEW imports AS SELECT *, (module_specifier NOT LIKE '.%%' AND module_specifier NOT LIKE '#%%') AS is_external FROM read_parquet(%s)",
				quoteLiteral(importsPath),
			)
		}
		if _, err := db.Exec(viewSQL); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create imports view: %w", err)
		}
	}

	commentsPath := filepath.Join(dataDir, "comments.parquet")
	if _, err := os.Stat(commentsPath); err == nil {
		e.comments = true
		if err := e.createView("comments", commentsPath); err != nil {
			db.Close()
			return nil, err
		}
	}

	errorsPath := filepath.Join(dataDir, "errors.parquet")
	if _, err := os.Stat(errorsPath); err == nil {
		e.errors = true
		if err := e.createView("errors", errorsPath); err != nil {
			db.Close()
			return nil, err
		}
	}

	return e, nil
}

func (e *Engine) createView(name, path string) error {
	sqlStr := fmt.Sprintf("CREATE VIEW %s AS SELECT * FROM read_parquet(%s)", name, quoteLiteral(path))
	if _, err := e.db.Exec(sqlStr); err != nil {
		return fmt.Errorf("failed to create %s view: %w", name, err)
	}
	return nil
}

func (e *Engine) columnExists(parquetPath, column string) (bool, error) {
	row := e.db.QueryRow(
		fmt.Sprintf("SELECT COUNT(*) FROM parquet_schema(%s) WHERE name = ?", quoteLiteral(parquetPath)),
		column,
	)
	var count int
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("failed to inspect parquet schema: %w", err)
	}
	return count > 0, nil
}

// quoteLiteral escapes a filesystem path for embedding inside a DuckDB
// read_parquet(...) call. Paths come from the dataset directory, not from
// user-supplied query arguments, so this single-quote doubling is the only
// string interpolation this package does — every value from a CLI flag or
// query argument goes through a parameterized placeholder instead.
func quoteLiteral(path string) string {
	return "'" + strings.ReplaceAll(path, "'", "''") + "'"
}

// HasImports reports whether imports.parquet was present when Open ran.
func (e *Engine) HasImports() bool { return e.imports }

// HasComments reports whether comments.parquet was present when Open ran.
func (e *Engine) HasComments() bool { return e.comments }

// HasErrors reports whether errors.parquet was present when Open ran.
func (e *Engine) HasErrors() bool { return e.errors }

// Close releases the underlying DuckDB connection.
func (e *Engine) Close() error { return e.db.Close() }
