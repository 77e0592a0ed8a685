package driver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullpilot/codesweep/internal/discovery"
	"github.com/nullpilot/codesweep/internal/driver"
	"github.com/nullpilot/codesweep/internal/extract"
	"github.com/nullpilot/codesweep/internal/lang"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunParsesFilesAcrossWorkers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package a\n\nfunc Hello() {}\n")
	writeFile(t, dir, "b.go", "package a\n\nfunc World() {}\n")
	writeFile(t, dir, "c.py", "def greet():\n    pass\n")

	reg, err := extract.Build()
	require.NoError(t, err)
	defer reg.Close()

	files := []discovery.File{
		{AbsPath: filepath.Join(dir, "a.go"), RelPath: "a.go", Lang: lang.Go},
		{AbsPath: filepath.Join(dir, "b.go"), RelPath: "b.go", Lang: lang.Go},
		{AbsPath: filepath.Join(dir, "c.py"), RelPath: "c.py", Lang: lang.Python},
	}

	results := driver.Run(files, reg, driver.Options{Workers: 2})
	require.Len(t, results, 3)

	for _, r := range results {
		assert.Nil(t, r.Error)
		assert.NotEmpty(t, r.Data.Symbols)
		assert.Equal(t, r.File.RelPath, r.Metadata.Path)
	}
}

func TestRunRecordsUnsupportedLanguage(t *testing.T) {
	reg, err := extract.Build()
	require.NoError(t, err)
	defer reg.Close()

	files := []discovery.File{{AbsPath: "/nonexistent", RelPath: "x.unknown", Lang: lang.Language("unknown")}}
	results := driver.Run(files, reg, driver.Options{Workers: 1})
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Error)
	assert.Equal(t, "unsupported_language", results[0].Error.ErrorType)
}

func TestRunRecordsReadError(t *testing.T) {
	reg, err := extract.Build()
	require.NoError(t, err)
	defer reg.Close()

	files := []discovery.File{{AbsPath: "/nonexistent/path.go", RelPath: "path.go", Lang: lang.Go}}
	results := driver.Run(files, reg, driver.Options{Workers: 1})
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Error)
	assert.Equal(t, "read_error", results[0].Error.ErrorType)
}

func TestRunEmptyFileList(t *testing.T) {
	reg, err := extract.Build()
	require.NoError(t, err)
	defer reg.Close()

	results := driver.Run(nil, reg, driver.Options{})
	assert.Empty(t, results)
}
