// Package discovery walks a source tree and resolves it to the set of files
// codesweep should parse, honoring ignore globs and an optional language
// filter.
package discovery

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/nullpilot/codesweep/internal/lang"
)

type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery walks rootDir and classifies files by language, skipping
// anything matched by its ignore globs.
type Discovery struct {
	rootDir        string
	ignorePatterns []compiledPattern
	languages      map[lang.Language]bool // nil means all supported languages
}

// New compiles ignorePatterns and returns a Discovery rooted at rootDir.
// When languages is empty, every supported language is discovered.
func New(rootDir string, ignorePatterns []string, languages []lang.Language) (*Discovery, error) {
	d := &Discovery{rootDir: rootDir}
	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}
	if len(languages) > 0 {
		d.languages = make(map[lang.Language]bool, len(languages))
		for _, l := range languages {
			d.languages[l] = true
		}
	}
	return d, nil
}

// File is one discovered source file paired with the language it resolved
// to by extension.
type File struct {
	AbsPath string
	RelPath string // forward-slash separated, relative to rootDir
	Lang    lang.Language
}

// Walk returns every file under rootDir whose extension maps to a
// requested language and that isn't ignored.
func (d *Discovery) Walk() ([]File, error) {
	var files []File
	err := filepath.Walk(d.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.shouldIgnore(relPath) {
			return nil
		}

		l, ok := lang.FromExtension(filepath.Ext(relPath))
		if !ok {
			return nil
		}
		if d.languages != nil && !d.languages[l] {
			return nil
		}

		files = append(files, File{AbsPath: path, RelPath: relPath, Lang: l})
		return nil
	})
	return files, err
}

func (d *Discovery) shouldIgnore(relPath string) bool {
	if strings.HasPrefix(relPath, ".codesweep/") || relPath == ".codesweep" {
		return true
	}
	if strings.HasPrefix(relPath, ".git/") || relPath == ".git" {
		return true
	}
	if d.matchesAnyPattern(relPath) {
		return true
	}
	return d.matchesAnyPattern(relPath + "/**")
}

func (d *Discovery) matchesAnyPattern(path string) bool {
	for _, cp := range d.ignorePatterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	if !strings.Contains(path, "/") {
		for _, cp := range d.ignorePatterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}
	return false
}

// DefaultIgnorePatterns mirrors the globs a scan should skip out of the box:
// VCS metadata, dependency and build directories common across all nine
// supported language ecosystems.
func DefaultIgnorePatterns() []string {
	return []string{
		"**/.git/**",
		"**/node_modules/**",
		"**/vendor/**",
		"**/target/**",
		"**/dist/**",
		"**/build/**",
		"**/__pycache__/**",
		"**/.venv/**",
		"**/bin/**",
		"**/obj/**",
	}
}
