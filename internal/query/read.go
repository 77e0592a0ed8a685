package query

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RunRead returns filePath's contents, line-numbered, optionally restricted
// to [startLine, endLine] (1-indexed, inclusive). A zero startLine/endLine
// means "from the beginning"/"to the end". It reads straight off disk rather
// than from the parsed dataset, since the dataset stores metadata and
// symbols, not file bodies.
func RunRead(root, filePath string, startLine, endLine int) (string, error) {
	fullPath := filepath.Join(root, filePath)

	if _, err := os.Stat(fullPath); err != nil {
		return "", fmt.Errorf("file not found: %s", fullPath)
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", fullPath, err)
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(content) == 0 {
		lines = nil
	}
	total := len(lines)

	start := 0
	if startLine > 0 {
		start = startLine - 1
	}
	end := total
	if endLine > 0 && endLine < total {
		end = endLine
	}

	if start >= total {
		return "", nil
	}

	var out strings.Builder
	for i, line := range lines[start:end] {
		fmt.Fprintf(&out, "%4d  %s\n", start+i+1, line)
	}
	return out.String(), nil
}
