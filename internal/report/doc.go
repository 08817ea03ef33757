// Package report renders review runs as results.txt, JSON and Markdown.
package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// ensureDir creates the parent directory of an output path.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}
