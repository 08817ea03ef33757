package report

import (
	"fmt"
	"os"
	"strings"

	"docreview/internal/review"
)

// FormatText renders results as the results.txt body: one block per result,
// separated by a blank line.
func FormatText(results []review.Result) string {
	blocks := make([]string, len(results))
	for i, result := range results {
		blocks[i] = fmt.Sprintf("Guideline: %s\nResult: %s\nAnswer: %s\n", result.Guideline, result.Analysis, result.Verdict)
	}
	return strings.Join(blocks, "\n")
}

// WriteText truncates path and writes the formatted results.
func WriteText(path string, results []review.Result) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(FormatText(results)), 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
