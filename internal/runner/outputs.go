package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docreview/internal/report"
)

// HistoryRecorder persists completed runs.
type HistoryRecorder interface {
	Record(ctx context.Context, run report.Run) error
}

// Outputs lists where a run is written. Empty paths are skipped, except
// ResultsFile which is required.
type Outputs struct {
	ResultsFile  string
	JSONFile     string
	MarkdownFile string
	History      HistoryRecorder
}

// OutputError names the output that could not be written.
type OutputError struct {
	// Output is "results file", "JSON report", "Markdown report" or "history".
	Output string
	Path   string
	Err    error
}

func (e *OutputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("write %s: %v", e.Output, e.Err)
	}
	return fmt.Sprintf("write %s %s: %v", e.Output, e.Path, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// Write overwrites the results file and writes the optional reports.
// Failures are returned as *OutputError; outputs before the failing one are kept.
func (o Outputs) Write(ctx context.Context, run report.Run) error {
	if strings.TrimSpace(o.ResultsFile) == "" {
		return &OutputError{Output: "results file", Err: errors.New("no path configured")}
	}
	if err := report.WriteText(o.ResultsFile, run.Results); err != nil {
		return &OutputError{Output: "results file", Path: o.ResultsFile, Err: err}
	}
	if o.JSONFile != "" {
		if err := report.WriteJSON(o.JSONFile, run); err != nil {
			return &OutputError{Output: "JSON report", Path: o.JSONFile, Err: err}
		}
	}
	if o.MarkdownFile != "" {
		if err := report.WriteMarkdown(o.MarkdownFile, run); err != nil {
			return &OutputError{Output: "Markdown report", Path: o.MarkdownFile, Err: err}
		}
	}
	if o.History != nil {
		if err := o.History.Record(ctx, run); err != nil {
			return &OutputError{Output: "history", Err: err}
		}
	}
	return nil
}
