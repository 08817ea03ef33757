package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"docreview/internal/review"
)

// WriteMarkdown writes a run as a Markdown report to path.
func WriteMarkdown(path string, run Run) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create markdown report: %w", err)
	}
	if err := RenderMarkdown(file, run); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close markdown report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the Markdown report for run to w.
func RenderMarkdown(w io.Writer, run Run) error {
	md := markdown.NewMarkdown(w)

	md.H1("Document Review")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run", "`" + run.RunID + "`"},
			{"Document", run.Document},
			{"Guidelines", run.Guidelines},
			{"Model", run.Model},
			{"Started", run.StartedAt.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")

	writeSummary(md, run.Summary)
	writeResults(md, run.Results)
	writeFailures(md, run.Failures)

	if err := md.Build(); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	return nil
}

func writeSummary(md *markdown.Markdown, summary Summary) {
	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Verdict", "Count"},
		Rows: [][]string{
			{"Yes", strconv.Itoa(summary.Passed)},
			{"No", strconv.Itoa(summary.Failed)},
			{"N/A", strconv.Itoa(summary.NotApplicable)},
			{"Unknown", strconv.Itoa(summary.Unknown)},
			{"**Total**", "**" + strconv.Itoa(summary.Total) + "**"},
		},
	})
	md.PlainText("")

	switch {
	case summary.Errors > 0:
		md.Cautionf("%d guideline(s) could not be evaluated.", summary.Errors)
	case summary.Failed > 0:
		md.Warningf("%d guideline(s) not met. Pass rate %s%%.", summary.Failed, formatPassRate(summary.PassRate))
	case summary.Total == 0:
		md.Note("No guidelines were evaluated.")
	default:
		md.Tip("All evaluated guidelines are met.")
	}
	md.PlainText("")
}

func writeResults(md *markdown.Markdown, results []review.Result) {
	md.H2("Results")
	md.PlainText("")
	if len(results) == 0 {
		md.PlainText("No results.")
		md.PlainText("")
		return
	}
	rows := make([][]string, len(results))
	for i, result := range results {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			escapeCell(result.Guideline),
			verdictBadge(result.Verdict),
			escapeCell(result.Analysis),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Guideline", "Answer", "Analysis"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeFailures(md *markdown.Markdown, failures []Failure) {
	if len(failures) == 0 {
		return
	}
	md.H2("Errors")
	md.PlainText("")
	items := make([]string, len(failures))
	for i, failure := range failures {
		items[i] = fmt.Sprintf("%s (%s): %s", failure.Guideline, failure.Kind, failure.Error)
	}
	md.BulletList(items...)
	md.PlainText("")
}

func verdictBadge(verdict review.Verdict) string {
	switch verdict {
	case review.VerdictYes:
		return "🟢 Yes"
	case review.VerdictNo:
		return "🔴 No"
	default:
		return "⚪ " + string(verdict)
	}
}

// escapeCell keeps multi-line analyses inside one table cell.
func escapeCell(value string) string {
	value = strings.ReplaceAll(value, "|", "\\|")
	return strings.ReplaceAll(strings.TrimSpace(value), "\n", "<br>")
}

// formatPassRate returns a percentage string for report output.
func formatPassRate(rate float64) string {
	return fmt.Sprintf("%.2f", rate*100)
}
