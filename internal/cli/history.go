package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"docreview/internal/history"
	"docreview/internal/report"
	"docreview/internal/ui/panel"
)

// defaultHistoryLimit caps the history listing.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or show recorded review runs",
		Long: `History reads the review runs recorded in the history database.

Examples:
  # List the most recent runs
  docreview history

  # Show every answer of one run
  docreview history --run 20260101T120000Z-1a2b3c4d5e6f

  # Print one run as a Markdown report
  docreview history --run 20260101T120000Z-1a2b3c4d5e6f --markdown`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("config", "c", "", "Config file (default: search for .docreview/config.yml)")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Maximum number of runs to list (0 lists all)")
	cmd.Flags().String("run", "", "Show the run with this ID")
	cmd.Flags().Bool("markdown", false, "Print the selected run as Markdown")
	cmd.Flags().Bool("no-color", false, "Disable colored output")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	flags := cmd.Flags()
	configFlag, err := flags.GetString("config")
	if err != nil {
		return err
	}
	limit, err := flags.GetInt("limit")
	if err != nil {
		return err
	}
	runID, err := flags.GetString("run")
	if err != nil {
		return err
	}
	asMarkdown, err := flags.GetBool("markdown")
	if err != nil {
		return err
	}
	noColor, err := flags.GetBool("no-color")
	if err != nil {
		return err
	}
	noColor = colorDisabled(noColor, stdout)

	cfg, _, err := loadConfig(configFlag)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return exitWith(ExitError)
	}
	if !cfg.HistoryEnabled() {
		fmt.Fprintln(stderr, "History is disabled in the config.")
		return exitWith(ExitError)
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to open history: %v\n", err)
		return exitWith(ExitError)
	}
	defer store.Close()

	ctx := cmd.Context()
	if runID != "" {
		run, err := store.Get(ctx, runID)
		if err != nil {
			if errors.Is(err, history.ErrRunNotFound) {
				fmt.Fprintf(stderr, "No run with ID %s.\n", runID)
			} else {
				fmt.Fprintf(stderr, "Failed to read history: %v\n", err)
			}
			return exitWith(ExitError)
		}
		if asMarkdown {
			if err := report.RenderMarkdown(stdout, run); err != nil {
				fmt.Fprintf(stderr, "Failed to render run: %v\n", err)
				return exitWith(ExitError)
			}
			return nil
		}
		printRun(stdout, run, noColor)
		return nil
	}

	entries, err := store.List(ctx, limit)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to read history: %v\n", err)
		return exitWith(ExitError)
	}
	if len(entries) == 0 {
		fmt.Fprintln(stdout, "No runs recorded yet.")
		return nil
	}
	fmt.Fprintln(stdout, renderHistoryTable(entries, noColor))
	return nil
}

// printRun writes a run header followed by its result blocks.
func printRun(w io.Writer, run report.Run, noColor bool) {
	fmt.Fprintf(w, "Run %s (%s)\n", run.RunID, run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Document: %s\nGuidelines: %s\nModel: %s\n\n", run.Document, run.Guidelines, run.Model)
	fmt.Fprint(w, panel.Render(run.Results, noColor))
	fmt.Fprintln(w)
	fmt.Fprintln(w, summaryLine(run.Summary))
}

// summaryLine condenses a run summary to one line.
func summaryLine(summary report.Summary) string {
	return fmt.Sprintf("%d guidelines: %d passed, %d failed, %d n/a, %d unknown, %d errors",
		summary.Total, summary.Passed, summary.Failed, summary.NotApplicable, summary.Unknown, summary.Errors)
}

func renderHistoryTable(entries []history.Entry, noColor bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Run", "Started", "Document", "Model", "Passed", "Failed", "Errors")
	for _, entry := range entries {
		t.Row(
			entry.RunID,
			entry.StartedAt.Local().Format("2006-01-02 15:04"),
			entry.Document,
			entry.Model,
			strconv.Itoa(entry.Summary.Passed),
			strconv.Itoa(entry.Summary.Failed),
			strconv.Itoa(entry.Summary.Errors),
		)
	}
	if !noColor {
		header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
		t.StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return lipgloss.NewStyle()
		})
	}
	return t.String()
}
