package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"docreview/internal/guideline"
)

// NewGuidelinesCmd creates the guidelines command.
func NewGuidelinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guidelines <file>",
		Short: "List the guidelines in a spreadsheet",
		Long: `Guidelines prints every guideline row the review command would load,
in file order, with its normalized Exist value.

Examples:
  docreview guidelines guidelines.xlsx
  docreview guidelines guidelines.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runGuidelinesCmd,
	}

	cmd.Flags().Bool("no-color", false, "Disable colored output")

	return cmd
}

// runGuidelinesCmd executes the guidelines command.
func runGuidelinesCmd(cmd *cobra.Command, args []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return err
	}

	items, err := guideline.Load(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load guidelines: %v\n", err)
		return exitWith(ExitError)
	}
	if len(items) == 0 {
		fmt.Fprintln(stdout, "No guidelines found.")
		return nil
	}
	fmt.Fprintln(stdout, renderGuidelineTable(items, colorDisabled(noColor, stdout)))
	return nil
}

// renderGuidelineTable lays out guidelines as a bordered table.
func renderGuidelineTable(items []guideline.Guideline, noColor bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Guideline", "Exist", "Expectation")
	for i, item := range items {
		t.Row(strconv.Itoa(i+1), item.Title, item.Exist, item.Expectation.String())
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
