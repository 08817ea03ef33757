package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"docreview/internal/config"
	"docreview/internal/guideline"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and, optionally, a guideline file",
		Long: `Validate loads the configuration the review command would use and reports
every problem it finds.

Examples:
  # Validate the config found from the current directory
  docreview validate

  # Validate a config and a guideline spreadsheet together
  docreview validate --config .docreview/config.yml --guidelines guidelines.xlsx`,
		Args: cobra.NoArgs,
		RunE: runValidateCmd,
	}

	cmd.Flags().StringP("config", "c", "", "Config file (default: search for .docreview/config.yml)")
	cmd.Flags().StringP("guidelines", "g", "", "Guideline spreadsheet to check")

	return cmd
}

// runValidateCmd executes the validate command.
func runValidateCmd(cmd *cobra.Command, _ []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	configFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	guidelinesPath, err := cmd.Flags().GetString("guidelines")
	if err != nil {
		return err
	}

	resolved, err := resolveConfigPath(configFlag)
	if err != nil {
		fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
		return exitWith(ExitError)
	}
	if _, err := config.Load(resolved); err != nil {
		fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
		return exitWith(ExitError)
	}

	if guidelinesPath != "" {
		items, err := guideline.Load(guidelinesPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return exitWith(ExitError)
		}
		fmt.Fprintf(stdout, "Guidelines OK (%d)\n", len(items))
	}

	fmt.Fprintln(stdout, "Config OK")
	return nil
}
