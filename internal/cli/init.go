package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"docreview/internal/config"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .docreview/config.yml in the current directory",
		Long: `Init asks a few questions and writes a starter configuration.

Examples:
  # Create .docreview/config.yml in the current directory
  docreview init

  # Write the config somewhere else
  docreview init --config ./review/config.yml`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("config", "c", "", "Config file to create (default: ./.docreview/config.yml)")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	fail := func(format string, args ...any) error {
		fmt.Fprintf(stderr, "Init failed: "+format+"\n", args...)
		return exitWith(ExitError)
	}

	configFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	var configPath string
	if value := strings.TrimSpace(configFlag); value != "" {
		abs, err := filepath.Abs(value)
		if err != nil {
			return fail("%v", err)
		}
		configPath = abs
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return fail("%v", err)
		}
		configPath = config.ConfigPath(wd)
	}
	configDir := filepath.Dir(configPath)
	root := config.RootFromConfigPath(configPath)

	if info, err := os.Stat(configDir); err == nil && !info.IsDir() {
		return fail("config directory %q is not a directory", configDir)
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fail("config path %q is a directory", configPath)
		}
		return fail("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fail("stat config file: %v", err)
	}

	ask := newPrompter(cmd.InOrStdin(), stdout)
	confirm, err := ask.YesNo(fmt.Sprintf("Initialize docreview config in %s?", configDir), true)
	if err != nil {
		return fail("%v", err)
	}
	if !confirm {
		fmt.Fprintln(stderr, "Init cancelled.")
		return exitWith(ExitError)
	}

	resultsFile, err := ask.String("Results file", config.DefaultResultsFile)
	if err != nil {
		return fail("%v", err)
	}

	addGitignore := false
	if isGitRepo(root) {
		addGitignore, err = ask.YesNo("Add results file to .gitignore?", true)
		if err != nil {
			return fail("%v", err)
		}
	}

	if err := config.Scaffold(configPath, resultsFile); err != nil {
		return fail("%v", err)
	}
	fmt.Fprintf(stdout, "Wrote %s\n", configPath)

	if addGitignore {
		entry := resultsFile
		if !filepath.IsAbs(entry) {
			entry = filepath.Join(root, entry)
		}
		updated, err := addGitignoreEntry(root, entry)
		if err != nil {
			return fail("update .gitignore: %v", err)
		}
		if updated {
			fmt.Fprintf(stdout, "Updated %s\n", filepath.Join(root, ".gitignore"))
		}
	}
	return nil
}
