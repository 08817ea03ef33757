package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docreview/internal/config"
)

// TestInitCommandCreatesConfig verifies init writes a loadable config.
func TestInitCommandCreatesConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".docreview", "config.yml")
	withInput(t, "y\nreview.txt\n")

	code, stdout, stderr := runCLI(t, "init", "--config", configPath)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, stderr)
	}
	if !strings.Contains(stdout, "Wrote "+configPath) {
		t.Fatalf("expected write notice, got %q", stdout)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load scaffolded config: %v", err)
	}
	if cfg.Output.ResultsFile != "review.txt" {
		t.Fatalf("expected results file from prompt, got %q", cfg.Output.ResultsFile)
	}
	if _, err := os.Stat(filepath.Join(dir, ".gitignore")); !os.IsNotExist(err) {
		t.Fatalf("expected no .gitignore outside a git repo")
	}
}

// TestInitCommandUpdatesGitignore verifies the results file is ignored in git repos.
func TestInitCommandUpdatesGitignore(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	configPath := filepath.Join(dir, ".docreview", "config.yml")
	withInput(t, "\n\n\n")

	code, stdout, stderr := runCLI(t, "init", "--config", configPath)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, stderr)
	}
	if !strings.Contains(stdout, "Updated") {
		t.Fatalf("expected .gitignore update notice, got %q", stdout)
	}
	if got := readFile(t, filepath.Join(dir, ".gitignore")); got != config.DefaultResultsFile+"\n" {
		t.Fatalf("unexpected .gitignore contents %q", got)
	}
}

// TestInitCommandRefusesOverwrite verifies an existing config is kept.
func TestInitCommandRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	writeFile(t, configPath, "version: 1\n")

	code, stdout, stderr := runCLI(t, "init", "--config", configPath)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if stdout != "" {
		t.Fatalf("expected no stdout output, got %q", stdout)
	}
	if !strings.Contains(stderr, "already exists") {
		t.Fatalf("expected overwrite warning, got %q", stderr)
	}
}

// TestInitCommandCancelled verifies declining the prompt writes nothing.
func TestInitCommandCancelled(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".docreview", "config.yml")
	withInput(t, "n\n")

	code, _, stderr := runCLI(t, "init", "--config", configPath)
	if code != ExitError || !strings.Contains(stderr, "Init cancelled.") {
		t.Fatalf("expected cancellation, got %d %q", code, stderr)
	}
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Fatalf("expected no config file")
	}
}

// TestPrompterYesNo verifies answer parsing and re-prompting.
func TestPrompterYesNo(t *testing.T) {
	var out strings.Builder
	ask := newPrompter(strings.NewReader("maybe\nYES\n"), &out)
	answer, err := ask.YesNo("Continue?", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !answer {
		t.Fatalf("expected yes")
	}
	if !strings.Contains(out.String(), "Please answer yes or no.") {
		t.Fatalf("expected re-prompt, got %q", out.String())
	}
}

// TestPrompterStringRequiresValue verifies EOF without a default is an error.
func TestPrompterStringRequiresValue(t *testing.T) {
	var out strings.Builder
	if _, err := newPrompter(strings.NewReader(""), &out).String("Name", ""); err == nil {
		t.Fatalf("expected error")
	}
	value, err := newPrompter(strings.NewReader("\n"), &out).String("Name", "fallback")
	if err != nil || value != "fallback" {
		t.Fatalf("expected default value, got %q %v", value, err)
	}
}

// TestGitignoreEntry verifies entries stay inside the root.
func TestGitignoreEntry(t *testing.T) {
	root := t.TempDir()
	cases := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: filepath.Join(root, "out", "results.txt"), want: "out/results.txt"},
		{path: "results.txt", want: "results.txt"},
		{path: filepath.Join(filepath.Dir(root), "elsewhere.txt"), wantErr: true},
		{path: " ", wantErr: true},
	}
	for _, tc := range cases {
		got, err := gitignoreEntry(root, tc.path)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tc.path)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("gitignoreEntry(%q) = %q, %v; want %q", tc.path, got, err, tc.want)
		}
	}
}

// TestAddGitignoreEntryIsIdempotent verifies an existing entry is not duplicated.
func TestAddGitignoreEntryIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "/results.txt")
	updated, err := addGitignoreEntry(root, filepath.Join(root, "results.txt"))
	if err != nil || updated {
		t.Fatalf("expected no update, got %v %v", updated, err)
	}
}
