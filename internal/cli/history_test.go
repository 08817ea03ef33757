package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"docreview/internal/report"
)

// TestHistoryListsRecordedRuns verifies review runs show up in history.
func TestHistoryListsRecordedRuns(t *testing.T) {
	f := newReviewFixture(t, fixtureReplies())
	withTerminal(t, false)
	jsonPath := filepath.Join(f.dir, "run.json")

	if code, _, stderr := runCLI(t, f.reviewArgs("--json", jsonPath)...); code != ExitOK {
		t.Fatalf("review failed: %d %q", code, stderr)
	}
	run, err := report.LoadJSON(jsonPath)
	if err != nil {
		t.Fatalf("load json: %v", err)
	}

	code, stdout, stderr := runCLI(t, "history", "--config", f.config, "--no-color")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, stderr)
	}
	if !strings.Contains(stdout, run.RunID) || !strings.Contains(stdout, "test-model") {
		t.Fatalf("expected run in listing, got %q", stdout)
	}

	code, stdout, stderr = runCLI(t, "history", "--config", f.config, "--no-color", "--run", run.RunID)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, stderr)
	}
	if !strings.Contains(stdout, "Guideline: Summary\nResult: Yes, the article ends with a summary.\nAnswer: Yes\n") {
		t.Fatalf("expected stored results, got %q", stdout)
	}
	if !strings.Contains(stdout, "3 guidelines: 2 passed") {
		t.Fatalf("expected summary line, got %q", stdout)
	}

	code, stdout, _ = runCLI(t, "history", "--config", f.config, "--run", run.RunID, "--markdown")
	if code != ExitOK || !strings.Contains(stdout, "# ") {
		t.Fatalf("expected markdown output, got %d %q", code, stdout)
	}
}

// TestHistoryEmpty verifies the empty listing message.
func TestHistoryEmpty(t *testing.T) {
	f := newReviewFixture(t, nil)
	code, stdout, _ := runCLI(t, "history", "--config", f.config)
	if code != ExitOK || !strings.Contains(stdout, "No runs recorded yet.") {
		t.Fatalf("expected empty history, got %d %q", code, stdout)
	}
}

// TestHistoryUnknownRun verifies a missing run ID is an error.
func TestHistoryUnknownRun(t *testing.T) {
	f := newReviewFixture(t, nil)
	code, _, stderr := runCLI(t, "history", "--config", f.config, "--run", "nope")
	if code != ExitError || !strings.Contains(stderr, "No run with ID nope.") {
		t.Fatalf("expected unknown run error, got %d %q", code, stderr)
	}
}

// TestHistoryDisabled verifies history can be switched off.
func TestHistoryDisabled(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	writeFile(t, configPath, fmt.Sprintf("version: 1\nhistory:\n  enabled: false\n  path: %q\n", filepath.Join(dir, "h.db")))

	code, _, stderr := runCLI(t, "history", "--config", configPath)
	if code != ExitError || !strings.Contains(stderr, "History is disabled") {
		t.Fatalf("expected disabled history error, got %d %q", code, stderr)
	}
}
