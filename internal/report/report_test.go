package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"docreview/internal/review"
)

func sampleResults() []review.Result {
	return []review.Result{
		{Guideline: "Summary", Analysis: "Yes, present.", Verdict: review.VerdictYes, Color: review.ColorGreen},
		{Guideline: "Ads", Analysis: "Error occurred", Verdict: review.VerdictNo, Color: review.ColorRed},
	}
}

// TestFormatText verifies the results.txt block layout.
func TestFormatText(t *testing.T) {
	got := FormatText(sampleResults())
	want := "Guideline: Summary\nResult: Yes, present.\nAnswer: Yes\n" +
		"\n" +
		"Guideline: Ads\nResult: Error occurred\nAnswer: No\n"
	if got != want {
		t.Fatalf("unexpected text:\n%q\nwant\n%q", got, want)
	}
	if FormatText(nil) != "" {
		t.Fatalf("expected empty text for no results")
	}
}

// TestWriteTextOverwrites verifies a second run replaces the first file.
func TestWriteTextOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.txt")
	if err := WriteText(path, sampleResults()); err != nil {
		t.Fatalf("first write: %v", err)
	}
	second := []review.Result{{Guideline: "Tone", Analysis: "n/a", Verdict: review.VerdictNotApplicable}}
	if err := WriteText(path, second); err != nil {
		t.Fatalf("second write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "Guideline: Tone\nResult: n/a\nAnswer: N/A\n" {
		t.Fatalf("expected only second run, got %q", data)
	}
}

func TestSummarizeAndFailures(t *testing.T) {
	outcomes := []review.Outcome{
		{Result: review.Result{Guideline: "a", Verdict: review.VerdictYes}, TokensIn: 5, TokensOut: 1},
		{Result: review.Result{Guideline: "b", Verdict: review.VerdictNo}, Err: errors.New("down"), Failure: review.FailureTransport},
		{Result: review.Result{Guideline: "c", Verdict: review.VerdictNotApplicable}},
		{Result: review.Result{Guideline: "d", Verdict: review.VerdictUnknown}},
	}
	summary := Summarize(outcomes)
	want := Summary{Total: 4, Passed: 1, Failed: 1, NotApplicable: 1, Unknown: 1, Errors: 1, PassRate: 0.5, TokensTotal: 6}
	if summary != want {
		t.Fatalf("summary = %+v, want %+v", summary, want)
	}
	failures := Failures(outcomes)
	if len(failures) != 1 || failures[0].Index != 1 || failures[0].Kind != review.FailureTransport || failures[0].Error != "down" {
		t.Fatalf("unexpected failures %+v", failures)
	}
}

func TestWriteAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "run.json")
	run := Run{RunID: "run-1", Model: "m", Results: sampleResults(), StartedAt: time.Unix(0, 0).UTC()}
	if err := WriteJSON(path, run); err != nil {
		t.Fatalf("write json: %v", err)
	}
	loaded, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if loaded.RunID != "run-1" || len(loaded.Results) != 2 || loaded.Results[1].Verdict != review.VerdictNo {
		t.Fatalf("unexpected run %+v", loaded)
	}
}

func TestRenderMarkdown(t *testing.T) {
	outcomes := []review.Outcome{
		{Result: sampleResults()[0]},
		{Result: sampleResults()[1], Err: errors.New("status 500"), Failure: review.FailureService},
	}
	run := Run{
		RunID:    "run-42",
		Document: "article.docx",
		Model:    "gpt",
		Results:  review.Results(outcomes),
		Failures: Failures(outcomes),
		Summary:  Summarize(outcomes),
	}
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, run); err != nil {
		t.Fatalf("render: %v", err)
	}
	output := buf.String()
	for _, want := range []string{"# Document Review", "run-42", "## Summary", "## Results", "Summary", "## Errors", "[!CAUTION]"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected markdown to contain %q:\n%s", want, output)
		}
	}
}
