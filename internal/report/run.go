package report

import (
	"time"

	"docreview/internal/review"
)

// Run is a persisted review run.
type Run struct {
	RunID      string          `json:"run_id"`
	Document   string          `json:"document"`
	Guidelines string          `json:"guidelines"`
	Provider   string          `json:"provider"`
	Model      string          `json:"model"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Results    []review.Result `json:"results"`
	Failures   []Failure       `json:"failures,omitempty"`
	Summary    Summary         `json:"summary"`
}

// Failure records why a guideline fell back to the error result.
type Failure struct {
	Index     int                `json:"index"`
	Guideline string             `json:"guideline"`
	Kind      review.FailureKind `json:"kind"`
	Error     string             `json:"error"`
}

// Summary aggregates verdict counts for a run.
type Summary struct {
	Total         int     `json:"total"`
	Passed        int     `json:"passed"`
	Failed        int     `json:"failed"`
	NotApplicable int     `json:"not_applicable"`
	Unknown       int     `json:"unknown"`
	Errors        int     `json:"errors"`
	PassRate      float64 `json:"pass_rate"`
	TokensTotal   int     `json:"tokens_total"`
}

// Summarize aggregates outcomes into a summary.
// PassRate only counts guidelines with a Yes or No verdict.
func Summarize(outcomes []review.Outcome) Summary {
	summary := Summary{Total: len(outcomes)}
	for _, outcome := range outcomes {
		switch outcome.Result.Verdict {
		case review.VerdictYes:
			summary.Passed++
		case review.VerdictNo:
			summary.Failed++
		case review.VerdictNotApplicable:
			summary.NotApplicable++
		default:
			summary.Unknown++
		}
		if outcome.Failed() {
			summary.Errors++
		}
		summary.TokensTotal += outcome.TokensIn + outcome.TokensOut
	}
	if decided := summary.Passed + summary.Failed; decided > 0 {
		summary.PassRate = float64(summary.Passed) / float64(decided)
	}
	return summary
}

// Failures lists the failed outcomes with their error details.
func Failures(outcomes []review.Outcome) []Failure {
	var failures []Failure
	for i, outcome := range outcomes {
		if !outcome.Failed() {
			continue
		}
		failures = append(failures, Failure{
			Index:     i,
			Guideline: outcome.Result.Guideline,
			Kind:      outcome.Failure,
			Error:     outcome.Err.Error(),
		})
	}
	return failures
}
