package runner

import (
	"context"
	"fmt"
	"time"

	"docreview/internal/agent"
	"docreview/internal/report"
	"docreview/internal/review"
)

// ReviewParams configures a single review run.
type ReviewParams struct {
	Provider     agent.Provider
	ProviderName string
	Model        string
	Observer     RunObserver
	RunID        func() (string, error)
	Now          func() time.Time
}

// Review evaluates the selected guidelines against the article.
// Inputs are checked before any completion call is made.
func (s *Session) Review(ctx context.Context, params ReviewParams) (report.Run, error) {
	if err := s.CheckInputs(); err != nil {
		return report.Run{}, err
	}
	if params.Provider == nil {
		return report.Run{}, fmt.Errorf("review: provider is required")
	}
	runID, err := ensureRunID(params.RunID)
	if err != nil {
		return report.Run{}, err
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}

	selected := s.Guidelines().Selected()
	observer := params.Observer
	if observer != nil {
		observer.OnRunStart(runID, s.documentPath, len(selected))
	}

	evaluator := &review.Evaluator{Provider: params.Provider, Now: now}
	if observer != nil {
		evaluator.Observer = eventBridge{observer: observer}
	}

	startedAt := now()
	s.logger.Debug("review started", "run_id", runID, "guidelines", len(selected), "model", params.Model)
	outcomes := evaluator.Evaluate(ctx, s.article, selected)
	finishedAt := now()

	for i, outcome := range outcomes {
		if outcome.Failed() {
			s.logger.Warn("guideline evaluation failed",
				"run_id", runID,
				"index", i,
				"guideline", outcome.Result.Guideline,
				"kind", string(outcome.Failure),
				"error", outcome.Err,
			)
		}
	}

	run := report.Run{
		RunID:      runID,
		Document:   s.documentPath,
		Guidelines: s.GuidelinesPath(),
		Provider:   params.ProviderName,
		Model:      params.Model,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Results:    review.Results(outcomes),
		Failures:   report.Failures(outcomes),
		Summary:    report.Summarize(outcomes),
	}
	if observer != nil {
		observer.OnRunEnd(run)
	}
	return run, nil
}

// ReviewAndWrite runs a review and persists its outputs.
func (s *Session) ReviewAndWrite(ctx context.Context, params ReviewParams, outputs Outputs) (report.Run, error) {
	run, err := s.Review(ctx, params)
	if err != nil {
		return report.Run{}, err
	}
	if err := outputs.Write(ctx, run); err != nil {
		return run, err
	}
	return run, nil
}

func ensureRunID(generator func() (string, error)) (string, error) {
	if generator == nil {
		generator = NewRunID
	}
	runID, err := generator()
	if err != nil {
		return "", fmt.Errorf("run id: %w", err)
	}
	return runID, nil
}
