package live

import (
	"time"

	"docreview/internal/report"
	"docreview/internal/review"
)

// GuidelineRow holds UI state for a single guideline.
type GuidelineRow struct {
	Index      int
	Title      string
	Status     review.EventType
	Verdict    review.Verdict
	Failure    review.FailureKind
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Queued        int
	Running       int
	Done          int
	Yes           int
	No            int
	NotApplicable int
	Unknown       int
	Failed        int
}

// State captures the live UI state for a review run.
type State struct {
	RunID     string
	Document  string
	Model     string
	Total     int
	StartedAt time.Time
	Finished  bool
	Summary   report.Summary
	LastEvent string
	Rows      []GuidelineRow
	Counts    StatusCounts
}
