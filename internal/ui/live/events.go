package live

import (
	"docreview/internal/report"
	"docreview/internal/review"
)

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventGuideline delivers a guideline status update.
	EventGuideline
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind      EventKind
	RunID     string
	Document  string
	Total     int
	Guideline review.Event
	Summary   report.Summary
}
