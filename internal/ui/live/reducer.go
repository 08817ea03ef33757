package live

import (
	"fmt"
	"time"

	"docreview/internal/review"
)

// Reduce applies a guideline event to the UI state.
func Reduce(state State, event review.Event) State {
	state = ensureRow(state, event)
	state = applyGuidelineEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow grows the state rows to include the target index.
func ensureRow(state State, event review.Event) State {
	if event.Index < 0 || event.Index < len(state.Rows) {
		return state
	}
	rows := make([]GuidelineRow, event.Index+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = GuidelineRow{Index: i, Status: review.EventQueued}
	}
	state.Rows = rows
	if event.Total > state.Total {
		state.Total = event.Total
	}
	return state
}

func applyGuidelineEvent(state State, event review.Event) State {
	if event.Index < 0 || event.Index >= len(state.Rows) {
		return state
	}
	row := state.Rows[event.Index]
	if row.Title == "" {
		row.Title = event.Guideline
	}
	row.Status = event.Type
	switch event.Type {
	case review.EventRunning:
		if row.StartedAt.IsZero() {
			row.StartedAt = event.EmittedAt
		}
	case review.EventDone, review.EventFailed:
		row.FinishedAt = event.EmittedAt
		if row.StartedAt.IsZero() && event.WallTime > 0 && !event.EmittedAt.IsZero() {
			row.StartedAt = event.EmittedAt.Add(-event.WallTime)
		}
		row.Verdict = event.Verdict
		row.Failure = event.Failure
		row.Error = event.Error
	}
	state.Rows[event.Index] = row
	return state
}

// recount recomputes status counts for the current rows.
func recount(rows []GuidelineRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case review.EventQueued:
			counts.Queued++
		case review.EventRunning:
			counts.Running++
		case review.EventDone, review.EventFailed:
			counts.Done++
			if row.Status == review.EventFailed {
				counts.Failed++
			}
			switch row.Verdict {
			case review.VerdictYes:
				counts.Yes++
			case review.VerdictNo:
				counts.No++
			case review.VerdictNotApplicable:
				counts.NotApplicable++
			default:
				counts.Unknown++
			}
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event review.Event) string {
	switch event.Type {
	case review.EventRunning:
		return fmt.Sprintf("G%d evaluating %q", event.Index+1, event.Guideline)
	case review.EventDone:
		return fmt.Sprintf("G%d answered %s (%s)", event.Index+1, event.Verdict, formatDuration(event.WallTime))
	case review.EventFailed:
		return fmt.Sprintf("G%d %s error: %s", event.Index+1, event.Failure, event.Error)
	}
	return ""
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(100 * time.Millisecond).String()
}
