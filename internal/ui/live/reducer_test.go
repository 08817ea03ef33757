package live

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"docreview/internal/review"
	"docreview/internal/testutil"
)

// TestReduceGuidelineLifecycle verifies core status transitions are recorded.
func TestReduceGuidelineLifecycle(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		start := time.Now()
		state := State{}
		state = Reduce(state, event(0, review.EventQueued, start))
		state = Reduce(state, event(1, review.EventQueued, start))
		state = Reduce(state, event(0, review.EventRunning, start))
		done := event(0, review.EventDone, start.Add(150*time.Millisecond))
		done.Verdict = review.VerdictYes
		state = Reduce(state, done)

		row := state.Rows[0]
		if row.Status != review.EventDone || row.Verdict != review.VerdictYes {
			t.Fatalf("unexpected row %+v", row)
		}
		if got := formatRowDuration(row, time.Now()); got != "200ms" {
			t.Fatalf("unexpected duration %q", got)
		}
		if state.Counts.Yes != 1 || state.Counts.Queued != 1 || state.Counts.Done != 1 {
			t.Fatalf("unexpected counts %+v", state.Counts)
		}
		if state.Total != 2 {
			t.Fatalf("expected total 2, got %d", state.Total)
		}
	})
}

// TestReduceFailure verifies failed guidelines are counted as errors.
func TestReduceFailure(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		failed := event(0, review.EventFailed, time.Now())
		failed.Verdict = review.VerdictNo
		failed.Failure = review.FailureTransport
		failed.Error = "connection refused"
		state := Reduce(State{}, failed)

		row := state.Rows[0]
		if row.Error == "" || state.Counts.Failed != 1 || state.Counts.No != 1 {
			t.Fatalf("unexpected state %+v", state)
		}
		if statusLabel(row) != "error (transport)" {
			t.Fatalf("unexpected label %q", statusLabel(row))
		}
		if !strings.Contains(state.LastEvent, "connection refused") {
			t.Fatalf("expected error in last event, got %q", state.LastEvent)
		}
	})
}

// TestModelConsumesEvents verifies the Bubble Tea model applies queued events.
func TestModelConsumesEvents(t *testing.T) {
	events := make(chan Event, 4)
	model := NewModel(events, Options{NoColor: true, Model: "gpt"})

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	updated, _ = updated.Update(EventMsg{Event: Event{Kind: EventRunStart, RunID: "run-9", Document: "a.docx", Total: 1}})
	running := event(0, review.EventRunning, time.Now())
	running.Guideline = "Sources cited"
	updated, _ = updated.Update(EventMsg{Event: Event{Kind: EventGuideline, Guideline: running}})
	updated, _ = updated.Update(EventMsg{Event: Event{Kind: EventRunEnd}})

	view := updated.View()
	for _, want := range []string{"Review run-9", "a.docx", "gpt", "Sources cited", "running", "Review finished"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q:\n%s", want, view)
		}
	}
	if !updated.(Model).State().Finished {
		t.Fatalf("expected finished state")
	}
}

func TestModelCtrlCInterrupts(t *testing.T) {
	interrupted := false
	model := NewModel(nil, Options{NoColor: true, OnInterrupt: func() { interrupted = true }})
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !interrupted || cmd == nil {
		t.Fatalf("expected interrupt callback and quit command")
	}
}

func TestControllerSendAfterClose(t *testing.T) {
	controller := &Controller{events: make(chan Event, 1), done: make(chan struct{})}
	controller.Close()
	controller.OnGuidelineEvent(review.Event{})
	controller.Close()
}

// event builds a guideline event for testing.
func event(index int, kind review.EventType, when time.Time) review.Event {
	return review.Event{
		Index:     index,
		Total:     2,
		Guideline: "Guideline",
		Type:      kind,
		EmittedAt: when,
	}
}

// runWithTimeout executes a test body with a timeout.
func runWithTimeout(t *testing.T, timeout time.Duration, fn func()) {
	t.Helper()
	ctx := testutil.Context(t, timeout)
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatalf("test timed out")
	}
}
