package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"docreview/internal/report"
	"docreview/internal/review"
	"docreview/internal/runner"
)

const eventBuffer = 256

var _ runner.RunObserver = (*Controller)(nil)

// Controller feeds review events into a running Bubble Tea program.
// Events are dropped rather than blocking the evaluator when the buffer is full
// or the program has already been closed.
type Controller struct {
	mu     sync.Mutex
	closed bool
	events chan Event
	done   chan struct{}
}

// Start runs the live table on the alternate screen of stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	c := &Controller{
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}
	program := tea.NewProgram(NewModel(c.events, opts), tea.WithOutput(stdout), tea.WithAltScreen())
	go func() {
		defer close(c.done)
		_, _ = program.Run()
	}()
	return c
}

func (c *Controller) OnRunStart(runID string, document string, total int) {
	c.send(Event{Kind: EventRunStart, RunID: runID, Document: document, Total: total})
}

func (c *Controller) OnGuidelineEvent(event review.Event) {
	c.send(Event{Kind: EventGuideline, Guideline: event})
}

// OnRunEnd delivers the summary and closes the event stream, which ends the program.
func (c *Controller) OnRunEnd(run report.Run) {
	c.send(Event{Kind: EventRunEnd, Summary: run.Summary})
	c.Close()
}

// Close ends the event stream. It is safe to call more than once.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.events)
	}
}

// Wait blocks until the program has exited.
func (c *Controller) Wait() {
	if c != nil {
		<-c.done
	}
}

func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.events <- event:
	default:
	}
}
