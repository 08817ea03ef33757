package review

import "time"

// EventType identifies a guideline status update.
type EventType string

const (
	// EventQueued marks a guideline waiting for evaluation.
	EventQueued EventType = "queued"
	// EventRunning marks an in-flight completion call.
	EventRunning EventType = "running"
	// EventDone marks a classified guideline.
	EventDone EventType = "done"
	// EventFailed marks a guideline that fell back to the error result.
	EventFailed EventType = "failed"
)

// Event carries a single status update for a guideline.
type Event struct {
	Index     int
	Total     int
	Guideline string
	Type      EventType
	Verdict   Verdict
	Failure   FailureKind
	Error     string
	WallTime  time.Duration
	EmittedAt time.Time
}

// Observer receives evaluation events.
type Observer interface {
	OnEvent(event Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(event Event)

// OnEvent calls f.
func (f ObserverFunc) OnEvent(event Event) { f(event) }

// Observers fans events out to several observers.
type Observers []Observer

// OnEvent forwards the event to every non-nil observer.
func (o Observers) OnEvent(event Event) {
	for _, observer := range o {
		if observer != nil {
			observer.OnEvent(event)
		}
	}
}
