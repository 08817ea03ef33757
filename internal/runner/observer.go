package runner

import (
	"docreview/internal/report"
	"docreview/internal/review"
)

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run.
	OnRunStart(runID string, document string, total int)
	// OnGuidelineEvent delivers a guideline status update.
	OnGuidelineEvent(event review.Event)
	// OnRunEnd signals run completion.
	OnRunEnd(run report.Run)
}

// MultiObserver fans run events out to several observers.
type MultiObserver []RunObserver

func (m MultiObserver) OnRunStart(runID string, document string, total int) {
	for _, observer := range m {
		if observer != nil {
			observer.OnRunStart(runID, document, total)
		}
	}
}

func (m MultiObserver) OnGuidelineEvent(event review.Event) {
	for _, observer := range m {
		if observer != nil {
			observer.OnGuidelineEvent(event)
		}
	}
}

func (m MultiObserver) OnRunEnd(run report.Run) {
	for _, observer := range m {
		if observer != nil {
			observer.OnRunEnd(run)
		}
	}
}

// eventBridge adapts a RunObserver to the evaluator's Observer.
type eventBridge struct {
	observer RunObserver
}

func (b eventBridge) OnEvent(event review.Event) {
	b.observer.OnGuidelineEvent(event)
}
