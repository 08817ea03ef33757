package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docreview/internal/agent"
	"docreview/internal/guideline"
)

// Evaluator runs guidelines against an article one at a time.
type Evaluator struct {
	Provider agent.Provider
	Observer Observer
	// Now is a clock seam for tests.
	Now func() time.Time
}

// Evaluate returns one Outcome per guideline, in order. Guidelines are
// evaluated sequentially; a failure is recorded and the next guideline runs.
func (e *Evaluator) Evaluate(ctx context.Context, article string, guidelines []guideline.Guideline) []Outcome {
	total := len(guidelines)
	for i, g := range guidelines {
		e.emit(Event{Index: i, Total: total, Guideline: g.Title, Type: EventQueued})
	}

	outcomes := make([]Outcome, 0, total)
	for i, g := range guidelines {
		started := e.now()
		e.emit(Event{Index: i, Total: total, Guideline: g.Title, Type: EventRunning})

		outcome := e.evaluateOne(ctx, article, g)
		event := Event{
			Index:     i,
			Total:     total,
			Guideline: g.Title,
			Type:      EventDone,
			Verdict:   outcome.Result.Verdict,
			WallTime:  e.now().Sub(started),
		}
		if outcome.Failed() {
			event.Type = EventFailed
			event.Failure = outcome.Failure
			event.Error = outcome.Err.Error()
		}
		e.emit(event)
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// evaluateOne prompts, calls the provider and classifies a single guideline.
func (e *Evaluator) evaluateOne(ctx context.Context, article string, g guideline.Guideline) (outcome Outcome) {
	defer func() {
		if recovered := recover(); recovered != nil {
			outcome = failed(g.Title, fmt.Errorf("evaluate %q: %v", g.Title, recovered))
		}
	}()
	if e.Provider == nil {
		return failed(g.Title, fmt.Errorf("evaluate %q: no provider configured", g.Title))
	}
	completion, err := e.Provider.Complete(ctx, agent.UserPrompt(BuildPrompt(g, article)))
	if err != nil {
		return failed(g.Title, err)
	}
	analysis := strings.TrimSpace(completion.Text)
	outcome = succeeded(g.Title, analysis, Classify(g.Expectation, analysis))
	outcome.TokensIn = completion.TokensIn
	outcome.TokensOut = completion.TokensOut
	return outcome
}

func (e *Evaluator) emit(event Event) {
	if e.Observer == nil {
		return
	}
	if event.EmittedAt.IsZero() {
		event.EmittedAt = e.now()
	}
	e.Observer.OnEvent(event)
}

func (e *Evaluator) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
