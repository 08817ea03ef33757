package review

import (
	"errors"

	"docreview/internal/agent"
)

// ErrorAnalysis is the analysis text recorded for a failed guideline.
const ErrorAnalysis = "Error occurred"

// Result is the presented verdict for one guideline.
type Result struct {
	Guideline string  `json:"guideline"`
	Analysis  string  `json:"analysis"`
	Verdict   Verdict `json:"verdict"`
	Color     Color   `json:"color"`
}

// FailureKind distinguishes why a guideline evaluation failed.
type FailureKind string

const (
	FailureNone FailureKind = ""
	// FailureTransport means the endpoint could not be reached.
	FailureTransport FailureKind = "transport"
	// FailureService means the endpoint answered with an error status.
	FailureService FailureKind = "service"
	// FailureResponse means the response could not be interpreted.
	FailureResponse FailureKind = "response"
)

// Outcome is the typed result of evaluating one guideline.
type Outcome struct {
	Result    Result
	Err       error
	Failure   FailureKind
	TokensIn  int
	TokensOut int
}

// Failed reports whether the evaluation fell back to the error result.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

func succeeded(title, analysis string, verdict Verdict) Outcome {
	return Outcome{Result: Result{
		Guideline: title,
		Analysis:  analysis,
		Verdict:   verdict,
		Color:     ColorFor(verdict),
	}}
}

func failed(title string, err error) Outcome {
	return Outcome{
		Result: Result{
			Guideline: title,
			Analysis:  ErrorAnalysis,
			Verdict:   VerdictNo,
			Color:     ColorRed,
		},
		Err:     err,
		Failure: classifyFailure(err),
	}
}

// classifyFailure maps provider errors onto failure kinds.
func classifyFailure(err error) FailureKind {
	var (
		statusErr *agent.StatusError
		decodeErr *agent.DecodeError
	)
	switch {
	case errors.As(err, &statusErr):
		return FailureService
	case errors.As(err, &decodeErr), errors.Is(err, agent.ErrEmptyResponse):
		return FailureResponse
	default:
		return FailureTransport
	}
}

// Results extracts the presented results from outcomes, keeping order.
func Results(outcomes []Outcome) []Result {
	results := make([]Result, len(outcomes))
	for i, outcome := range outcomes {
		results[i] = outcome.Result
	}
	return results
}
