package agent

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse indicates a response without any completion choices.
var ErrEmptyResponse = errors.New("completion response has no choices")

// TransportError wraps a failure to reach the completion endpoint.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response from the completion endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("completion endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("completion endpoint returned status %d: %s", e.StatusCode, e.Body)
}

// DecodeError reports a response body that could not be parsed.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode completion response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
