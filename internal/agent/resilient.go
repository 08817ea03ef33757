package agent

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"
)

// ResilientProvider retries failed completions and bounds each call with a timeout.
type ResilientProvider struct {
	inner   Provider
	retries int
	timeout time.Duration
}

// NewResilientProvider wraps inner. retries counts extra attempts after the first;
// a zero timeout leaves calls unbounded.
func NewResilientProvider(inner Provider, retries int, callTimeout time.Duration) *ResilientProvider {
	if retries < 0 {
		retries = 0
	}
	return &ResilientProvider{inner: inner, retries: retries, timeout: callTimeout}
}

// Complete runs the inner provider under the retry and timeout policies.
func (p *ResilientProvider) Complete(ctx context.Context, prompt Prompt) (Completion, error) {
	call := func(ctx context.Context) (Completion, error) {
		return p.inner.Complete(ctx, prompt)
	}
	if p.timeout > 0 {
		t := timeout.New[Completion](timeout.Config{DefaultTimeout: p.timeout})
		bounded := call
		call = func(ctx context.Context) (Completion, error) {
			return t.Execute(ctx, p.timeout, bounded)
		}
	}
	if p.retries == 0 {
		return call(ctx)
	}
	r := retry.New[Completion](retry.Config{
		MaxAttempts:   p.retries + 1,
		InitialDelay:  500 * time.Millisecond,
		BackoffPolicy: retry.BackoffExponential,
	})
	return r.Do(ctx, call)
}
