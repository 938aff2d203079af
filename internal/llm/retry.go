package llm

import (
	"context"
	"fmt"
	"io"
	"time"
)

// maxRetries is the total attempt budget for one model call.
const maxRetries = 3

// Policy controls retry behavior for model calls. Every failure is treated
// as transient and retried until the attempt budget is spent; the final
// attempt's error is returned to the caller.
type Policy struct {
	MaxAttempts int
	// Backoff returns the wait after a failed attempt. Attempts are
	// numbered from 1.
	Backoff func(attempt int) time.Duration
	// Sleep waits between attempts. Injected so tests can count waits
	// without real delays.
	Sleep func(ctx context.Context, d time.Duration) error
	// Logw, when set, receives a line before each backoff wait.
	Logw io.Writer
}

// DefaultPolicy returns the production policy: 3 attempts with exponential
// backoff between them.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: maxRetries,
		Backoff:     ExpBackoff,
		Sleep:       sleepContext,
	}
}

// ExpBackoff doubles the wait with each failed attempt: 2s, 4s, 8s, ...
func ExpBackoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Do runs fn until it succeeds or the attempt budget is spent. No backoff
// follows the final attempt.
func (p Policy) Do(ctx context.Context, fn func(attempt int) error) error {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}
		if attempt == p.MaxAttempts {
			break
		}
		wait := p.Backoff(attempt)
		if p.Logw != nil {
			fmt.Fprintf(p.Logw, "  Retrying in %s...\n", wait)
		}
		if err := p.Sleep(ctx, wait); err != nil {
			return err
		}
	}
	return lastErr
}
