package testutil

import (
	"context"
	"testing"
	"time"
)

const (
	// DefaultShortTimeout bounds tests that wait on timers and goroutines.
	DefaultShortTimeout = 5 * time.Second

	// DefaultTestBuffer is subtracted from the test deadline to leave time
	// for cleanup before the test binary times out.
	DefaultTestBuffer = 2 * time.Second
)

// ContextWithTestDeadline creates a context that respects the test's deadline.
// If the test has no deadline, the fallback duration is used.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    ctx, cancel := testutil.ContextWithTestDeadline(t, 5*time.Second)
//	    defer cancel()
//	    // ... test code using ctx
//	}
func ContextWithTestDeadline(t *testing.T, fallback time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()
	return ContextWithTestDeadlineBuffer(t, fallback, DefaultTestBuffer)
}

// ContextWithTestDeadlineBuffer is ContextWithTestDeadline with a custom buffer.
// The earlier of (test deadline - buffer) and (now + fallback) wins; a
// deadline already in the past falls back to the fallback duration.
func ContextWithTestDeadlineBuffer(t *testing.T, fallback, buffer time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()

	limit := time.Now().Add(fallback)
	if deadline, ok := t.Deadline(); ok {
		adjusted := deadline.Add(-buffer)
		if time.Until(adjusted) > 0 && adjusted.Before(limit) {
			limit = adjusted
		}
	}

	return context.WithDeadline(context.Background(), limit)
}

// ShortOperationContext returns a context suitable for event source and
// scheduler tests that should finish within a few seconds.
func ShortOperationContext(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return ContextWithTestDeadline(t, DefaultShortTimeout)
}
