// Package testutil provides shared test helpers for drizzle.
//
// # Contexts
//
// The timeout.go file provides deadline-aware contexts so tests that wait on
// timers or goroutines fail cleanly instead of hanging:
//
//   - ContextWithTestDeadline(t, fallback) - respects `go test -timeout`
//   - ShortOperationContext(t) - a few seconds, for event source tests
//
// # Event scripts
//
// The source.go file provides scripted event streams for scheduler tests:
//
//   - NewSliceSource(events...) - replays a fixed list, then ends the stream
//   - CollectEvents(t, ctx, next, n) - reads n events from any Next-style function
//
// # Usage
//
//	func TestSomething(t *testing.T) {
//	    src := testutil.NewSliceSource(event.Init(), event.Render())
//	    // ... run the scheduler against src ...
//	    assert.Equal(t, 2, src.Served())
//	}
package testutil
