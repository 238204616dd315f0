package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/thruflo/drizzle/internal/event"
)

// SliceSource replays a fixed list of events and then reports the end of
// the stream. It never blocks.
type SliceSource struct {
	mu     sync.Mutex
	events []event.Event
	pos    int
}

// NewSliceSource creates a SliceSource over events.
func NewSliceSource(events ...event.Event) *SliceSource {
	return &SliceSource{events: events}
}

// Next returns the next scripted event, or false when the script is spent.
func (s *SliceSource) Next(ctx context.Context) (event.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pos >= len(s.events) {
		return event.Event{}, false
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, true
}

// Served returns how many events have been handed out.
func (s *SliceSource) Served() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// CollectEvents reads n events through next, failing the test if the stream
// ends or ctx expires first.
func CollectEvents(t *testing.T, ctx context.Context, next func(context.Context) (event.Event, bool), n int) []event.Event {
	t.Helper()

	out := make([]event.Event, 0, n)
	for len(out) < n {
		if ctx.Err() != nil {
			t.Fatalf("timed out after %d of %d events: %v", len(out), n, ctx.Err())
		}
		ev, ok := next(ctx)
		if !ok {
			t.Fatalf("stream ended after %d of %d events", len(out), n)
		}
		out = append(out, ev)
	}
	return out
}
