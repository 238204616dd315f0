// Package event defines the closed set of events consumed by the scheduler
// and the Source that produces them from timers and terminal input.
package event

import (
	"errors"
	"fmt"
)

// Kind identifies an event variant.
type Kind int

const (
	KindInit   Kind = iota // First event of every stream
	KindQuit               // Clean shutdown request
	KindError              // Event source failure; Err is set
	KindRender             // Frame cadence
	KindKey                // Keyboard input; Key is set
	KindTick               // State-update cadence
	KindTimer              // One-second telemetry cadence
	KindResize             // Terminal resized; Columns and Rows are set
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindQuit:
		return "quit"
	case KindError:
		return "error"
	case KindRender:
		return "render"
	case KindKey:
		return "key"
	case KindTick:
		return "tick"
	case KindTimer:
		return "timer"
	case KindResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Droppable reports whether events of this kind may be discarded under
// backpressure. Timer is kept: each one closes a telemetry window.
func (k Kind) Droppable() bool {
	return k == KindRender || k == KindTick
}

// Event is a single item of the event stream.
type Event struct {
	Kind    Kind
	Key     Key    // KindKey only
	Columns uint16 // KindResize only
	Rows    uint16 // KindResize only
	Err     error  // KindError only
}

// Init returns the stream-opening event.
func Init() Event { return Event{Kind: KindInit} }

// Quit returns a clean shutdown event.
func Quit() Event { return Event{Kind: KindQuit} }

// Render returns a frame-cadence event.
func Render() Event { return Event{Kind: KindRender} }

// Tick returns a state-update event.
func Tick() Event { return Event{Kind: KindTick} }

// Timer returns a telemetry event.
func Timer() Event { return Event{Kind: KindTimer} }

// KeyPress returns a key event.
func KeyPress(k Key) Event { return Event{Kind: KindKey, Key: k} }

// Resize returns a resize event carrying the post-resize size.
func Resize(columns, rows uint16) Event {
	return Event{Kind: KindResize, Columns: columns, Rows: rows}
}

// Failure returns an error event wrapping err as a SourceError.
func Failure(err error) Event {
	var se *SourceError
	if errors.As(err, &se) {
		return Event{Kind: KindError, Err: se}
	}
	return Event{Kind: KindError, Err: &SourceError{Err: err}}
}

// String renders the event for logs.
func (e Event) String() string {
	switch e.Kind {
	case KindKey:
		return fmt.Sprintf("key(%s)", e.Key)
	case KindResize:
		return fmt.Sprintf("resize(%dx%d)", e.Columns, e.Rows)
	case KindError:
		return fmt.Sprintf("error(%v)", e.Err)
	default:
		return e.Kind.String()
	}
}

// SourceError reports a failure inside the event source. It is delivered to
// the scheduler as a KindError event and ends the session.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("event source: %v", e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
