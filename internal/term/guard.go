// Package term owns the terminal mode for the lifetime of a session.
//
// A Guard is acquired once before the scheduler starts and released with
// defer, so the terminal is restored on a normal return, an error return, or
// a panic unwinding through the caller.
package term

import (
	"errors"
	"fmt"

	"github.com/thruflo/drizzle/internal/logging"
)

var (
	// ErrNotTerminal means the input is not a TTY.
	ErrNotTerminal = errors.New("not a terminal")
	// ErrAlreadyCaptured means the mode is already held by someone else.
	ErrAlreadyCaptured = errors.New("terminal already captured")
)

// Mode is an application-controlled terminal mode.
type Mode interface {
	// Enter switches to raw input and the alternate screen. On failure it
	// leaves the terminal as it found it.
	Enter() error
	// Active reports whether the mode is currently in effect.
	Active() bool
	// Restore puts the original input mode back.
	Restore() error
	// Leave exits the alternate screen, disables mouse capture and shows
	// the cursor.
	Leave() error
}

// AcquisitionError reports that the terminal could not be taken over.
type AcquisitionError struct {
	Err error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("cannot acquire terminal: %v", e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

// IsAcquisitionError checks if an error is an AcquisitionError.
func IsAcquisitionError(err error) bool {
	var ae *AcquisitionError
	return errors.As(err, &ae)
}

// Guard holds a Mode and restores it exactly once.
type Guard struct {
	mode Mode
	log  *logging.Logger
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithLogger sets the logger used to report swallowed restore failures.
func WithLogger(l *logging.Logger) GuardOption {
	return func(g *Guard) {
		g.log = l
	}
}

// Acquire enters mode and returns a Guard that will restore it.
func Acquire(mode Mode, opts ...GuardOption) (*Guard, error) {
	g := &Guard{mode: mode, log: logging.Default()}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With("component", "guard")

	if err := mode.Enter(); err != nil {
		g.Release()
		return nil, &AcquisitionError{Err: err}
	}
	g.log.Debug("terminal acquired")
	return g, nil
}

// Release restores the terminal if the mode is still active. It never
// returns or panics with an error: failures are logged and dropped so they
// cannot mask whatever caused the session to end. Safe on a nil Guard and
// safe to call more than once.
func (g *Guard) Release() {
	if g == nil || g.mode == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			g.log.Warn("terminal restore panicked", "panic", r)
		}
	}()

	if !g.mode.Active() {
		return
	}
	if err := g.mode.Restore(); err != nil {
		g.log.Warn("failed to restore input mode", "error", err)
	}
	if err := g.mode.Leave(); err != nil {
		g.log.Warn("failed to leave alternate screen", "error", err)
	}
	g.log.Debug("terminal released")
}
