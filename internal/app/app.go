// Package app implements the scheduler that drives drizzle: it pulls events,
// advances domain state on ticks, redraws on frames when something changed,
// folds frame counts into telemetry once a second and decides when to stop.
//
// Everything runs on the goroutine that calls Run. The only suspension point
// is Source.Next; handlers and draws run to completion before the next event
// is read, and the quit decision is checked between events.
package app

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/thruflo/drizzle/internal/event"
	"github.com/thruflo/drizzle/internal/logging"
)

// State is the domain state advanced by the scheduler. Implementations must
// not block; panics are not recovered.
type State interface {
	// Advance runs one tick and reports whether visible state changed.
	Advance() ShouldRender
	// AdvanceTimer runs once per telemetry window.
	AdvanceTimer()
	// OnResize receives the post-resize terminal size.
	OnResize(columns, rows uint16)
}

// Drawer paints a full frame of state. The drawer holds the static display
// configuration; info is the telemetry for the current window.
type Drawer[S State] interface {
	Draw(state S, info RuntimeInfo) error
}

// Source yields events in emission order. The bool is false once the stream
// has ended.
type Source interface {
	Next(ctx context.Context) (event.Event, bool)
}

// Rates are the configured cadences, fixed for the life of an App.
type Rates struct {
	FPS float64 // Draw cadence
	TPS float64 // State-update cadence
}

// Validate checks that both rates are positive and finite.
func (r Rates) Validate() error {
	if !(r.FPS > 0) || math.IsInf(r.FPS, 0) {
		return fmt.Errorf("fps must be positive, got %v", r.FPS)
	}
	if !(r.TPS > 0) || math.IsInf(r.TPS, 0) {
		return fmt.Errorf("tps must be positive, got %v", r.TPS)
	}
	return nil
}

// Collapsed reports whether a single cadence drives both ticks and frames.
func (r Rates) Collapsed() bool {
	return r.FPS == r.TPS
}

// DrawError wraps a failure of the draw step. It ends the session.
type DrawError struct {
	Err error
}

func (e *DrawError) Error() string {
	return fmt.Sprintf("draw failed: %v", e.Err)
}

func (e *DrawError) Unwrap() error {
	return e.Err
}

// IsDrawError checks if an error is a DrawError.
func IsDrawError(err error) bool {
	var de *DrawError
	return errors.As(err, &de)
}

// Option configures an App.
type Option func(*options)

type options struct {
	logger *logging.Logger
}

// WithLogger sets the logger used for scheduler diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// App is the render/update scheduler.
type App[S State] struct {
	source Source
	state  S
	drawer Drawer[S]
	rates  Rates
	log    *logging.Logger

	shouldQuit     bool
	quitErr        error
	shouldRender   ShouldRender
	frameInSecond  int
	runtimeInfo    RuntimeInfo
	eventsHandled  uint64
	framesRendered uint64
}

// New creates an App. The first cycle always draws.
func New[S State](src Source, state S, drawer Drawer[S], rates Rates, opts ...Option) *App[S] {
	o := options{logger: logging.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	return &App[S]{
		source:       src,
		state:        state,
		drawer:       drawer,
		rates:        rates,
		log:          o.logger.With("component", "scheduler"),
		shouldRender: Render,
	}
}

// Run processes events until a quit condition is met or the stream ends.
// It returns the SourceError carried by an Error event, a DrawError if a
// draw fails, or nil for a clean exit.
func (a *App[S]) Run(ctx context.Context) error {
	for {
		ev, ok := a.source.Next(ctx)
		if !ok {
			a.log.Debug("event stream ended", "events", a.eventsHandled)
			return nil
		}

		if err := a.Handle(ev); err != nil {
			a.log.Error("stopping on error", "error", err)
			return err
		}

		if a.shouldQuit {
			a.log.Info("stopping", "events", a.eventsHandled, "frames", a.framesRendered)
			return a.quitErr
		}
	}
}

// Handle applies one event. It only returns an error when drawing fails.
func (a *App[S]) Handle(ev event.Event) error {
	a.eventsHandled++

	switch ev.Kind {
	case event.KindInit:
	case event.KindQuit:
		a.quit(ev)
	case event.KindError:
		a.quit(ev)
		if a.quitErr == nil {
			a.quitErr = ev.Err
			if a.quitErr == nil {
				a.quitErr = &event.SourceError{Err: errors.New("unspecified failure")}
			}
		}
	case event.KindKey:
		a.onKey(ev)
	case event.KindResize:
		a.onResize(ev.Columns, ev.Rows)
	case event.KindTick:
		a.onTick()
	case event.KindRender:
		return a.onRender()
	case event.KindTimer:
		a.onTimer()
	default:
		a.log.Warn("ignoring unknown event", "event", ev)
	}
	return nil
}

func (a *App[S]) quit(ev event.Event) {
	if !a.shouldQuit {
		a.log.Debug("quit requested", "event", ev)
	}
	a.shouldQuit = true
}

// onKey handles keyboard input. Only the quit keys are bound here.
func (a *App[S]) onKey(ev event.Event) {
	if ev.Key.IsQuit() {
		a.quit(ev)
	}
}

func (a *App[S]) onResize(columns, rows uint16) {
	a.state.OnResize(columns, rows)
	a.shouldRender = Render
}

func (a *App[S]) onTick() {
	a.shouldRender = a.shouldRender.Or(a.state.Advance())
	if a.frameInSecond < math.MaxInt {
		a.frameInSecond++
	}
}

func (a *App[S]) onRender() error {
	if a.rates.Collapsed() {
		a.onTick()
	}

	if !a.shouldRender.IsRender() {
		return nil
	}
	a.shouldRender = Skip

	if err := a.drawer.Draw(a.state, a.runtimeInfo); err != nil {
		return &DrawError{Err: err}
	}
	a.framesRendered++
	return nil
}

func (a *App[S]) onTimer() {
	a.state.AdvanceTimer()
	a.runtimeInfo = FoldFrames(a.frameInSecond)
	a.frameInSecond = 0
	a.shouldRender = Render
	a.log.Debug("telemetry", "fps", a.runtimeInfo.FPS)
}

// ShouldQuit reports whether a quit condition has been seen.
func (a *App[S]) ShouldQuit() bool {
	return a.shouldQuit
}

// ShouldRender returns the pending render decision.
func (a *App[S]) ShouldRender() ShouldRender {
	return a.shouldRender
}

// FrameCount returns the cycles counted since the last timer event.
func (a *App[S]) FrameCount() int {
	return a.frameInSecond
}

// RuntimeInfo returns the current telemetry.
func (a *App[S]) RuntimeInfo() RuntimeInfo {
	return a.runtimeInfo
}

// FramesRendered returns the number of draws performed so far.
func (a *App[S]) FramesRendered() uint64 {
	return a.framesRendered
}
