package event

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thruflo/drizzle/internal/logging"
)

// Default source settings.
const (
	DefaultTimerInterval = time.Second
	DefaultQueueCapacity = 64
)

// Input is a producer of terminal events (keys, resizes).
type Input interface {
	// Pump delivers events through emit until ctx ends, the input is
	// exhausted (nil error) or it fails. emit returns false once the
	// source is shutting down, after which Pump should return.
	Pump(ctx context.Context, emit func(Event) bool) error
}

// Options configures a Source.
type Options struct {
	FPS           float64       // Render cadence, events per second
	TPS           float64       // Tick cadence, events per second
	TimerInterval time.Duration // Telemetry cadence (default 1s)
	QueueCapacity int           // Bounded queue size (default 64)
	Input         Input         // Optional terminal input
	Logger        *logging.Logger
}

// Source merges timer cadences and terminal input into one ordered stream.
//
// The queue is bounded. Render and Tick events are dropped when it is full,
// since the next one is never far away; all other events, Timer included,
// block the producer until there is room.
type Source struct {
	opts    Options
	log     *logging.Logger
	ch      chan Event
	done    chan struct{}
	stop    sync.Once
	start   sync.Once
	wg      sync.WaitGroup
	dropped atomic.Uint64
}

// NewSource creates a Source. Rates must be positive; callers validate
// configuration before getting here.
func NewSource(opts Options) *Source {
	if opts.TimerInterval <= 0 {
		opts.TimerInterval = DefaultTimerInterval
	}
	if opts.QueueCapacity < 1 {
		opts.QueueCapacity = DefaultQueueCapacity
	}
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}

	return &Source{
		opts: opts,
		log:  log.With("component", "events"),
		ch:   make(chan Event, opts.QueueCapacity),
		done: make(chan struct{}),
	}
}

// Collapsed reports whether ticks are derived from render events rather
// than produced by their own timer.
func (s *Source) Collapsed() bool {
	return s.opts.FPS == s.opts.TPS
}

// Start queues the Init event and starts the producers. Calling Start more
// than once has no effect.
func (s *Source) Start(ctx context.Context) {
	s.start.Do(func() {
		s.ch <- Init()

		s.wg.Add(1)
		go s.runClock(ctx)

		if s.opts.Input != nil {
			go s.runInput(ctx)
		}
	})
}

// Next blocks until the next event. It returns a Quit event when ctx is
// cancelled and false once the source was stopped and drained.
func (s *Source) Next(ctx context.Context) (Event, bool) {
	select {
	case ev := <-s.ch:
		return ev, true
	default:
	}

	select {
	case ev := <-s.ch:
		return ev, true
	case <-ctx.Done():
		return Quit(), true
	case <-s.done:
		select {
		case ev := <-s.ch:
			return ev, true
		default:
			return Event{}, false
		}
	}
}

// Stop ends the stream and waits for the clock producer to exit. Input
// producers blocked in a read exit on their next emit.
func (s *Source) Stop() {
	s.stop.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

// Dropped returns how many Render and Tick events were discarded under backpressure.
func (s *Source) Dropped() uint64 {
	return s.dropped.Load()
}

func (s *Source) emit(ctx context.Context, ev Event) bool {
	if ev.Kind.Droppable() {
		select {
		case s.ch <- ev:
			return true
		case <-s.done:
			return false
		default:
			n := s.dropped.Add(1)
			s.log.Debug("queue full, dropped event", "event", ev, "dropped", n)
			return true
		}
	}

	select {
	case s.ch <- ev:
		return true
	case <-s.done:
		return false
	case <-ctx.Done():
		return false
	}
}

func (s *Source) runClock(ctx context.Context) {
	defer s.wg.Done()
	defer s.recoverProducer(ctx, "clock")

	render := time.NewTicker(interval(s.opts.FPS))
	defer render.Stop()

	var tickC <-chan time.Time
	if !s.Collapsed() {
		tick := time.NewTicker(interval(s.opts.TPS))
		defer tick.Stop()
		tickC = tick.C
	}

	timer := time.NewTicker(s.opts.TimerInterval)
	defer timer.Stop()

	for {
		var ev Event
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-render.C:
			ev = Render()
		case <-tickC:
			ev = Tick()
		case <-timer.C:
			ev = Timer()
		}
		if !s.emit(ctx, ev) {
			return
		}
	}
}

func (s *Source) runInput(ctx context.Context) {
	defer s.recoverProducer(ctx, "input")

	err := s.opts.Input.Pump(ctx, func(ev Event) bool {
		return s.emit(ctx, ev)
	})
	switch {
	case err != nil && ctx.Err() == nil:
		s.log.Error("input failed", "error", err)
		s.emit(ctx, Failure(err))
	case err == nil:
		s.log.Info("input exhausted")
	}
}

// recoverProducer turns a producer panic into an Error event so that the
// scheduler unwinds through its normal exit path.
func (s *Source) recoverProducer(ctx context.Context, name string) {
	if r := recover(); r != nil {
		s.log.Error("producer panicked", "producer", name, "panic", r, "stack", string(debug.Stack()))
		s.emit(ctx, Failure(fmt.Errorf("%s producer panicked: %v", name, r)))
	}
}

func interval(rate float64) time.Duration {
	d := time.Duration(float64(time.Second) / rate)
	if d <= 0 {
		d = time.Nanosecond
	}
	return d
}
