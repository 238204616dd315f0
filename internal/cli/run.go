package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thruflo/drizzle/internal/app"
	"github.com/thruflo/drizzle/internal/config"
	"github.com/thruflo/drizzle/internal/event"
	"github.com/thruflo/drizzle/internal/logging"
	"github.com/thruflo/drizzle/internal/render"
	"github.com/thruflo/drizzle/internal/scene"
	"github.com/thruflo/drizzle/internal/term"
)

// openBackend builds the terminal backend for a session. It can be
// overridden in tests.
var openBackend = defaultBackend

func runDrizzle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := resolveConfig(cmd.Flags())
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runSession(ctx, cfg, cmd.ErrOrStderr())
}

// setupLogging points the default logger at the configured file. Without a
// file, logs are discarded: the terminal belongs to the animation.
func setupLogging(cfg *config.Config) (func(), error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logging.SetLevel(level)

	if cfg.Log.File == "" {
		logging.Discard()
		return func() {}, nil
	}

	f, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return nil, err
	}
	return func() {
		logging.Discard()
		_ = f.Close()
	}, nil
}

// runSession owns the terminal for one animation run. The guard is released
// on every exit path, including a panic, before the error reaches the caller.
func runSession(ctx context.Context, cfg *config.Config, stderr io.Writer) (err error) {
	log := logging.With("component", "session")

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "panic: %v\n\n%s\n", r, debug.Stack())
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	b, err := openBackend(cfg)
	if err != nil {
		return err
	}

	guard, err := term.Acquire(b.mode, term.WithLogger(logging.Default()))
	if err != nil {
		return err
	}
	defer guard.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	source := event.NewSource(event.Options{
		FPS:           cfg.FPS,
		TPS:           cfg.TPS,
		QueueCapacity: cfg.Queue.Capacity,
		Input:         b.input,
	})

	st := scene.New(cfg.SceneOptions())
	if cols, rows, err := b.size(); err == nil {
		st.OnResize(uint16(cols), uint16(rows))
	}

	drawer := render.NewRenderer(b.surface, render.Options{ShowStatus: cfg.Display.ShowStatus})
	loop := app.New[*scene.Scene](source, st, drawer, cfg.Rates())

	log.Info("session starting",
		"backend", b.name,
		"scene", cfg.Scene.Kind,
		"fps", cfg.FPS,
		"tps", cfg.TPS,
		"collapsed", source.Collapsed(),
	)

	source.Start(ctx)
	defer source.Stop()

	err = loop.Run(ctx)

	log.Info("session ended",
		"frames", loop.FramesRendered(),
		"dropped", source.Dropped(),
		"error", err,
	)
	return err
}
