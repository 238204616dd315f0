package cli

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/thruflo/drizzle/internal/config"
	"github.com/thruflo/drizzle/internal/event"
	"github.com/thruflo/drizzle/internal/render"
	"github.com/thruflo/drizzle/internal/term"
)

// backend bundles the pieces that talk to the terminal.
type backend struct {
	name    string
	mode    term.Mode
	input   event.Input
	surface render.Surface
	size    func() (columns, rows int, err error)
}

func defaultBackend(cfg *config.Config) (*backend, error) {
	switch cfg.Backend {
	case config.BackendTcell:
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, &term.AcquisitionError{Err: err}
		}
		return screenBackend(screen), nil
	case config.BackendANSI:
		return ansiBackend()
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// screenBackend wires an uninitialised tcell screen.
func screenBackend(screen tcell.Screen) *backend {
	return &backend{
		name:    config.BackendTcell,
		mode:    term.NewScreenMode(screen),
		input:   event.NewScreenInput(screen),
		surface: render.NewScreenSurface(screen),
		size: func() (int, int, error) {
			w, h := screen.Size()
			return w, h, nil
		},
	}
}
