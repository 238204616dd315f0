//go:build unix

package cli

import (
	"os"

	"github.com/thruflo/drizzle/internal/config"
	"github.com/thruflo/drizzle/internal/event"
	"github.com/thruflo/drizzle/internal/render"
	"github.com/thruflo/drizzle/internal/term"
)

// ansiBackend drives stdin/stdout directly with x/term and escape sequences.
func ansiBackend() (*backend, error) {
	t := term.NewTerminal(os.Stdin, os.Stdout)
	return &backend{
		name:    config.BackendANSI,
		mode:    t,
		input:   event.NewTTYInput(os.Stdin, t.Size),
		surface: render.NewANSISurface(os.Stdout, t.Size),
		size:    t.Size,
	}, nil
}
