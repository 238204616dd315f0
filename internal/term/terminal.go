package term

import (
	"fmt"
	"io"
	"os"
	"sync"

	xterm "golang.org/x/term"
)

// Terminal is the ANSI backend Mode: raw input through x/term and screen
// control through escape sequences written to out.
type Terminal struct {
	in  *os.File
	out io.Writer

	mu       sync.Mutex
	oldState *xterm.State
	raw      bool
	screen   bool
}

// NewTerminal creates a Terminal reading from in and writing to out.
func NewTerminal(in *os.File, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// Enter implements Mode.
func (t *Terminal) Enter() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.raw {
		return ErrAlreadyCaptured
	}

	fd := int(t.in.Fd())
	if !xterm.IsTerminal(fd) {
		return ErrNotTerminal
	}

	oldState, err := xterm.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	t.oldState = oldState
	t.raw = true

	if _, err := io.WriteString(t.out, AltScreenEnter+CursorHide+ClearScreen+CursorHome); err != nil {
		_ = xterm.Restore(fd, oldState)
		t.raw = false
		t.oldState = nil
		return fmt.Errorf("failed to enter alternate screen: %w", err)
	}
	t.screen = true
	return nil
}

// Active implements Mode. It is true while either raw input or the
// alternate screen is still in effect.
func (t *Terminal) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.raw || t.screen
}

// Restore implements Mode.
func (t *Terminal) Restore() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.raw || t.oldState == nil {
		return nil
	}
	if err := xterm.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	t.raw = false
	t.oldState = nil
	return nil
}

// Leave implements Mode.
func (t *Terminal) Leave() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.screen {
		return nil
	}
	t.screen = false
	_, err := io.WriteString(t.out, MouseOff+AltScreenExit+Reset+CursorShow)
	return err
}

// Size returns the current terminal width and height.
func (t *Terminal) Size() (width, height int, err error) {
	if w, h, ok := winsize(int(t.in.Fd())); ok {
		return w, h, nil
	}
	width, height, err = xterm.GetSize(int(t.in.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get terminal size: %w", err)
	}
	return width, height, nil
}

// EmergencyReset writes the sequences that leave every mode drizzle may have
// entered. It is for crash paths where no Guard is in reach.
func EmergencyReset(w io.Writer) {
	_, _ = io.WriteString(w, MouseOff+AltScreenExit+Reset+CursorShow)
	if f, ok := w.(*os.File); ok {
		_ = f.Sync()
	}
}
