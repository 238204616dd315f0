package term

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// ScreenMode is the tcell backend Mode. tcell enters raw mode and the
// alternate screen in Init and undoes both, plus the cursor, in Fini.
type ScreenMode struct {
	screen tcell.Screen

	mu       sync.Mutex
	active   bool
	finished bool
}

// NewScreenMode wraps an uninitialised tcell screen.
func NewScreenMode(screen tcell.Screen) *ScreenMode {
	return &ScreenMode{screen: screen}
}

// Screen returns the wrapped screen.
func (m *ScreenMode) Screen() tcell.Screen {
	return m.screen
}

// Enter implements Mode.
func (m *ScreenMode) Enter() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active {
		return ErrAlreadyCaptured
	}
	if m.finished {
		return fmt.Errorf("screen already finalised: %w", ErrAlreadyCaptured)
	}
	if err := m.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise screen: %w", err)
	}

	m.screen.DisableMouse()
	m.screen.HideCursor()
	m.screen.Clear()
	m.active = true
	return nil
}

// Active implements Mode.
func (m *ScreenMode) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Restore implements Mode. tcell restores the saved termios, leaves the
// alternate screen and shows the cursor in one Fini call.
func (m *ScreenMode) Restore() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active {
		return nil
	}
	m.screen.DisableMouse()
	m.screen.Fini()
	m.active = false
	m.finished = true
	return nil
}

// Leave implements Mode. The screen side is already handled by Fini; this
// only covers a Leave without a prior Restore.
func (m *ScreenMode) Leave() error {
	return m.Restore()
}
