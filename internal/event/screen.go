package event

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// ScreenInput pumps events from a tcell screen.
type ScreenInput struct {
	screen tcell.Screen
}

// NewScreenInput creates a ScreenInput. The screen must already be initialised.
func NewScreenInput(screen tcell.Screen) *ScreenInput {
	return &ScreenInput{screen: screen}
}

// Pump implements Input. It returns nil when the screen is finalised.
func (s *ScreenInput) Pump(ctx context.Context, emit func(Event) bool) error {
	for {
		tev := s.screen.PollEvent()
		if tev == nil || ctx.Err() != nil {
			return nil
		}

		ev, ok := Translate(tev)
		if !ok {
			continue
		}
		if !emit(ev) {
			return nil
		}
	}
}

// Translate converts a tcell event into an Event. Events with no
// counterpart (mouse, paste, focus) report false.
func Translate(tev tcell.Event) (Event, bool) {
	switch e := tev.(type) {
	case *tcell.EventKey:
		return KeyPress(keyFromTcell(e)), true
	case *tcell.EventResize:
		w, h := e.Size()
		return Resize(uint16(w), uint16(h)), true
	case *tcell.EventError:
		return Failure(e), true
	}
	return Event{}, false
}

func keyFromTcell(e *tcell.EventKey) Key {
	switch e.Key() {
	case tcell.KeyRune:
		return RuneKey(e.Rune())
	case tcell.KeyEscape:
		return Key{Code: KeyEscape}
	case tcell.KeyEnter:
		return Key{Code: KeyEnter}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Key{Code: KeyBackspace}
	case tcell.KeyTab:
		return Key{Code: KeyTab}
	case tcell.KeyUp:
		return Key{Code: KeyUp}
	case tcell.KeyDown:
		return Key{Code: KeyDown}
	case tcell.KeyLeft:
		return Key{Code: KeyLeft}
	case tcell.KeyRight:
		return Key{Code: KeyRight}
	case tcell.KeyCtrlC:
		return Key{Code: KeyCtrlC}
	case tcell.KeyCtrlD:
		return Key{Code: KeyCtrlD}
	}
	return Key{Code: KeyUnknown}
}
