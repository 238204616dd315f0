// Package render draws the weather scene onto a terminal surface.
package render

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/thruflo/drizzle/internal/term"
)

// Surface is a cell grid that is committed to the terminal by Show.
type Surface interface {
	Size() (width, height int)
	Clear()
	SetCell(x, y int, r rune, style tcell.Style)
	Show() error
}

// ScreenSurface draws through a tcell screen.
type ScreenSurface struct {
	screen tcell.Screen
}

// NewScreenSurface wraps an initialised tcell screen.
func NewScreenSurface(screen tcell.Screen) *ScreenSurface {
	return &ScreenSurface{screen: screen}
}

// Size implements Surface.
func (s *ScreenSurface) Size() (int, int) { return s.screen.Size() }

// Clear implements Surface.
func (s *ScreenSurface) Clear() { s.screen.Clear() }

// SetCell implements Surface.
func (s *ScreenSurface) SetCell(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// Show implements Surface. tcell reports no write errors from Show.
func (s *ScreenSurface) Show() error {
	s.screen.Show()
	return nil
}

type cell struct {
	r     rune
	style tcell.Style
}

// ANSISurface keeps a cell buffer and writes whole frames as ANSI sequences.
type ANSISurface struct {
	out  io.Writer
	size func() (int, int, error)

	mu            sync.Mutex
	width, height int
	cells         []cell
	buf           strings.Builder
}

// NewANSISurface creates a surface writing to out; size is queried on every
// Clear so the buffer follows terminal resizes.
func NewANSISurface(out io.Writer, size func() (int, int, error)) *ANSISurface {
	s := &ANSISurface{out: out, size: size}
	s.Clear()
	return s
}

// Size implements Surface.
func (s *ANSISurface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Clear implements Surface.
func (s *ANSISurface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w, h, err := s.size(); err == nil && w > 0 && h > 0 {
		s.width, s.height = w, h
	}
	n := s.width * s.height
	if cap(s.cells) < n {
		s.cells = make([]cell, n)
	}
	s.cells = s.cells[:n]
	for i := range s.cells {
		s.cells[i] = cell{r: ' ', style: tcell.StyleDefault}
	}
}

// SetCell implements Surface. Writes outside the buffer are ignored.
func (s *ANSISurface) SetCell(x, y int, r rune, style tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	s.cells[y*s.width+x] = cell{r: r, style: style}
}

// Show implements Surface: the whole buffer is written in a single Write.
func (s *ANSISurface) Show() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Reset()
	s.buf.WriteString(term.CursorHome)

	var last tcell.Style
	first := true
	for y := 0; y < s.height; y++ {
		s.buf.WriteString(term.CursorTo(y+1, 1))
		for x := 0; x < s.width; x++ {
			c := s.cells[y*s.width+x]
			if first || c.style != last {
				s.buf.WriteString(styleSequence(c.style))
				last, first = c.style, false
			}
			s.buf.WriteRune(c.r)
		}
	}
	s.buf.WriteString(term.Reset)

	n, err := io.WriteString(s.out, s.buf.String())
	if err != nil {
		return err
	}
	if n < s.buf.Len() {
		return io.ErrShortWrite
	}
	return nil
}

// styleSequence converts a tcell style to SGR sequences.
func styleSequence(style tcell.Style) string {
	fg, bg, attrs := style.Decompose()

	var sb strings.Builder
	sb.WriteString(term.Reset)
	if attrs&tcell.AttrBold != 0 {
		sb.WriteString(term.Bold)
	}
	if attrs&tcell.AttrDim != 0 {
		sb.WriteString(term.Dim)
	}
	if fg != tcell.ColorDefault {
		r, g, b := fg.RGB()
		if r >= 0 {
			sb.WriteString(term.FgRGB(r, g, b))
		}
	}
	if bg != tcell.ColorDefault {
		r, g, b := bg.RGB()
		if r >= 0 {
			sb.WriteString(term.BgRGB(r, g, b))
		}
	}
	return sb.String()
}

// ErrNoSurface is returned by a Renderer constructed without a surface.
var ErrNoSurface = errors.New("render: no surface")
