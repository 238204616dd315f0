package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/thruflo/drizzle/internal/app"
	"github.com/thruflo/drizzle/internal/scene"
)

// Glyphs
const (
	glyphRainStraight = '|'
	glyphRainLeft     = '/'
	glyphRainRight    = '\\'
	glyphSnow         = '*'
	glyphGround       = '▁'
	glyphSun          = '☼'
)

// windSlant is the drift above which raindrops are drawn slanted.
const windSlant = 0.05

var (
	styleRain   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(90, 140, 220))
	styleStorm  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(150, 170, 230)).Bold(true)
	styleSnow   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(235, 235, 245))
	styleGround = tcell.StyleDefault.Foreground(tcell.NewRGBColor(70, 120, 60))
	styleSun    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(250, 210, 60)).Bold(true)
	styleFlash  = tcell.StyleDefault.Background(tcell.NewRGBColor(200, 200, 220))
	styleStatus = tcell.StyleDefault.Foreground(tcell.NewRGBColor(160, 160, 160)).Dim(true)
)

// Options holds the static display configuration.
type Options struct {
	ShowStatus bool
}

// Renderer draws a scene frame. It implements app.Drawer for *scene.Scene.
type Renderer struct {
	surface Surface
	opts    Options
}

// NewRenderer creates a Renderer drawing onto surface.
func NewRenderer(surface Surface, opts Options) *Renderer {
	return &Renderer{surface: surface, opts: opts}
}

// Draw paints a complete frame and commits it. It only reads the scene, so
// drawing the same state twice produces the same frame.
func (r *Renderer) Draw(st *scene.Scene, info app.RuntimeInfo) error {
	if r.surface == nil {
		return ErrNoSurface
	}

	r.surface.Clear()
	width, height := r.surface.Size()
	if width <= 0 || height <= 0 {
		return r.surface.Show()
	}

	if st.Flash() {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				r.surface.SetCell(x, y, ' ', styleFlash)
			}
		}
	}

	if st.Kind() == scene.KindClear && width > 4 && height > 2 {
		r.surface.SetCell(width-3, 1, glyphSun, styleSun)
	}

	glyph, style := particleLook(st.Kind(), st.Wind())
	for _, p := range st.Particles() {
		x, y := int(math.Floor(p.X)), int(math.Floor(p.Y))
		if x < 0 || x >= width || y < 0 || y >= height-1 {
			continue
		}
		r.surface.SetCell(x, y, glyph, style)
	}

	for x := 0; x < width; x++ {
		r.surface.SetCell(x, height-1, glyphGround, styleGround)
	}

	if r.opts.ShowStatus {
		r.drawText(0, 0, StatusLine(st, info), width)
	}

	return r.surface.Show()
}

// StatusLine formats the status bar text.
func StatusLine(st *scene.Scene, info app.RuntimeInfo) string {
	return fmt.Sprintf(" %s  wind %+.2f  fps %d ", st.Kind(), st.Wind(), info.FPS)
}

func (r *Renderer) drawText(x, y int, s string, width int) {
	for _, ch := range s {
		if x >= width {
			return
		}
		r.surface.SetCell(x, y, ch, styleStatus)
		x++
	}
}

func particleLook(kind scene.Kind, wind float64) (rune, tcell.Style) {
	switch kind {
	case scene.KindSnow:
		return glyphSnow, styleSnow
	case scene.KindStorm:
		return rainGlyph(wind), styleStorm
	default:
		return rainGlyph(wind), styleRain
	}
}

func rainGlyph(wind float64) rune {
	switch {
	case wind > windSlant:
		return glyphRainRight
	case wind < -windSlant:
		return glyphRainLeft
	default:
		return glyphRainStraight
	}
}
