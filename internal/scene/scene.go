// Package scene holds the weather animation state advanced by the scheduler.
package scene

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/thruflo/drizzle/internal/app"
)

// Kind selects the weather being animated.
type Kind string

const (
	KindRain  Kind = "rain"
	KindSnow  Kind = "snow"
	KindStorm Kind = "storm"
	KindClear Kind = "clear"
)

// Kinds lists every supported weather kind.
var Kinds = []Kind{KindRain, KindSnow, KindStorm, KindClear}

// ParseKind converts a config value to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown scene kind %q", s)
}

// Particle is one raindrop or snowflake. Positions are in cells with the
// origin at the top left; Y grows downwards.
type Particle struct {
	X, Y  float64
	Speed float64 // Rows per tick
}

// Options configures a Scene.
type Options struct {
	Kind       Kind
	Density    float64 // Spawn probability per column per tick, (0, 1]
	Seed       uint64
	WindPeriod int // Seconds between wind changes
}

// Scene is the weather state. It is owned by the scheduler goroutine.
type Scene struct {
	kind       Kind
	density    float64
	windPeriod int
	rng        *rand.Rand

	columns, rows int
	particles     []Particle
	wind          float64 // Columns of drift per tick
	elapsed       int     // Timer events seen
	flash         int     // Ticks of lightning left
}

// New creates an empty Scene. OnResize must run before particles appear.
func New(opts Options) *Scene {
	if opts.WindPeriod <= 0 {
		opts.WindPeriod = 5
	}
	return &Scene{
		kind:       opts.Kind,
		density:    opts.Density,
		windPeriod: opts.WindPeriod,
		rng:        rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
	}
}

// OnResize implements app.State. Particles outside the new bounds are dropped.
func (s *Scene) OnResize(columns, rows uint16) {
	s.columns, s.rows = int(columns), int(rows)

	kept := s.particles[:0]
	for _, p := range s.particles {
		if s.inside(p) {
			kept = append(kept, p)
		}
	}
	s.particles = kept
}

// Advance implements app.State: particles fall and drift, new ones spawn
// along the top row. An empty sky that stays empty reports Skip.
func (s *Scene) Advance() app.ShouldRender {
	changed := len(s.particles) > 0 || s.flash > 0

	if s.flash > 0 {
		s.flash--
	}

	kept := s.particles[:0]
	for _, p := range s.particles {
		p.Y += p.Speed
		p.X += s.wind * p.Speed
		if s.inside(p) {
			kept = append(kept, p)
		}
	}
	s.particles = kept

	if s.spawn() > 0 {
		changed = true
	}

	if changed {
		return app.Render
	}
	return app.Skip
}

// AdvanceTimer implements app.State. Wind changes every WindPeriod seconds;
// storms may also strike lightning.
func (s *Scene) AdvanceTimer() {
	s.elapsed++
	if s.elapsed%s.windPeriod != 0 {
		return
	}

	switch s.kind {
	case KindSnow:
		s.wind = (s.rng.Float64() - 0.5) * 0.6
	case KindRain, KindStorm:
		s.wind = (s.rng.Float64() - 0.5) * 0.3
	}
	if s.kind == KindStorm && s.rng.Float64() < 0.5 {
		s.flash = 2
	}
}

func (s *Scene) spawn() int {
	if s.kind == KindClear || s.columns == 0 || s.rows == 0 {
		return 0
	}

	density := s.density
	if s.kind == KindStorm {
		density = min(1, density*2)
	}

	n := 0
	for x := 0; x < s.columns; x++ {
		if s.rng.Float64() >= density {
			continue
		}
		s.particles = append(s.particles, Particle{
			X:     float64(x),
			Y:     0,
			Speed: s.speed(),
		})
		n++
	}
	return n
}

func (s *Scene) speed() float64 {
	switch s.kind {
	case KindSnow:
		return 0.2 + s.rng.Float64()*0.3
	case KindStorm:
		return 1.0 + s.rng.Float64()
	default:
		return 0.6 + s.rng.Float64()*0.8
	}
}

// inside reports whether p is above the ground row and within the columns.
func (s *Scene) inside(p Particle) bool {
	return p.X >= 0 && p.X < float64(s.columns) && p.Y >= 0 && p.Y < float64(s.rows-1)
}

// Kind returns the weather kind.
func (s *Scene) Kind() Kind { return s.kind }

// Size returns the scene size in cells.
func (s *Scene) Size() (columns, rows int) { return s.columns, s.rows }

// Particles returns the live particles. The slice is reused between ticks.
func (s *Scene) Particles() []Particle { return s.particles }

// Wind returns the current horizontal drift per tick.
func (s *Scene) Wind() float64 { return s.wind }

// Flash reports whether lightning is lighting the sky.
func (s *Scene) Flash() bool { return s.flash > 0 }

// Elapsed returns the number of timer events seen.
func (s *Scene) Elapsed() int { return s.elapsed }
