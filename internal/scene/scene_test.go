package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/drizzle/internal/app"
)

var _ app.State = (*Scene)(nil)

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"rain", KindRain, false},
		{"Snow", KindSnow, false},
		{" storm ", KindStorm, false},
		{"clear", KindClear, false},
		{"hail", "", true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestAdvance_EmptyClearSkySkips(t *testing.T) {
	t.Parallel()

	s := New(Options{Kind: KindClear, Density: 1})
	s.OnResize(40, 10)

	for i := 0; i < 5; i++ {
		assert.Equal(t, app.Skip, s.Advance())
	}
	assert.Empty(t, s.Particles())
}

func TestAdvance_WithoutSizeSkips(t *testing.T) {
	t.Parallel()

	s := New(Options{Kind: KindRain, Density: 1})

	assert.Equal(t, app.Skip, s.Advance())
	assert.Empty(t, s.Particles())
}

func TestAdvance_SpawnsAndFalls(t *testing.T) {
	t.Parallel()

	s := New(Options{Kind: KindRain, Density: 1, Seed: 7})
	s.OnResize(20, 10)

	assert.Equal(t, app.Render, s.Advance())
	require.Len(t, s.Particles(), 20, "density 1 fills every column")
	for _, p := range s.Particles() {
		assert.Zero(t, p.Y)
		assert.Greater(t, p.Speed, 0.0)
	}

	s.Advance()
	fallen := 0
	for _, p := range s.Particles() {
		if p.Y > 0 {
			fallen++
		}
	}
	assert.Equal(t, 20, fallen)
}

func TestAdvance_ParticlesLeaveAtGround(t *testing.T) {
	t.Parallel()

	s := New(Options{Kind: KindStorm, Density: 0.5, Seed: 3})
	s.OnResize(10, 4)

	for i := 0; i < 50; i++ {
		s.Advance()
		cols, rows := s.Size()
		for _, p := range s.Particles() {
			assert.Less(t, p.Y, float64(rows-1))
			assert.GreaterOrEqual(t, p.X, 0.0)
			assert.Less(t, p.X, float64(cols))
		}
	}
}

func TestAdvance_Deterministic(t *testing.T) {
	t.Parallel()

	run := func() []Particle {
		s := New(Options{Kind: KindSnow, Density: 0.3, Seed: 42})
		s.OnResize(30, 12)
		for i := 0; i < 10; i++ {
			s.Advance()
		}
		return append([]Particle(nil), s.Particles()...)
	}

	assert.Equal(t, run(), run())
}

func TestOnResize_DropsOutOfBounds(t *testing.T) {
	t.Parallel()

	s := New(Options{Kind: KindRain, Density: 1, Seed: 1})
	s.OnResize(40, 20)
	s.Advance()
	require.Len(t, s.Particles(), 40)

	s.OnResize(10, 20)

	cols, rows := s.Size()
	assert.Equal(t, 10, cols)
	assert.Equal(t, 20, rows)
	assert.Len(t, s.Particles(), 10)
}

func TestAdvanceTimer_ChangesWindOnPeriod(t *testing.T) {
	t.Parallel()

	s := New(Options{Kind: KindSnow, Density: 0.1, Seed: 9, WindPeriod: 3})

	s.AdvanceTimer()
	s.AdvanceTimer()
	assert.Zero(t, s.Wind())
	assert.Equal(t, 2, s.Elapsed())

	s.AdvanceTimer()
	assert.NotZero(t, s.Wind())
	assert.Equal(t, 3, s.Elapsed())
}

func TestAdvanceTimer_ClearSkyStaysCalm(t *testing.T) {
	t.Parallel()

	s := New(Options{Kind: KindClear, WindPeriod: 1})
	for i := 0; i < 10; i++ {
		s.AdvanceTimer()
	}

	assert.Zero(t, s.Wind())
	assert.False(t, s.Flash())
}

func TestStorm_FlashForcesRender(t *testing.T) {
	t.Parallel()

	s := New(Options{Kind: KindStorm, Density: 0.1})
	s.flash = 2

	assert.True(t, s.Flash())
	assert.Equal(t, app.Render, s.Advance())
	assert.Equal(t, app.Render, s.Advance())
	assert.False(t, s.Flash())
}
