package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenMode_AcquireRelease(t *testing.T) {
	t.Parallel()

	mode := NewScreenMode(tcell.NewSimulationScreen("UTF-8"))

	g, err := Acquire(mode)
	require.NoError(t, err)
	assert.True(t, mode.Active())

	g.Release()
	assert.False(t, mode.Active())

	assert.NotPanics(t, g.Release, "second release must not call Fini again")
}

func TestScreenMode_EnterTwice(t *testing.T) {
	t.Parallel()

	mode := NewScreenMode(tcell.NewSimulationScreen("UTF-8"))
	require.NoError(t, mode.Enter())
	defer func() { _ = mode.Restore() }()

	assert.ErrorIs(t, mode.Enter(), ErrAlreadyCaptured)
}

func TestScreenMode_NoReentryAfterFini(t *testing.T) {
	t.Parallel()

	mode := NewScreenMode(tcell.NewSimulationScreen("UTF-8"))
	require.NoError(t, mode.Enter())
	require.NoError(t, mode.Restore())

	_, err := Acquire(mode)
	assert.True(t, IsAcquisitionError(err))
	assert.False(t, mode.Active())
}
