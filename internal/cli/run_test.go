package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/drizzle/internal/app"
	"github.com/thruflo/drizzle/internal/config"
	"github.com/thruflo/drizzle/internal/logging"
	"github.com/thruflo/drizzle/internal/term"
	"github.com/thruflo/drizzle/internal/testutil"
)

type stubMode struct {
	enterErr error
	active   bool
	restored int
}

func (m *stubMode) Enter() error {
	if m.enterErr != nil {
		return m.enterErr
	}
	m.active = true
	return nil
}

func (m *stubMode) Active() bool { return m.active }

func (m *stubMode) Restore() error {
	m.active = false
	m.restored++
	return nil
}

func (m *stubMode) Leave() error { return nil }

type stubSurface struct {
	showErr error
	panics  bool
	shows   int
}

func (s *stubSurface) Size() (int, int) { return 10, 5 }

func (s *stubSurface) Clear() {}

func (s *stubSurface) SetCell(int, int, rune, tcell.Style) {}

func (s *stubSurface) Show() error {
	if s.panics {
		panic("boom")
	}
	s.shows++
	return s.showErr
}

func useBackend(t *testing.T, b *backend) {
	t.Helper()
	prev := openBackend
	openBackend = func(*config.Config) (*backend, error) { return b, nil }
	t.Cleanup(func() { openBackend = prev })
}

func stubBackend(mode *stubMode, surface *stubSurface) *backend {
	return &backend{
		name:    "stub",
		mode:    mode,
		surface: surface,
		size:    func() (int, int, error) { return 10, 5, nil },
	}
}

func fastConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.FPS = 100
	cfg.TPS = 100
	return &cfg
}

// quittingMode presses q as soon as the screen is up.
type quittingMode struct {
	*term.ScreenMode
	screen tcell.SimulationScreen
}

func (m *quittingMode) Enter() error {
	if err := m.ScreenMode.Enter(); err != nil {
		return err
	}
	m.screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	return nil
}

func TestRunSession_QuitKeyOnSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	b := screenBackend(screen)
	mode := &quittingMode{ScreenMode: term.NewScreenMode(screen), screen: screen}
	b.mode = mode
	useBackend(t, b)

	ctx, cancel := testutil.ShortOperationContext(t)
	defer cancel()

	err := runSession(ctx, fastConfig(), &bytes.Buffer{})

	require.NoError(t, err)
	assert.NoError(t, ctx.Err(), "session should end on the key, not the deadline")
	assert.False(t, mode.Active())
}

func TestRunSession_CancelIsCleanExit(t *testing.T) {
	mode := &stubMode{}
	surface := &stubSurface{}
	useBackend(t, stubBackend(mode, surface))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := runSession(ctx, fastConfig(), &bytes.Buffer{})

	require.NoError(t, err)
	assert.False(t, mode.active)
	assert.Equal(t, 1, mode.restored)
	assert.Greater(t, surface.shows, 0)
}

func TestRunSession_AcquireFailure(t *testing.T) {
	mode := &stubMode{enterErr: term.ErrNotTerminal}
	useBackend(t, stubBackend(mode, &stubSurface{}))

	err := runSession(context.Background(), fastConfig(), &bytes.Buffer{})

	require.Error(t, err)
	assert.True(t, term.IsAcquisitionError(err))
	assert.ErrorIs(t, err, term.ErrNotTerminal)
}

func TestRunSession_DrawErrorRestoresTerminal(t *testing.T) {
	mode := &stubMode{}
	broken := errors.New("write /dev/tty: broken pipe")
	useBackend(t, stubBackend(mode, &stubSurface{showErr: broken}))

	ctx, cancel := testutil.ShortOperationContext(t)
	defer cancel()

	err := runSession(ctx, fastConfig(), &bytes.Buffer{})

	require.Error(t, err)
	assert.True(t, app.IsDrawError(err))
	assert.ErrorIs(t, err, broken)
	assert.False(t, mode.active)
}

func TestRunSession_PanicRestoresTerminal(t *testing.T) {
	mode := &stubMode{}
	useBackend(t, stubBackend(mode, &stubSurface{panics: true}))

	ctx, cancel := testutil.ShortOperationContext(t)
	defer cancel()

	var stderr bytes.Buffer
	err := runSession(ctx, fastConfig(), &stderr)

	require.Error(t, err)
	assert.Equal(t, "panic: boom", err.Error())
	assert.Contains(t, stderr.String(), "panic: boom")
	assert.Contains(t, stderr.String(), "goroutine")
	assert.False(t, mode.active)
	assert.Equal(t, 1, mode.restored)
}

func TestSetupLogging_File(t *testing.T) {
	t.Cleanup(func() {
		logging.SetLevel(logging.LevelWarn)
		logging.Discard()
	})

	path := filepath.Join(t.TempDir(), "drizzle.log")
	cfg := config.DefaultConfig()
	cfg.Log = config.Log{Level: "info", File: path}

	closeLog, err := setupLogging(&cfg)
	require.NoError(t, err)

	logging.Info("session starting", "backend", "tcell")
	logging.Debug("hidden")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO: session starting | backend=tcell")
	assert.NotContains(t, string(data), "hidden")
}

func TestSetupLogging_BadFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Log.File = filepath.Join(t.TempDir(), "missing", "drizzle.log")

	_, err := setupLogging(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open log file")
}
