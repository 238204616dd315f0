//go:build unix

package event

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTYInput_KeysThenEOF(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	_, err = w.Write([]byte{'a', 0x1B, '[', 'A'})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	input := NewTTYInput(r, func() (int, int, error) { return 80, 24, nil })

	var got []Event
	err = input.Pump(context.Background(), func(ev Event) bool {
		got = append(got, ev)
		return true
	})

	require.NoError(t, err)
	assert.Equal(t, []Event{KeyPress(RuneKey('a')), KeyPress(Key{Code: KeyUp})}, got)
}

func TestTTYInput_StopsOnCancel(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewTTYInput(r, nil).Pump(ctx, func(Event) bool { return true })
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("pump ignored cancellation")
	}
}

func TestTTYInput_StopsWhenEmitRefuses(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})

	_, err = w.Write([]byte("xyz"))
	require.NoError(t, err)

	calls := 0
	err = NewTTYInput(r, nil).Pump(context.Background(), func(Event) bool {
		calls++
		return false
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
