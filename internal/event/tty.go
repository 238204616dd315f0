//go:build unix

package event

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// pollTimeoutMs bounds how long a read waits before rechecking for shutdown.
const pollTimeoutMs = 100

// SizeFunc reports the current terminal size in columns and rows.
type SizeFunc func() (columns, rows int, err error)

// TTYInput reads keys from a raw-mode terminal and reports SIGWINCH resizes.
type TTYInput struct {
	in   *os.File
	size SizeFunc
}

// NewTTYInput creates a TTYInput reading from in. size is queried on every
// SIGWINCH so Resize events carry the post-resize dimensions.
func NewTTYInput(in *os.File, size SizeFunc) *TTYInput {
	return &TTYInput{in: in, size: size}
}

// Pump implements Input.
func (t *TTYInput) Pump(ctx context.Context, emit func(Event) bool) error {
	winch := make(chan os.Signal, 1)
	signal.Notify(winch, unix.SIGWINCH)
	defer signal.Stop(winch)

	stop := make(chan struct{})
	defer close(stop)

	keys := make(chan Key)
	readErr := make(chan error, 1)

	go func() {
		reader := NewKeyReader(&pollReader{fd: int(t.in.Fd()), ctx: ctx, stop: stop})
		for {
			k, err := reader.ReadKey()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case keys <- k:
			case <-stop:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-winch:
			cols, rows, err := t.size()
			if err != nil {
				continue
			}
			if !emit(Resize(uint16(cols), uint16(rows))) {
				return nil
			}
		case k := <-keys:
			if !emit(KeyPress(k)) {
				return nil
			}
		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// pollReader reads from a file descriptor without blocking past shutdown:
// each read waits at most pollTimeoutMs before checking ctx and stop again.
type pollReader struct {
	fd   int
	ctx  context.Context
	stop <-chan struct{}
}

func (p *pollReader) Read(buf []byte) (int, error) {
	for {
		select {
		case <-p.ctx.Done():
			return 0, io.EOF
		case <-p.stop:
			return 0, io.EOF
		default:
		}

		fds := []unix.PollFd{{Fd: int32(p.fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, pollTimeoutMs)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return 0, err
		}
		if n == 0 {
			continue
		}

		rn, err := unix.Read(p.fd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return 0, err
		}
		if rn == 0 {
			return 0, io.EOF
		}
		return rn, nil
	}
}
