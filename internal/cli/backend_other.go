//go:build !unix

package cli

import (
	"errors"
)

func ansiBackend() (*backend, error) {
	return nil, errors.New("the ansi backend needs a unix terminal; use --backend tcell")
}
