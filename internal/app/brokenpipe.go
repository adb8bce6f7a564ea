package app

import (
	"errors"
	"io"
	"syscall"
)

// isBrokenPipe reports whether err means the reader went away, as when the
// output is piped into `head`.
func isBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
