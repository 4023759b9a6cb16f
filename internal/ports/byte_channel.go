package ports

import (
	"errors"
	"time"
)

// ErrTimeout is returned by ByteChannel.ReadByte when no byte arrives
// within the requested window. It is the only read error the session
// treats as recoverable.
var ErrTimeout = errors.New("read timeout")

// ByteChannel is the duplex byte stream the sender talks over. The
// protocol core needs exactly three operations; whether the bytes cross a
// physical serial port, a pseudo-terminal, or a test double is irrelevant
// to it.
//
// A ByteChannel is used from a single goroutine at a time.
type ByteChannel interface {
	// ReadByte blocks until one byte arrives or the timeout expires.
	// Returns ErrTimeout on expiry and other errors for channel failures.
	ReadByte(timeout time.Duration) (byte, error)

	// Write sends the whole buffer or fails. Partial writes are the
	// implementation's problem, not the caller's.
	Write(p []byte) error

	// Close releases the underlying channel.
	Close() error
}
