package xmodem

import (
	"time"

	"github.com/modemtools/txmodem/internal/protocol"
	"github.com/modemtools/txmodem/pkg/log"
)

// Option configures optional behavior of a Sender.
type Option func(*options)

// options holds the optional configuration for a Sender.
type options struct {
	logger         log.Logger
	eventHandler   EventHandler
	retryLimit     int
	handshakeLimit int
	readTimeout    time.Duration
}

// defaultOptions returns options with the protocol-conventional limits.
func defaultOptions() options {
	return options{
		logger:         log.NewNoopLogger(),
		retryLimit:     protocol.DefaultRetryLimit,
		handshakeLimit: protocol.DefaultHandshakeLimit,
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for transfer events. Events are
// delivered synchronously from the sending goroutine.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithRetryLimit sets the total number of attempts allowed per block (and
// for the EOT exchange). Values below 1 are ignored.
func WithRetryLimit(limit int) Option {
	return func(o *options) {
		if limit >= 1 {
			o.retryLimit = limit
		}
	}
}

// WithHandshakeLimit sets how many reads the sender spends waiting for
// the receiver's opening NAK or 'C'. Values below 1 are ignored.
func WithHandshakeLimit(limit int) Option {
	return func(o *options) {
		if limit >= 1 {
			o.handshakeLimit = limit
		}
	}
}

// WithReadTimeout overrides the per-read timeout. For senders built with
// New the Config.ReadTimeout already covers this; the option mainly
// serves NewWithChannel, where there is no Config.
func WithReadTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.readTimeout = timeout
		}
	}
}
