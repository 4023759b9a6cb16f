package xmodem

import (
	"context"
	"sync"

	"github.com/modemtools/txmodem/internal/adapters/fs"
	serialAdapter "github.com/modemtools/txmodem/internal/adapters/serial"
	"github.com/modemtools/txmodem/internal/app"
	"github.com/modemtools/txmodem/internal/ports"
	"github.com/modemtools/txmodem/internal/protocol"
	"github.com/modemtools/txmodem/pkg/log"
)

// Mode is the negotiated integrity mode for a transfer.
type Mode = protocol.Mode

// Transfer modes, selected by the receiver during negotiation.
const (
	ModeChecksum = protocol.ModeChecksum
	ModeCRC16    = protocol.ModeCRC16
)

// Channel is the duplex byte stream a Sender talks over. Implement it to
// run the protocol over anything that is not a physical serial port.
type Channel = ports.ByteChannel

// Source yields the file to transfer as ordered payload-sized chunks.
type Source = ports.ChunkSource

// ErrTimeout is what a Channel's ReadByte must return on an expired read,
// so the session can tell recoverable silence from channel failure.
var ErrTimeout = ports.ErrTimeout

// Sender sends one file per Send call using XMODEM or XMODEM-CRC,
// whichever the receiver negotiates. A Sender serializes its Send calls;
// the protocol is strictly lock-step and a session must never be shared.
type Sender struct {
	opts    options
	session app.SessionConfig

	// Exactly one of these is set. A borrowed channel is never closed by
	// the Sender; an owned one is opened per Send and closed on exit.
	channel ports.ByteChannel
	dial    func() (ports.ByteChannel, error)

	mu sync.Mutex
}

// New creates a Sender that opens the configured serial device itself.
// The channel is owned by the session: opened when Send starts and closed
// before Send returns, on success, failure, or cancellation.
func New(cfg Config, opts ...Option) (*Sender, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	timeout := cfg.ReadTimeout
	if o.readTimeout > 0 {
		timeout = o.readTimeout
	}

	settings := serialAdapter.Settings{
		Device:   cfg.Device,
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		Parity:   cfg.Parity,
		StopBits: cfg.StopBits,
	}

	return &Sender{
		opts: o,
		session: app.SessionConfig{
			ReadTimeout:    timeout,
			RetryLimit:     o.retryLimit,
			HandshakeLimit: o.handshakeLimit,
		},
		dial: func() (ports.ByteChannel, error) {
			return serialAdapter.Open(settings)
		},
	}, nil
}

// NewWithChannel creates a Sender over an already-open channel. The
// channel is borrowed: its lifetime belongs to the caller and it is left
// open whatever the outcome of Send.
func NewWithChannel(ch Channel, opts ...Option) (*Sender, error) {
	if ch == nil {
		return nil, protocol.NewConfigError("channel is nil", nil)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.readTimeout == 0 {
		o.readTimeout = DefaultReadTimeout
	}

	return &Sender{
		opts: o,
		session: app.SessionConfig{
			ReadTimeout:    o.readTimeout,
			RetryLimit:     o.retryLimit,
			HandshakeLimit: o.handshakeLimit,
		},
		channel: ch,
	}, nil
}

// Send runs one complete transfer of src. It returns nil only when the
// receiver acknowledged every block and the final EOT; otherwise a
// ConfigError or CommError. There is no partial success: a failed
// transfer restarts from block 1, though the EventHandler has already
// observed how far it got.
func (s *Sender) Send(ctx context.Context, src Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := s.channel
	owned := false
	if ch == nil {
		var err error
		ch, err = s.dial()
		if err != nil {
			return err
		}
		owned = true
	}

	var emitter ports.Emitter
	if s.opts.eventHandler != nil {
		emitter = &emitterWrapper{handler: s.opts.eventHandler}
	}

	sess := app.NewSession(s.session, ch, s.opts.logger, emitter)
	err := sess.Run(ctx, src)

	if owned {
		if closeErr := ch.Close(); closeErr != nil {
			s.opts.logger.Warn("close channel", log.Err(closeErr))
			if err == nil {
				err = closeErr
			}
		}
	}
	return err
}

// SendFile transfers the file at path. A file that cannot be opened is a
// ConfigError, mirroring the preflight nature of the failure.
func (s *Sender) SendFile(ctx context.Context, path string) error {
	src, err := fs.NewFileSource(path, protocol.PayloadSize)
	if err != nil {
		return err
	}
	defer src.Close()
	return s.Send(ctx, src)
}

// NewBytesSource wraps an in-memory payload in a Source.
func NewBytesSource(data []byte) Source {
	return fs.NewBytesSource(data, protocol.PayloadSize)
}
