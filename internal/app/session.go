package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modemtools/txmodem/internal/ports"
	"github.com/modemtools/txmodem/internal/protocol"
	"github.com/modemtools/txmodem/pkg/log"
)

// SessionConfig contains the timing and retry policy for one transfer.
type SessionConfig struct {
	// ReadTimeout bounds every single-byte read on the channel.
	ReadTimeout time.Duration

	// RetryLimit is the total number of attempts for one data block and
	// for the EOT exchange. Retries are bounded per block, not globally:
	// transient line noise should not abort a long transfer, but a dead
	// link must fail fast.
	RetryLimit int

	// HandshakeLimit bounds the reads spent waiting for the receiver's
	// opening NAK or 'C'.
	HandshakeLimit int
}

// Session drives one XMODEM send over a ByteChannel. It owns mode
// negotiation, block sequencing, the retry policy, and event emission.
// The protocol is lock-step half-duplex, so everything here runs in the
// calling goroutine; a Session must not be shared across concurrent sends.
type Session struct {
	config  SessionConfig
	channel ports.ByteChannel
	logger  log.Logger
	emitter ports.Emitter

	mode       protocol.Mode
	blockNum   byte
	blocksSent int
	bytesSent  int64
	bytesTotal int64
}

// NewSession creates a session bound to the given channel. The channel is
// borrowed; opening and closing it is the caller's business.
func NewSession(config SessionConfig, channel ports.ByteChannel, logger log.Logger, emitter ports.Emitter) *Session {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Session{
		config:  config,
		channel: channel,
		logger:  logger,
		emitter: emitter,
	}
}

// Run executes the full transfer: negotiation, the per-block send/ack
// loop, and EOT termination. It returns nil only when the receiver has
// acknowledged every block and the final EOT. On failure the termination
// event fires with success=false before the error propagates.
func (s *Session) Run(ctx context.Context, src ports.ChunkSource) (err error) {
	s.bytesTotal = src.Size()

	defer func() {
		if err != nil {
			s.emitTermination(false)
		}
	}()

	if err = s.negotiate(ctx); err != nil {
		return err
	}

	s.logger.Info("transfer negotiated",
		log.String("mode", s.mode.String()),
		log.Int64("bytes_total", s.bytesTotal),
	)
	if s.emitter != nil {
		s.emitter.OnInitialization(s.mode, s.bytesTotal)
	}

	// Block numbering is 1-indexed and wraps modulo 256.
	s.blockNum = 1

	for {
		if err = ctx.Err(); err != nil {
			return err
		}

		var chunk []byte
		chunk, err = src.Next()
		if err != nil {
			if errors.Is(err, ports.ErrNoMoreChunks) {
				break
			}
			err = &protocol.CommError{Reason: "read source", Block: int(s.blockNum), Err: err}
			return err
		}
		if len(chunk) == 0 {
			break
		}

		if err = s.sendBlock(ctx, chunk); err != nil {
			return err
		}
	}

	if err = s.terminate(ctx); err != nil {
		return err
	}

	s.logger.Info("transfer complete",
		log.Int("blocks", s.blocksSent),
		log.Int64("bytes", s.bytesSent),
	)
	s.emitTermination(true)
	return nil
}

// negotiate waits for the receiver to announce its mode: NAK selects the
// 8-bit checksum, 'C' selects CRC-16. Timeouts and stray bytes are
// retried up to HandshakeLimit.
func (s *Session) negotiate(ctx context.Context) error {
	for attempt := 1; attempt <= s.config.HandshakeLimit; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		b, err := s.channel.ReadByte(s.config.ReadTimeout)
		if err != nil {
			if errors.Is(err, ports.ErrTimeout) {
				s.logger.Debug("handshake timeout", log.Int("attempt", attempt))
				continue
			}
			return &protocol.CommError{Reason: "handshake read failed", Block: -1, Err: err}
		}

		switch b {
		case protocol.NAK:
			s.mode = protocol.ModeChecksum
			return nil
		case protocol.CRCRequest:
			s.mode = protocol.ModeCRC16
			return nil
		default:
			// Line noise while the receiver starts up is common; keep
			// listening until the handshake budget runs out.
			s.logger.Debug("unexpected handshake byte",
				log.Hex("byte", b),
				log.Int("attempt", attempt),
			)
		}
	}
	return &protocol.CommError{Reason: "handshake retries exhausted", Block: -1}
}

// sendBlock transmits one block and waits for its acknowledgment,
// resending the identical frame on NAK or timeout. CAN and any other
// unexpected reply are fatal: an explicit cancel is a deliberate receiver
// decision, not noise.
func (s *Session) sendBlock(ctx context.Context, payload []byte) error {
	frame := protocol.EncodeBlock(s.blockNum, payload, s.mode)

	for attempt := 1; attempt <= s.config.RetryLimit; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.channel.Write(frame); err != nil {
			return &protocol.CommError{Reason: "write block failed", Block: int(s.blockNum), Err: err}
		}

		reply, err := s.channel.ReadByte(s.config.ReadTimeout)
		if err != nil {
			if errors.Is(err, ports.ErrTimeout) {
				s.logger.Warn("block timed out",
					log.Int("block", int(s.blockNum)),
					log.Int("attempt", attempt),
				)
				continue
			}
			return &protocol.CommError{Reason: "read reply failed", Block: int(s.blockNum), Err: err}
		}

		switch reply {
		case protocol.ACK:
			s.bytesSent += int64(len(payload))
			s.blocksSent++
			if s.emitter != nil {
				s.emitter.OnBlockSent(s.blockNum, s.blocksSent, s.bytesSent, s.bytesTotal)
			}
			s.blockNum = protocol.NextBlockNumber(s.blockNum)
			return nil
		case protocol.NAK:
			s.logger.Warn("block rejected",
				log.Int("block", int(s.blockNum)),
				log.Int("attempt", attempt),
			)
		case protocol.CAN:
			return &protocol.CommError{
				Reason:   "transfer canceled by receiver",
				Block:    int(s.blockNum),
				Canceled: true,
			}
		default:
			return &protocol.CommError{
				Reason: fmt.Sprintf("unexpected reply 0x%02X", reply),
				Block:  int(s.blockNum),
			}
		}
	}
	return &protocol.CommError{Reason: "block retries exhausted", Block: int(s.blockNum)}
}

// terminate writes EOT and waits for the closing ACK, under the same
// retry policy as a data block.
func (s *Session) terminate(ctx context.Context) error {
	for attempt := 1; attempt <= s.config.RetryLimit; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.channel.Write([]byte{protocol.EOT}); err != nil {
			return &protocol.CommError{Reason: "write EOT failed", Block: -1, Err: err}
		}

		reply, err := s.channel.ReadByte(s.config.ReadTimeout)
		if err != nil {
			if errors.Is(err, ports.ErrTimeout) {
				s.logger.Warn("EOT timed out", log.Int("attempt", attempt))
				continue
			}
			return &protocol.CommError{Reason: "read EOT reply failed", Block: -1, Err: err}
		}

		switch reply {
		case protocol.ACK:
			return nil
		case protocol.NAK:
			s.logger.Warn("EOT rejected", log.Int("attempt", attempt))
		case protocol.CAN:
			return &protocol.CommError{Reason: "termination canceled by receiver", Block: -1, Canceled: true}
		default:
			return &protocol.CommError{
				Reason: fmt.Sprintf("unexpected EOT reply 0x%02X", reply),
				Block:  -1,
			}
		}
	}
	return &protocol.CommError{Reason: "termination retries exhausted", Block: -1}
}

func (s *Session) emitTermination(success bool) {
	if s.emitter != nil {
		s.emitter.OnTermination(success, s.blocksSent, s.bytesSent)
	}
}
