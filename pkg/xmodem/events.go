package xmodem

import (
	"time"

	"github.com/modemtools/txmodem/internal/protocol"
)

// InitializationEvent fires once, after mode negotiation succeeds and
// before the first block is written.
type InitializationEvent struct {
	// Mode is the negotiated integrity mode.
	Mode Mode

	// BytesTotal is the size of the source being sent.
	BytesTotal int64
}

// BlockSentEvent fires once per acknowledged block (not per attempt).
type BlockSentEvent struct {
	// BlockNumber is the wire block number, 1-indexed modulo 256.
	BlockNumber byte

	// BlocksSent counts acknowledged blocks since the transfer started.
	BlocksSent int

	// BytesSent is cumulative source bytes acknowledged so far. Padding
	// bytes exist only on the wire and are never counted here.
	BytesSent int64

	// BytesTotal is the size of the source being sent.
	BytesTotal int64
}

// TerminationEvent fires exactly once per Send, on both success and
// failure.
type TerminationEvent struct {
	// Success is true when every block and the final EOT were
	// acknowledged.
	Success bool

	// BlocksSent counts the blocks acknowledged before termination.
	BlocksSent int

	// BytesSent is the source bytes acknowledged before termination.
	BytesSent int64

	// Elapsed is the time since negotiation completed; zero when the
	// handshake never succeeded.
	Elapsed time.Duration
}

// EventHandler observes transfer progress. All methods are called
// synchronously from the sending goroutine, in order: OnInitialization
// once, OnBlockSent per acknowledged block, OnTermination once.
// Implementations must return promptly; a slow handler stalls the
// protocol and burns the receiver's timeout budget.
type EventHandler interface {
	OnInitialization(e InitializationEvent)
	OnBlockSent(e BlockSentEvent)
	OnTermination(e TerminationEvent)
}

// emitterWrapper adapts an EventHandler to the internal emitter port.
type emitterWrapper struct {
	handler EventHandler
	start   time.Time
}

func (w *emitterWrapper) OnInitialization(mode protocol.Mode, bytesTotal int64) {
	w.start = time.Now()
	w.handler.OnInitialization(InitializationEvent{
		Mode:       mode,
		BytesTotal: bytesTotal,
	})
}

func (w *emitterWrapper) OnBlockSent(blockNumber byte, blocksSent int, bytesSent, bytesTotal int64) {
	w.handler.OnBlockSent(BlockSentEvent{
		BlockNumber: blockNumber,
		BlocksSent:  blocksSent,
		BytesSent:   bytesSent,
		BytesTotal:  bytesTotal,
	})
}

func (w *emitterWrapper) OnTermination(success bool, blocksSent int, bytesSent int64) {
	var elapsed time.Duration
	if !w.start.IsZero() {
		elapsed = time.Since(w.start)
	}
	w.handler.OnTermination(TerminationEvent{
		Success:    success,
		BlocksSent: blocksSent,
		BytesSent:  bytesSent,
		Elapsed:    elapsed,
	})
}
