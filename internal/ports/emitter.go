package ports

import "github.com/modemtools/txmodem/internal/protocol"

// Emitter receives synchronous notifications as the transfer progresses.
// The session calls it from its own goroutine and assumes every method
// returns promptly. Implementations must not call back into the session.
type Emitter interface {
	// OnInitialization fires exactly once, after mode negotiation succeeds
	// and before the first block is written.
	OnInitialization(mode protocol.Mode, bytesTotal int64)

	// OnBlockSent fires once per acknowledged block (not per attempt).
	OnBlockSent(blockNumber byte, blocksSent int, bytesSent, bytesTotal int64)

	// OnTermination fires exactly once, after the EOT exchange on success
	// or before the error propagates on failure.
	OnTermination(success bool, blocksSent int, bytesSent int64)
}
