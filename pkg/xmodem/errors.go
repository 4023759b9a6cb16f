package xmodem

import (
	"errors"

	"github.com/modemtools/txmodem/internal/protocol"
)

// ConfigError is returned before any protocol traffic: invalid or missing
// configuration, or failure to open the channel. Never retried.
type ConfigError = protocol.ConfigError

// CommError is returned once the protocol is in flight: handshake
// exhaustion, per-block retry exhaustion, an explicit cancel, or an
// unexpected response byte. An internally-owned channel is always closed
// before a CommError propagates.
type CommError = protocol.CommError

// CanceledByReceiver reports whether err is a CommError caused by the
// receiver sending CAN.
func CanceledByReceiver(err error) bool {
	var ce *CommError
	return errors.As(err, &ce) && ce.Canceled
}
