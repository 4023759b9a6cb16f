package protocol

import "fmt"

// ConfigError reports a problem detected before any protocol traffic:
// invalid configuration or failure to open the underlying channel.
// It is never retried.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("xmodem: configuration: %s: %v", e.Reason, e.Err)
	}
	return "xmodem: configuration: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError builds a ConfigError with an optional cause.
func NewConfigError(reason string, err error) *ConfigError {
	return &ConfigError{Reason: reason, Err: err}
}

// CommError reports an unrecoverable protocol failure during negotiation
// or transfer: handshake exhaustion, per-block retry exhaustion, an
// explicit cancel, or an unexpected response byte. The session is always
// torn down before a CommError propagates.
type CommError struct {
	Reason string

	// Block is the wire block number in flight when the failure occurred,
	// or -1 when the failure is not tied to a data block.
	Block int

	// Canceled is true when the receiver sent CAN.
	Canceled bool

	Err error
}

func (e *CommError) Error() string {
	msg := "xmodem: " + e.Reason
	if e.Block >= 0 {
		msg = fmt.Sprintf("%s (block %d)", msg, e.Block)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *CommError) Unwrap() error { return e.Err }
