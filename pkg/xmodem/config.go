package xmodem

import (
	"fmt"
	"time"

	"github.com/modemtools/txmodem/internal/protocol"
)

// Default channel parameters, matching what XMODEM-era equipment and
// bootloaders conventionally expect.
const (
	DefaultBaudRate    = 115200
	DefaultDataBits    = 8
	DefaultParity      = "none"
	DefaultStopBits    = 1
	DefaultReadTimeout = 10 * time.Second
)

// Config describes the serial channel for a sender that owns its channel.
// The protocol core never looks at these fields beyond opening the port.
type Config struct {
	// Device is the serial device to open, e.g. "/dev/ttyUSB0" or "COM3".
	Device string

	// BaudRate is the line speed. Defaults to 115200.
	BaudRate int

	// DataBits is the word size, 5 through 8. Defaults to 8.
	DataBits int

	// Parity is one of "none", "even", "odd", "mark", "space".
	// Defaults to "none".
	Parity string

	// StopBits is 1 or 2. Defaults to 1.
	StopBits int

	// ReadTimeout bounds every single-byte read during the transfer.
	// Must be positive. Defaults to 10s.
	ReadTimeout time.Duration
}

// SetDefaults fills zero-valued fields with the defaults above.
func (c *Config) SetDefaults() {
	if c.BaudRate == 0 {
		c.BaudRate = DefaultBaudRate
	}
	if c.DataBits == 0 {
		c.DataBits = DefaultDataBits
	}
	if c.Parity == "" {
		c.Parity = DefaultParity
	}
	if c.StopBits == 0 {
		c.StopBits = DefaultStopBits
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
}

// Validate checks the configuration. Violations are ConfigErrors.
func (c *Config) Validate() error {
	if c.Device == "" {
		return protocol.NewConfigError("no serial device specified", nil)
	}
	if c.BaudRate <= 0 {
		return protocol.NewConfigError(fmt.Sprintf("invalid baud rate %d", c.BaudRate), nil)
	}
	if c.DataBits < 5 || c.DataBits > 8 {
		return protocol.NewConfigError(fmt.Sprintf("invalid data bits %d", c.DataBits), nil)
	}
	switch c.Parity {
	case "none", "even", "odd", "mark", "space":
	default:
		return protocol.NewConfigError(fmt.Sprintf("invalid parity %q", c.Parity), nil)
	}
	if c.StopBits != 1 && c.StopBits != 2 {
		return protocol.NewConfigError(fmt.Sprintf("invalid stop bits %d", c.StopBits), nil)
	}
	if c.ReadTimeout <= 0 {
		return protocol.NewConfigError("read timeout must be positive", nil)
	}
	return nil
}
