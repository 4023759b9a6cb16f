// Package serial implements the ports.ByteChannel contract on top of a
// physical serial port, via go.bug.st/serial.
package serial

import (
	"fmt"
	"time"

	bugst "go.bug.st/serial"

	"github.com/modemtools/txmodem/internal/ports"
	"github.com/modemtools/txmodem/internal/protocol"
)

// Settings describes the serial line to open. Zero values are filled by
// the caller (pkg/xmodem applies the protocol-conventional defaults).
type Settings struct {
	Device   string
	BaudRate int
	DataBits int
	Parity   string // "none", "even", "odd", "mark", "space"
	StopBits int    // 1 or 2
}

// Channel is a ByteChannel over an open serial port.
type Channel struct {
	port bugst.Port

	// lastTimeout avoids a termios round trip on every single-byte read;
	// the session uses one timeout for a whole transfer.
	lastTimeout time.Duration
}

// Open opens the serial device with the given settings. Failures to open
// or configure the port are configuration errors: no protocol traffic has
// happened yet.
func Open(st Settings) (*Channel, error) {
	mode, err := buildMode(st)
	if err != nil {
		return nil, err
	}

	port, err := bugst.Open(st.Device, mode)
	if err != nil {
		return nil, protocol.NewConfigError(fmt.Sprintf("open serial device %q", st.Device), err)
	}
	return &Channel{port: port, lastTimeout: -1}, nil
}

// ReadByte blocks until one byte arrives or the timeout expires.
func (c *Channel) ReadByte(timeout time.Duration) (byte, error) {
	if timeout != c.lastTimeout {
		if err := c.port.SetReadTimeout(timeout); err != nil {
			return 0, err
		}
		c.lastTimeout = timeout
	}

	var buf [1]byte
	n, err := c.port.Read(buf[:])
	if err != nil {
		return 0, err
	}
	// go.bug.st reports an expired read timeout as a zero-length read.
	if n == 0 {
		return 0, ports.ErrTimeout
	}
	return buf[0], nil
}

// Write sends the whole buffer and drains it to the line before
// returning, so the lock-step read that follows sees a fully transmitted
// frame.
func (c *Channel) Write(p []byte) error {
	for len(p) > 0 {
		n, err := c.port.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return c.port.Drain()
}

// Close releases the port.
func (c *Channel) Close() error {
	return c.port.Close()
}

func buildMode(st Settings) (*bugst.Mode, error) {
	mode := &bugst.Mode{
		BaudRate: st.BaudRate,
		DataBits: st.DataBits,
	}

	switch st.Parity {
	case "", "none":
		mode.Parity = bugst.NoParity
	case "even":
		mode.Parity = bugst.EvenParity
	case "odd":
		mode.Parity = bugst.OddParity
	case "mark":
		mode.Parity = bugst.MarkParity
	case "space":
		mode.Parity = bugst.SpaceParity
	default:
		return nil, protocol.NewConfigError(fmt.Sprintf("unknown parity %q", st.Parity), nil)
	}

	switch st.StopBits {
	case 1:
		mode.StopBits = bugst.OneStopBit
	case 2:
		mode.StopBits = bugst.TwoStopBits
	default:
		return nil, protocol.NewConfigError(fmt.Sprintf("unsupported stop bits %d", st.StopBits), nil)
	}

	return mode, nil
}
