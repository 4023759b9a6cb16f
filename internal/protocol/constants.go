package protocol

// Control bytes exchanged on the line.
const (
	// SOH marks the start of a 128-byte data block.
	SOH byte = 0x01

	// EOT signals that no more blocks follow.
	EOT byte = 0x04

	// ACK acknowledges a block or the final EOT.
	ACK byte = 0x06

	// NAK rejects a block (or, during negotiation, requests checksum mode).
	NAK byte = 0x15

	// CAN is a deliberate cancel from the receiver. It is fatal, never retried.
	CAN byte = 0x18

	// CRCRequest is sent by CRC-capable receivers during negotiation ('C').
	CRCRequest byte = 0x43

	// SUB pads the final short block out to PayloadSize. Conventionally the
	// CP/M EOF marker; receivers strip trailing SUBs.
	SUB byte = 0x1A
)

const (
	// PayloadSize is the fixed data length carried by every block.
	PayloadSize = 128

	// HeaderSize covers SOH, the block number, and its one's-complement.
	HeaderSize = 3

	// DefaultRetryLimit is the total number of attempts allowed for one
	// block (and for the EOT exchange) before the transfer is abandoned.
	DefaultRetryLimit = 10

	// DefaultHandshakeLimit bounds how many reads the sender performs while
	// waiting for the receiver's NAK or 'C'.
	DefaultHandshakeLimit = 10
)

// Mode is the negotiated integrity mode for a transfer.
type Mode int

const (
	// ModeChecksum uses the original 8-bit arithmetic checksum trailer.
	ModeChecksum Mode = iota

	// ModeCRC16 uses a CRC-16/XMODEM trailer, selected when the receiver
	// opens with 'C'.
	ModeCRC16
)

// TrailerSize returns the number of trailer bytes the mode appends.
func (m Mode) TrailerSize() int {
	if m == ModeCRC16 {
		return 2
	}
	return 1
}

// BlockSize returns the full wire size of one block in this mode.
func (m Mode) BlockSize() int {
	return HeaderSize + PayloadSize + m.TrailerSize()
}

func (m Mode) String() string {
	switch m {
	case ModeChecksum:
		return "checksum"
	case ModeCRC16:
		return "crc16"
	default:
		return "unknown"
	}
}
