package protocol

import "github.com/sigurn/crc16"

// xmodemTable is the CRC-16/XMODEM parameter set: polynomial 0x1021,
// initial value 0x0000, no reflection, no final XOR.
var xmodemTable = crc16.MakeTable(crc16.CRC16_XMODEM)

// Checksum computes the 8-bit arithmetic checksum of the payload: the sum
// of all bytes truncated modulo 256.
func Checksum(payload []byte) byte {
	var sum byte
	for _, b := range payload {
		sum += b
	}
	return sum
}

// CRC16 computes the CRC-16/XMODEM of the payload. On the wire the result
// is sent most-significant byte first.
func CRC16(payload []byte) uint16 {
	return crc16.Checksum(payload, xmodemTable)
}
