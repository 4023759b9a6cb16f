package protocol

// EncodeBlock assembles one wire frame: SOH, the block number, its
// one's-complement, the payload padded to PayloadSize with SUB, and the
// mode's integrity trailer.
//
// Block numbers start at 1 and wrap modulo 256 (255 is followed by 0,
// never 1); callers get that for free from byte arithmetic. EncodeBlock
// panics if the payload exceeds PayloadSize; the session never reads
// more than one payload's worth at a time.
func EncodeBlock(num byte, payload []byte, mode Mode) []byte {
	if len(payload) > PayloadSize {
		panic("protocol: payload exceeds block payload size")
	}

	frame := make([]byte, 0, mode.BlockSize())
	frame = append(frame, SOH, num, 0xFF-num)
	frame = append(frame, payload...)
	for i := len(payload); i < PayloadSize; i++ {
		frame = append(frame, SUB)
	}

	body := frame[HeaderSize:]
	switch mode {
	case ModeCRC16:
		crc := CRC16(body)
		frame = append(frame, byte(crc>>8), byte(crc))
	default:
		frame = append(frame, Checksum(body))
	}
	return frame
}

// NextBlockNumber returns the block number that follows n on the wire.
// The sequence is 1, 2, ... 255, 0, 1, ...: modulo 256, not 255.
func NextBlockNumber(n byte) byte {
	return n + 1
}
