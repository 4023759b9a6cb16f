package protocol

import (
	"bytes"
	"testing"
)

func TestEncodeBlockChecksumMode(t *testing.T) {
	payload := bytes.Repeat([]byte{0x42}, PayloadSize)
	frame := EncodeBlock(1, payload, ModeChecksum)

	if len(frame) != ModeChecksum.BlockSize() {
		t.Fatalf("frame length = %d, want %d", len(frame), ModeChecksum.BlockSize())
	}
	if frame[0] != SOH {
		t.Errorf("frame[0] = 0x%02X, want SOH", frame[0])
	}
	if frame[1] != 1 || frame[2] != 0xFE {
		t.Errorf("block number bytes = 0x%02X 0x%02X, want 0x01 0xFE", frame[1], frame[2])
	}
	if !bytes.Equal(frame[HeaderSize:HeaderSize+PayloadSize], payload) {
		t.Error("payload not copied verbatim")
	}
	if got, want := frame[len(frame)-1], Checksum(payload); got != want {
		t.Errorf("trailer = 0x%02X, want 0x%02X", got, want)
	}
}

func TestEncodeBlockCRCMode(t *testing.T) {
	payload := []byte("hello, xmodem")
	frame := EncodeBlock(7, payload, ModeCRC16)

	if len(frame) != ModeCRC16.BlockSize() {
		t.Fatalf("frame length = %d, want %d", len(frame), ModeCRC16.BlockSize())
	}
	if frame[1] != 7 || frame[2] != 0xF8 {
		t.Errorf("block number bytes = 0x%02X 0x%02X, want 0x07 0xF8", frame[1], frame[2])
	}

	// The CRC covers the padded payload, MSB first.
	padded := frame[HeaderSize : HeaderSize+PayloadSize]
	crc := CRC16(padded)
	if frame[len(frame)-2] != byte(crc>>8) || frame[len(frame)-1] != byte(crc) {
		t.Errorf("CRC trailer = 0x%02X%02X, want 0x%04X",
			frame[len(frame)-2], frame[len(frame)-1], crc)
	}
}

func TestEncodeBlockPadsShortPayload(t *testing.T) {
	payload := bytes.Repeat([]byte{0x11}, 44)
	frame := EncodeBlock(3, payload, ModeChecksum)

	body := frame[HeaderSize : HeaderSize+PayloadSize]
	if !bytes.Equal(body[:44], payload) {
		t.Error("payload prefix mangled")
	}
	for i := 44; i < PayloadSize; i++ {
		if body[i] != SUB {
			t.Fatalf("padding byte %d = 0x%02X, want SUB", i, body[i])
		}
	}
	// The trailer covers the padded payload, not the short one.
	if got, want := frame[len(frame)-1], Checksum(body); got != want {
		t.Errorf("trailer = 0x%02X, want 0x%02X", got, want)
	}
}

func TestEncodeBlockNumberWraparound(t *testing.T) {
	// The 254th, 255th, and 256th blocks of a long transfer carry
	// numbers 254, 255, 0: modulo 256, never skipping to 1.
	tests := []struct {
		num        byte
		complement byte
	}{
		{254, 0x01},
		{255, 0x00},
		{0, 0xFF},
	}

	payload := make([]byte, PayloadSize)
	for _, tt := range tests {
		frame := EncodeBlock(tt.num, payload, ModeCRC16)
		if frame[1] != tt.num {
			t.Errorf("block number byte = %d, want %d", frame[1], tt.num)
		}
		if frame[2] != tt.complement {
			t.Errorf("complement of %d = 0x%02X, want 0x%02X", tt.num, frame[2], tt.complement)
		}
	}
}

func TestNextBlockNumber(t *testing.T) {
	if got := NextBlockNumber(254); got != 255 {
		t.Errorf("NextBlockNumber(254) = %d, want 255", got)
	}
	if got := NextBlockNumber(255); got != 0 {
		t.Errorf("NextBlockNumber(255) = %d, want 0", got)
	}
	if got := NextBlockNumber(0); got != 1 {
		t.Errorf("NextBlockNumber(0) = %d, want 1", got)
	}
}

func TestEncodeBlockOversizePayloadPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for oversize payload")
		}
	}()
	EncodeBlock(1, make([]byte, PayloadSize+1), ModeChecksum)
}
