package protocol

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConfigErrorMessage(t *testing.T) {
	err := NewConfigError("no serial device specified", nil)
	if !strings.Contains(err.Error(), "no serial device specified") {
		t.Errorf("unexpected message: %q", err.Error())
	}

	cause := errors.New("permission denied")
	err = NewConfigError(`open serial device "/dev/ttyUSB0"`, cause)
	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable through errors.Is")
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("cause missing from message: %q", err.Error())
	}
}

func TestCommErrorMessage(t *testing.T) {
	err := &CommError{Reason: "block retries exhausted", Block: 42}
	if !strings.Contains(err.Error(), "block 42") {
		t.Errorf("block number missing from message: %q", err.Error())
	}

	err = &CommError{Reason: "handshake retries exhausted", Block: -1}
	if strings.Contains(err.Error(), "block") {
		t.Errorf("non-block failure should not mention a block: %q", err.Error())
	}
}

func TestCommErrorAs(t *testing.T) {
	inner := &CommError{Reason: "transfer canceled by receiver", Block: 3, Canceled: true}
	wrapped := fmt.Errorf("send: %w", inner)

	var ce *CommError
	if !errors.As(wrapped, &ce) {
		t.Fatal("errors.As failed to find CommError")
	}
	if !ce.Canceled {
		t.Error("Canceled flag lost through wrapping")
	}
}
