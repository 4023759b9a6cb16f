// Package xmodem implements the sender side of the XMODEM and XMODEM-CRC
// file-transfer protocols over a serial (or serial-like) byte channel.
//
// # Usage
//
// Open the port from configuration (the channel is owned by the sender
// and closed when Send returns):
//
//	s, err := xmodem.New(xmodem.Config{Device: "/dev/ttyUSB0"})
//	if err != nil {
//	    return err
//	}
//	err = s.SendFile(ctx, "firmware.bin")
//
// Or borrow an already-open channel (left open regardless of outcome):
//
//	s, err := xmodem.NewWithChannel(myChannel)
//	if err != nil {
//	    return err
//	}
//	err = s.Send(ctx, xmodem.NewBytesSource(payload))
//
// # Events
//
// An optional [EventHandler] observes negotiation, per-block progress,
// and termination. Handlers run synchronously on the transfer goroutine
// and must return promptly.
//
// # Errors
//
// Send surfaces exactly two error kinds: [*ConfigError] before any
// protocol traffic, and [*CommError] once the protocol is in flight.
// A failed transfer cannot be resumed; callers restart from block 1.
package xmodem
