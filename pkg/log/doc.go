// Package log provides the logging abstraction used throughout txmodem.
//
// The library core never logs through a concrete backend; it takes a
// [Logger] and defaults to the no-op implementation. The CLI wires in the
// zerolog adapter.
//
// Use the zerolog adapter:
//
//	logger := log.NewZerologAdapter()
//
// or silence the library entirely:
//
//	logger := log.NewNoopLogger()
//
// Any structured logging framework can be plugged in by implementing the
// four-method Logger interface.
package log
