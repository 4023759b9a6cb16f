// Package protocol contains the wire-level pieces of the XMODEM send
// protocol: control bytes, transfer modes, the checksum engine, and the
// block encoder.
//
// This is the innermost layer. It has no dependencies on channels, files,
// or logging and consists of pure functions over byte slices, so it is
// testable without mocks.
//
// # Entities
//
//   - [Mode]: the negotiated integrity mode (checksum vs CRC-16)
//   - [EncodeBlock]: assembles one 132/133-byte wire frame
//   - [Checksum], [CRC16]: the two trailer algorithms
//
// The package also defines the two error kinds the module surfaces,
// [ConfigError] and [CommError]; they live here so that both the internal
// session and the public API can share them without import cycles.
package protocol
