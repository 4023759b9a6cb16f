// Package ports defines the interfaces (ports) that connect the transfer
// core to infrastructure adapters.
//
// The session in internal/app depends only on these interfaces. Concrete
// implementations live in internal/adapters (serial port, file system) and
// in test code (scripted channels, in-memory sources).
//
// # Port Interfaces
//
//   - [ByteChannel]: duplex byte stream with a per-read timeout
//   - [ChunkSource]: finite sequence of payload-sized chunks from a file
//   - [Emitter]: synchronous transfer progress notifications
//
// Keeping these boundaries narrow is what lets the protocol logic be
// exercised end to end without hardware.
package ports
