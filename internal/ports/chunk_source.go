package ports

import "io"

// ChunkSource yields the file to transfer as an ordered sequence of
// payload-sized chunks. The final chunk may be short; the block encoder
// pads it on the wire. Sources are consumed exactly once per send and are
// never re-read or seeked after streaming begins.
type ChunkSource interface {
	// Next returns the next chunk, or io.EOF when the source is
	// exhausted. A returned chunk is valid until the next call.
	Next() ([]byte, error)

	// Size returns the total number of source bytes, used for progress
	// reporting. It is fixed at construction.
	Size() int64
}

// ErrNoMoreChunks marks source exhaustion.
var ErrNoMoreChunks = io.EOF
