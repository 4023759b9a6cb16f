// Package fs provides file-system backed chunk sources for the transfer
// core, plus a watch helper for files still being written.
package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/modemtools/txmodem/internal/protocol"
)

// FileSource streams a regular file as payload-sized chunks. The size is
// captured at construction; the file is read strictly forward.
type FileSource struct {
	file      *os.File
	size      int64
	buf       []byte
	exhausted bool
}

// NewFileSource opens path for streaming. An unreadable file is a
// configuration error: the transfer has not started yet.
func NewFileSource(path string, chunkSize int) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, protocol.NewConfigError(fmt.Sprintf("open input file %q", path), err)
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, protocol.NewConfigError(fmt.Sprintf("stat input file %q", path), err)
	}

	return &FileSource{
		file: f,
		size: st.Size(),
		buf:  make([]byte, chunkSize),
	}, nil
}

// Next returns the next chunk, or io.EOF when the file is done. The
// returned slice is reused by the following call.
func (s *FileSource) Next() ([]byte, error) {
	if s.exhausted {
		return nil, io.EOF
	}

	n, err := io.ReadFull(s.file, s.buf)
	switch err {
	case nil:
		return s.buf[:n], nil
	case io.ErrUnexpectedEOF:
		// Short final chunk; the encoder pads it on the wire.
		s.exhausted = true
		return s.buf[:n], nil
	case io.EOF:
		s.exhausted = true
		return nil, io.EOF
	default:
		return nil, err
	}
}

// Size returns the file size recorded at construction.
func (s *FileSource) Size() int64 {
	return s.size
}

// Close releases the underlying file.
func (s *FileSource) Close() error {
	return s.file.Close()
}

// BytesSource streams an in-memory buffer as payload-sized chunks.
type BytesSource struct {
	data      []byte
	chunkSize int
	off       int
}

// NewBytesSource wraps data in a ChunkSource.
func NewBytesSource(data []byte, chunkSize int) *BytesSource {
	return &BytesSource{data: data, chunkSize: chunkSize}
}

// Next returns the next chunk, or io.EOF when the buffer is done.
func (s *BytesSource) Next() ([]byte, error) {
	if s.off >= len(s.data) {
		return nil, io.EOF
	}
	end := s.off + s.chunkSize
	if end > len(s.data) {
		end = len(s.data)
	}
	chunk := s.data[s.off:end]
	s.off = end
	return chunk, nil
}

// Size returns the total buffer length.
func (s *BytesSource) Size() int64 {
	return int64(len(s.data))
}
