package term

import (
	"bufio"
	"io"
)

// InputResetter is implemented by transports which can drop bytes received
// by the device but not read yet (e.g. serial ports).
type InputResetter interface {
	ResetInputBuffer() error
}

// Stream reads a transport one byte at a time and knows which bytes have
// already arrived.
type Stream struct {
	src io.Reader
	r   *bufio.Reader
}

// NewStream wraps a transport.
func NewStream(src io.Reader) *Stream {
	return &Stream{src: src, r: bufio.NewReader(src)}
}

// ReadByte blocks until a byte is available.
func (s *Stream) ReadByte() (byte, error) {
	return s.r.ReadByte()
}

// Buffered returns how many bytes can be read without blocking.
func (s *Stream) Buffered() int {
	return s.r.Buffered()
}

// Drain discards every byte already received. Nothing blocks.
func (s *Stream) Drain() (int, error) {
	n, _ := s.r.Discard(s.r.Buffered())
	if resetter, ok := s.src.(InputResetter); ok {
		return n, resetter.ResetInputBuffer()
	}
	return n, nil
}
