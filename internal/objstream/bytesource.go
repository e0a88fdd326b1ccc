package objstream

import (
	"errors"
	"io"
)

// ByteSource is the sequential byte input the decoder reads from: a file, a
// socket, or an in-memory buffer. Seeking backward is never required.
//
// This is component B of the decoder: everything above it (block-data
// framing, tag dispatch, record decoding) is built on read_exact/skip alone.
type ByteSource interface {
	// ReadExact reads exactly n bytes, or fails with ErrEndOfStream if fewer
	// remain.
	ReadExact(n int) ([]byte, error)
	// Skip discards exactly n bytes, or fails with ErrEndOfStream if fewer
	// remain.
	Skip(n int) error
}

// readerSource adapts any io.Reader into a ByteSource, grounded on the
// teacher's BinaryReader which wraps a bufio.Reader the same way.
type readerSource struct {
	r io.Reader
}

// NewByteSource wraps r as a ByteSource. r is borrowed for the lifetime of
// the decoder and is never closed by this package.
func NewByteSource(r io.Reader) ByteSource {
	return &readerSource{r: r}
}

func (s *readerSource) ReadExact(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrEndOfStream
		}
		return nil, err
	}
	return buf, nil
}

func (s *readerSource) Skip(n int) error {
	if n == 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, s.r, int64(n)); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrEndOfStream
		}
		return err
	}
	return nil
}
