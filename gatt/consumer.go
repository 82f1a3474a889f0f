package gatt

import (
	"bytes"
	"encoding/binary"
	"errors"
)

var (
	// ErrInvalidLength is returned when a write payload is too short or
	// too long for the value being decoded.
	ErrInvalidLength = errors.New("gatt: invalid attribute value length")

	// ErrInsufficientData reports a truncated payload. It is retained for
	// handlers that need to distinguish truncation from an exact-size
	// mismatch; WriteConsumer itself reports ErrInvalidLength for both.
	ErrInsufficientData = errors.New("gatt: insufficient data")
)

// A WriteConsumer is a bounds-checked cursor over a received write payload.
// It borrows the buffer for the duration of the write event and does not
// retain it. A consumer whose starting offset lies beyond the buffer fails
// every read, including zero-length ones.
type WriteConsumer struct {
	offset int
	buf    []byte
}

// NewWriteConsumer returns a cursor over buf starting at offset.
func NewWriteConsumer(buf []byte, offset int) *WriteConsumer {
	return &WriteConsumer{offset: offset, buf: buf}
}

// Remaining returns the number of unconsumed bytes. It reports 0, never a
// negative count, when the offset lies beyond the buffer.
func (c *WriteConsumer) Remaining() int {
	if len(c.buf) < c.offset {
		return 0
	}
	return len(c.buf) - c.offset
}

// available reports whether n more bytes may be consumed. It fails even
// zero-byte reads once the offset is beyond the buffer, so a malformed
// event can never produce a view past the payload.
func (c *WriteConsumer) available(n int) bool {
	if c.offset < 0 || len(c.buf) < c.offset {
		return false
	}
	return n <= len(c.buf)-c.offset
}

// TakeSpan returns a view of the next n bytes without copying, advancing
// the cursor past them.
func (c *WriteConsumer) TakeSpan(n int) ([]byte, error) {
	if n < 0 || !c.available(n) {
		return nil, ErrInvalidLength
	}
	s := c.buf[c.offset : c.offset+n]
	c.offset += n
	return s, nil
}

// Consume decodes a little-endian value of type T from the cursor and
// advances past it. T must be a fixed-size type as understood by
// encoding/binary. The bytes are copied into a fresh, correctly aligned
// value; the source buffer is never reinterpreted in place. On failure the
// cursor is left where it was.
func Consume[T any](c *WriteConsumer) (T, error) {
	var v T
	n := binary.Size(v)
	if n < 0 || !c.available(n) {
		return v, ErrInvalidLength
	}
	if err := binary.Read(bytes.NewReader(c.buf[c.offset:c.offset+n]), binary.LittleEndian, &v); err != nil {
		return v, ErrInvalidLength
	}
	c.offset += n
	return v, nil
}

// Exactly decodes as Consume does, but fails unless the value accounts for
// every remaining byte. It is used for characteristics whose writes are
// all-or-nothing, with no trailing garbage tolerated.
func Exactly[T any](c *WriteConsumer) (T, error) {
	var v T
	if binary.Size(v) != c.Remaining() {
		return v, ErrInvalidLength
	}
	return Consume[T](c)
}
