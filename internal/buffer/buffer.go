package buffer

import (
	"errors"
	"fmt"
)

// ErrUnderflow is returned when a read asks for more bytes than remain.
var ErrUnderflow = errors.New("buffer underflow")

// Buffer is an append-only byte sequence with a forward-only read cursor.
type Buffer struct {
	b   []byte
	off int
}

// New creates an empty Buffer with the given initial capacity.
func New(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{b: make([]byte, 0, capacity)}
}

// FromBytes creates a Buffer holding a copy of data, ready to be read from offset 0.
func FromBytes(data []byte) *Buffer {
	b := make([]byte, len(data))
	copy(b, data)
	return &Buffer{b: b}
}

// Append writes p at the end of the buffer.
func (buf *Buffer) Append(p []byte) {
	buf.b = append(buf.b, p...)
}

// AppendByte writes a single byte at the end of the buffer.
func (buf *Buffer) AppendByte(v byte) {
	buf.b = append(buf.b, v)
}

// Extend grows the written length by n bytes and returns the new region for
// the caller to fill in place. The region is zeroed.
func (buf *Buffer) Extend(n int) []byte {
	if n <= 0 {
		return nil
	}
	buf.Grow(n)
	start := len(buf.b)
	buf.b = buf.b[:start+n]
	clear(buf.b[start:])
	return buf.b[start:]
}

// Grow ensures there is room for another n bytes without reallocation.
func (buf *Buffer) Grow(n int) {
	if n <= 0 || cap(buf.b)-len(buf.b) >= n {
		return
	}
	grown := make([]byte, len(buf.b), 2*cap(buf.b)+n)
	copy(grown, buf.b)
	buf.b = grown
}

// Consume returns the next n bytes and advances the read cursor.
//
// The returned slice aliases the buffer and is only valid until the next
// write. Callers that keep the bytes must copy them.
func (buf *Buffer) Consume(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative read of %d bytes at offset %d", ErrUnderflow, n, buf.off)
	}
	if n > len(buf.b)-buf.off {
		return nil, &ShortReadError{Offset: buf.off, Need: n, Have: len(buf.b) - buf.off}
	}
	out := buf.b[buf.off : buf.off+n : buf.off+n]
	buf.off += n
	return out, nil
}

// ConsumeByte returns the next byte and advances the read cursor.
func (buf *Buffer) ConsumeByte() (byte, error) {
	if buf.off >= len(buf.b) {
		return 0, &ShortReadError{Offset: buf.off, Need: 1, Have: 0}
	}
	v := buf.b[buf.off]
	buf.off++
	return v, nil
}

// Snapshot returns a copy of every written byte. The read cursor is not moved.
func (buf *Buffer) Snapshot() []byte {
	out := make([]byte, len(buf.b))
	copy(out, buf.b)
	return out
}

// Bytes returns the written bytes without copying.
func (buf *Buffer) Bytes() []byte {
	return buf.b
}

// Len returns the number of written bytes.
func (buf *Buffer) Len() int {
	return len(buf.b)
}

// Offset returns the read cursor position.
func (buf *Buffer) Offset() int {
	return buf.off
}

// Remaining returns the number of bytes between the read cursor and the write end.
func (buf *Buffer) Remaining() int {
	return len(buf.b) - buf.off
}

// Rewind moves the read cursor back to the start.
func (buf *Buffer) Rewind() {
	buf.off = 0
}

// Reset drops all content and rewinds the cursor, keeping the allocation.
func (buf *Buffer) Reset() {
	buf.b = buf.b[:0]
	buf.off = 0
}

// ShortReadError describes a read that asked for more bytes than remain.
type ShortReadError struct {
	Offset int
	Need   int
	Have   int
}

func (e *ShortReadError) Error() string {
	return fmt.Sprintf("%v: need %d bytes at offset %d, have %d", ErrUnderflow, e.Need, e.Offset, e.Have)
}

func (e *ShortReadError) Unwrap() error { return ErrUnderflow }
