// Package buffer provides the growable byte sequence that backs an engram Codec.
//
// A Buffer has two independent ends:
//
//   - the write end, which only ever appends (Append, Grow)
//   - the read cursor, which starts at offset 0 and only moves forward (Consume)
//
// Reads never pass the write end. A short read returns an error wrapping
// ErrUnderflow and leaves the cursor where it was.
//
// Buffer is not safe for concurrent use.
package buffer
