package engram

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Code unit widths of the text kinds.
const (
	utf16Unit = 2
	utf32Unit = 4
)

var (
	utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	utf32LE = utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
)

// WriteString writes s as a length prefix followed by its UTF-8 bytes.
func (c *Codec) WriteString(s string) {
	c.writeLength(len(s))
	copy(c.buf.Extend(len(s)), s)
}

// ReadString reads a value written by WriteString.
func (c *Codec) ReadString() (string, error) {
	n, err := c.readLength(1)
	if err != nil {
		return "", err
	}
	p, err := c.consume(n)
	if err != nil {
		return "", err
	}
	return string(p), nil
}

// WriteBytes writes p as a length prefix followed by the raw bytes.
func (c *Codec) WriteBytes(p []byte) {
	c.writeLength(len(p))
	c.buf.Append(p)
}

// ReadBytes reads a value written by WriteBytes. The result never aliases
// the stream.
func (c *Codec) ReadBytes() ([]byte, error) {
	n, err := c.readLength(1)
	if err != nil {
		return nil, err
	}
	p, err := c.consume(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, p)
	return out, nil
}

// WriteUTF16 writes s as a count of UTF-16 code units followed by the
// little-endian units. Invalid UTF-8 in s is replaced by U+FFFD.
func (c *Codec) WriteUTF16(s string) error {
	return c.writeEncoded(utf16LE, utf16Unit, s)
}

// ReadUTF16 reads a value written by WriteUTF16.
func (c *Codec) ReadUTF16() (string, error) {
	return c.readEncoded(utf16LE, utf16Unit)
}

// WriteUTF32 writes s as a count of UTF-32 code units followed by the
// little-endian units.
func (c *Codec) WriteUTF32(s string) error {
	return c.writeEncoded(utf32LE, utf32Unit, s)
}

// ReadUTF32 reads a value written by WriteUTF32.
func (c *Codec) ReadUTF32() (string, error) {
	return c.readEncoded(utf32LE, utf32Unit)
}

// WriteWide writes a wide string. Wide strings use four bytes per code unit
// and are byte-identical to WriteUTF32 on every host.
func (c *Codec) WriteWide(s string) error {
	return c.WriteUTF32(s)
}

// ReadWide reads a value written by WriteWide.
func (c *Codec) ReadWide() (string, error) {
	return c.ReadUTF32()
}

func (c *Codec) writeEncoded(enc encoding.Encoding, unit int, s string) error {
	p, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return fmt.Errorf("engram: encode text: %w", err)
	}
	c.writeLength(len(p) / unit)
	c.buf.Append(p)
	return nil
}

func (c *Codec) readEncoded(enc encoding.Encoding, unit int) (string, error) {
	n, err := c.readLength(unit)
	if err != nil {
		return "", err
	}
	p, err := c.consume(n * unit)
	if err != nil {
		return "", err
	}
	s, err := enc.NewDecoder().Bytes(p)
	if err != nil {
		return "", c.fail(fmt.Errorf("engram: decode text at offset %d: %w", c.buf.Offset()-len(p), err))
	}
	return string(s), nil
}
