package engram

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/hupe1980/engram/internal/buffer"
	"github.com/hupe1980/engram/internal/conv"
)

// lengthSize is the width of every length prefix on the wire.
const lengthSize = 8

// Codec reads and writes a positional binary stream.
//
// Values must be read back in exactly the order and shape they were
// written; the stream carries no type tags other than polymorphic type ids.
// A Codec is not safe for concurrent use.
type Codec struct {
	buf       *buffer.Buffer
	version   uint32
	registry  *Registry
	logger    *Logger
	metrics   MetricsCollector
	maxLength uint64
}

// New creates an empty Codec ready for writing.
func New(optFns ...Option) *Codec {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	return newCodec(buffer.New(opts.capacity), opts)
}

// FromBytes creates a Codec that decodes a copy of data from the beginning.
func FromBytes(data []byte, optFns ...Option) *Codec {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	return newCodec(buffer.FromBytes(data), opts)
}

// ReadFrom creates a Codec over everything r yields until EOF.
func ReadFrom(r io.Reader, optFns ...Option) (*Codec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("engram: read stream: %w", err)
	}

	return FromBytes(data, optFns...), nil
}

func newCodec(buf *buffer.Buffer, opts options) *Codec {
	reg := opts.registry
	if reg == nil {
		reg = DefaultRegistry()
	}

	return &Codec{
		buf:       buf,
		version:   opts.version,
		registry:  reg,
		logger:    opts.logger,
		metrics:   opts.metrics,
		maxLength: opts.maxLength,
	}
}

// Bytes returns a copy of every byte written so far. The read position is
// not affected.
func (c *Codec) Bytes() []byte {
	return c.buf.Snapshot()
}

// WriteTo writes the full stream to w. It implements io.WriterTo.
func (c *Codec) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c.buf.Bytes())
	return int64(n), err
}

// Len returns the number of bytes in the stream.
func (c *Codec) Len() int { return c.buf.Len() }

// Offset returns the read position.
func (c *Codec) Offset() int { return c.buf.Offset() }

// Remaining returns the number of bytes left to read.
func (c *Codec) Remaining() int { return c.buf.Remaining() }

// Version returns the format version handed to user serialize and
// deserialize calls.
func (c *Codec) Version() uint32 { return c.version }

// SetVersion changes the format version.
func (c *Codec) SetVersion(v uint32) { c.version = v }

// Registry returns the registry used for polymorphic values.
func (c *Codec) Registry() *Registry { return c.registry }

// Rewind moves the read position back to the start of the stream.
func (c *Codec) Rewind() { c.buf.Rewind() }

// Reset discards the stream content.
func (c *Codec) Reset() { c.buf.Reset() }

// String returns a hex dump of the stream.
func (c *Codec) String() string {
	const digits = "0123456789abcdef"

	data := c.buf.Bytes()

	var sb strings.Builder
	sb.Grow(len(data) * 3)
	for _, b := range data {
		sb.WriteByte(digits[b>>4])
		sb.WriteByte(digits[b&0x0f])
		sb.WriteByte(' ')
	}

	return sb.String()
}

// consume is the single point where stream reads can fail.
func (c *Codec) consume(n int) ([]byte, error) {
	p, err := c.buf.Consume(n)
	if err != nil {
		return nil, c.fail(translateError(err))
	}
	return p, nil
}

func (c *Codec) fail(err error) error {
	c.metrics.RecordDecodeError(err)
	return err
}

func (c *Codec) writeLength(n int) {
	WriteValue(c, uint64(n))
}

// readLength reads a length prefix and validates it. unit is the encoded
// size of one element, or 0 when elements vary in size.
func (c *Codec) readLength(unit int) (int, error) {
	start := c.buf.Offset()

	n, err := ReadValue[uint64](c)
	if err != nil {
		return 0, err
	}

	if c.maxLength > 0 && n > c.maxLength {
		return 0, c.fail(fmt.Errorf("%w: %d > %d at offset %d", ErrLengthExceeded, n, c.maxLength, start))
	}

	if unit > 0 && n > uint64(c.buf.Remaining()/unit) {
		need := math.MaxInt
		if n <= uint64(math.MaxInt/unit) {
			need = int(n) * unit
		}
		return 0, c.fail(&UnderflowError{Offset: c.buf.Offset(), Need: need, Have: c.buf.Remaining()})
	}

	l, err := conv.Uint64ToInt(n)
	if err != nil {
		return 0, c.fail(fmt.Errorf("%w: %w", ErrLengthExceeded, err))
	}

	return l, nil
}

// capHint bounds a preallocation for n variable-size elements by what the
// stream could possibly hold.
func (c *Codec) capHint(n int) int {
	return min(n, c.buf.Remaining())
}
