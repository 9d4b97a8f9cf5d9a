package engram

import (
	"github.com/hupe1980/engram/internal/conv"
)

// WriteValue appends v using its fixed-width little-endian representation.
// Named types, including enums declared over an integer type, are written
// with the width of their underlying type.
func WriteValue[T Fixed](c *Codec, v T) {
	putFixed(c.buf.Extend(sizeOf[T]()), v)
}

// ReadValue reads a value written by WriteValue.
func ReadValue[T Fixed](c *Codec) (T, error) {
	p, err := c.consume(sizeOf[T]())
	if err != nil {
		var zero T
		return zero, err
	}
	return getFixed[T](p), nil
}

func (c *Codec) WriteBool(v bool)       { WriteValue(c, v) }
func (c *Codec) WriteInt8(v int8)       { WriteValue(c, v) }
func (c *Codec) WriteInt16(v int16)     { WriteValue(c, v) }
func (c *Codec) WriteInt32(v int32)     { WriteValue(c, v) }
func (c *Codec) WriteInt64(v int64)     { WriteValue(c, v) }
func (c *Codec) WriteUint8(v uint8)     { WriteValue(c, v) }
func (c *Codec) WriteUint16(v uint16)   { WriteValue(c, v) }
func (c *Codec) WriteUint32(v uint32)   { WriteValue(c, v) }
func (c *Codec) WriteUint64(v uint64)   { WriteValue(c, v) }
func (c *Codec) WriteFloat32(v float32) { WriteValue(c, v) }
func (c *Codec) WriteFloat64(v float64) { WriteValue(c, v) }

// WriteInt writes v as a 64-bit integer on every platform.
func (c *Codec) WriteInt(v int) { WriteValue(c, int64(v)) }

// WriteUint writes v as a 64-bit unsigned integer on every platform.
func (c *Codec) WriteUint(v uint) { WriteValue(c, uint64(v)) }

func (c *Codec) ReadBool() (bool, error)       { return ReadValue[bool](c) }
func (c *Codec) ReadInt8() (int8, error)       { return ReadValue[int8](c) }
func (c *Codec) ReadInt16() (int16, error)     { return ReadValue[int16](c) }
func (c *Codec) ReadInt32() (int32, error)     { return ReadValue[int32](c) }
func (c *Codec) ReadInt64() (int64, error)     { return ReadValue[int64](c) }
func (c *Codec) ReadUint8() (uint8, error)     { return ReadValue[uint8](c) }
func (c *Codec) ReadUint16() (uint16, error)   { return ReadValue[uint16](c) }
func (c *Codec) ReadUint32() (uint32, error)   { return ReadValue[uint32](c) }
func (c *Codec) ReadUint64() (uint64, error)   { return ReadValue[uint64](c) }
func (c *Codec) ReadFloat32() (float32, error) { return ReadValue[float32](c) }
func (c *Codec) ReadFloat64() (float64, error) { return ReadValue[float64](c) }

// ReadInt reads a value written by WriteInt. It fails on 32-bit platforms
// when the value does not fit.
func (c *Codec) ReadInt() (int, error) {
	v, err := ReadValue[int64](c)
	if err != nil {
		return 0, err
	}
	n, err := conv.Int64ToInt(v)
	if err != nil {
		return 0, c.fail(err)
	}
	return n, nil
}

// ReadUint reads a value written by WriteUint.
func (c *Codec) ReadUint() (uint, error) {
	v, err := ReadValue[uint64](c)
	if err != nil {
		return 0, err
	}
	n, err := conv.Uint64ToUint(v)
	if err != nil {
		return 0, c.fail(err)
	}
	return n, nil
}
