package engram

import "fmt"

// Shape describes how values of type T map onto the wire.
//
// Shapes compose: SliceOf(String()) is a sequence of text values,
// MapOf(Value[int32](), OptionalOf(ObjectOf[Point]())) a mapping to
// optional aggregates.
type Shape[T any] struct {
	enc EncodeFunc[T]
	dec DecodeFunc[T]

	// Set for fixed-width primitives only.
	width     int
	writeBulk func(c *Codec, s []T)
	readBulk  func(c *Codec, n int) ([]T, error)
}

// NewShape builds a Shape from an encoder and decoder pair.
func NewShape[T any](enc EncodeFunc[T], dec DecodeFunc[T]) Shape[T] {
	return Shape[T]{enc: enc, dec: dec}
}

// Encode writes v.
func (s Shape[T]) Encode(c *Codec, v T) error { return s.enc(c, v) }

// Decode reads one value.
func (s Shape[T]) Decode(c *Codec) (T, error) { return s.dec(c) }

// Write writes v using shape.
func Write[T any](c *Codec, shape Shape[T], v T) error {
	return shape.enc(c, v)
}

// Read reads one value using shape.
func Read[T any](c *Codec, shape Shape[T]) (T, error) {
	return shape.dec(c)
}

// Value is the shape of a fixed-width primitive or enum.
func Value[T Fixed]() Shape[T] {
	return Shape[T]{
		enc: func(c *Codec, v T) error {
			WriteValue(c, v)
			return nil
		},
		dec:       ReadValue[T],
		width:     sizeOf[T](),
		writeBulk: writeFixedBlock[T],
		readBulk:  readFixedBlock[T],
	}
}

// Int is the shape of int, written as 64 bits.
func Int() Shape[int] {
	return Shape[int]{
		enc: func(c *Codec, v int) error {
			c.WriteInt(v)
			return nil
		},
		dec: (*Codec).ReadInt,
	}
}

// Uint is the shape of uint, written as 64 bits.
func Uint() Shape[uint] {
	return Shape[uint]{
		enc: func(c *Codec, v uint) error {
			c.WriteUint(v)
			return nil
		},
		dec: (*Codec).ReadUint,
	}
}

// String is the shape of UTF-8 text.
func String() Shape[string] {
	return Shape[string]{
		enc: func(c *Codec, v string) error {
			c.WriteString(v)
			return nil
		},
		dec: (*Codec).ReadString,
	}
}

// UTF16 is the shape of text stored as UTF-16 code units.
func UTF16() Shape[string] {
	return Shape[string]{enc: (*Codec).WriteUTF16, dec: (*Codec).ReadUTF16}
}

// UTF32 is the shape of text stored as UTF-32 code units.
func UTF32() Shape[string] {
	return Shape[string]{enc: (*Codec).WriteUTF32, dec: (*Codec).ReadUTF32}
}

// Wide is the shape of wide text.
func Wide() Shape[string] {
	return Shape[string]{enc: (*Codec).WriteWide, dec: (*Codec).ReadWide}
}

// Blob is the shape of an opaque byte payload.
func Blob() Shape[[]byte] {
	return Shape[[]byte]{
		enc: func(c *Codec, v []byte) error {
			c.WriteBytes(v)
			return nil
		},
		dec: (*Codec).ReadBytes,
	}
}

// SliceOf is the shape of a count-prefixed sequence. Sequences of
// fixed-width primitives are copied as one block.
func SliceOf[T any](elem Shape[T]) Shape[[]T] {
	if elem.writeBulk != nil {
		return Shape[[]T]{
			enc: func(c *Codec, v []T) error {
				c.writeLength(len(v))
				elem.writeBulk(c, v)
				return nil
			},
			dec: func(c *Codec) ([]T, error) {
				n, err := c.readLength(elem.width)
				if err != nil {
					return nil, err
				}
				return elem.readBulk(c, n)
			},
		}
	}

	return Shape[[]T]{
		enc: func(c *Codec, v []T) error {
			return WriteSlice(c, v, elem.enc)
		},
		dec: func(c *Codec) ([]T, error) {
			return ReadSlice(c, elem.dec)
		},
	}
}

// ArrayOf is the shape of exactly n elements with no count prefix.
// Encoding a slice of any other length fails with ErrLengthMismatch.
func ArrayOf[T any](n int, elem Shape[T]) Shape[[]T] {
	return Shape[[]T]{
		enc: func(c *Codec, v []T) error {
			if err := checkArrayLen(len(v), n); err != nil {
				return err
			}
			if elem.writeBulk != nil {
				elem.writeBulk(c, v)
				return nil
			}
			return WriteArray(c, v, elem.enc)
		},
		dec: func(c *Codec) ([]T, error) {
			if elem.readBulk != nil {
				return elem.readBulk(c, n)
			}
			out := make([]T, n)
			if err := ReadArray(c, out, elem.dec); err != nil {
				return nil, err
			}
			return out, nil
		},
	}
}

// MapOf is the shape of a count-prefixed mapping.
func MapOf[K comparable, V any](key Shape[K], val Shape[V]) Shape[map[K]V] {
	return Shape[map[K]V]{
		enc: func(c *Codec, m map[K]V) error {
			return WriteMap(c, m, key.enc, val.enc)
		},
		dec: func(c *Codec) (map[K]V, error) {
			return ReadMap(c, key.dec, val.dec)
		},
	}
}

// OptionalOf is the shape of a value that may be absent. nil encodes as
// absence.
func OptionalOf[T any](elem Shape[T]) Shape[*T] {
	return Shape[*T]{
		enc: func(c *Codec, v *T) error {
			return WriteOptional(c, v, elem.enc)
		},
		dec: func(c *Codec) (*T, error) {
			return ReadOptional(c, elem.dec)
		},
	}
}

// ObjectOf is the shape of a user-defined aggregate held by pointer.
// Decoding allocates a fresh T.
func ObjectOf[T any, P ObjectPtr[T]]() Shape[*T] {
	return Shape[*T]{
		enc: func(c *Codec, v *T) error {
			if v == nil {
				return ErrNilObject
			}
			return P(v).Serialize(c, c.version)
		},
		dec: ReadNew[T, P],
	}
}

// PolymorphicOf is the shape of a polymorphic value held through B,
// normally an interface embedding Polymorphic. A nil B encodes as null.
func PolymorphicOf[B any]() Shape[B] {
	return Shape[B]{
		enc: func(c *Codec, v B) error {
			if isNil(v) {
				c.WriteBool(false)
				return nil
			}
			p, ok := any(v).(Polymorphic)
			if !ok {
				return fmt.Errorf("%w: %T is not polymorphic", ErrTypeMismatch, v)
			}
			return c.WritePolymorphic(p)
		},
		dec: ReadPolymorphic[B],
	}
}
