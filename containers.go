package engram

import "fmt"

// EncodeFunc writes one value of type T.
type EncodeFunc[T any] func(c *Codec, v T) error

// DecodeFunc reads one value of type T.
type DecodeFunc[T any] func(c *Codec) (T, error)

// WriteSlice writes a count prefix followed by every element of s.
func WriteSlice[T any](c *Codec, s []T, enc EncodeFunc[T]) error {
	c.writeLength(len(s))
	return WriteArray(c, s, enc)
}

// ReadSlice reads a value written by WriteSlice. An empty sequence decodes
// as an empty, non-nil slice.
func ReadSlice[T any](c *Codec, dec DecodeFunc[T]) ([]T, error) {
	n, err := c.readLength(0)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, c.capHint(n))
	for range n {
		v, err := dec(c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

// WriteFixedSlice writes a count prefix followed by the elements of s as one
// contiguous block. The bytes are identical to WriteSlice with WriteValue.
func WriteFixedSlice[T Fixed](c *Codec, s []T) {
	c.writeLength(len(s))
	writeFixedBlock(c, s)
}

// ReadFixedSlice reads a value written by WriteFixedSlice or by WriteSlice
// with WriteValue.
func ReadFixedSlice[T Fixed](c *Codec) ([]T, error) {
	n, err := c.readLength(sizeOf[T]())
	if err != nil {
		return nil, err
	}
	return readFixedBlock[T](c, n)
}

// WriteArray writes every element of s with no count prefix. The reader
// must know len(s).
func WriteArray[T any](c *Codec, s []T, enc EncodeFunc[T]) error {
	for _, v := range s {
		if err := enc(c, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadArray fills dst with exactly len(dst) elements.
func ReadArray[T any](c *Codec, dst []T, dec DecodeFunc[T]) error {
	for i := range dst {
		v, err := dec(c)
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

// WriteFixedArray writes the elements of s as one contiguous block with no
// count prefix.
func WriteFixedArray[T Fixed](c *Codec, s []T) {
	writeFixedBlock(c, s)
}

// ReadFixedArray fills dst from one contiguous block.
func ReadFixedArray[T Fixed](c *Codec, dst []T) error {
	vals, err := readFixedBlock[T](c, len(dst))
	if err != nil {
		return err
	}
	copy(dst, vals)
	return nil
}

// WriteMap writes a count prefix followed by key/value pairs in map
// iteration order.
func WriteMap[K comparable, V any](c *Codec, m map[K]V, encK EncodeFunc[K], encV EncodeFunc[V]) error {
	c.writeLength(len(m))
	for k, v := range m {
		if err := encK(c, k); err != nil {
			return err
		}
		if err := encV(c, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadMap reads a value written by WriteMap. A repeated key keeps the last
// value read.
func ReadMap[K comparable, V any](c *Codec, decK DecodeFunc[K], decV DecodeFunc[V]) (map[K]V, error) {
	n, err := c.readLength(0)
	if err != nil {
		return nil, err
	}

	m := make(map[K]V, c.capHint(n))
	for range n {
		k, err := decK(c)
		if err != nil {
			return nil, err
		}
		v, err := decV(c)
		if err != nil {
			return nil, err
		}
		m[k] = v
	}

	return m, nil
}

// WriteOptional writes a presence byte followed by *v when v is non-nil.
func WriteOptional[T any](c *Codec, v *T, enc EncodeFunc[T]) error {
	if v == nil {
		c.WriteBool(false)
		return nil
	}
	c.WriteBool(true)
	return enc(c, *v)
}

// ReadOptional reads a value written by WriteOptional. Absence decodes as nil.
func ReadOptional[T any](c *Codec, dec DecodeFunc[T]) (*T, error) {
	present, err := c.ReadBool()
	if err != nil || !present {
		return nil, err
	}
	v, err := dec(c)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func writeFixedBlock[T Fixed](c *Codec, s []T) {
	size := sizeOf[T]()
	dst := c.buf.Extend(len(s) * size)
	copy(dst, bytesOf(s))
	if bigEndianHost {
		swapEach(dst, size)
	}
}

func readFixedBlock[T Fixed](c *Codec, n int) ([]T, error) {
	size := sizeOf[T]()
	p, err := c.consume(n * size)
	if err != nil {
		return nil, err
	}

	out := make([]T, n)
	if isBool[T]() {
		for i := range out {
			out[i] = getFixed[T](p[i : i+1])
		}
		return out, nil
	}

	dst := bytesOf(out)
	copy(dst, p)
	if bigEndianHost {
		swapEach(dst, size)
	}
	return out, nil
}

func checkArrayLen(got, want int) error {
	if got != want {
		return fmt.Errorf("%w: array holds %d elements, want %d", ErrLengthMismatch, got, want)
	}
	return nil
}
