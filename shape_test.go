package engram_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/engram"
	"github.com/hupe1980/engram/testutil"
)

type point struct {
	X, Y int32
}

func (p *point) Serialize(c *engram.Codec, _ uint32) error {
	c.WriteInt32(p.X)
	c.WriteInt32(p.Y)
	return nil
}

func (p *point) Deserialize(c *engram.Codec, _ uint32) error {
	var err error
	if p.X, err = c.ReadInt32(); err != nil {
		return err
	}
	p.Y, err = c.ReadInt32()
	return err
}

func roundTrip[T any](t *testing.T, shape engram.Shape[T], v T) T {
	t.Helper()

	c := engram.New()
	require.NoError(t, engram.Write(c, shape, v))

	got, err := engram.Read(engram.FromBytes(c.Bytes()), shape)
	require.NoError(t, err)
	return got
}

func TestShape_RoundTrip(t *testing.T) {
	t.Run("slice of primitives", func(t *testing.T) {
		want := []float64{1.5, -2, 0}
		assert.Equal(t, want, roundTrip(t, engram.SliceOf(engram.Value[float64]()), want))
	})

	t.Run("slice of strings", func(t *testing.T) {
		want := []string{"a", "", "ccc"}
		assert.Equal(t, want, roundTrip(t, engram.SliceOf(engram.String()), want))
	})

	t.Run("empty slice decodes non-nil", func(t *testing.T) {
		got := roundTrip(t, engram.SliceOf(engram.Value[int32]()), nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)

		gotS := roundTrip(t, engram.SliceOf(engram.String()), []string{})
		assert.NotNil(t, gotS)
		assert.Empty(t, gotS)
	})

	t.Run("nested slices", func(t *testing.T) {
		want := [][]int32{{1, 2}, {}, {3}}
		assert.Equal(t, want, roundTrip(t, engram.SliceOf(engram.SliceOf(engram.Value[int32]())), want))
	})

	t.Run("int and uint", func(t *testing.T) {
		assert.Equal(t, []int{-1, 0, 1 << 40}, roundTrip(t, engram.SliceOf(engram.Int()), []int{-1, 0, 1 << 40}))
		assert.Equal(t, uint(9), roundTrip(t, engram.Uint(), uint(9)))
	})

	t.Run("text kinds", func(t *testing.T) {
		for _, shape := range []engram.Shape[string]{engram.String(), engram.UTF16(), engram.UTF32(), engram.Wide()} {
			assert.Equal(t, "Grüße 🌍", roundTrip(t, shape, "Grüße 🌍"))
		}
	})

	t.Run("blob", func(t *testing.T) {
		assert.Equal(t, []byte{0, 1, 2}, roundTrip(t, engram.Blob(), []byte{0, 1, 2}))
	})

	t.Run("map", func(t *testing.T) {
		want := map[int32]string{1: "One", 2: "Two"}
		assert.Equal(t, want, roundTrip(t, engram.MapOf(engram.Value[int32](), engram.String()), want))
	})

	t.Run("empty map", func(t *testing.T) {
		got := roundTrip(t, engram.MapOf(engram.String(), engram.Value[bool]()), nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("map of optional objects", func(t *testing.T) {
		shape := engram.MapOf(engram.String(), engram.OptionalOf(engram.ObjectOf[point]()))
		p := &point{X: 1, Y: -1}
		want := map[string]**point{"set": &p, "unset": nil}

		got := roundTrip(t, shape, want)
		require.Len(t, got, 2)
		assert.Nil(t, got["unset"])
		require.NotNil(t, got["set"])
		assert.Equal(t, p, *got["set"])
	})

	t.Run("object", func(t *testing.T) {
		want := &point{X: 3, Y: 4}
		got := roundTrip(t, engram.ObjectOf[point](), want)
		assert.Equal(t, want, got)
		assert.NotSame(t, want, got)
	})
}

func TestShape_MapIterationOrderIsIrrelevant(t *testing.T) {
	shape := engram.MapOf(engram.Value[int32](), engram.String())

	// Both pair orders decode to the same mapping.
	forward := engram.New()
	forward.WriteUint64(2)
	forward.WriteInt32(1)
	forward.WriteString("One")
	forward.WriteInt32(2)
	forward.WriteString("Two")

	backward := engram.New()
	backward.WriteUint64(2)
	backward.WriteInt32(2)
	backward.WriteString("Two")
	backward.WriteInt32(1)
	backward.WriteString("One")

	a, err := engram.Read(forward, shape)
	require.NoError(t, err)
	b, err := engram.Read(backward, shape)
	require.NoError(t, err)

	assert.Equal(t, map[int32]string{1: "One", 2: "Two"}, a)
	assert.Equal(t, a, b)
}

func TestShape_Optional(t *testing.T) {
	shape := engram.OptionalOf(engram.Value[int64]())

	c := engram.New()
	require.NoError(t, engram.Write(c, shape, nil))
	assert.Equal(t, 1, c.Len())

	got, err := engram.Read(c, shape)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, c.Remaining())

	v := int64(-9)
	c = engram.New()
	require.NoError(t, engram.Write(c, shape, &v))
	assert.Equal(t, 9, c.Len())

	got, err = engram.Read(c, shape)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, v, *got)
	assert.NotSame(t, &v, got)
}

func TestShape_FixedArray(t *testing.T) {
	t.Run("no prefix", func(t *testing.T) {
		shape := engram.ArrayOf(3, engram.Value[int32]())

		c := engram.New()
		require.NoError(t, engram.Write(c, shape, []int32{7, 8, 9}))
		assert.Equal(t, 12, c.Len())

		c.WriteUint8(0xff)

		got, err := engram.Read(c, shape)
		require.NoError(t, err)
		assert.Equal(t, []int32{7, 8, 9}, got)
		assert.Equal(t, 1, c.Remaining())
	})

	t.Run("variable elements", func(t *testing.T) {
		shape := engram.ArrayOf(2, engram.String())
		assert.Equal(t, []string{"x", "yz"}, roundTrip(t, shape, []string{"x", "yz"}))
	})

	t.Run("wrong length", func(t *testing.T) {
		c := engram.New()
		err := engram.Write(c, engram.ArrayOf(2, engram.Value[int8]()), []int8{1})
		assert.ErrorIs(t, err, engram.ErrLengthMismatch)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("go array", func(t *testing.T) {
		src := [4]uint16{1, 2, 3, 4}
		c := engram.New()
		engram.WriteFixedArray(c, src[:])
		assert.Equal(t, 8, c.Len())

		var dst [4]uint16
		require.NoError(t, engram.ReadFixedArray(c, dst[:]))
		assert.Equal(t, src, dst)
	})

	t.Run("short stream", func(t *testing.T) {
		c := engram.FromBytes([]byte{1, 2, 3})
		var dst [2]uint16
		assert.ErrorIs(t, engram.ReadFixedArray(c, dst[:]), engram.ErrUnderflow)
	})
}

func TestShape_BulkMatchesPerElement(t *testing.T) {
	rng := testutil.NewRNG(42)

	t.Run("int32", func(t *testing.T) {
		xs := rng.Int32s(257)
		assertBulkMatches(t, xs, engram.Value[int32]())
	})

	t.Run("uint64", func(t *testing.T) {
		assertBulkMatches(t, rng.Uint64s(33), engram.Value[uint64]())
	})

	t.Run("float64", func(t *testing.T) {
		assertBulkMatches(t, rng.Float64s(65), engram.Value[float64]())
	})

	t.Run("bool", func(t *testing.T) {
		assertBulkMatches(t, rng.Bools(17), engram.Value[bool]())
	})

	t.Run("enum", func(t *testing.T) {
		assertBulkMatches(t, []color{red, green, red}, engram.Value[color]())
	})
}

func assertBulkMatches[T engram.Fixed](t *testing.T, xs []T, elem engram.Shape[T]) {
	t.Helper()

	bulk := engram.New()
	engram.WriteFixedSlice(bulk, xs)

	viaShape := engram.New()
	require.NoError(t, engram.Write(viaShape, engram.SliceOf(elem), xs))

	perElement := engram.New()
	require.NoError(t, engram.WriteSlice(perElement, xs, elem.Encode))

	assert.Equal(t, perElement.Bytes(), bulk.Bytes())
	assert.Equal(t, perElement.Bytes(), viaShape.Bytes())
	assert.Equal(t, 8+len(xs)*sizeOfValue(xs), bulk.Len())

	got, err := engram.ReadSlice(perElement, elem.Decode)
	require.NoError(t, err)
	assert.Equal(t, xs, got)

	got, err = engram.ReadFixedSlice[T](bulk)
	require.NoError(t, err)
	assert.Equal(t, xs, got)
}

func sizeOfValue[T engram.Fixed](_ []T) int {
	var zero T
	c := engram.New()
	engram.WriteValue(c, zero)
	return c.Len()
}

func TestWriteSlice_PropagatesElementError(t *testing.T) {
	c := engram.New()
	err := engram.Write(c, engram.SliceOf(engram.ObjectOf[point]()), []*point{{X: 1}, nil})
	assert.ErrorIs(t, err, engram.ErrNilObject)
}

func TestReadMap_Underflow(t *testing.T) {
	c := engram.New()
	c.WriteUint64(2)
	c.WriteInt32(1)
	c.WriteString("One")

	_, err := engram.Read(c, engram.MapOf(engram.Value[int32](), engram.String()))
	assert.ErrorIs(t, err, engram.ErrUnderflow)
}

func TestNewShape(t *testing.T) {
	// A custom shape storing a string as its reversed bytes.
	reversed := engram.NewShape(
		func(c *engram.Codec, v string) error {
			b := []byte(v)
			for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
				b[i], b[j] = b[j], b[i]
			}
			c.WriteBytes(b)
			return nil
		},
		func(c *engram.Codec) (string, error) {
			b, err := c.ReadBytes()
			if err != nil {
				return "", err
			}
			for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
				b[i], b[j] = b[j], b[i]
			}
			return string(b), nil
		},
	)

	c := engram.New()
	require.NoError(t, engram.Write(c, reversed, "abc"))
	assert.Equal(t, byte('c'), c.Bytes()[8])
	assert.Equal(t, "abc", roundTrip(t, engram.SliceOf(reversed), []string{"abc"})[0])
}
