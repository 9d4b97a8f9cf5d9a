package bitmap

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/engram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_RoundTrip(t *testing.T) {
	bm := roaring.BitmapOf(1, 2, 3, 1000, 1<<20)
	bm.AddRange(5000, 6000)

	c := engram.New()
	require.NoError(t, engram.Write(c, Shape(), bm))
	c.WriteUint8(0xAB)

	got, err := engram.Read(c, Shape())
	require.NoError(t, err)
	assert.True(t, bm.Equals(got))

	tail, err := c.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xAB), tail)
}

func TestShape_Nil(t *testing.T) {
	c := engram.New()
	require.NoError(t, Write(c, nil))

	got, err := Read(c)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestShape_InSlice(t *testing.T) {
	want := []*roaring.Bitmap{roaring.BitmapOf(1), roaring.New(), roaring.BitmapOf(7, 9)}

	c := engram.New()
	require.NoError(t, engram.Write(c, engram.SliceOf(Shape()), want))

	got, err := engram.Read(c, engram.SliceOf(Shape()))
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equals(got[i]), i)
	}
}

func TestShape_Corrupt(t *testing.T) {
	c := engram.New()
	c.WriteBytes([]byte{0xFF, 0xFF, 0xFF})

	_, err := Read(c)
	assert.Error(t, err)
}

func TestShape_Truncated(t *testing.T) {
	c := engram.New()
	require.NoError(t, Write(c, roaring.BitmapOf(1, 2, 3)))

	data := c.Bytes()
	_, err := Read(engram.FromBytes(data[:len(data)-1]))
	assert.ErrorIs(t, err, engram.ErrUnderflow)
}
