package engram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwapEach(t *testing.T) {
	p := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	swapEach(p, 4)
	assert.Equal(t, []byte{4, 3, 2, 1, 8, 7, 6, 5}, p)

	swapEach(p, 1)
	assert.Equal(t, []byte{4, 3, 2, 1, 8, 7, 6, 5}, p)
}

func TestFixed_SwappedHost(t *testing.T) {
	// Simulate the opposite byte order: the wire bytes must still decode to
	// the original values through both the scalar and bulk paths.
	orig := bigEndianHost
	bigEndianHost = !orig
	t.Cleanup(func() { bigEndianHost = orig })

	c := New()
	WriteValue(c, uint32(0x01020304))
	WriteFixedSlice(c, []int16{-1, 2})

	v, err := ReadValue[uint32](c)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01020304), v)

	xs, err := ReadFixedSlice[int16](c)
	require.NoError(t, err)
	assert.Equal(t, []int16{-1, 2}, xs)
}

func TestSizeOf(t *testing.T) {
	assert.Equal(t, 1, sizeOf[bool]())
	assert.Equal(t, 2, sizeOf[uint16]())
	assert.Equal(t, 4, sizeOf[float32]())
	assert.Equal(t, 8, sizeOf[int64]())
	assert.True(t, isBool[bool]())
	assert.False(t, isBool[uint8]())
}

func TestIsNil(t *testing.T) {
	var p *int
	var s Serializer

	assert.True(t, isNil(nil))
	assert.True(t, isNil(p))
	assert.True(t, isNil(s))
	assert.False(t, isNil(0))
	assert.False(t, isNil(struct{}{}))
}
