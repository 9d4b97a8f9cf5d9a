// Package bitmap provides an engram shape for roaring bitmaps.
//
// The bitmap is stored as a length-prefixed blob holding its portable
// roaring serialization, so it can be read by any roaring implementation.
package bitmap

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/engram"
)

// Shape returns the shape of a *roaring.Bitmap.
// A nil bitmap is written as an empty bitmap.
func Shape() engram.Shape[*roaring.Bitmap] {
	return engram.NewShape(Write, Read)
}

// Write appends bm to c.
func Write(c *engram.Codec, bm *roaring.Bitmap) error {
	if bm == nil {
		bm = roaring.New()
	}
	data, err := bm.ToBytes()
	if err != nil {
		return fmt.Errorf("bitmap: serialize: %w", err)
	}
	c.WriteBytes(data)
	return nil
}

// Read decodes a bitmap written by Write.
func Read(c *engram.Codec) (*roaring.Bitmap, error) {
	data, err := c.ReadBytes()
	if err != nil {
		return nil, err
	}
	bm := roaring.New()
	if err := bm.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("bitmap: deserialize: %w", err)
	}
	return bm, nil
}
