package testutil

import (
	"fmt"
	"math"

	"github.com/hupe1980/engram"
)

// Type ids of the fixture figures.
const (
	CircleTypeID engram.TypeID = "testutil.Circle"
	RectTypeID   engram.TypeID = "testutil.Rect"
)

// Figure is a polymorphic base used in tests.
type Figure interface {
	engram.Polymorphic
	Area() float64
}

// Circle is a Figure with a label.
type Circle struct {
	Radius float64
	Label  string
}

func (*Circle) TypeID() engram.TypeID { return CircleTypeID }

func (c *Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

func (c *Circle) Serialize(codec *engram.Codec, _ uint32) error {
	codec.WriteFloat64(c.Radius)
	codec.WriteString(c.Label)
	return nil
}

func (c *Circle) Deserialize(codec *engram.Codec, _ uint32) error {
	var err error
	if c.Radius, err = codec.ReadFloat64(); err != nil {
		return err
	}
	c.Label, err = codec.ReadString()
	return err
}

// Rect is a Figure whose encoding depends on the format version: version 0
// omits Tags.
type Rect struct {
	W, H float32
	Tags []string
}

func (*Rect) TypeID() engram.TypeID { return RectTypeID }

func (r *Rect) Area() float64 { return float64(r.W) * float64(r.H) }

func (r *Rect) Serialize(codec *engram.Codec, version uint32) error {
	engram.WriteFixedArray(codec, []float32{r.W, r.H})
	if version == 0 {
		return nil
	}
	return engram.Write(codec, engram.SliceOf(engram.String()), r.Tags)
}

func (r *Rect) Deserialize(codec *engram.Codec, version uint32) error {
	var wh [2]float32
	if err := engram.ReadFixedArray(codec, wh[:]); err != nil {
		return err
	}
	r.W, r.H = wh[0], wh[1]
	if version == 0 {
		return nil
	}
	tags, err := engram.Read(codec, engram.SliceOf(engram.String()))
	if err != nil {
		return err
	}
	r.Tags = tags
	return nil
}

// Unregistered implements Figure but is never added to a registry by
// RegisterFigures.
type Unregistered struct{}

func (*Unregistered) TypeID() engram.TypeID                 { return "testutil.Unregistered" }
func (*Unregistered) Area() float64                         { return 0 }
func (*Unregistered) Serialize(*engram.Codec, uint32) error { return nil }
func (*Unregistered) Deserialize(*engram.Codec, uint32) error {
	return nil
}

// RegisterFigures registers Circle and Rect in r.
func RegisterFigures(r *engram.Registry) error {
	if err := engram.Register[Circle](r); err != nil {
		return fmt.Errorf("register circle: %w", err)
	}
	if err := engram.Register[Rect](r); err != nil {
		return fmt.Errorf("register rect: %w", err)
	}
	return nil
}

// Record is the aggregate from the reference round-trip scenario.
type Record struct {
	A bool
	B int32
	C float32
	D string
	F []int32
}

func (r *Record) Serialize(c *engram.Codec, _ uint32) error {
	c.WriteBool(r.A)
	c.WriteInt32(r.B)
	c.WriteFloat32(r.C)
	c.WriteString(r.D)
	engram.WriteFixedSlice(c, r.F)
	return nil
}

func (r *Record) Deserialize(c *engram.Codec, _ uint32) error {
	var err error
	if r.A, err = c.ReadBool(); err != nil {
		return err
	}
	if r.B, err = c.ReadInt32(); err != nil {
		return err
	}
	if r.C, err = c.ReadFloat32(); err != nil {
		return err
	}
	if r.D, err = c.ReadString(); err != nil {
		return err
	}
	r.F, err = engram.ReadFixedSlice[int32](c)
	return err
}

// RandomRecord returns a Record filled from rng.
func RandomRecord(rng *RNG) *Record {
	return &Record{
		A: rng.Intn(2) == 1,
		B: int32(rng.Uint64()),
		C: rng.Float32(),
		D: rng.String(rng.Intn(32)),
		F: rng.Int32s(rng.Intn(16)),
	}
}
