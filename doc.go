// Package engram provides a compact, deterministic binary serialization engine.
//
// Engram writes values positionally: the stream carries no field names and no
// type tags, so the reader must ask for exactly the shapes the writer wrote,
// in the same order. The only self-describing element is the type id that
// precedes a polymorphic value.
//
// # Quick Start
//
//	c := engram.New()
//	c.WriteBool(true)
//	c.WriteInt32(123)
//	c.WriteString("Hello Engram")
//	engram.WriteFixedSlice(c, []int32{7, 8, 9})
//
//	r := engram.FromBytes(c.Bytes())
//	ok, _ := r.ReadBool()
//	n, _ := r.ReadInt32()
//	s, _ := r.ReadString()
//	xs, _ := engram.ReadFixedSlice[int32](r)
//
// # Wire Format
//
//	Value kind        Encoding
//	primitive         fixed width, little-endian, no tag
//	enum              width of its underlying integer type
//	text              uint64 code unit count + units (1, 2 or 4 bytes each)
//	fixed array       N elements, no prefix
//	sequence          uint64 count + elements
//	mapping           uint64 count + (key, value) pairs
//	optional          1 presence byte + payload if present
//	blob              uint64 size + raw bytes
//	aggregate         whatever its Serialize method writes
//	polymorphic       1 null byte + type id (text) + registered payload
//
// Sequences of fixed-width primitives are copied as one block, byte-identical
// to writing the elements one at a time.
//
// # Shapes
//
// Composite values are described with shapes and handed to the generic
// Write and Read functions:
//
//	shape := engram.MapOf(engram.Value[int32](), engram.String())
//	_ = engram.Write(c, shape, map[int32]string{1: "One", 2: "Two"})
//	m, _ := engram.Read(r, shape)
//
// # User Types
//
// Aggregates implement Serialize and Deserialize. Types written through an
// interface additionally implement TypeID and are registered once, usually
// from init:
//
//	func init() {
//	    engram.MustRegister[Circle](nil)
//	}
//
//	_ = c.WritePolymorphic(&Circle{Radius: 2})
//	fig, _ := engram.ReadPolymorphic[Figure](r)
//
// Decoding an id that was never registered returns *UnknownTypeError. The
// stream is unusable after that error; see IsFatal.
//
// # Registries
//
// DefaultRegistry is shared by every Codec in the process. Plug-ins and
// tests that need isolation build their own with NewRegistry and pass it
// through WithRegistry.
//
// # Persistence
//
// The persistence package saves and loads codec buffers as files or as
// blobs in any blobstore backend (local, memory, S3, MinIO, Redis):
//
//	a := persistence.NewAdapter(store, persistence.WithEnvelope())
//	err := a.Save(ctx, "state", c)
//	r, err := a.Load(ctx, "state")
package engram
