// Package persistence saves and loads engram buffers.
//
// Files are written through a temp file, fsync and atomic rename:
//
//	err := persistence.SaveFile("state.eng", codec.Bytes())
//	data, err := persistence.LoadFile("state.eng")
//	codec := engram.FromBytes(data)
//
// An [Adapter] does the same over any [blobstore.BlobStore] and can wrap
// each payload in a checksummed envelope:
//
//	a := persistence.NewAdapter(store, persistence.WithEnvelope())
//	err := a.Save(ctx, "state.eng", codec)
//	codec, err := a.Load(ctx, "state.eng")
//
// # Envelope
//
// The envelope is a 20-byte little-endian header followed by the payload:
//
//	Offset  Size  Field
//	0       4     magic "ENG1"
//	4       4     format version
//	8       8     payload length
//	16      4     CRC32C of payload
//
// The format version is restored into the loaded codec.
//
// # Errors
//
// Missing blobs satisfy errors.Is(err, [ErrNotFound]). Other storage
// failures are returned as [*IOError]. Damaged envelopes report
// [ErrInvalidMagic], [ErrTruncated] or [*ChecksumMismatchError];
// use [IsCorrupt] to test for any of them.
package persistence
