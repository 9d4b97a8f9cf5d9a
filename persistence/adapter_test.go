package persistence

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/hupe1980/engram"
	"github.com/hupe1980/engram/blobstore"
	"github.com/hupe1980/engram/internal/fs"
	"github.com/hupe1980/engram/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeRecord(t *testing.T, r *testutil.Record, optFns ...engram.Option) *engram.Codec {
	t.Helper()
	c := engram.New(optFns...)
	require.NoError(t, c.WriteObject(r))
	return c
}

func decodeRecord(t *testing.T, c *engram.Codec) *testutil.Record {
	t.Helper()
	got, err := engram.ReadNew[testutil.Record](c)
	require.NoError(t, err)
	assert.Zero(t, c.Remaining())
	return got
}

func TestAdapter_RoundTrip(t *testing.T) {
	stores := map[string]func(t *testing.T) blobstore.BlobStore{
		"memory": func(*testing.T) blobstore.BlobStore { return blobstore.NewMemoryStore() },
		"local":  func(t *testing.T) blobstore.BlobStore { return blobstore.NewLocalStore(t.TempDir()) },
		"ratelimited": func(*testing.T) blobstore.BlobStore {
			return blobstore.NewRateLimitedStore(blobstore.NewMemoryStore(), 1<<20)
		},
	}

	rng := testutil.NewRNG(7)
	want := testutil.RandomRecord(rng)

	for name, newStore := range stores {
		for _, envelope := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s/envelope=%v", name, envelope), func(t *testing.T) {
				var opts []Option
				if envelope {
					opts = append(opts, WithEnvelope())
				}
				a := NewAdapter(newStore(t), opts...)
				ctx := context.Background()

				require.NoError(t, a.Save(ctx, "records/r1.eng", encodeRecord(t, want)))

				c, err := a.Load(ctx, "records/r1.eng")
				require.NoError(t, err)
				assert.Equal(t, want, decodeRecord(t, c))

				names, err := a.List(ctx, "records/")
				require.NoError(t, err)
				assert.Equal(t, []string{"records/r1.eng"}, names)

				require.NoError(t, a.Delete(ctx, "records/r1.eng"))
				_, err = a.Load(ctx, "records/r1.eng")
				assert.ErrorIs(t, err, ErrNotFound)
			})
		}
	}
}

func TestAdapter_EnvelopeRestoresVersion(t *testing.T) {
	reg := engram.NewRegistry()
	require.NoError(t, testutil.RegisterFigures(reg))

	ctx := context.Background()
	a := NewAdapter(blobstore.NewMemoryStore(), WithEnvelope())

	rect := &testutil.Rect{W: 2, H: 3, Tags: []string{"a"}}
	c := engram.New(engram.WithVersion(1), engram.WithRegistry(reg))
	require.NoError(t, c.WritePolymorphic(rect))
	require.NoError(t, a.Save(ctx, "rect.eng", c))

	// The stored version wins over the caller's option.
	loaded, err := a.Load(ctx, "rect.eng", engram.WithVersion(0), engram.WithRegistry(reg))
	require.NoError(t, err)
	assert.Equal(t, uint32(1), loaded.Version())

	got, err := loaded.ReadPolymorphic()
	require.NoError(t, err)
	assert.Equal(t, rect, got)
}

func TestAdapter_Corruption(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	a := NewAdapter(store, WithEnvelope())

	require.NoError(t, a.Save(ctx, "r.eng", encodeRecord(t, &testutil.Record{D: "x"})))

	data, err := blobstore.ReadAll(ctx, store, "r.eng")
	require.NoError(t, err)
	data[len(data)-1] ^= 0xff
	require.NoError(t, store.Put(ctx, "r.eng", data))

	_, err = a.Load(ctx, "r.eng")
	require.Error(t, err)
	assert.True(t, IsChecksumMismatch(err))
	assert.True(t, IsCorrupt(err))

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "r.eng", ioErr.Name)

	// Raw bytes without an envelope.
	require.NoError(t, store.Put(ctx, "raw.eng", []byte{1, 2, 3}))
	_, err = a.Load(ctx, "raw.eng")
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestAdapter_SaveAllLoadAll(t *testing.T) {
	ctx := context.Background()
	metrics := &engram.BasicMetricsCollector{}
	a := NewAdapter(blobstore.NewMemoryStore(), WithEnvelope(), WithConcurrency(3), WithMetrics(metrics))

	rng := testutil.NewRNG(11)
	want := make(map[string]*testutil.Record)
	batch := make(map[string]*engram.Codec)
	var names []string
	for i := range 10 {
		name := fmt.Sprintf("batch/%02d.eng", i)
		r := testutil.RandomRecord(rng)
		want[name] = r
		batch[name] = encodeRecord(t, r)
		names = append(names, name)
	}

	require.NoError(t, a.SaveAll(ctx, batch))

	loaded, err := a.LoadAll(ctx, names)
	require.NoError(t, err)
	require.Len(t, loaded, len(names))
	for name, c := range loaded {
		assert.Equal(t, want[name], decodeRecord(t, c), name)
	}

	stats := metrics.GetStats()
	assert.Equal(t, int64(10), stats.SaveCount)
	assert.Equal(t, int64(10), stats.LoadCount)
	assert.Zero(t, stats.SaveErrors)

	_, err = a.LoadAll(ctx, append(names, "batch/missing.eng"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdapter_SaveFault(t *testing.T) {
	ctx := context.Background()
	ffs := fs.NewFaultyFS(nil)
	ffs.FailRename = true
	metrics := &engram.BasicMetricsCollector{}
	a := NewAdapter(blobstore.NewLocalStore(t.TempDir(), blobstore.WithFileSystem(ffs)), WithMetrics(metrics))

	err := a.Save(ctx, "r.eng", encodeRecord(t, &testutil.Record{}))
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "save", ioErr.Op)
	assert.True(t, errors.Is(err, fs.ErrInjected))
	assert.Equal(t, int64(1), metrics.GetStats().SaveErrors)
}

func TestAdapter_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := NewAdapter(blobstore.NewLocalStore(filepath.Join(t.TempDir(), "root")))
	err := a.SaveAll(ctx, map[string]*engram.Codec{"a": engram.New()})
	assert.ErrorIs(t, err, context.Canceled)
}
