package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/hupe1980/engram"
	"github.com/hupe1980/engram/blobstore"
	"golang.org/x/sync/errgroup"
)

type options struct {
	envelope    bool
	concurrency int
	logger      *engram.Logger
	metrics     engram.MetricsCollector
}

func defaultOptions() options {
	return options{
		concurrency: 8,
		logger:      engram.NoopLogger(),
		metrics:     engram.NoopMetricsCollector{},
	}
}

// Option configures an Adapter.
type Option func(*options)

// WithEnvelope wraps saved payloads in a checksummed envelope that also
// records the codec's format version.
func WithEnvelope() Option {
	return func(o *options) {
		o.envelope = true
	}
}

// WithConcurrency bounds the number of concurrent transfers in SaveAll and LoadAll.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *engram.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m engram.MetricsCollector) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// Adapter saves and loads codec buffers through a blobstore.BlobStore.
// It is safe for concurrent use when the underlying store is.
type Adapter struct {
	store blobstore.BlobStore
	opts  options
}

// NewAdapter creates an adapter over store.
func NewAdapter(store blobstore.BlobStore, optFns ...Option) *Adapter {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Adapter{store: store, opts: opts}
}

// Save stores the bytes written to c under name.
func (a *Adapter) Save(ctx context.Context, name string, c *engram.Codec) error {
	start := time.Now()

	data := c.Bytes()
	if a.opts.envelope {
		data = Seal(c.Version(), data)
	}

	err := a.store.Put(ctx, name, data)
	if err != nil {
		err = wrapIO("save", name, err)
	}

	a.opts.metrics.RecordSave(len(data), time.Since(start), err)
	a.opts.logger.LogSave(ctx, name, len(data), err)
	return err
}

// Load reads name and returns a codec positioned at the start of its bytes.
// With an envelope the stored format version overrides any WithVersion in codecOpts.
func (a *Adapter) Load(ctx context.Context, name string, codecOpts ...engram.Option) (*engram.Codec, error) {
	start := time.Now()

	c, size, err := a.load(ctx, name, codecOpts)

	a.opts.metrics.RecordLoad(size, time.Since(start), err)
	a.opts.logger.LogLoad(ctx, name, size, err)
	return c, err
}

func (a *Adapter) load(ctx context.Context, name string, codecOpts []engram.Option) (*engram.Codec, int, error) {
	data, err := blobstore.ReadAll(ctx, a.store, name)
	if err != nil {
		return nil, 0, wrapIO("load", name, err)
	}

	if !a.opts.envelope {
		return engram.FromBytes(data, codecOpts...), len(data), nil
	}

	version, payload, err := Open(data)
	if err != nil {
		return nil, len(data), &IOError{Op: "load", Name: name, Err: err}
	}

	opts := append(codecOpts[:len(codecOpts):len(codecOpts)], engram.WithVersion(version))
	return engram.FromBytes(payload, opts...), len(data), nil
}

// Delete removes name from the store.
func (a *Adapter) Delete(ctx context.Context, name string) error {
	return wrapIO("delete", name, a.store.Delete(ctx, name))
}

// List returns the names stored under prefix.
func (a *Adapter) List(ctx context.Context, prefix string) ([]string, error) {
	names, err := a.store.List(ctx, prefix)
	if err != nil {
		return nil, wrapIO("list", prefix, err)
	}
	return names, nil
}

// SaveAll saves every codec in batch concurrently.
// The first failure cancels the remaining transfers and is returned.
func (a *Adapter) SaveAll(ctx context.Context, batch map[string]*engram.Codec) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.concurrency)

	for name, c := range batch {
		g.Go(func() error {
			return a.Save(gctx, name, c)
		})
	}

	return g.Wait()
}

// LoadAll loads every name concurrently.
// On failure no codecs are returned.
func (a *Adapter) LoadAll(ctx context.Context, names []string, codecOpts ...engram.Option) (map[string]*engram.Codec, error) {
	results := make([]*engram.Codec, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.concurrency)

	for i, name := range names {
		g.Go(func() error {
			c, err := a.Load(gctx, name, codecOpts...)
			if err != nil {
				return err
			}
			results[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]*engram.Codec, len(names))
	for i, name := range names {
		out[name] = results[i]
	}
	return out, nil
}

// IsCorrupt reports whether err signals a damaged envelope.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrInvalidMagic) || errors.Is(err, ErrTruncated) || IsChecksumMismatch(err)
}
