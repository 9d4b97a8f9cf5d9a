package blobstore

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitedStore wraps a BlobStore and limits the bytes per second moved
// through Put and ReadAt.
type RateLimitedStore struct {
	store   BlobStore
	limiter *rate.Limiter
}

// NewRateLimitedStore limits store to bytesPerSec bytes per second.
// A non-positive limit disables limiting.
func NewRateLimitedStore(store BlobStore, bytesPerSec int) *RateLimitedStore {
	s := &RateLimitedStore{store: store}
	if bytesPerSec > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec)
	}
	return s
}

// wait blocks until n bytes may pass. Requests larger than the burst are
// split into burst-sized chunks.
func (s *RateLimitedStore) wait(ctx context.Context, n int) error {
	if s.limiter == nil {
		return ctx.Err()
	}
	burst := s.limiter.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := s.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// Open opens a blob whose reads are rate limited.
func (s *RateLimitedStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &rateLimitedBlob{Blob: b, store: s}, nil
}

// Put writes a blob after acquiring len(data) bytes from the budget.
func (s *RateLimitedStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.wait(ctx, len(data)); err != nil {
		return err
	}
	return s.store.Put(ctx, name, data)
}

// Delete removes a blob. Deletes are not rate limited.
func (s *RateLimitedStore) Delete(ctx context.Context, name string) error {
	return s.store.Delete(ctx, name)
}

// List lists blobs. Listing is not rate limited.
func (s *RateLimitedStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.store.List(ctx, prefix)
}

type rateLimitedBlob struct {
	Blob
	store *RateLimitedStore
}

func (b *rateLimitedBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := b.store.wait(ctx, len(p)); err != nil {
		return 0, err
	}
	return b.Blob.ReadAt(ctx, p, off)
}
