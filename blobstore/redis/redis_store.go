package redis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/hupe1980/engram/blobstore"
	"github.com/redis/go-redis/v9"
)

// Store implements blobstore.BlobStore on Redis string values.
type Store struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ blobstore.BlobStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key prefix prepended to all blob names (e.g. "engram:").
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL expires blobs ttl after they are written. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// NewStore creates a store around an existing redis client.
func NewStore(client redis.UniversalClient, optFns ...Option) (*Store, error) {
	if client == nil {
		return nil, errors.New("redis: client is nil")
	}

	s := &Store{client: client}
	for _, fn := range optFns {
		fn(s)
	}
	return s, nil
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

// Open opens a blob for reading. Reads are served with GETRANGE.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)

	var (
		exists *redis.IntCmd
		size   *redis.IntCmd
	)
	if _, err := s.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		exists = p.Exists(ctx, key)
		size = p.StrLen(ctx, key)
		return nil
	}); err != nil {
		return nil, err
	}

	if exists.Val() == 0 {
		return nil, blobstore.ErrNotFound
	}

	return &redisBlob{client: s.client, key: key, size: size.Val()}, nil
}

// Put writes a blob. SET replaces the value atomically.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	return s.client.Set(ctx, s.key(name), data, s.ttl).Err()
}

// Delete removes a blob.
func (s *Store) Delete(ctx context.Context, name string) error {
	return s.client.Del(ctx, s.key(name)).Err()
}

// List returns all blob names with the given prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string

	iter := s.client.Scan(ctx, 0, escapeGlob(s.key(prefix))+"*", 0).Iterator()
	for iter.Next(ctx) {
		if name, ok := strings.CutPrefix(iter.Val(), s.prefix); ok {
			names = append(names, name)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	// SCAN may return a key more than once.
	slices.Sort(names)
	return slices.Compact(names), nil
}

// escapeGlob quotes the characters Redis MATCH patterns treat specially.
func escapeGlob(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

type redisBlob struct {
	client redis.UniversalClient
	key    string
	size   int64
}

func (b *redisBlob) Size() int64 {
	return b.size
}

func (b *redisBlob) Close() error {
	return nil
}

func (b *redisBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("redis: negative offset %d", off)
	}
	if len(p) == 0 {
		return 0, nil
	}
	if off >= b.size {
		return 0, io.EOF
	}

	end := min(off+int64(len(p))-1, b.size-1)

	data, err := b.client.GetRange(ctx, b.key, off, end).Bytes()
	if err != nil {
		return 0, err
	}

	n := copy(p, data)
	if int64(n) < end-off+1 {
		// The value shrank or vanished since Open.
		return n, io.ErrUnexpectedEOF
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
