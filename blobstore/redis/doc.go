// Package redis provides a BlobStore backed by Redis string values.
//
// Each blob is one key. Redis caps string values at 512MB, so the store
// suits snapshots and messages rather than bulk archives.
//
//	client := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})
//	store, err := redis.NewStore(client, redis.WithPrefix("engram:"), redis.WithTTL(time.Hour))
//	adapter := persistence.NewAdapter(store)
package redis
