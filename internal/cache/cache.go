// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache provides the optional Redis-backed key-value cache used by
// the compat read paths. Cache entries are derived, never authoritative:
// every failure degrades to a miss and callers fall back to the store.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/triptoafsin/notebot-engine/pkg/types"
)

// keyPrefix namespaces every engine key inside a shared Redis instance.
const keyPrefix = "notebot:"

const defaultTTL = time.Hour

// Cache is the key-value boundary consumed by read paths. Implementations
// must never fail a request: absence and backend errors look the same.
type Cache interface {
	// Get returns the cached bytes for key, or ok=false on miss or error.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores val under key with the given ttl (0 means the default).
	// Duplicate writers race; last writer wins.
	Set(ctx context.Context, key string, val []byte, ttl time.Duration)
	// Del removes a single key.
	Del(ctx context.Context, key string)
	// DelPattern removes every key matching a glob pattern.
	DelPattern(ctx context.Context, pattern string)
	// Close releases the backend connection.
	Close() error
}

// Redis is the redis-backed Cache.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedis connects to the Redis instance named by cfg.URL. The connection
// is verified lazily: a down backend only produces misses.
func NewRedis(cfg types.CacheConfig, log zerolog.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Redis{client: redis.NewClient(opts), ttl: ttl, log: log}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Debug().Err(err).Str("key", key).Msg("cache get failed")
		}
		return nil, false
	}
	return data, true
}

func (r *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = r.ttl
	}
	if err := r.client.Set(ctx, keyPrefix+key, val, ttl).Err(); err != nil {
		r.log.Debug().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (r *Redis) Del(ctx context.Context, key string) {
	if err := r.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		r.log.Debug().Err(err).Str("key", key).Msg("cache del failed")
	}
}

func (r *Redis) DelPattern(ctx context.Context, pattern string) {
	iter := r.client.Scan(ctx, 0, keyPrefix+pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.log.Debug().Err(err).Str("pattern", pattern).Msg("cache scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.log.Debug().Err(err).Str("pattern", pattern).Msg("cache del failed")
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// Nop is the Cache used when no Redis URL is configured: every read misses
// and every write is dropped, so read paths go straight to the store.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool)            { return nil, false }
func (Nop) Set(context.Context, string, []byte, time.Duration)    {}
func (Nop) Del(context.Context, string)                           {}
func (Nop) DelPattern(context.Context, string)                    {}
func (Nop) Close() error                                          { return nil }

// FromConfig returns a Redis cache when cfg.URL is set, a Nop cache
// otherwise. A malformed URL is a configuration error.
func FromConfig(cfg types.CacheConfig, log zerolog.Logger) (Cache, error) {
	if cfg.URL == "" {
		return Nop{}, nil
	}
	return NewRedis(cfg, log)
}
