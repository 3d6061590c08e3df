// Package cache stores fetched API responses and rendered artifacts.
//
// Two backends ship with orchard: [FileCache] for the CLI (one JSON file per
// key under the XDG cache directory) and [RedisCache] for a preview server
// shared by several streaming machines. [NullCache] disables caching.
//
// Keys are built by a [Keyer] so that HTTP responses and artifacts never
// collide and so that a scope prefix can isolate tournaments sharing one
// backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiration.
// A ttl of 0 means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
