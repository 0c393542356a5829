package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer. Handlers and services receive it
// through the container rather than touching a process-wide client, so every
// entry has a TTL and every key can be invalidated explicitly.
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// Returns (found, error); on a miss dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes all keys matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Increment atomically increments a counter key.
	Increment(ctx context.Context, key string) (int64, error)

	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
