package cache

import (
	"context"
	"time"
)

// Cache is the key-value port consumed by the discovery read path.
// Allows swapping the implementation (Redis, in-memory for tests).
//
// The cache is best-effort everywhere: callers must treat any returned error
// as a miss and fall back to the source of truth. A cache outage degrades
// latency, never correctness.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found = false means a miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys. Reports whether at least one key existed.
	Delete(ctx context.Context, keys ...string) (bool, error)

	// DeletePattern removes every key matching a glob pattern and returns
	// the number of keys removed.
	DeletePattern(ctx context.Context, pattern string) (int, error)

	// Exists reports whether the key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
