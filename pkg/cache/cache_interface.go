package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer.
// Keeping it behind an interface lets handlers swap Redis for an
// in-memory implementation in tests.
type Cache interface {
	// Get reads a key and unmarshals the stored value into dest.
	// Returns (found, error):
	// - found = true: cache hit, data unmarshaled into dest
	// - found = false: cache miss, dest untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
