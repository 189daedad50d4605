package cache

import (
	"context"
	"time"
)

// Cache is the contract for the key-value layer backing session
// storage. Implementations may be Redis or in-memory.
type Cache interface {
	// Get reads the value at key and unmarshals it into dest.
	// found=false means a miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value at key with a TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}
