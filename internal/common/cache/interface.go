package cache

import (
	"context"
	"time"
)

// Cache defines the key-value operations the services rely on.
// Implementations must treat a missing key as ("", nil) on Get.
type Cache interface {
	// Get retrieves the value for the given key
	Get(ctx context.Context, key string) (string, error)

	// Set stores a key-value pair with optional TTL
	// If ttl is 0, the key will not expire
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// SetNX sets the value only if the key does not exist (atomic operation)
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)

	// Del deletes one or more keys
	Del(ctx context.Context, keys ...string) error

	// Expire sets a timeout on a key
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Incr increments the integer value of a key by 1
	Incr(ctx context.Context, key string) (int64, error)

	// Ping verifies the cache connection is alive
	Ping(ctx context.Context) error

	// Close closes the cache connection
	Close() error
}
