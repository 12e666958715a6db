package sessionstore

import (
	"context"
	"time"
)

// Store is a TTL'd key-value port for session-scoped state.
// Carts and wishlists are stored as JSON blobs under stable keys, and logout
// revocations piggyback on the same backend.
type Store interface {
	// Get returns the value for key. The second return is false when the key
	// is absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set writes the value under key with the given TTL. A zero TTL means the
	// entry never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store
	Close() error
}
