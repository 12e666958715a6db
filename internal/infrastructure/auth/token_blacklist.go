package auth

import (
	"context"
	"time"

	"github.com/teestore/backend/internal/infrastructure/sessionstore"
)

// TokenBlacklist invalidates JWT tokens before their natural expiry (logout).
// Revoked is keyed by the token's JTI; entries live only as long as the token
// itself would have.
type TokenBlacklist interface {
	// Revoke adds a token's JTI to the blacklist for the given TTL
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	// IsRevoked checks if a token's JTI has been revoked
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// StoreTokenBlacklist implements TokenBlacklist on the session store, so the
// blacklist shares the configured backend (memory or Redis) with carts and
// wishlists.
type StoreTokenBlacklist struct {
	store     sessionstore.Store
	keyPrefix string
}

// NewStoreTokenBlacklist creates a blacklist backed by the given session store
func NewStoreTokenBlacklist(store sessionstore.Store) *StoreTokenBlacklist {
	return &StoreTokenBlacklist{
		store:     store,
		keyPrefix: "revoked:",
	}
}

// Revoke adds a token's JTI to the blacklist
func (b *StoreTokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired, nothing to revoke
		return nil
	}
	return b.store.Set(ctx, b.keyPrefix+jti, []byte("1"), ttl)
}

// IsRevoked checks if a token's JTI is in the blacklist
func (b *StoreTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, ok, err := b.store.Get(ctx, b.keyPrefix+jti)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Ensure StoreTokenBlacklist implements TokenBlacklist
var _ TokenBlacklist = (*StoreTokenBlacklist)(nil)
