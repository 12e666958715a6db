package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/teestore/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByNumber finds an order by its number
	FindByNumber(ctx context.Context, number string) (*Order, error)

	// FindByUser finds all orders for a user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindAll finds all orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByUser counts orders for a user
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
