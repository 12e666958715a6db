package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appcart "github.com/teestore/backend/internal/application/cart"
	"github.com/teestore/backend/internal/application/identity"
	"github.com/teestore/backend/internal/domain/cart"
	"github.com/teestore/backend/internal/domain/order"
	"github.com/teestore/backend/internal/domain/shared"
)

// CartAccess is the slice of the cart service checkout needs.
type CartAccess interface {
	Snapshot(ctx context.Context, ownerKey string) *cart.Cart
	Clear(ctx context.Context, ownerKey string) (*appcart.CartResponse, error)
}

// OrderService handles checkout and order lifecycle
type OrderService struct {
	orderRepo order.OrderRepository
	carts     CartAccess
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo order.OrderRepository, carts CartAccess, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		carts:     carts,
		logger:    logger,
	}
}

// Checkout turns the user's current cart into an order and clears the cart.
// The order snapshots every line so later catalog edits cannot change it.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID) (*OrderResponse, error) {
	ownerKey := identity.UserOwnerKey(userID)
	c := s.carts.Snapshot(ctx, ownerKey)

	o, err := order.NewFromCart(userID, c)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		s.logger.Error("Failed to save order", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, err
	}

	// The order is already durable; a failed cart clear only leaves a stale cart behind.
	if _, err := s.carts.Clear(ctx, ownerKey); err != nil {
		s.logger.Warn("Failed to clear cart after checkout",
			zap.Error(err),
			zap.String("order_number", o.Number))
	}

	s.logger.Info("Order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("number", o.Number),
		zap.String("user_id", userID.String()),
		zap.String("subtotal", o.Subtotal.String()))

	response := ToOrderResponse(o)
	return &response, nil
}

// GetByID retrieves an order visible to the requester. Customers only see
// their own orders; admins see everything.
func (s *OrderService) GetByID(ctx context.Context, orderID, requesterID uuid.UUID, isAdmin bool) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && o.UserID != requesterID {
		return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// ListByUser retrieves the requester's own orders, newest first
func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := buildFilter(filter)

	orders, err := s.orderRepo.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderResponses(orders), total, nil
}

// ListAll retrieves all orders, for back-office use
func (s *OrderService) ListAll(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := buildFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderResponses(orders), total, nil
}

// Cancel cancels a pending order on behalf of its owner (or an admin)
func (s *OrderService) Cancel(ctx context.Context, orderID, requesterID uuid.UUID, isAdmin bool, reason string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && o.UserID != requesterID {
		return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
	}

	if err := o.Cancel(reason); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		s.logger.Error("Failed to save cancelled order", zap.Error(err), zap.String("order_id", o.ID.String()))
		return nil, err
	}

	s.logger.Info("Order cancelled",
		zap.String("order_id", o.ID.String()),
		zap.String("number", o.Number))

	response := ToOrderResponse(o)
	return &response, nil
}

// MarkPaid records payment for a pending order
func (s *OrderService) MarkPaid(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.MarkPaid(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		s.logger.Error("Failed to save paid order", zap.Error(err), zap.String("order_id", o.ID.String()))
		return nil, err
	}

	s.logger.Info("Order marked paid",
		zap.String("order_id", o.ID.String()),
		zap.String("number", o.Number))

	response := ToOrderResponse(o)
	return &response, nil
}

func buildFilter(filter OrderListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		domainFilter.Filters = map[string]interface{}{"status": filter.Status}
	}
	return domainFilter
}
