package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/teestore/backend/internal/domain/order"
	"github.com/teestore/backend/internal/domain/shared"
)

// CancelOrderRequest carries the optional reason for a cancellation
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// OrderItemResponse is one immutable snapshot line in API responses
type OrderItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	UnitPrice shared.Money `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal shared.Money `json:"line_total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	UserID       uuid.UUID           `json:"user_id"`
	Number       string              `json:"number"`
	Items        []OrderItemResponse `json:"items"`
	Subtotal     shared.Money        `json:"subtotal"`
	Currency     string              `json:"currency"`
	Status       string              `json:"status"`
	ItemCount    int                 `json:"item_count"`
	PaidAt       *time.Time          `json:"paid_at,omitempty"`
	CancelledAt  *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason string              `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Version      int                 `json:"version"`
}

// OrderListFilter represents filter options for order listings
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending paid cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Size:      item.Size,
			Color:     item.Color,
			UnitPrice: shared.NewMoney(item.UnitPrice),
			Quantity:  item.Quantity,
			LineTotal: shared.NewMoney(item.LineTotal),
		}
	}
	return OrderResponse{
		ID:           o.ID,
		UserID:       o.UserID,
		Number:       o.Number,
		Items:        items,
		Subtotal:     shared.NewMoney(o.Subtotal),
		Currency:     o.Currency,
		Status:       string(o.Status),
		ItemCount:    o.ItemCount(),
		PaidAt:       o.PaidAt,
		CancelledAt:  o.CancelledAt,
		CancelReason: o.CancelReason,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Version:      o.Version,
	}
}

// ToOrderResponses converts a slice of domain Orders to OrderResponses
func ToOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToOrderResponse(&o)
	}
	return responses
}
