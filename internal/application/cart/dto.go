package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/teestore/backend/internal/domain/cart"
	"github.com/teestore/backend/internal/domain/shared"
)

// AddItemRequest represents a request to add a product variant to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Size      string    `json:"size" binding:"max=20"`
	Color     string    `json:"color" binding:"max=50"`
	Quantity  int       `json:"quantity"`
}

// UpdateQuantityRequest represents a request to set a line quantity.
// Values below one are coerced, never rejected, so no binding floor here.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// LineItemResponse represents one cart line in API responses
type LineItemResponse struct {
	Key       string       `json:"key"`
	ProductID uuid.UUID    `json:"product_id"`
	Name      string       `json:"name"`
	Price     shared.Money `json:"price"`
	ImageURL  string       `json:"image_url,omitempty"`
	Size      string       `json:"size"`
	Color     string       `json:"color"`
	Quantity  int          `json:"quantity"`
	LineTotal shared.Money `json:"line_total"`
}

// CartResponse represents the cart with derived totals
type CartResponse struct {
	Items     []LineItemResponse `json:"items"`
	Subtotal  shared.Money       `json:"subtotal"`
	Count     int                `json:"count"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ToCartResponse converts a domain Cart to CartResponse.
// Subtotal and Count are recomputed here on every call; they are never stored.
func ToCartResponse(c *cart.Cart) CartResponse {
	items := make([]LineItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = LineItemResponse{
			Key:       item.Key,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     shared.NewMoney(item.Price),
			ImageURL:  item.ImageURL,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
			LineTotal: shared.NewMoney(item.LineTotal()),
		}
	}
	return CartResponse{
		Items:     items,
		Subtotal:  shared.NewMoney(c.Subtotal()),
		Count:     c.Count(),
		UpdatedAt: c.UpdatedAt,
	}
}
