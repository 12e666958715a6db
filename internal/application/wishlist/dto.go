package wishlist

import (
	"time"

	"github.com/google/uuid"
	"github.com/teestore/backend/internal/domain/shared"
	"github.com/teestore/backend/internal/domain/wishlist"
)

// AddEntryRequest represents a request to save a product to the wishlist
type AddEntryRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// EntryResponse represents one saved product in API responses
type EntryResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     shared.Money    `json:"price"`
	ImageURL  string          `json:"image_url,omitempty"`
	AddedAt   time.Time       `json:"added_at"`
}

// WishlistResponse represents the wishlist
type WishlistResponse struct {
	Items     []EntryResponse `json:"items"`
	Count     int             `json:"count"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToWishlistResponse converts a domain Wishlist to WishlistResponse
func ToWishlistResponse(w *wishlist.Wishlist) WishlistResponse {
	items := make([]EntryResponse, len(w.Items))
	for i, entry := range w.Items {
		items[i] = EntryResponse{
			ProductID: entry.ProductID,
			Name:      entry.Name,
			Price:     shared.NewMoney(entry.Price),
			ImageURL:  entry.ImageURL,
			AddedAt:   entry.AddedAt,
		}
	}
	return WishlistResponse{
		Items:     items,
		Count:     w.Count(),
		UpdatedAt: w.UpdatedAt,
	}
}
