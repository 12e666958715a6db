package wishlist

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is a saved product inside a wishlist
type Entry struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url,omitempty"`
	AddedAt   time.Time       `json:"added_at"`
}

// Wishlist holds the saved products for one owner key, deduplicated by product ID
type Wishlist struct {
	OwnerKey  string    `json:"owner_key"`
	Items     []Entry   `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewWishlist creates an empty wishlist for the given owner key
func NewWishlist(ownerKey string) *Wishlist {
	return &Wishlist{
		OwnerKey:  ownerKey,
		Items:     []Entry{},
		UpdatedAt: time.Now(),
	}
}

// Add saves a product. Adding a product that is already present is a no-op.
// Returns true when a new entry was added.
func (w *Wishlist) Add(productID uuid.UUID, name string, price decimal.Decimal, imageURL string) bool {
	if w.Contains(productID) {
		return false
	}
	w.Items = append(w.Items, Entry{
		ProductID: productID,
		Name:      name,
		Price:     price,
		ImageURL:  imageURL,
		AddedAt:   time.Now(),
	})
	w.touch()
	return true
}

// Remove drops a product. An absent product is a no-op.
// Returns true when an entry was removed.
func (w *Wishlist) Remove(productID uuid.UUID) bool {
	for i := range w.Items {
		if w.Items[i].ProductID == productID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			w.touch()
			return true
		}
	}
	return false
}

// Clear empties the wishlist
func (w *Wishlist) Clear() {
	w.Items = []Entry{}
	w.touch()
}

// Contains reports whether the product is saved
func (w *Wishlist) Contains(productID uuid.UUID) bool {
	for _, entry := range w.Items {
		if entry.ProductID == productID {
			return true
		}
	}
	return false
}

// Count returns the number of saved products
func (w *Wishlist) Count() int {
	return len(w.Items)
}

// IsEmpty reports whether the wishlist has no entries
func (w *Wishlist) IsEmpty() bool {
	return len(w.Items) == 0
}

// Merge folds another wishlist into this one, keeping the dedup invariant.
// Used when an anonymous wishlist joins an account on login.
func (w *Wishlist) Merge(other *Wishlist) {
	if other == nil {
		return
	}
	for _, entry := range other.Items {
		if !w.Contains(entry.ProductID) {
			w.Items = append(w.Items, entry)
		}
	}
	w.touch()
}

func (w *Wishlist) touch() {
	w.UpdatedAt = time.Now()
}
