package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultVariant substitutes for a missing size or color when building item keys
const DefaultVariant = "default"

// ItemKey builds the identity of a cart line from product and variant choice.
// Lines with the same product, size and color merge into one.
func ItemKey(productID uuid.UUID, size, color string) string {
	if size == "" {
		size = DefaultVariant
	}
	if color == "" {
		color = DefaultVariant
	}
	return productID.String() + "-" + size + "-" + color
}

// LineItem is a product variant plus quantity inside a cart
type LineItem struct {
	Key       string          `json:"key"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
}

// LineTotal returns price times quantity for this line
func (i LineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds the shopping cart for one owner key.
// Totals are never stored; they are derived from Items on every read.
type Cart struct {
	OwnerKey  string     `json:"owner_key"`
	Items     []LineItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart creates an empty cart for the given owner key
func NewCart(ownerKey string) *Cart {
	return &Cart{
		OwnerKey:  ownerKey,
		Items:     []LineItem{},
		UpdatedAt: time.Now(),
	}
}

// AddItem merges a variant into the cart. An existing line with the same key
// has its quantity incremented; otherwise a new line is appended.
// A non-positive quantity is treated as 1.
func (c *Cart) AddItem(productID uuid.UUID, name string, price decimal.Decimal, imageURL, size, color string, quantity int) LineItem {
	if size == "" {
		size = DefaultVariant
	}
	if color == "" {
		color = DefaultVariant
	}
	if quantity <= 0 {
		quantity = 1
	}

	key := ItemKey(productID, size, color)
	for i := range c.Items {
		if c.Items[i].Key == key {
			c.Items[i].Quantity += quantity
			c.touch()
			return c.Items[i]
		}
	}

	item := LineItem{
		Key:       key,
		ProductID: productID,
		Name:      name,
		Price:     price,
		ImageURL:  imageURL,
		Size:      size,
		Color:     color,
		Quantity:  quantity,
	}
	c.Items = append(c.Items, item)
	c.touch()
	return item
}

// UpdateQuantity sets the quantity of the line with the given key, clamped to
// a minimum of 1. An unknown key is a no-op. Returns true when a line changed.
func (c *Cart) UpdateQuantity(key string, quantity int) bool {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].Key == key {
			c.Items[i].Quantity = quantity
			c.touch()
			return true
		}
	}
	return false
}

// RemoveItem removes the line with the given key. An unknown key is a no-op.
// Returns true when a line was removed.
func (c *Cart) RemoveItem(key string) bool {
	for i := range c.Items {
		if c.Items[i].Key == key {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch()
			return true
		}
	}
	return false
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = []LineItem{}
	c.touch()
}

// Find returns the line with the given key, if present
func (c *Cart) Find(key string) (LineItem, bool) {
	for _, item := range c.Items {
		if item.Key == key {
			return item, true
		}
	}
	return LineItem{}, false
}

// Subtotal is the sum of all line totals
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Count is the total number of units across all lines
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Merge folds another cart into this one, adding quantities for lines that
// share a key. Used when an anonymous cart joins an account on login.
func (c *Cart) Merge(other *Cart) {
	if other == nil {
		return
	}
	for _, item := range other.Items {
		c.AddItem(item.ProductID, item.Name, item.Price, item.ImageURL, item.Size, item.Color, item.Quantity)
	}
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
}
