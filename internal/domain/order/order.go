package order

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/teestore/backend/internal/domain/cart"
	"github.com/teestore/backend/internal/domain/shared"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// CanTransitionTo checks if the status can move to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusPaid || target == OrderStatusCancelled
	case OrderStatusPaid, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// Item is an immutable snapshot of a cart line at checkout time
type Item struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Items stores the order snapshot as a JSON column
type Items []Item

// Value implements driver.Valuer
func (items Items) Value() (driver.Value, error) {
	if items == nil {
		items = Items{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (items *Items) Scan(value interface{}) error {
	if value == nil {
		*items = Items{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	default:
		return fmt.Errorf("unsupported type %T for Items", value)
	}
}

// Order represents a checked-out cart
// Items are frozen at checkout; later catalog changes never touch them
type Order struct {
	shared.BaseAggregateRoot
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Number       string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Items        Items           `gorm:"type:text;not null"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency     string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Status       OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaidAt       *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewNumber generates a unique, human-readable order number
func NewNumber(now time.Time) string {
	short := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102150405"), strings.ToUpper(short))
}

// NewFromCart creates a pending order snapshotting the given cart
func NewFromCart(userID uuid.UUID, c *cart.Cart) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if c == nil || c.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot check out an empty cart")
	}

	items := make(Items, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			Size:      line.Size,
			Color:     line.Color,
			UnitPrice: line.Price,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal(),
		})
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Number:            NewNumber(time.Now()),
		Items:             items,
		Subtotal:          c.Subtotal(),
		Currency:          "USD",
		Status:            OrderStatusPending,
	}, nil
}

// MarkPaid transitions the order from pending to paid
func (o *Order) MarkPaid() error {
	if !o.Status.CanTransitionTo(OrderStatusPaid) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark order in %s status as paid", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusPaid
	o.PaidAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// Cancel cancels a pending order
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// IsPending returns true while the order awaits payment
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// ItemCount is the total number of units across the snapshot
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}
