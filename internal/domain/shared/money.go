package shared

import "github.com/shopspring/decimal"

// Money wraps a decimal amount so API responses always render exactly two
// fraction digits ("19.90", never "19.9"). Rounding is half away from zero.
// The zero value renders as "0.00".
type Money struct {
	decimal.Decimal
}

// NewMoney wraps an amount for fixed two-place rendering
func NewMoney(amount decimal.Decimal) Money {
	return Money{Decimal: amount}
}

// MarshalJSON implements json.Marshaler with a fixed two-place string
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}
