package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/teestore/backend/internal/domain/shared"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusArchived ProductStatus = "archived"
)

// StringList stores a list of strings as a JSON array column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// Contains reports whether the list holds the given value
func (l StringList) Contains(value string) bool {
	for _, s := range l {
		if s == value {
			return true
		}
	}
	return false
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Product represents a sellable shirt in the catalog
// It is the aggregate root for catalog operations
type Product struct {
	shared.BaseAggregateRoot
	Slug        string          `gorm:"type:varchar(120);not null;uniqueIndex"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Sizes       StringList      `gorm:"type:text;not null"`
	Colors      StringList      `gorm:"type:text;not null"`
	ImageURL    string          `gorm:"type:varchar(500)"`
	Featured    bool            `gorm:"not null;default:false;index"`
	Status      ProductStatus   `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(slug, name, description string, price decimal.Decimal, sizes, colors []string) (*Product, error) {
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if err := validateVariants(sizes, colors); err != nil {
		return nil, err
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Slug:              strings.ToLower(slug),
		Name:              name,
		Description:       description,
		Price:             price,
		Currency:          "USD",
		Sizes:             StringList(sizes),
		Colors:            StringList(colors),
		Status:            ProductStatusActive,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPrice updates the selling price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}

	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetVariants replaces the available sizes and colors
func (p *Product) SetVariants(sizes, colors []string) error {
	if err := validateVariants(sizes, colors); err != nil {
		return err
	}

	p.Sizes = StringList(sizes)
	p.Colors = StringList(colors)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetImageURL updates the product image
func (p *Product) SetImageURL(url string) {
	p.ImageURL = url
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetFeatured toggles the featured flag
func (p *Product) SetFeatured(featured bool) {
	p.Featured = featured
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Archive removes the product from storefront listings
// An archived product stays readable by ID so existing carts and orders keep resolving
func (p *Product) Archive() error {
	if p.Status == ProductStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Product is already archived")
	}

	p.Status = ProductStatusArchived
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Restore reactivates an archived product
func (p *Product) Restore() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}

	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsArchived returns true if the product is archived
func (p *Product) IsArchived() bool {
	return p.Status == ProductStatusArchived
}

// HasSize reports whether the product offers the given size
func (p *Product) HasSize(size string) bool {
	return p.Sizes.Contains(size)
}

// HasColor reports whether the product offers the given color
func (p *Product) HasColor(color string) bool {
	return p.Colors.Contains(color)
}

func validateSlug(slug string) error {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Product slug is required")
	}
	if len(slug) > 120 {
		return shared.NewDomainError("INVALID_SLUG", "Product slug cannot exceed 120 characters")
	}
	if !slugPattern.MatchString(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Product slug must contain only lowercase letters, digits and hyphens")
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return nil
}

func validateVariants(sizes, colors []string) error {
	if len(sizes) == 0 {
		return shared.NewDomainError("INVALID_VARIANTS", "Product must offer at least one size")
	}
	if len(colors) == 0 {
		return shared.NewDomainError("INVALID_VARIANTS", "Product must offer at least one color")
	}
	for _, s := range sizes {
		if strings.TrimSpace(s) == "" {
			return shared.NewDomainError("INVALID_VARIANTS", "Size values cannot be empty")
		}
	}
	for _, c := range colors {
		if strings.TrimSpace(c) == "" {
			return shared.NewDomainError("INVALID_VARIANTS", "Color values cannot be empty")
		}
	}
	return nil
}
