package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/teestore/backend/internal/domain/catalog"
	"github.com/teestore/backend/internal/domain/shared"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Slug        string          `json:"slug" binding:"required,min=1,max=100"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Sizes       []string        `json:"sizes" binding:"required,min=1"`
	Colors      []string        `json:"colors" binding:"required,min=1"`
	ImageURL    string          `json:"image_url" binding:"max=500"`
	Featured    *bool           `json:"featured"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price"`
	Sizes       []string         `json:"sizes" binding:"omitempty,min=1"`
	Colors      []string         `json:"colors" binding:"omitempty,min=1"`
	ImageURL    *string          `json:"image_url" binding:"omitempty,max=500"`
	Featured    *bool            `json:"featured"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       shared.Money    `json:"price"`
	Currency    string          `json:"currency"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	ImageURL    string          `json:"image_url"`
	Featured    bool            `json:"featured"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search   string   `form:"search"`
	Status   string   `form:"status" binding:"omitempty,oneof=active archived"`
	Featured *bool    `form:"featured"`
	MinPrice *float64 `form:"min_price"`
	MaxPrice *float64 `form:"max_price"`
	Page     int      `form:"page" binding:"omitempty,min=1"`
	PageSize int      `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string   `form:"order_by"`
	OrderDir string   `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		Price:       shared.NewMoney(p.Price),
		Currency:    p.Currency,
		Sizes:       p.Sizes,
		Colors:      p.Colors,
		ImageURL:    p.ImageURL,
		Featured:    p.Featured,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// ToProductResponses converts a slice of domain Products to ProductResponses
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(&p)
	}
	return responses
}
