package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/teestore/backend/internal/domain/catalog"
	"github.com/teestore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this slug already exists")
	}

	product, err := catalog.NewProduct(req.Slug, req.Name, req.Description, req.Price, req.Sizes, req.Colors)
	if err != nil {
		return nil, err
	}

	if req.ImageURL != "" {
		product.SetImageURL(req.ImageURL)
	}
	if req.Featured != nil {
		product.SetFeatured(*req.Featured)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("slug", product.Slug))

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID.
// Archived products stay readable here even though listings exclude them.
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetBySlug retrieves a product by slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination.
// Unless a status filter is given, only active products are listed.
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	} else {
		domainFilter.Filters["status"] = catalog.ProductStatusActive
	}
	if filter.Featured != nil {
		domainFilter.Filters["featured"] = *filter.Featured
	}
	if filter.MinPrice != nil {
		domainFilter.Filters["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		domainFilter.Filters["max_price"] = *filter.MaxPrice
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Featured retrieves active featured products
func (s *ProductService) Featured(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindFeatured(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		description := product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}

	if req.Sizes != nil || req.Colors != nil {
		sizes := []string(product.Sizes)
		colors := []string(product.Colors)
		if req.Sizes != nil {
			sizes = req.Sizes
		}
		if req.Colors != nil {
			colors = req.Colors
		}
		if err := product.SetVariants(sizes, colors); err != nil {
			return nil, err
		}
	}

	if req.ImageURL != nil {
		product.SetImageURL(*req.ImageURL)
	}
	if req.Featured != nil {
		product.SetFeatured(*req.Featured)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product updated", zap.String("product_id", product.ID.String()))

	response := ToProductResponse(product)
	return &response, nil
}

// Archive archives a product so it drops out of default listings
func (s *ProductService) Archive(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Archive(); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product archived", zap.String("product_id", product.ID.String()))

	response := ToProductResponse(product)
	return &response, nil
}

// Restore brings an archived product back to the active listing
func (s *ProductService) Restore(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Restore(); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}
