package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/teestore/backend/internal/domain/cart"
	"github.com/teestore/backend/internal/domain/catalog"
	"github.com/teestore/backend/internal/domain/shared"
	"github.com/teestore/backend/internal/infrastructure/sessionstore"
	"go.uber.org/zap"
)

const keyPrefix = "cart:"

// CartService handles shopping cart operations. Carts are stored as JSON
// blobs in the session store, one per owner key.
type CartService struct {
	productRepo catalog.ProductRepository
	store       sessionstore.Store
	ttl         time.Duration
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(productRepo catalog.ProductRepository, store sessionstore.Store, ttl time.Duration, logger *zap.Logger) *CartService {
	return &CartService{
		productRepo: productRepo,
		store:       store,
		ttl:         ttl,
		logger:      logger,
	}
}

// Get returns the cart for the owner key. Absent or unreadable blobs
// degrade to an empty cart.
func (s *CartService) Get(ctx context.Context, ownerKey string) (*CartResponse, error) {
	c := s.load(ctx, ownerKey)
	response := ToCartResponse(c)
	return &response, nil
}

// AddItem resolves the product and merges the chosen variant into the cart.
// Lines with the same product, size and color merge by adding quantities.
func (s *CartService) AddItem(ctx context.Context, ownerKey string, req AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is no longer available")
	}
	if req.Size != "" && !product.HasSize(req.Size) {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Product is not offered in this size")
	}
	if req.Color != "" && !product.HasColor(req.Color) {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Product is not offered in this color")
	}

	c := s.load(ctx, ownerKey)
	c.AddItem(product.ID, product.Name, product.Price, product.ImageURL, req.Size, req.Color, req.Quantity)
	s.save(ctx, ownerKey, c)

	response := ToCartResponse(c)
	return &response, nil
}

// UpdateQuantity sets the quantity of a line, clamped to a minimum of 1.
// An unknown key leaves the cart untouched.
func (s *CartService) UpdateQuantity(ctx context.Context, ownerKey, itemKey string, quantity int) (*CartResponse, error) {
	c := s.load(ctx, ownerKey)
	if c.UpdateQuantity(itemKey, quantity) {
		s.save(ctx, ownerKey, c)
	}

	response := ToCartResponse(c)
	return &response, nil
}

// RemoveItem removes a line. An unknown key is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, ownerKey, itemKey string) (*CartResponse, error) {
	c := s.load(ctx, ownerKey)
	if c.RemoveItem(itemKey) {
		s.save(ctx, ownerKey, c)
	}

	response := ToCartResponse(c)
	return &response, nil
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, ownerKey string) (*CartResponse, error) {
	c := cart.NewCart(ownerKey)
	s.save(ctx, ownerKey, c)

	response := ToCartResponse(c)
	return &response, nil
}

// Snapshot returns the raw domain cart, for checkout
func (s *CartService) Snapshot(ctx context.Context, ownerKey string) *cart.Cart {
	return s.load(ctx, ownerKey)
}

// MergeInto folds the cart stored under fromKey into the cart under toKey,
// adding quantities for matching variants, then drops the source blob.
// Used when an anonymous session logs into an account.
func (s *CartService) MergeInto(ctx context.Context, fromKey, toKey string) {
	if fromKey == "" || fromKey == toKey {
		return
	}

	source := s.load(ctx, fromKey)
	if source.IsEmpty() {
		return
	}

	target := s.load(ctx, toKey)
	target.Merge(source)
	s.save(ctx, toKey, target)

	if err := s.store.Delete(ctx, keyPrefix+fromKey); err != nil {
		s.logger.Warn("Failed to delete merged cart blob",
			zap.String("owner_key", fromKey),
			zap.Error(err))
	}
}

// load reads the cart blob. Read failures are logged and degrade to an
// empty cart so a broken blob never blocks the storefront.
func (s *CartService) load(ctx context.Context, ownerKey string) *cart.Cart {
	data, found, err := s.store.Get(ctx, keyPrefix+ownerKey)
	if err != nil {
		s.logger.Warn("Failed to read cart blob, serving empty cart",
			zap.String("owner_key", ownerKey),
			zap.Error(err))
		return cart.NewCart(ownerKey)
	}
	if !found {
		return cart.NewCart(ownerKey)
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		s.logger.Warn("Failed to decode cart blob, serving empty cart",
			zap.String("owner_key", ownerKey),
			zap.Error(err))
		return cart.NewCart(ownerKey)
	}
	c.OwnerKey = ownerKey
	return &c
}

// save writes the whole cart blob. Write failures are logged, not fatal;
// the in-memory cart stays authoritative for the response.
func (s *CartService) save(ctx context.Context, ownerKey string, c *cart.Cart) {
	data, err := json.Marshal(c)
	if err != nil {
		s.logger.Error("Failed to encode cart blob",
			zap.String("owner_key", ownerKey),
			zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, keyPrefix+ownerKey, data, s.ttl); err != nil {
		s.logger.Error("Failed to write cart blob",
			zap.String("owner_key", ownerKey),
			zap.Error(err))
	}
}
