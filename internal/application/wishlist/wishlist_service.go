package wishlist

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/teestore/backend/internal/domain/catalog"
	"github.com/teestore/backend/internal/domain/shared"
	"github.com/teestore/backend/internal/domain/wishlist"
	"github.com/teestore/backend/internal/infrastructure/sessionstore"
	"go.uber.org/zap"
)

const keyPrefix = "wishlist:"

// WishlistService handles wishlist operations. Wishlists are stored as JSON
// blobs in the session store, one per owner key, deduplicated by product id.
type WishlistService struct {
	productRepo catalog.ProductRepository
	store       sessionstore.Store
	ttl         time.Duration
	logger      *zap.Logger
}

// NewWishlistService creates a new WishlistService
func NewWishlistService(productRepo catalog.ProductRepository, store sessionstore.Store, ttl time.Duration, logger *zap.Logger) *WishlistService {
	return &WishlistService{
		productRepo: productRepo,
		store:       store,
		ttl:         ttl,
		logger:      logger,
	}
}

// Get returns the wishlist for the owner key. Absent or unreadable blobs
// degrade to an empty wishlist.
func (s *WishlistService) Get(ctx context.Context, ownerKey string) (*WishlistResponse, error) {
	w := s.load(ctx, ownerKey)
	response := ToWishlistResponse(w)
	return &response, nil
}

// Add resolves the product and saves it. A product already on the wishlist
// is a no-op.
func (s *WishlistService) Add(ctx context.Context, ownerKey string, req AddEntryRequest) (*WishlistResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is no longer available")
	}

	w := s.load(ctx, ownerKey)
	if w.Add(product.ID, product.Name, product.Price, product.ImageURL) {
		s.save(ctx, ownerKey, w)
	}

	response := ToWishlistResponse(w)
	return &response, nil
}

// Remove drops a product. An absent product is a no-op.
func (s *WishlistService) Remove(ctx context.Context, ownerKey string, productID uuid.UUID) (*WishlistResponse, error) {
	w := s.load(ctx, ownerKey)
	if w.Remove(productID) {
		s.save(ctx, ownerKey, w)
	}

	response := ToWishlistResponse(w)
	return &response, nil
}

// Clear empties the wishlist
func (s *WishlistService) Clear(ctx context.Context, ownerKey string) (*WishlistResponse, error) {
	w := wishlist.NewWishlist(ownerKey)
	s.save(ctx, ownerKey, w)

	response := ToWishlistResponse(w)
	return &response, nil
}

// Contains reports whether the product is saved for the owner key
func (s *WishlistService) Contains(ctx context.Context, ownerKey string, productID uuid.UUID) bool {
	return s.load(ctx, ownerKey).Contains(productID)
}

// MergeInto unions the wishlist stored under fromKey into the one under
// toKey, then drops the source blob. Used on login.
func (s *WishlistService) MergeInto(ctx context.Context, fromKey, toKey string) {
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
		s.logger.Warn("Failed to delete merged wishlist blob",
			zap.String("owner_key", fromKey),
			zap.Error(err))
	}
}

func (s *WishlistService) load(ctx context.Context, ownerKey string) *wishlist.Wishlist {
	data, found, err := s.store.Get(ctx, keyPrefix+ownerKey)
	if err != nil {
		s.logger.Warn("Failed to read wishlist blob, serving empty wishlist",
			zap.String("owner_key", ownerKey),
			zap.Error(err))
		return wishlist.NewWishlist(ownerKey)
	}
	if !found {
		return wishlist.NewWishlist(ownerKey)
	}

	var w wishlist.Wishlist
	if err := json.Unmarshal(data, &w); err != nil {
		s.logger.Warn("Failed to decode wishlist blob, serving empty wishlist",
			zap.String("owner_key", ownerKey),
			zap.Error(err))
		return wishlist.NewWishlist(ownerKey)
	}
	w.OwnerKey = ownerKey
	return &w
}

func (s *WishlistService) save(ctx context.Context, ownerKey string, w *wishlist.Wishlist) {
	data, err := json.Marshal(w)
	if err != nil {
		s.logger.Error("Failed to encode wishlist blob",
			zap.String("owner_key", ownerKey),
			zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, keyPrefix+ownerKey, data, s.ttl); err != nil {
		s.logger.Error("Failed to write wishlist blob",
			zap.String("owner_key", ownerKey),
			zap.Error(err))
	}
}
