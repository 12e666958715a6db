package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/teestore/backend/internal/domain/catalog"
	"github.com/teestore/backend/internal/domain/shared"
	"github.com/teestore/backend/internal/infrastructure/sessionstore"
	"go.uber.org/zap"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByStatus(ctx context.Context, status catalog.ProductStatus, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindFeatured(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByStatus(ctx context.Context, status catalog.ProductStatus, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func newCartService(t *testing.T, repo *MockProductRepository) *CartService {
	t.Helper()
	store := sessionstore.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	return NewCartService(repo, store, time.Hour, zap.NewNop())
}

func mustTee(t *testing.T, slug, name, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(slug, name, "Soft cotton tee",
		decimal.RequireFromString(price),
		[]string{"S", "M", "L"},
		[]string{"black", "white"})
	require.NoError(t, err)
	return p
}

func TestCartService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown owner gets empty cart", func(t *testing.T) {
		svc := newCartService(t, new(MockProductRepository))

		resp, err := svc.Get(ctx, "anon-1")
		require.NoError(t, err)
		assert.Empty(t, resp.Items)
		assert.True(t, resp.Subtotal.IsZero())
		assert.Equal(t, 0, resp.Count)
	})

	t.Run("corrupt blob degrades to empty cart", func(t *testing.T) {
		repo := new(MockProductRepository)
		store := sessionstore.NewMemoryStore()
		t.Cleanup(func() { _ = store.Close() })
		require.NoError(t, store.Set(ctx, "cart:anon-2", []byte("{not json"), 0))

		svc := NewCartService(repo, store, time.Hour, zap.NewNop())

		resp, err := svc.Get(ctx, "anon-2")
		require.NoError(t, err)
		assert.Empty(t, resp.Items)
	})
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("adds and persists a line", func(t *testing.T) {
		repo := new(MockProductRepository)
		product := mustTee(t, "classic-tee", "Classic Tee", "19.99")
		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		svc := newCartService(t, repo)

		resp, err := svc.AddItem(ctx, "anon-1", AddItemRequest{
			ProductID: product.ID,
			Size:      "M",
			Color:     "black",
			Quantity:  2,
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, product.ID.String()+"-M-black", resp.Items[0].Key)
		assert.Equal(t, 2, resp.Items[0].Quantity)
		assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("39.98")))

		// Survives a reload from the store
		reloaded, err := svc.Get(ctx, "anon-1")
		require.NoError(t, err)
		require.Len(t, reloaded.Items, 1)
		assert.Equal(t, 2, reloaded.Items[0].Quantity)
	})

	t.Run("same variant merges quantities", func(t *testing.T) {
		repo := new(MockProductRepository)
		product := mustTee(t, "classic-tee", "Classic Tee", "19.99")
		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		svc := newCartService(t, repo)
		addReq := AddItemRequest{ProductID: product.ID, Size: "M", Color: "black", Quantity: 1}

		_, err := svc.AddItem(ctx, "anon-1", addReq)
		require.NoError(t, err)
		resp, err := svc.AddItem(ctx, "anon-1", addReq)
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, 2, resp.Items[0].Quantity)
	})

	t.Run("missing variant uses default token", func(t *testing.T) {
		repo := new(MockProductRepository)
		product := mustTee(t, "classic-tee", "Classic Tee", "19.99")
		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		svc := newCartService(t, repo)

		resp, err := svc.AddItem(ctx, "anon-1", AddItemRequest{ProductID: product.ID, Quantity: 1})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, product.ID.String()+"-default-default", resp.Items[0].Key)
	})

	t.Run("non-positive quantity becomes 1", func(t *testing.T) {
		repo := new(MockProductRepository)
		product := mustTee(t, "classic-tee", "Classic Tee", "19.99")
		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		svc := newCartService(t, repo)

		resp, err := svc.AddItem(ctx, "anon-1", AddItemRequest{ProductID: product.ID, Quantity: 0})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Items[0].Quantity)
	})

	t.Run("unknown product propagates not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		svc := newCartService(t, repo)

		_, err := svc.AddItem(ctx, "anon-1", AddItemRequest{ProductID: id, Quantity: 1})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("archived product is rejected", func(t *testing.T) {
		repo := new(MockProductRepository)
		product := mustTee(t, "retired-tee", "Retired Tee", "19.99")
		require.NoError(t, product.Archive())
		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		svc := newCartService(t, repo)

		_, err := svc.AddItem(ctx, "anon-1", AddItemRequest{ProductID: product.ID, Quantity: 1})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_UNAVAILABLE", domainErr.Code)
	})

	t.Run("unoffered size is rejected", func(t *testing.T) {
		repo := new(MockProductRepository)
		product := mustTee(t, "classic-tee", "Classic Tee", "19.99")
		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		svc := newCartService(t, repo)

		_, err := svc.AddItem(ctx, "anon-1", AddItemRequest{ProductID: product.ID, Size: "XXXL", Quantity: 1})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_VARIANT", domainErr.Code)
	})
}

func TestCartService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProductRepository)
	product := mustTee(t, "classic-tee", "Classic Tee", "19.99")
	repo.On("FindByID", ctx, product.ID).Return(product, nil)

	svc := newCartService(t, repo)

	added, err := svc.AddItem(ctx, "anon-1", AddItemRequest{ProductID: product.ID, Size: "M", Color: "black", Quantity: 2})
	require.NoError(t, err)
	key := added.Items[0].Key

	t.Run("sets quantity", func(t *testing.T) {
		resp, err := svc.UpdateQuantity(ctx, "anon-1", key, 5)
		require.NoError(t, err)
		assert.Equal(t, 5, resp.Items[0].Quantity)
	})

	t.Run("clamps below one", func(t *testing.T) {
		resp, err := svc.UpdateQuantity(ctx, "anon-1", key, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Items[0].Quantity)
	})

	t.Run("unknown key is a no-op", func(t *testing.T) {
		resp, err := svc.UpdateQuantity(ctx, "anon-1", "missing-key", 9)
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 1, resp.Items[0].Quantity)
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProductRepository)
	product := mustTee(t, "classic-tee", "Classic Tee", "19.99")
	repo.On("FindByID", ctx, product.ID).Return(product, nil)

	svc := newCartService(t, repo)

	added, err := svc.AddItem(ctx, "anon-1", AddItemRequest{ProductID: product.ID, Size: "M", Color: "black", Quantity: 3})
	require.NoError(t, err)
	key := added.Items[0].Key

	resp, err := svc.RemoveItem(ctx, "anon-1", key)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)

	// Removing again is a no-op
	resp, err = svc.RemoveItem(ctx, "anon-1", key)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)

	// Re-adding starts a fresh line at the added quantity
	resp, err = svc.AddItem(ctx, "anon-1", AddItemRequest{ProductID: product.ID, Size: "M", Color: "black", Quantity: 1})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Items[0].Quantity)
}

func TestCartService_Clear(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProductRepository)
	product := mustTee(t, "classic-tee", "Classic Tee", "19.99")
	repo.On("FindByID", ctx, product.ID).Return(product, nil)

	svc := newCartService(t, repo)

	_, err := svc.AddItem(ctx, "anon-1", AddItemRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	resp, err := svc.Clear(ctx, "anon-1")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)

	reloaded, err := svc.Get(ctx, "anon-1")
	require.NoError(t, err)
	assert.Empty(t, reloaded.Items)
}

func TestCartService_MergeInto(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProductRepository)
	classic := mustTee(t, "classic-tee", "Classic Tee", "19.99")
	vintage := mustTee(t, "vintage-tee", "Vintage Tee", "24.99")
	repo.On("FindByID", ctx, classic.ID).Return(classic, nil)
	repo.On("FindByID", ctx, vintage.ID).Return(vintage, nil)

	svc := newCartService(t, repo)

	// Anonymous cart: 2x classic M black; user cart: 1x classic M black + 1x vintage
	_, err := svc.AddItem(ctx, "anon-1", AddItemRequest{ProductID: classic.ID, Size: "M", Color: "black", Quantity: 2})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user:42", AddItemRequest{ProductID: classic.ID, Size: "M", Color: "black", Quantity: 1})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user:42", AddItemRequest{ProductID: vintage.ID, Size: "L", Color: "white", Quantity: 1})
	require.NoError(t, err)

	svc.MergeInto(ctx, "anon-1", "user:42")

	merged, err := svc.Get(ctx, "user:42")
	require.NoError(t, err)
	require.Len(t, merged.Items, 2)

	var classicQty int
	for _, item := range merged.Items {
		if item.ProductID == classic.ID {
			classicQty = item.Quantity
		}
	}
	assert.Equal(t, 3, classicQty)

	// Source blob is gone
	anon, err := svc.Get(ctx, "anon-1")
	require.NoError(t, err)
	assert.Empty(t, anon.Items)
}
