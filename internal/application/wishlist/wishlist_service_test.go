package wishlist

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

func newWishlistService(t *testing.T, repo *MockProductRepository) *WishlistService {
	t.Helper()
	store := sessionstore.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	return NewWishlistService(repo, store, time.Hour, zap.NewNop())
}

func mustTee(t *testing.T, slug, name string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(slug, name, "Soft cotton tee",
		decimal.RequireFromString("19.99"),
		[]string{"S", "M", "L"},
		[]string{"black", "white"})
	require.NoError(t, err)
	return p
}

func TestWishlistService_Get(t *testing.T) {
	ctx := context.Background()

	svc := newWishlistService(t, new(MockProductRepository))

	resp, err := svc.Get(ctx, "anon-1")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, resp.Count)
}

func TestWishlistService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("saves a product", func(t *testing.T) {
		repo := new(MockProductRepository)
		product := mustTee(t, "classic-tee", "Classic Tee")
		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		svc := newWishlistService(t, repo)

		resp, err := svc.Add(ctx, "anon-1", AddEntryRequest{ProductID: product.ID})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, product.ID, resp.Items[0].ProductID)

		reloaded, err := svc.Get(ctx, "anon-1")
		require.NoError(t, err)
		assert.Equal(t, 1, reloaded.Count)
	})

	t.Run("adding twice is a no-op", func(t *testing.T) {
		repo := new(MockProductRepository)
		product := mustTee(t, "classic-tee", "Classic Tee")
		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		svc := newWishlistService(t, repo)

		_, err := svc.Add(ctx, "anon-1", AddEntryRequest{ProductID: product.ID})
		require.NoError(t, err)
		resp, err := svc.Add(ctx, "anon-1", AddEntryRequest{ProductID: product.ID})
		require.NoError(t, err)
		assert.Len(t, resp.Items, 1)
	})

	t.Run("unknown product propagates not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		svc := newWishlistService(t, repo)

		_, err := svc.Add(ctx, "anon-1", AddEntryRequest{ProductID: id})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("archived product is rejected", func(t *testing.T) {
		repo := new(MockProductRepository)
		product := mustTee(t, "retired-tee", "Retired Tee")
		require.NoError(t, product.Archive())
		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		svc := newWishlistService(t, repo)

		_, err := svc.Add(ctx, "anon-1", AddEntryRequest{ProductID: product.ID})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_UNAVAILABLE", domainErr.Code)
	})
}

func TestWishlistService_Remove(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProductRepository)
	product := mustTee(t, "classic-tee", "Classic Tee")
	repo.On("FindByID", ctx, product.ID).Return(product, nil)

	svc := newWishlistService(t, repo)

	_, err := svc.Add(ctx, "anon-1", AddEntryRequest{ProductID: product.ID})
	require.NoError(t, err)

	resp, err := svc.Remove(ctx, "anon-1", product.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)

	// Removing an absent product is a no-op
	resp, err = svc.Remove(ctx, "anon-1", product.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestWishlistService_Contains(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProductRepository)
	product := mustTee(t, "classic-tee", "Classic Tee")
	repo.On("FindByID", ctx, product.ID).Return(product, nil)

	svc := newWishlistService(t, repo)

	assert.False(t, svc.Contains(ctx, "anon-1", product.ID))

	_, err := svc.Add(ctx, "anon-1", AddEntryRequest{ProductID: product.ID})
	require.NoError(t, err)

	assert.True(t, svc.Contains(ctx, "anon-1", product.ID))
}

func TestWishlistService_Clear(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProductRepository)
	product := mustTee(t, "classic-tee", "Classic Tee")
	repo.On("FindByID", ctx, product.ID).Return(product, nil)

	svc := newWishlistService(t, repo)

	_, err := svc.Add(ctx, "anon-1", AddEntryRequest{ProductID: product.ID})
	require.NoError(t, err)

	resp, err := svc.Clear(ctx, "anon-1")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)

	reloaded, err := svc.Get(ctx, "anon-1")
	require.NoError(t, err)
	assert.Empty(t, reloaded.Items)
}

func TestWishlistService_MergeInto(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProductRepository)
	classic := mustTee(t, "classic-tee", "Classic Tee")
	vintage := mustTee(t, "vintage-tee", "Vintage Tee")
	repo.On("FindByID", ctx, classic.ID).Return(classic, nil)
	repo.On("FindByID", ctx, vintage.ID).Return(vintage, nil)

	svc := newWishlistService(t, repo)

	_, err := svc.Add(ctx, "anon-1", AddEntryRequest{ProductID: classic.ID})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "anon-1", AddEntryRequest{ProductID: vintage.ID})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "user:42", AddEntryRequest{ProductID: classic.ID})
	require.NoError(t, err)

	svc.MergeInto(ctx, "anon-1", "user:42")

	merged, err := svc.Get(ctx, "user:42")
	require.NoError(t, err)
	assert.Len(t, merged.Items, 2)

	anon, err := svc.Get(ctx, "anon-1")
	require.NoError(t, err)
	assert.Empty(t, anon.Items)
}
