package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cartapp "github.com/teestore/backend/internal/application/cart"
	catalogapp "github.com/teestore/backend/internal/application/catalog"
	identityapp "github.com/teestore/backend/internal/application/identity"
	orderapp "github.com/teestore/backend/internal/application/order"
	wishlistapp "github.com/teestore/backend/internal/application/wishlist"
	"github.com/teestore/backend/internal/infrastructure/auth"
	"github.com/teestore/backend/internal/infrastructure/config"
	"github.com/teestore/backend/internal/infrastructure/persistence"
	"github.com/teestore/backend/internal/infrastructure/sessionstore"
	"github.com/teestore/backend/internal/interfaces/http/dto"
	"github.com/teestore/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testEnv wires the full stack over sqlite and an in-memory session store,
// mirroring the production route setup.
type testEnv struct {
	engine          *gin.Engine
	jwtService      *auth.JWTService
	productService  *catalogapp.ProductService
	cartService     *cartapp.CartService
	wishlistService *wishlistapp.WishlistService
	authService     *identityapp.AuthService
	orderService    *orderapp.OrderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Type:         config.DatabaseTypeSQLite,
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	store := sessionstore.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-xx",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "teestore-test",
	})
	blacklist := auth.NewStoreTokenBlacklist(store)
	log := zap.NewNop()

	productRepo := persistence.NewGormProductRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	productService := catalogapp.NewProductService(productRepo, log)
	cartService := cartapp.NewCartService(productRepo, store, time.Hour, log)
	wishlistService := wishlistapp.NewWishlistService(productRepo, store, time.Hour, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist,
		[]identityapp.SessionMerger{cartService, wishlistService}, log)
	orderService := orderapp.NewOrderService(orderRepo, cartService, log)

	productHandler := NewProductHandler(productService)
	cartHandler := NewCartHandler(cartService)
	wishlistHandler := NewWishlistHandler(wishlistService)
	authHandler := NewAuthHandler(authService)
	orderHandler := NewOrderHandler(orderService)

	requireAuth := middleware.RequireAuthWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
	})
	optionalAuth := middleware.OptionalAuth(jwtService)
	requireAdmin := middleware.RequireAdmin()

	engine := gin.New()
	api := engine.Group("/api/v1")

	productHandler.RegisterPublicRoutes(api)
	authHandler.RegisterPublicRoutes(api)

	session := api.Group("", optionalAuth, middleware.SessionKey())
	cartHandler.RegisterRoutes(session)
	wishlistHandler.RegisterRoutes(session)

	authed := api.Group("", requireAuth)
	authHandler.RegisterProtectedRoutes(authed)
	orderHandler.RegisterRoutes(authed)

	catalogAdmin := api.Group("", requireAuth, requireAdmin)
	productHandler.RegisterAdminRoutes(catalogAdmin)

	admin := api.Group("/admin", requireAuth, requireAdmin)
	orderHandler.RegisterAdminRoutes(admin)

	return &testEnv{
		engine:          engine,
		jwtService:      jwtService,
		productService:  productService,
		cartService:     cartService,
		wishlistService: wishlistService,
		authService:     authService,
		orderService:    orderService,
	}
}

type requestOption func(*http.Request)

func withBearer(token string) requestOption {
	return func(req *http.Request) {
		req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+token)
	}
}

func withSessionKey(key string) requestOption {
	return func(req *http.Request) {
		req.Header.Set(middleware.SessionKeyHeader, key)
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// dataMap extracts the data object from a response envelope
func dataMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Data)
	m, ok := resp.Data.(map[string]any)
	require.True(t, ok, "data is not an object: %T", resp.Data)
	return m
}

// registerShopper creates an account and returns its access token
func (e *testEnv) registerShopper(t *testing.T, email string) string {
	t.Helper()

	w := e.do(t, "POST", "/api/v1/auth/register", map[string]any{
		"email":      email,
		"password":   "password123",
		"first_name": "Jamie",
		"last_name":  "Rivera",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return e.login(t, email, "password123")
}

// registerAdmin seeds an admin account and returns its access token
func (e *testEnv) registerAdmin(t *testing.T) string {
	t.Helper()

	require.NoError(t, e.authService.EnsureAdmin(context.Background(), "admin@example.com", "password123"))
	return e.login(t, "admin@example.com", "password123")
}

func (e *testEnv) login(t *testing.T, email, password string, opts ...requestOption) string {
	t.Helper()

	w := e.do(t, "POST", "/api/v1/auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, opts...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := dataMap(t, w)
	token, ok := data["access_token"].(string)
	require.True(t, ok, "login response missing access_token")
	return token
}

// seedProduct creates a product directly through the service
func (e *testEnv) seedProduct(t *testing.T, slug, name, price string) string {
	t.Helper()

	product, err := e.productService.Create(context.Background(), catalogapp.CreateProductRequest{
		Slug:        slug,
		Name:        name,
		Description: "Soft cotton tee",
		Price:       decimal.RequireFromString(price),
		Sizes:       []string{"S", "M", "L", "XL"},
		Colors:      []string{"black", "white"},
	})
	require.NoError(t, err)
	return product.ID.String()
}
