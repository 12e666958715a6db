package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/teestore/backend/internal/infrastructure/auth"
	"github.com/teestore/backend/internal/interfaces/http/handler"
	"github.com/teestore/backend/internal/interfaces/http/middleware"
)

// Dependencies holds everything route setup needs
type Dependencies struct {
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	Logger         *zap.Logger

	Health   *handler.HealthHandler
	Products *handler.ProductHandler
	Cart     *handler.CartHandler
	Wishlist *handler.WishlistHandler
	Auth     *handler.AuthHandler
	Orders   *handler.OrderHandler
}

// Setup wires every route group with its middleware onto the engine.
//
// Catalog reads are public. Cart and wishlist accept anonymous shoppers via
// the session key header, so they run optional auth. Orders and the auth
// profile routes require a token, and the back office additionally requires
// the admin role.
func Setup(engine *gin.Engine, deps Dependencies) {
	engine.GET("/health", deps.Health.Health)

	requireAuth := middleware.RequireAuthWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     deps.JWTService,
		TokenBlacklist: deps.TokenBlacklist,
		Logger:         deps.Logger,
	})
	optionalAuth := middleware.OptionalAuth(deps.JWTService)
	requireAdmin := middleware.RequireAdmin()
	sessionKey := middleware.SessionKey()

	api := engine.Group("/api/v1")

	deps.Products.RegisterPublicRoutes(api)
	deps.Auth.RegisterPublicRoutes(api)

	session := api.Group("", optionalAuth, sessionKey)
	deps.Cart.RegisterRoutes(session)
	deps.Wishlist.RegisterRoutes(session)

	authed := api.Group("", requireAuth)
	deps.Auth.RegisterProtectedRoutes(authed)
	deps.Orders.RegisterRoutes(authed)

	// Catalog management shares the public /products prefix but is admin-gated.
	catalogAdmin := api.Group("", requireAuth, requireAdmin)
	deps.Products.RegisterAdminRoutes(catalogAdmin)

	admin := api.Group("/admin", requireAuth, requireAdmin)
	deps.Orders.RegisterAdminRoutes(admin)
}
