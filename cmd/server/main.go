package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/teestore/backend/internal/application/cart"
	catalogapp "github.com/teestore/backend/internal/application/catalog"
	identityapp "github.com/teestore/backend/internal/application/identity"
	orderapp "github.com/teestore/backend/internal/application/order"
	wishlistapp "github.com/teestore/backend/internal/application/wishlist"
	"github.com/teestore/backend/internal/infrastructure/auth"
	"github.com/teestore/backend/internal/infrastructure/config"
	"github.com/teestore/backend/internal/infrastructure/logger"
	"github.com/teestore/backend/internal/infrastructure/persistence"
	"github.com/teestore/backend/internal/infrastructure/sessionstore"
	"github.com/teestore/backend/internal/interfaces/http/handler"
	"github.com/teestore/backend/internal/interfaces/http/middleware"
	"github.com/teestore/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting TeeStore Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	// Session store backs anonymous carts, wishlists and token revocation
	store, err := newSessionStore(cfg)
	if err != nil {
		log.Fatal("Failed to initialize session store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing session store", zap.Error(err))
		}
	}()
	log.Info("Session store ready", zap.String("backend", cfg.Session.Backend))

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Initialize auth infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	tokenBlacklist := auth.NewStoreTokenBlacklist(store)

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo, log)
	cartService := cartapp.NewCartService(productRepo, store, cfg.Session.TTL, log)
	wishlistService := wishlistapp.NewWishlistService(productRepo, store, cfg.Session.TTL, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, tokenBlacklist,
		[]identityapp.SessionMerger{cartService, wishlistService}, log)
	orderService := orderapp.NewOrderService(orderRepo, cartService, log)

	// Seed the admin account when configured
	if cfg.Seed.AdminEmail != "" && cfg.Seed.AdminPassword != "" {
		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := authService.EnsureAdmin(seedCtx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
			log.Error("Failed to seed admin account", zap.Error(err))
		}
		cancel()
	}

	// Set gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSFromHTTPConfig(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	router.Setup(engine, router.Dependencies{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		Logger:         log,
		Health:         handler.NewHealthHandler(db),
		Products:       handler.NewProductHandler(productService),
		Cart:           handler.NewCartHandler(cartService),
		Wishlist:       handler.NewWishlistHandler(wishlistService),
		Auth:           handler.NewAuthHandler(authService),
		Orders:         handler.NewOrderHandler(orderService),
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newSessionStore picks the session store backend from configuration.
// Redis is the right choice whenever more than one instance runs; the memory
// store loses carts on restart.
func newSessionStore(cfg *config.Config) (sessionstore.Store, error) {
	switch cfg.Session.Backend {
	case "redis":
		return sessionstore.NewRedisStore(cfg.Redis)
	default:
		return sessionstore.NewMemoryStore(), nil
	}
}
