package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	catalogapp "github.com/teestore/backend/internal/application/catalog"
	identityapp "github.com/teestore/backend/internal/application/identity"
	"github.com/teestore/backend/internal/infrastructure/auth"
	"github.com/teestore/backend/internal/infrastructure/config"
	"github.com/teestore/backend/internal/infrastructure/logger"
	"github.com/teestore/backend/internal/infrastructure/persistence"
	"github.com/teestore/backend/internal/infrastructure/sessionstore"
)

// seedProduct is one catalog entry of the demo storefront
type seedProduct struct {
	slug        string
	name        string
	description string
	price       string
	sizes       []string
	colors      []string
	imageURL    string
	featured    bool
}

var demoCatalog = []seedProduct{
	{
		slug:        "classic-crew-tee",
		name:        "Classic Crew Tee",
		description: "The everyday staple. Midweight combed cotton with a ribbed crew neck.",
		price:       "19.99",
		sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		colors:      []string{"black", "white", "heather-grey", "navy"},
		imageURL:    "https://cdn.teestore.example.com/products/classic-crew.jpg",
		featured:    true,
	},
	{
		slug:        "vintage-washed-tee",
		name:        "Vintage Washed Tee",
		description: "Garment-dyed and pre-shrunk for a broken-in feel from day one.",
		price:       "24.99",
		sizes:       []string{"S", "M", "L", "XL"},
		colors:      []string{"faded-black", "dusty-rose", "sage"},
		imageURL:    "https://cdn.teestore.example.com/products/vintage-washed.jpg",
		featured:    true,
	},
	{
		slug:        "pocket-tee",
		name:        "Pocket Tee",
		description: "Classic fit with a single chest pocket. Heavyweight 220gsm cotton.",
		price:       "22.50",
		sizes:       []string{"S", "M", "L", "XL", "XXL"},
		colors:      []string{"white", "olive", "navy"},
		imageURL:    "https://cdn.teestore.example.com/products/pocket.jpg",
	},
	{
		slug:        "long-sleeve-tee",
		name:        "Long Sleeve Tee",
		description: "Lightweight long sleeve with ribbed cuffs. Layers without bulk.",
		price:       "27.00",
		sizes:       []string{"S", "M", "L", "XL"},
		colors:      []string{"black", "white", "burgundy"},
		imageURL:    "https://cdn.teestore.example.com/products/long-sleeve.jpg",
	},
	{
		slug:        "graphic-logo-tee",
		name:        "Graphic Logo Tee",
		description: "Screen-printed front logo on a relaxed-fit blank.",
		price:       "29.99",
		sizes:       []string{"XS", "S", "M", "L", "XL"},
		colors:      []string{"black", "white"},
		imageURL:    "https://cdn.teestore.example.com/products/graphic-logo.jpg",
		featured:    true,
	},
	{
		slug:        "striped-breton-tee",
		name:        "Striped Breton Tee",
		description: "Nautical stripes on a boxy cut. Slightly heavier jersey knit.",
		price:       "26.50",
		sizes:       []string{"S", "M", "L"},
		colors:      []string{"navy-white", "black-white"},
		imageURL:    "https://cdn.teestore.example.com/products/breton.jpg",
	},
}

func main() {
	var (
		logLevel   string
		withDemo   bool
		adminEmail string
		adminPass  string
	)

	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&withDemo, "demo", false, "Also create a demo shopper account")
	flag.StringVar(&adminEmail, "admin-email", "", "Admin email (overrides config)")
	flag.StringVar(&adminPass, "admin-password", "", "Admin password (overrides config)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if adminEmail == "" {
		adminEmail = cfg.Seed.AdminEmail
	}
	if adminPass == "" {
		adminPass = cfg.Seed.AdminPassword
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Schema migrated")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	productRepo := persistence.NewGormProductRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	productService := catalogapp.NewProductService(productRepo, log)

	store := sessionstore.NewMemoryStore()
	defer func() {
		_ = store.Close()
	}()
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService,
		auth.NewStoreTokenBlacklist(store), nil, log)

	created := 0
	for _, p := range demoCatalog {
		if _, err := productService.GetBySlug(ctx, p.slug); err == nil {
			continue
		}

		featured := p.featured
		_, err := productService.Create(ctx, catalogapp.CreateProductRequest{
			Slug:        p.slug,
			Name:        p.name,
			Description: p.description,
			Price:       decimal.RequireFromString(p.price),
			Sizes:       p.sizes,
			Colors:      p.colors,
			ImageURL:    p.imageURL,
			Featured:    &featured,
		})
		if err != nil {
			log.Fatal("Failed to seed product", zap.String("slug", p.slug), zap.Error(err))
		}
		created++
	}
	log.Info("Catalog seeded", zap.Int("created", created), zap.Int("total", len(demoCatalog)))

	if adminEmail != "" && adminPass != "" {
		if err := authService.EnsureAdmin(ctx, adminEmail, adminPass); err != nil {
			log.Fatal("Failed to seed admin account", zap.Error(err))
		}
		log.Info("Admin account ready", zap.String("email", adminEmail))
	}

	if withDemo {
		_, err := authService.Register(ctx, identityapp.RegisterInput{
			Email:     "shopper@example.com",
			Password:  "password123",
			FirstName: "Demo",
			LastName:  "Shopper",
		})
		if err != nil {
			log.Warn("Demo shopper not created", zap.Error(err))
		} else {
			log.Info("Demo shopper ready", zap.String("email", "shopper@example.com"))
		}
	}

	log.Info("Seeding complete")
}
