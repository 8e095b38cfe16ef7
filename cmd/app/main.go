package main

import (
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/sirawit-dev/storefront-backend/internal/address"
	"github.com/sirawit-dev/storefront-backend/internal/admin"
	"github.com/sirawit-dev/storefront-backend/internal/cart"
	"github.com/sirawit-dev/storefront-backend/internal/category"
	"github.com/sirawit-dev/storefront-backend/internal/config"
	"github.com/sirawit-dev/storefront-backend/internal/events"
	"github.com/sirawit-dev/storefront-backend/internal/inventory"
	"github.com/sirawit-dev/storefront-backend/internal/metrics"
	"github.com/sirawit-dev/storefront-backend/internal/order"
	"github.com/sirawit-dev/storefront-backend/internal/payment"
	"github.com/sirawit-dev/storefront-backend/internal/product"
	"github.com/sirawit-dev/storefront-backend/internal/review"
	"github.com/sirawit-dev/storefront-backend/internal/user"
	"github.com/sirawit-dev/storefront-backend/internal/wishlist"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	ensureSchema(db)

	app := fiber.New()
	setupCORS(app)

	serverMetrics := metrics.NewServerMetrics("api")
	app.Use(serverMetrics.Middleware())
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	publisher := events.NewPublisher(cfg.KafkaBrokers)
	defer publisher.Close()
	gateway := payment.NewProvider(cfg.PaymentBaseURL, cfg.PaymentAPIKey)

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService, cfg.JWTSecret, cfg.TokenTTL)

	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(productService)

	guard := inventory.NewGuard(productRepo)

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db), productRepo))

	cartService := cart.NewService(cart.NewPostgresRepository(db), productRepo, guard)
	cartHandler := cart.NewHandler(cartService)

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, guard, gateway, publisher, pricingFromConfig(cfg))
	orderHandler := order.NewHandler(orderService, cartService)

	reviewHandler := review.NewHandler(review.NewService(review.NewPostgresRepository(db), productRepo, userRepo))

	wishlistHandler := wishlist.NewHandler(wishlist.NewService(wishlist.NewPostgresRepository(db), productRepo))
	addressHandler := address.NewHandler(address.NewService(address.NewPostgresRepository(db)))
	adminHandler := admin.NewHandler(admin.NewPostgresRepository(db, orderRepo))

	// public routes first so the JWT middleware never sees them
	userHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	reviewHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		Filter: func(c *fiber.Ctx) bool {
			p := c.Path()
			if strings.HasPrefix(p, "/api/v1/auth/") {
				return true
			}
			if c.Method() == fiber.MethodGet &&
				(strings.HasPrefix(p, "/api/v1/products") || strings.HasPrefix(p, "/api/v1/categories")) {
				return true
			}
			return false
		},
	}))

	userHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	categoryHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	reviewHandler.RegisterProtectedRoutes(app)
	wishlistHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)
	adminHandler.RegisterProtectedRoutes(app)

	if err := app.Listen(cfg.Addr); err != nil {
		panic(err)
	}
}

func pricingFromConfig(cfg config.Config) order.Pricing {
	return order.Pricing{
		TaxRate:         decimal.NewFromFloat(cfg.TaxRate),
		ShippingFee:     decimal.NewFromFloat(cfg.ShippingFee),
		FreeShippingMin: decimal.NewFromFloat(cfg.FreeShippingMin),
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("warning: metrics listener stopped: %v", err)
	}
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func ensureSchema(db *sql.DB) {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			status TEXT NOT NULL DEFAULT 'active',
			phone TEXT NOT NULL DEFAULT '',
			avatar TEXT NOT NULL DEFAULT '',
			wishlist integer[],
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			category_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			parent_id INT,
			status TEXT NOT NULL DEFAULT 'active',
			sort_order INT NOT NULL DEFAULT 0,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price numeric NOT NULL DEFAULT 0,
			stock INT NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'active',
			category_id INT,
			brand TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			ratings DOUBLE PRECISION NOT NULL DEFAULT 0,
			num_reviews INT NOT NULL DEFAULT 0,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			review_id SERIAL PRIMARY KEY,
			product_id INT NOT NULL,
			user_id INT NOT NULL,
			name TEXT NOT NULL,
			rating INT NOT NULL,
			comment TEXT NOT NULL DEFAULT '',
			created_at TEXT,
			UNIQUE (product_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS carts (
			user_id INT PRIMARY KEY,
			items jsonb NOT NULL DEFAULT '[]',
			total_items INT NOT NULL DEFAULT 0,
			total_amount numeric NOT NULL DEFAULT 0,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			items jsonb NOT NULL DEFAULT '[]',
			shipping_address jsonb NOT NULL DEFAULT '{}',
			payment_method TEXT NOT NULL DEFAULT '',
			items_price numeric NOT NULL DEFAULT 0,
			tax_price numeric NOT NULL DEFAULT 0,
			shipping_price numeric NOT NULL DEFAULT 0,
			total_price numeric NOT NULL DEFAULT 0,
			order_status TEXT NOT NULL DEFAULT 'pending',
			status_history jsonb NOT NULL DEFAULT '[]',
			is_paid BOOLEAN NOT NULL DEFAULT FALSE,
			paid_at TEXT,
			payment_info jsonb,
			is_delivered BOOLEAN NOT NULL DEFAULT FALSE,
			delivered_at TEXT,
			shipping_date TEXT,
			tracking_number TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS addresses (
			address_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			full_name TEXT NOT NULL,
			address TEXT NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL DEFAULT '',
			zip_code TEXT NOT NULL,
			country TEXT NOT NULL,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews (product_id)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_addresses_user ON addresses (user_id)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
