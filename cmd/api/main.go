package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/shopspring/decimal"

	"github.com/sirawit-dev/storefront-backend/internal/address"
	"github.com/sirawit-dev/storefront-backend/internal/admin"
	"github.com/sirawit-dev/storefront-backend/internal/cart"
	"github.com/sirawit-dev/storefront-backend/internal/category"
	"github.com/sirawit-dev/storefront-backend/internal/config"
	"github.com/sirawit-dev/storefront-backend/internal/inventory"
	"github.com/sirawit-dev/storefront-backend/internal/order"
	"github.com/sirawit-dev/storefront-backend/internal/payment"
	"github.com/sirawit-dev/storefront-backend/internal/product"
	"github.com/sirawit-dev/storefront-backend/internal/review"
	"github.com/sirawit-dev/storefront-backend/internal/user"
	"github.com/sirawit-dev/storefront-backend/internal/wishlist"
)

// main starts a database-free server backed by in-memory repositories
// with a small seeded catalog. Useful for frontend development.
func main() {
	cfg := config.Load()

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	userRepo := user.NewInMemoryRepository(nil)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService, cfg.JWTSecret, cfg.TokenTTL)

	productRepo := product.NewInMemoryRepository(seedProducts())
	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(productService)

	guard := inventory.NewGuard(productRepo)

	categoryHandler := category.NewHandler(category.NewService(category.NewInMemoryRepository(), productRepo))

	cartService := cart.NewService(cart.NewInMemoryRepository(), productRepo, guard)
	cartHandler := cart.NewHandler(cartService)

	orderRepo := order.NewInMemoryRepository()
	orderService := order.NewService(orderRepo, guard, payment.NewProvider("", ""), nil, order.DefaultPricing())
	orderHandler := order.NewHandler(orderService, cartService)

	reviewHandler := review.NewHandler(review.NewService(review.NewInMemoryRepository(), productRepo, userRepo))

	wishlistHandler := wishlist.NewHandler(wishlist.NewService(wishlist.NewInMemoryRepository(), productRepo))
	addressHandler := address.NewHandler(address.NewService(address.NewInMemoryRepository()))
	adminHandler := admin.NewHandler(admin.NewInMemoryRepository(userRepo, productRepo, orderRepo))

	userHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	reviewHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
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

	log.Printf("starting in-memory server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func seedProducts() []product.Product {
	price := func(v string) decimal.Decimal {
		d, _ := decimal.NewFromString(v)
		return d
	}
	return []product.Product{
		{ID: 1, Name: "Wireless Headphones", Description: "Over-ear, noise cancelling", Price: price("89.99"), Stock: 25, Status: product.StatusActive, Brand: "Soundline", Featured: true},
		{ID: 2, Name: "Mechanical Keyboard", Description: "Tenkeyless, brown switches", Price: price("59.50"), Stock: 40, Status: product.StatusActive, Brand: "Keytech"},
		{ID: 3, Name: "USB-C Hub", Description: "7-in-1 with HDMI", Price: price("34.00"), Stock: 8, Status: product.StatusActive, Brand: "Portify", Featured: true},
		{ID: 4, Name: "Desk Lamp", Description: "Adjustable warm light", Price: price("24.90"), Stock: 60, Status: product.StatusActive, Brand: "Lumen"},
		{ID: 5, Name: "Legacy Mouse Pad", Price: price("5.00"), Stock: 0, Status: product.StatusInactive, Brand: "Keytech"},
	}
}
