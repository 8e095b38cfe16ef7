package review

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"

	"github.com/sirawit-dev/storefront-backend/internal/product"
	"github.com/sirawit-dev/storefront-backend/internal/user"
)

func makeAppWithReviewHandler() *fiber.App {
	products := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Speaker", Price: decimal.NewFromInt(20), Stock: 10, Status: product.StatusActive},
	})
	users := user.NewInMemoryRepository([]user.User{
		{ID: 7, Name: "Jenny", Email: "j@example.com"},
	})
	h := NewHandler(NewService(NewInMemoryRepository(), products, users))

	app := fiber.New()
	h.RegisterPublicRoutes(app)
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": id}})
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestReviewRoutes(t *testing.T) {
	app := makeAppWithReviewHandler()

	// listing is public and starts empty
	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products/1/reviews", nil))
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for public list, got %d", res.StatusCode)
	}

	// creating requires a token
	req := httptest.NewRequest("POST", "/api/v1/products/1/reviews", strings.NewReader(`{"rating":5}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/v1/products/1/reviews",
		strings.NewReader(`{"rating":5,"comment":"great sound"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 for review, got %d", res.StatusCode)
	}

	// second review from the same user is rejected
	req = httptest.NewRequest("POST", "/api/v1/products/1/reviews", strings.NewReader(`{"rating":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate review, got %d", res.StatusCode)
	}

	// the list now carries the aggregate
	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/products/1/reviews", nil))
	var body struct {
		NumOfReviews int     `json:"numOfReviews"`
		Ratings      float64 `json:"ratings"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if body.NumOfReviews != 1 || body.Ratings != 5 {
		t.Fatalf("expected aggregate 5/1, got %v/%d", body.Ratings, body.NumOfReviews)
	}
}
