package cart

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
)

func makeAppWithCartHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestCartRoutes(t *testing.T) {
	svc, _ := newTestService([]product.Product{
		{ID: 1, Name: "Shirt", Price: decimal.NewFromInt(10), Stock: 5, Status: product.StatusActive},
	})
	app := makeAppWithCartHandler(NewHandler(svc))

	// unauthenticated requests are rejected
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated GET, got %d", res.StatusCode)
	}

	// authenticated GET returns an empty cart
	req = httptest.NewRequest("GET", "/api/v1/cart", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for authenticated GET, got %d", res.StatusCode)
	}

	// add with default quantity 1
	req = httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for add, got %d", res.StatusCode)
	}

	var body struct {
		Cart Cart `json:"cart"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Cart.TotalItems != 1 {
		t.Fatalf("expected 1 item after add, got %d", body.Cart.TotalItems)
	}
	if len(body.Cart.Items) != 1 {
		t.Fatalf("expected one line, got %d", len(body.Cart.Items))
	}
	itemID := body.Cart.Items[0].ID

	// update quantity
	req = httptest.NewRequest("PUT", "/api/v1/cart/items/"+itemID, strings.NewReader(`{"quantity":3}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for update, got %d", res.StatusCode)
	}

	// over-stock update is a 400
	req = httptest.NewRequest("PUT", "/api/v1/cart/items/"+itemID, strings.NewReader(`{"quantity":99}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for over-stock update, got %d", res.StatusCode)
	}

	// remove the line
	req = httptest.NewRequest("DELETE", "/api/v1/cart/items/"+itemID, nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for remove, got %d", res.StatusCode)
	}
}

func TestCartRoutes_UnknownProduct(t *testing.T) {
	svc, _ := newTestService(nil)
	app := makeAppWithCartHandler(NewHandler(svc))

	req := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"productId":99}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", res.StatusCode)
	}
}
