package product

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
)

func makeAppWithProductHandler(h *Handler) *fiber.App {
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	app.Use(func(c *fiber.Ctx) error {
		if role := c.Get("X-User-Role"); role != "" {
			claims := jwt.MapClaims{"user_id": 1, "role": role}
			c.Locals("user", &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func catalogFixture() []Product {
	cat := 3
	return []Product{
		{ID: 1, Name: "Speaker", Price: decimal.NewFromInt(20), Stock: 5, Status: StatusActive, CategoryID: &cat, Featured: true},
		{ID: 2, Name: "Soundbar", Price: decimal.NewFromInt(80), Stock: 2, Status: StatusActive, CategoryID: &cat},
		{ID: 3, Name: "Retired Radio", Price: decimal.NewFromInt(5), Stock: 0, Status: StatusInactive, CategoryID: &cat},
	}
}

func TestProductList_PublicAndFiltered(t *testing.T) {
	app := makeAppWithProductHandler(NewHandler(NewService(NewInMemoryRepository(catalogFixture()))))

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var body struct {
		Products   []Product `json:"products"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// inactive products stay hidden by default
	if body.Pagination.Total != 2 || len(body.Products) != 2 {
		t.Fatalf("expected 2 active products, got %d", body.Pagination.Total)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/products?search=soundbar", nil))
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode search: %v", err)
	}
	if len(body.Products) != 1 || body.Products[0].Name != "Soundbar" {
		t.Fatalf("unexpected search result %+v", body.Products)
	}
}

func TestProductDetail_RelatedProducts(t *testing.T) {
	app := makeAppWithProductHandler(NewHandler(NewService(NewInMemoryRepository(catalogFixture()))))

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products/1", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var body struct {
		Product Product   `json:"product"`
		Related []Product `json:"relatedProducts"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Product.ID != 1 {
		t.Fatalf("unexpected product %+v", body.Product)
	}
	// same category, active, excluding the product itself
	if len(body.Related) != 1 || body.Related[0].ID != 2 {
		t.Fatalf("unexpected related products %+v", body.Related)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/products/99", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for missing product, got %d", res.StatusCode)
	}
}

func TestProductFeatured(t *testing.T) {
	app := makeAppWithProductHandler(NewHandler(NewService(NewInMemoryRepository(catalogFixture()))))

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products/featured", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var body struct {
		Products []Product `json:"products"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Products) != 1 || body.Products[0].ID != 1 {
		t.Fatalf("unexpected featured set %+v", body.Products)
	}
}

func TestProductAdminRoutes(t *testing.T) {
	app := makeAppWithProductHandler(NewHandler(NewService(NewInMemoryRepository(catalogFixture()))))

	payload := `{"name":"Turntable","price":"120.00","stock":4}`

	// without the admin role the management surface is closed
	req := httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Role", "user")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Role", "admin")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 for admin create, got %d", res.StatusCode)
	}

	var created Product
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == 0 || created.Status != StatusActive {
		t.Fatalf("unexpected created product %+v", created)
	}

	// invalid payloads are rejected
	req = httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(`{"name":"","price":"1.00"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Role", "admin")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty name, got %d", res.StatusCode)
	}
}
