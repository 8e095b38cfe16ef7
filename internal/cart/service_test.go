package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sirawit-dev/storefront-backend/internal/inventory"
	"github.com/sirawit-dev/storefront-backend/internal/product"
)

func newTestService(seed []product.Product) (*Service, *product.InMemoryRepository) {
	products := product.NewInMemoryRepository(seed)
	return NewService(NewInMemoryRepository(), products, inventory.NewGuard(products)), products
}

func price(t *testing.T, v string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(v)
	if err != nil {
		t.Fatalf("bad price %q: %v", v, err)
	}
	return d
}

func TestAdd_RecomputesTotals(t *testing.T) {
	svc, _ := newTestService([]product.Product{
		{ID: 1, Name: "Headphones", Price: decimal.NewFromInt(20), Stock: 10, Status: product.StatusActive},
		{ID: 2, Name: "Hub", Price: decimal.NewFromInt(15), Stock: 5, Status: product.StatusActive},
	})

	if _, err := svc.Add(7, 1, 2, "", ""); err != nil {
		t.Fatalf("add product 1: %v", err)
	}
	c, err := svc.Add(7, 2, 1, "", "")
	if err != nil {
		t.Fatalf("add product 2: %v", err)
	}

	if c.TotalItems != 3 {
		t.Fatalf("expected 3 total items, got %d", c.TotalItems)
	}
	if !c.TotalAmount.Equal(decimal.NewFromInt(55)) {
		t.Fatalf("expected total 55, got %s", c.TotalAmount)
	}
	for _, it := range c.Items {
		if it.Product == nil {
			t.Fatalf("expected item %s to carry product details", it.ID)
		}
	}
}

func TestAdd_MergesSameVariant(t *testing.T) {
	svc, _ := newTestService([]product.Product{
		{ID: 1, Name: "Shirt", Price: decimal.NewFromInt(10), Stock: 10, Status: product.StatusActive},
	})

	if _, err := svc.Add(7, 1, 2, "red", "M"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	c, err := svc.Add(7, 1, 3, "red", "M")
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(c.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", c.Items[0].Quantity)
	}

	// different size is a separate line
	c, err = svc.Add(7, 1, 1, "red", "L")
	if err != nil {
		t.Fatalf("third add: %v", err)
	}
	if len(c.Items) != 2 {
		t.Fatalf("expected two lines for distinct variants, got %d", len(c.Items))
	}
}

func TestAdd_MergeRevalidatesStock(t *testing.T) {
	svc, _ := newTestService([]product.Product{
		{ID: 1, Name: "Shirt", Price: decimal.NewFromInt(10), Stock: 4, Status: product.StatusActive},
	})

	if _, err := svc.Add(7, 1, 3, "", ""); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := svc.Add(7, 1, 2, "", ""); err != product.ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock for combined quantity, got %v", err)
	}

	// the cart keeps its prior state
	c, err := svc.GetOrCreate(7)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if c.TotalItems != 3 {
		t.Fatalf("expected cart unchanged at 3 items, got %d", c.TotalItems)
	}
}

func TestAdd_Rejections(t *testing.T) {
	svc, _ := newTestService([]product.Product{
		{ID: 1, Name: "Shirt", Price: decimal.NewFromInt(10), Stock: 4, Status: product.StatusActive},
		{ID: 2, Name: "Retired", Price: decimal.NewFromInt(10), Stock: 4, Status: product.StatusInactive},
	})

	if _, err := svc.Add(7, 1, 0, "", ""); err != ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity for qty 0, got %v", err)
	}
	if _, err := svc.Add(7, 99, 1, "", ""); err != product.ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown product, got %v", err)
	}
	if _, err := svc.Add(7, 2, 1, "", ""); err != product.ErrUnavailable {
		t.Fatalf("expected ErrUnavailable for inactive product, got %v", err)
	}
	if _, err := svc.Add(7, 1, 5, "", ""); err != product.ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestUpdateItem(t *testing.T) {
	svc, _ := newTestService([]product.Product{
		{ID: 1, Name: "Shirt", Price: decimal.NewFromInt(10), Stock: 10, Status: product.StatusActive},
	})

	c, err := svc.Add(7, 1, 1, "", "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	itemID := c.Items[0].ID

	c, err = svc.UpdateItem(7, itemID, 4)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if c.Items[0].Quantity != 4 || c.TotalItems != 4 {
		t.Fatalf("expected quantity 4, got %+v", c.Items[0])
	}

	if _, err := svc.UpdateItem(7, itemID, 0); err != ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.UpdateItem(7, "missing", 2); err != ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestRemoveItem_Idempotent(t *testing.T) {
	svc, _ := newTestService([]product.Product{
		{ID: 1, Name: "Shirt", Price: decimal.NewFromInt(10), Stock: 10, Status: product.StatusActive},
	})

	c, err := svc.Add(7, 1, 2, "", "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	itemID := c.Items[0].ID

	c, err = svc.RemoveItem(7, itemID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(c.Items) != 0 || c.TotalItems != 0 || !c.TotalAmount.IsZero() {
		t.Fatalf("expected empty cart, got %+v", c)
	}

	// removing again is a no-op, not an error
	c, err = svc.RemoveItem(7, itemID)
	if err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected cart to stay empty, got %d items", len(c.Items))
	}
}

func TestFinalize_PrunesUnavailableProducts(t *testing.T) {
	svc, products := newTestService([]product.Product{
		{ID: 1, Name: "Shirt", Price: decimal.NewFromInt(10), Stock: 10, Status: product.StatusActive},
		{ID: 2, Name: "Hat", Price: decimal.NewFromInt(5), Stock: 10, Status: product.StatusActive},
	})

	if _, err := svc.Add(7, 1, 1, "", ""); err != nil {
		t.Fatalf("add shirt: %v", err)
	}
	if _, err := svc.Add(7, 2, 2, "", ""); err != nil {
		t.Fatalf("add hat: %v", err)
	}

	// retire the hat; the next read prunes it and recomputes totals
	hat, err := products.GetByID(2)
	if err != nil {
		t.Fatalf("get hat: %v", err)
	}
	hat.Status = product.StatusInactive
	if _, err := products.Update(2, hat); err != nil {
		t.Fatalf("retire hat: %v", err)
	}

	c, err := svc.GetOrCreate(7)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(c.Items) != 1 || c.Items[0].ProductID != 1 {
		t.Fatalf("expected only the shirt to survive, got %+v", c.Items)
	}
	if c.TotalItems != 1 || !c.TotalAmount.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected totals 1/10, got %d/%s", c.TotalItems, c.TotalAmount)
	}
}

// flakyRepository fails reads on demand to simulate a transient outage.
type flakyRepository struct {
	*InMemoryRepository
	failNextGet bool
}

func (r *flakyRepository) Get(userID int) (Cart, error) {
	if r.failNextGet {
		r.failNextGet = false
		return Cart{}, errors.New("connection reset by peer")
	}
	return r.InMemoryRepository.Get(userID)
}

func TestTransientReadFailureDoesNotWipeCart(t *testing.T) {
	products := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Shirt", Price: decimal.NewFromInt(10), Stock: 10, Status: product.StatusActive},
		{ID: 2, Name: "Hat", Price: decimal.NewFromInt(5), Stock: 10, Status: product.StatusActive},
	})
	repo := &flakyRepository{InMemoryRepository: NewInMemoryRepository()}
	svc := NewService(repo, products, inventory.NewGuard(products))

	if _, err := svc.Add(7, 1, 1, "", ""); err != nil {
		t.Fatalf("add shirt: %v", err)
	}
	if _, err := svc.Add(7, 2, 1, "", ""); err != nil {
		t.Fatalf("add hat: %v", err)
	}

	repo.failNextGet = true
	if _, err := svc.GetOrCreate(7); err == nil {
		t.Fatal("expected the read failure to surface, got nil")
	}

	// the stored cart survives the outage untouched
	c, err := svc.GetOrCreate(7)
	if err != nil {
		t.Fatalf("get after outage: %v", err)
	}
	if len(c.Items) != 2 || c.TotalItems != 2 {
		t.Fatalf("expected 2 stored items after outage, got %+v", c)
	}

	// mutations during an outage fail the same way instead of saving empties
	repo.failNextGet = true
	if _, err := svc.Clear(7); err == nil {
		t.Fatal("expected clear to surface the read failure, got nil")
	}
	c, err = svc.GetOrCreate(7)
	if err != nil {
		t.Fatalf("get after failed clear: %v", err)
	}
	if len(c.Items) != 2 {
		t.Fatalf("expected cart intact after failed clear, got %d items", len(c.Items))
	}
}

func TestCheckoutScenario(t *testing.T) {
	svc, _ := newTestService([]product.Product{
		{ID: 1, Name: "Speaker", Price: price(t, "20.00"), Stock: 10, Status: product.StatusActive},
		{ID: 2, Name: "Cable", Price: price(t, "15.00"), Stock: 10, Status: product.StatusActive},
	})

	if _, err := svc.Add(7, 1, 2, "", ""); err != nil {
		t.Fatalf("add speakers: %v", err)
	}
	c, err := svc.Add(7, 2, 1, "", "")
	if err != nil {
		t.Fatalf("add cable: %v", err)
	}

	if !c.TotalAmount.Equal(price(t, "55.00")) {
		t.Fatalf("expected subtotal 55.00, got %s", c.TotalAmount)
	}

	c, err = svc.Clear(7)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(c.Items) != 0 || c.TotalItems != 0 {
		t.Fatalf("expected cleared cart, got %+v", c)
	}
}
