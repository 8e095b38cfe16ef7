package wishlist

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sirawit-dev/storefront-backend/internal/product"
)

func newTestService() *Service {
	products := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Speaker", Price: decimal.NewFromInt(20), Stock: 5, Status: product.StatusActive},
		{ID: 2, Name: "Cable", Price: decimal.NewFromInt(5), Stock: 5, Status: product.StatusActive},
	})
	return NewService(NewInMemoryRepository(), products)
}

func TestAddAndList(t *testing.T) {
	svc := newTestService()

	ids, err := svc.Add(7, 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("unexpected ids %v", ids)
	}

	// duplicates are rejected
	if _, err := svc.Add(7, 1); err != ErrAlreadyInWishlist {
		t.Fatalf("expected ErrAlreadyInWishlist, got %v", err)
	}

	// unknown products never enter the list
	if _, err := svc.Add(7, 99); err != product.ErrNotFound {
		t.Fatalf("expected product.ErrNotFound, got %v", err)
	}

	if _, err := svc.Add(7, 2); err != nil {
		t.Fatalf("add second: %v", err)
	}
	listed, err := svc.List(7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 || listed[0].ID != 1 || listed[1].ID != 2 {
		t.Fatalf("expected insertion order preserved, got %+v", listed)
	}
}

func TestRemove(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Add(7, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	ids, err := svc.Remove(7, 1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty wishlist, got %v", ids)
	}
	if _, err := svc.Remove(7, 1); err != ErrNotInWishlist {
		t.Fatalf("expected ErrNotInWishlist, got %v", err)
	}
}
