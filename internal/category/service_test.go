package category

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sirawit-dev/storefront-backend/internal/product"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Pet Supplies":        "pet-supplies",
		"Audio & Video":       "audio-video",
		"  Spaced   Out  ":    "spaced-out",
		"Already-Slugged":     "already-slugged",
		"USB-C Hubs (7-in-1)": "usb-c-hubs-7-in-1",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCreate_DefaultsAndDuplicateSlug(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), product.NewInMemoryRepository(nil))

	created, err := svc.Create(Category{Name: "Pet Supplies"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Slug != "pet-supplies" || created.Status != StatusActive {
		t.Fatalf("expected derived slug and active status, got %+v", created)
	}

	if _, err := svc.Create(Category{Name: "Other", Slug: "pet-supplies"}); err != ErrSlugExists {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestTree(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), product.NewInMemoryRepository(nil))

	root, err := svc.Create(Category{Name: "Electronics", SortOrder: 1})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	if _, err := svc.Create(Category{Name: "Audio", ParentID: &root.ID, SortOrder: 2}); err != nil {
		t.Fatalf("create child: %v", err)
	}
	if _, err := svc.Create(Category{Name: "Apparel", SortOrder: 3}); err != nil {
		t.Fatalf("create second root: %v", err)
	}

	nodes, err := svc.Tree()
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(nodes))
	}
	if nodes[0].Name != "Electronics" || len(nodes[0].Children) != 1 {
		t.Fatalf("unexpected first root %+v", nodes[0])
	}
	if nodes[0].Children[0].Name != "Audio" {
		t.Fatalf("unexpected child %+v", nodes[0].Children[0])
	}
}

func TestDelete_GuardedByProducts(t *testing.T) {
	products := product.NewInMemoryRepository(nil)
	svc := NewService(NewInMemoryRepository(), products)

	cat, err := svc.Create(Category{Name: "Audio"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := products.Create(product.Product{Name: "Speaker", Price: decimal.NewFromInt(10), Stock: 1, CategoryID: &cat.ID}); err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := svc.Delete(cat.ID); err != ErrHasProducts {
		t.Fatalf("expected ErrHasProducts, got %v", err)
	}

	empty, err := svc.Create(Category{Name: "Empty"})
	if err != nil {
		t.Fatalf("create empty: %v", err)
	}
	if err := svc.Delete(empty.ID); err != nil {
		t.Fatalf("delete empty: %v", err)
	}
	if err := svc.Delete(empty.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
