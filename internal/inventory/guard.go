// Package inventory guards stock at the two points where quantity
// commitments happen: cart mutation and order placement. Availability
// checks are read-only; the actual decrement runs once, when an order's
// payment is confirmed.
package inventory

import (
	"log"

	"github.com/sirawit-dev/storefront-backend/internal/product"
)

type Guard struct {
	products product.Repository
}

func NewGuard(products product.Repository) *Guard {
	return &Guard{products: products}
}

// EnsureAvailable verifies that qty units of the product can currently be
// sold. It returns the product so callers can snapshot price and name
// without a second lookup. No stock is reserved.
func (g *Guard) EnsureAvailable(productID int, qty int) (product.Product, error) {
	p, err := g.products.GetByID(productID)
	if err != nil {
		return product.Product{}, err
	}
	if !p.Available() {
		return product.Product{}, product.ErrUnavailable
	}
	if qty > p.Stock {
		return product.Product{}, product.ErrInsufficientStock
	}
	return p, nil
}

// Reservation names a quantity committed against a product.
type Reservation struct {
	ProductID int
	Quantity  int
}

// Commit decrements stock for every reservation. Every reservation is
// validated before the first write, and any decrements already applied
// are restored when a later one fails, so a rejected commit leaves stock
// untouched. Each decrement is conditional in the store, so a concurrent
// confirmation cannot oversell a single product; there is no
// cross-product transaction, matching the per-document atomicity the
// rest of the system assumes.
func (g *Guard) Commit(items []Reservation) error {
	for _, item := range items {
		if _, err := g.EnsureAvailable(item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	for i, item := range items {
		if err := g.products.DecrementStock(item.ProductID, item.Quantity); err != nil {
			for _, done := range items[:i] {
				if rerr := g.products.RestoreStock(done.ProductID, done.Quantity); rerr != nil {
					log.Printf("warning: failed to restore stock for product %d: %v", done.ProductID, rerr)
				}
			}
			return err
		}
	}
	return nil
}
