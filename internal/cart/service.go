package cart

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirawit-dev/storefront-backend/internal/inventory"
	"github.com/sirawit-dev/storefront-backend/internal/product"
)

// Service keeps a cart's derived fields consistent with its items and the
// authoritative catalog. Every mutation, and every read that returns
// totals, goes through finalize: prune unavailable products, populate
// current product state, recompute totals, persist.
type Service struct {
	repo     Repository
	products product.Repository
	guard    *inventory.Guard
}

func NewService(repo Repository, products product.Repository, guard *inventory.Guard) *Service {
	return &Service{repo: repo, products: products, guard: guard}
}

// GetOrCreate returns the user's cart, creating an empty one on first
// access.
func (s *Service) GetOrCreate(userID int) (Cart, error) {
	if userID <= 0 {
		return Cart{}, ErrNotFound
	}
	c, err := s.load(userID)
	if err != nil {
		return Cart{}, err
	}
	return s.finalize(c)
}

// Add puts qty units of a product variant into the cart. Adding a variant
// that is already present merges into the existing line, re-validating the
// combined quantity against stock.
func (s *Service) Add(userID, productID, qty int, color, size string) (Cart, error) {
	if userID <= 0 {
		return Cart{}, ErrNotFound
	}
	if qty < 1 {
		return Cart{}, ErrInvalidQuantity
	}
	if _, err := s.guard.EnsureAvailable(productID, qty); err != nil {
		return Cart{}, err
	}

	c, err := s.load(userID)
	if err != nil {
		return Cart{}, err
	}
	merged := false
	for i := range c.Items {
		if c.Items[i].sameVariant(productID, color, size) {
			combined := c.Items[i].Quantity + qty
			if _, err := s.guard.EnsureAvailable(productID, combined); err != nil {
				return Cart{}, err
			}
			c.Items[i].Quantity = combined
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, CartItem{
			ID:        uuid.NewString(),
			ProductID: productID,
			Quantity:  qty,
			Color:     color,
			Size:      size,
		})
	}
	return s.finalize(c)
}

// UpdateItem sets an item's quantity. Quantities below 1 are rejected;
// removal has its own endpoint.
func (s *Service) UpdateItem(userID int, itemID string, qty int) (Cart, error) {
	if userID <= 0 {
		return Cart{}, ErrNotFound
	}
	if qty < 1 {
		return Cart{}, ErrInvalidQuantity
	}

	c, err := s.repo.Get(userID)
	if err != nil {
		return Cart{}, err
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			if _, err := s.guard.EnsureAvailable(c.Items[i].ProductID, qty); err != nil {
				return Cart{}, err
			}
			c.Items[i].Quantity = qty
			return s.finalize(c)
		}
	}
	return Cart{}, ErrItemNotFound
}

// RemoveItem deletes a line item. Removing an absent item is a no-op that
// still returns the current cart.
func (s *Service) RemoveItem(userID int, itemID string) (Cart, error) {
	if userID <= 0 {
		return Cart{}, ErrNotFound
	}
	c, err := s.load(userID)
	if err != nil {
		return Cart{}, err
	}
	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	c.Items = kept
	return s.finalize(c)
}

// Clear empties the cart, used on checkout and by the explicit clear
// endpoint.
func (s *Service) Clear(userID int) (Cart, error) {
	if userID <= 0 {
		return Cart{}, ErrNotFound
	}
	c, err := s.load(userID)
	if err != nil {
		return Cart{}, err
	}
	c.Items = nil
	return s.finalize(c)
}

// load fetches the stored cart, creating an empty one only when the
// repository reports it missing. Any other failure is surfaced so a
// transient read error can never overwrite a stored cart.
func (s *Service) load(userID int) (Cart, error) {
	c, err := s.repo.Get(userID)
	if errors.Is(err, ErrNotFound) {
		return Cart{UserID: userID, Items: []CartItem{}}, nil
	}
	if err != nil {
		return Cart{}, err
	}
	return c, nil
}

// finalize prunes items whose product is gone or inactive, populates
// current product details, recomputes totals, and persists the result.
// Pruning is deliberate policy: unavailable products vanish from the cart
// instead of blocking the user.
func (s *Service) finalize(c Cart) (Cart, error) {
	ids := make([]int, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}
	listed, err := s.products.ListByIDs(ids)
	if err != nil {
		return Cart{}, err
	}
	byID := make(map[int]product.Product, len(listed))
	for _, p := range listed {
		byID[p.ID] = p
	}

	kept := make([]CartItem, 0, len(c.Items))
	totalItems := 0
	totalAmount := decimal.Zero
	for _, it := range c.Items {
		p, ok := byID[it.ProductID]
		if !ok || !p.Available() {
			continue
		}
		snapshot := p
		it.Product = &snapshot
		kept = append(kept, it)
		totalItems += it.Quantity
		totalAmount = totalAmount.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	c.Items = kept
	c.TotalItems = totalItems
	c.TotalAmount = totalAmount
	c.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Save(c)
}
