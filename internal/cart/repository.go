package cart

import (
	"errors"
	"sync"
)

var (
	ErrNotFound        = errors.New("cart not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Repository persists one cart per user.
type Repository interface {
	// Get returns ErrNotFound when the user has no cart yet; the service
	// creates one lazily.
	Get(userID int) (Cart, error)
	Save(cart Cart) (Cart, error)
}

// InMemoryRepository is used for tests and the demo server.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[int]Cart
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[int]Cart)}
}

func (r *InMemoryRepository) Get(userID int) (Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[userID]
	if !ok {
		return Cart{}, ErrNotFound
	}
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c, nil
}

func (r *InMemoryRepository) Save(cart Cart) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := cart
	stored.Items = make([]CartItem, len(cart.Items))
	copy(stored.Items, cart.Items)
	r.carts[cart.UserID] = stored
	return cart, nil
}
