package wishlist

import (
	"errors"
	"sync"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrAlreadyInWishlist = errors.New("product already in wishlist")
	ErrNotInWishlist     = errors.New("product not in wishlist")
)

// Repository stores each user's wishlist as an ordered list of product ids.
type Repository interface {
	Add(userID int, productID int, updatedAt string) ([]int, error)
	Remove(userID int, productID int, updatedAt string) ([]int, error)
	List(userID int) ([]int, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	lists map[int][]int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{lists: make(map[int][]int)}
}

func (r *InMemoryRepository) Add(userID int, productID int, updatedAt string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.lists[userID]
	for _, pid := range ids {
		if pid == productID {
			return nil, ErrAlreadyInWishlist
		}
	}
	ids = append(ids, productID)
	r.lists[userID] = ids

	out := make([]int, len(ids))
	copy(out, ids)
	return out, nil
}

func (r *InMemoryRepository) Remove(userID int, productID int, updatedAt string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.lists[userID]
	found := false
	next := make([]int, 0, len(ids))
	for _, pid := range ids {
		if pid == productID {
			found = true
			continue
		}
		next = append(next, pid)
	}
	if !found {
		return nil, ErrNotInWishlist
	}
	r.lists[userID] = next

	out := make([]int, len(next))
	copy(out, next)
	return out, nil
}

func (r *InMemoryRepository) List(userID int) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.lists[userID]
	out := make([]int, len(ids))
	copy(out, ids)
	return out, nil
}
