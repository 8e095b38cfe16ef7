package address

import (
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("address not found")

type Repository interface {
	ListByUser(userID int) ([]Address, error)
	GetByID(id int) (Address, error)
	Create(a Address) (Address, error)
	Update(a Address) (Address, error)
	Delete(id int) error
	// ClearDefault drops the default flag from every address of the user.
	ClearDefault(userID int) error
}

type InMemoryRepository struct {
	mu        sync.Mutex
	addresses map[int]Address
	nextID    int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{addresses: make(map[int]Address), nextID: 1}
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]Address, 0)
	for _, a := range r.addresses {
		if a.UserID == userID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].IsDefault != result[j].IsDefault {
			return result[i].IsDefault
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *InMemoryRepository) GetByID(id int) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.addresses[id]
	if !ok {
		return Address{}, ErrNotFound
	}
	return a, nil
}

func (r *InMemoryRepository) Create(a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = r.nextID
	r.nextID++
	r.addresses[a.ID] = a
	return a, nil
}

func (r *InMemoryRepository) Update(a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.addresses[a.ID]; !ok {
		return Address{}, ErrNotFound
	}
	r.addresses[a.ID] = a
	return a, nil
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.addresses[id]; !ok {
		return ErrNotFound
	}
	delete(r.addresses, id)
	return nil
}

func (r *InMemoryRepository) ClearDefault(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, a := range r.addresses {
		if a.UserID == userID && a.IsDefault {
			a.IsDefault = false
			r.addresses[id] = a
		}
	}
	return nil
}
