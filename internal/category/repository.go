package category

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound   = errors.New("category not found")
	ErrSlugExists = errors.New("category slug already exists")
)

type Repository interface {
	List() ([]Category, error)
	GetByID(id int) (Category, error)
	GetBySlug(slug string) (Category, error)
	Create(cat Category) (Category, error)
	Update(cat Category) (Category, error)
	Delete(id int) error
}

type InMemoryRepository struct {
	mu         sync.Mutex
	categories map[int]Category
	nextID     int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{categories: make(map[int]Category), nextID: 1}
}

func (r *InMemoryRepository) List() ([]Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]Category, 0, len(r.categories))
	for _, cat := range r.categories {
		result = append(result, cat)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *InMemoryRepository) GetByID(id int) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cat, ok := r.categories[id]
	if !ok {
		return Category{}, ErrNotFound
	}
	return cat, nil
}

func (r *InMemoryRepository) GetBySlug(slug string) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cat := range r.categories {
		if cat.Slug == slug {
			return cat, nil
		}
	}
	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) Create(cat Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.categories {
		if existing.Slug == cat.Slug {
			return Category{}, ErrSlugExists
		}
	}
	cat.ID = r.nextID
	r.nextID++
	r.categories[cat.ID] = cat
	return cat, nil
}

func (r *InMemoryRepository) Update(cat Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[cat.ID]; !ok {
		return Category{}, ErrNotFound
	}
	for _, existing := range r.categories {
		if existing.ID != cat.ID && existing.Slug == cat.Slug {
			return Category{}, ErrSlugExists
		}
	}
	r.categories[cat.ID] = cat
	return cat, nil
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return ErrNotFound
	}
	delete(r.categories, id)
	return nil
}
