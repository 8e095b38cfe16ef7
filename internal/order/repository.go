package order

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// Repository persists orders. Update replaces the mutable lifecycle
// fields; item snapshots and pricing never change after Create.
type Repository interface {
	Create(ord Order) (Order, error)
	GetByID(id int) (Order, error)
	ListByUser(userID int) ([]Order, error)
	List(f Filter) ([]Order, int, error)
	// ListPaidByUser returns a page of paid orders plus the total count
	// and the sum spent across all of the user's paid orders.
	ListPaidByUser(userID, page, limit int) ([]Order, int, decimal.Decimal, error)
	Update(ord Order) (Order, error)
}

// InMemoryRepository backs tests and the demo server.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[int]Order
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: make(map[int]Order), nextID: 1}
}

func cloneOrder(ord Order) Order {
	out := ord
	out.Items = append([]OrderItem(nil), ord.Items...)
	out.StatusHistory = append([]StatusEvent(nil), ord.StatusHistory...)
	if ord.PaymentInfo != nil {
		info := *ord.PaymentInfo
		out.PaymentInfo = &info
	}
	return out
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord.ID = r.nextID
	r.nextID++
	r.orders[ord.ID] = cloneOrder(ord)
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ord, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return cloneOrder(ord), nil
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.UserID == userID {
			out = append(out, cloneOrder(ord))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (r *InMemoryRepository) List(f Filter) ([]Order, int, error) {
	f = f.normalized()
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Order, 0)
	for _, ord := range r.orders {
		if f.Status != "" && ord.Status != f.Status {
			continue
		}
		if f.StartDate != "" && ord.CreatedAt < f.StartDate {
			continue
		}
		if f.EndDate != "" && ord.CreatedAt > f.EndDate {
			continue
		}
		matched = append(matched, cloneOrder(ord))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt > matched[j].CreatedAt })

	total := len(matched)
	start := (f.Page - 1) * f.Limit
	if start >= total {
		return []Order{}, total, nil
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *InMemoryRepository) ListPaidByUser(userID, page, limit int) ([]Order, int, decimal.Decimal, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	paid := make([]Order, 0)
	spent := decimal.Zero
	for _, ord := range r.orders {
		if ord.UserID == userID && ord.IsPaid {
			paid = append(paid, cloneOrder(ord))
			spent = spent.Add(ord.TotalPrice)
		}
	}
	sort.Slice(paid, func(i, j int) bool { return paid[i].PaidAt > paid[j].PaidAt })

	total := len(paid)
	start := (page - 1) * limit
	if start >= total {
		return []Order{}, total, spent, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return paid[start:end], total, spent, nil
}

func (r *InMemoryRepository) Update(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[ord.ID]; !ok {
		return Order{}, ErrNotFound
	}
	r.orders[ord.ID] = cloneOrder(ord)
	return ord, nil
}
