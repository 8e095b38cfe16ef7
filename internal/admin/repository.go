package admin

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sirawit-dev/storefront-backend/internal/order"
	"github.com/sirawit-dev/storefront-backend/internal/product"
	"github.com/sirawit-dev/storefront-backend/internal/user"
)

type Repository interface {
	Dashboard() (Stats, error)
}

// InMemoryRepository derives stats from the other in-memory stores. Used
// by tests and the database-free server.
type InMemoryRepository struct {
	users    user.Repository
	products product.Repository
	orders   order.Repository
}

func NewInMemoryRepository(users user.Repository, products product.Repository, orders order.Repository) *InMemoryRepository {
	return &InMemoryRepository{users: users, products: products, orders: orders}
}

func (r *InMemoryRepository) Dashboard() (Stats, error) {
	stats := Stats{
		TotalRevenue:   decimal.Zero,
		OrdersByStatus: make(map[string]int),
		MonthlyRevenue: []MonthlyRevenue{},
		LowStock:       []product.Product{},
		RecentOrders:   []order.Order{},
	}

	userCount, err := r.users.Count()
	if err != nil {
		return Stats{}, err
	}
	stats.TotalUsers = userCount

	products, totalProducts, err := r.products.List(product.Filter{Status: "all", Limit: 100})
	if err != nil {
		return Stats{}, err
	}
	stats.TotalProducts = totalProducts
	for _, p := range products {
		if p.Stock < lowStockThreshold && len(stats.LowStock) < lowStockLimit {
			stats.LowStock = append(stats.LowStock, p)
		}
	}
	sort.Slice(stats.LowStock, func(i, j int) bool { return stats.LowStock[i].Stock < stats.LowStock[j].Stock })

	orders, totalOrders, err := r.orders.List(order.Filter{Limit: 100})
	if err != nil {
		return Stats{}, err
	}
	stats.TotalOrders = totalOrders

	monthly := make(map[string]*MonthlyRevenue)
	cutoff := time.Now().AddDate(0, -monthlyWindow, 0)
	for _, ord := range orders {
		stats.OrdersByStatus[string(ord.Status)]++
		if !ord.IsPaid {
			continue
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(ord.TotalPrice)

		paidAt, err := time.Parse(time.RFC3339, ord.PaidAt)
		if err != nil || paidAt.Before(cutoff) {
			continue
		}
		key := paidAt.Format("2006-01")
		bucket, ok := monthly[key]
		if !ok {
			bucket = &MonthlyRevenue{Month: key, Revenue: decimal.Zero}
			monthly[key] = bucket
		}
		bucket.Revenue = bucket.Revenue.Add(ord.TotalPrice)
		bucket.Orders++
	}
	for _, bucket := range monthly {
		stats.MonthlyRevenue = append(stats.MonthlyRevenue, *bucket)
	}
	sort.Slice(stats.MonthlyRevenue, func(i, j int) bool {
		return stats.MonthlyRevenue[i].Month < stats.MonthlyRevenue[j].Month
	})

	// orders come back newest first
	for i, ord := range orders {
		if i == recentOrderLimit {
			break
		}
		stats.RecentOrders = append(stats.RecentOrders, ord)
	}
	return stats, nil
}
