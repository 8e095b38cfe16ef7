// Package admin aggregates storefront figures for the dashboard.
package admin

import (
	"github.com/shopspring/decimal"

	"github.com/sirawit-dev/storefront-backend/internal/order"
	"github.com/sirawit-dev/storefront-backend/internal/product"
)

// MonthlyRevenue is paid revenue bucketed by calendar month.
type MonthlyRevenue struct {
	Month   string          `json:"month"` // YYYY-MM
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

// Stats is the dashboard payload.
type Stats struct {
	TotalUsers     int               `json:"totalUsers"`
	TotalProducts  int               `json:"totalProducts"`
	TotalOrders    int               `json:"totalOrders"`
	TotalRevenue   decimal.Decimal   `json:"totalRevenue"` // paid orders only
	OrdersByStatus map[string]int    `json:"ordersByStatus"`
	MonthlyRevenue []MonthlyRevenue  `json:"monthlyRevenue"`
	LowStock       []product.Product `json:"lowStockProducts"`
	RecentOrders   []order.Order     `json:"recentOrders"`
}

const (
	lowStockThreshold = 10
	lowStockLimit     = 10
	recentOrderLimit  = 5
	monthlyWindow     = 12
)
