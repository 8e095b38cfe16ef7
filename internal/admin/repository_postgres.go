package admin

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sirawit-dev/storefront-backend/internal/order"
	"github.com/sirawit-dev/storefront-backend/internal/product"
)

type PostgresRepository struct {
	db     *sql.DB
	orders order.Repository
}

// NewPostgresRepository aggregates directly over the tables; the order
// repository is only borrowed for the recent-orders listing so the jsonb
// decoding lives in one place.
func NewPostgresRepository(db *sql.DB, orders order.Repository) *PostgresRepository {
	return &PostgresRepository{db: db, orders: orders}
}

func (r *PostgresRepository) Dashboard() (Stats, error) {
	stats := Stats{
		TotalRevenue:   decimal.Zero,
		OrdersByStatus: make(map[string]int),
		MonthlyRevenue: []MonthlyRevenue{},
		LowStock:       []product.Product{},
		RecentOrders:   []order.Order{},
	}

	row := r.db.QueryRow(`SELECT
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM products),
		(SELECT COUNT(*) FROM orders),
		(SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE is_paid = TRUE)`)
	var revenue string
	if err := row.Scan(&stats.TotalUsers, &stats.TotalProducts, &stats.TotalOrders, &revenue); err != nil {
		return Stats{}, err
	}
	total, err := decimal.NewFromString(revenue)
	if err != nil {
		return Stats{}, err
	}
	stats.TotalRevenue = total

	if err := r.ordersByStatus(&stats); err != nil {
		return Stats{}, err
	}
	if err := r.monthlyRevenue(&stats); err != nil {
		return Stats{}, err
	}
	if err := r.lowStock(&stats); err != nil {
		return Stats{}, err
	}

	recent, _, err := r.orders.List(order.Filter{Page: 1, Limit: recentOrderLimit})
	if err != nil {
		return Stats{}, err
	}
	stats.RecentOrders = recent
	return stats, nil
}

func (r *PostgresRepository) ordersByStatus(stats *Stats) error {
	rows, err := r.db.Query("SELECT order_status, COUNT(*) FROM orders GROUP BY order_status")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return err
		}
		stats.OrdersByStatus[status] = count
	}
	return rows.Err()
}

func (r *PostgresRepository) monthlyRevenue(stats *Stats) error {
	// paid_at is stored as RFC3339 text, so the month is a prefix
	cutoff := time.Now().AddDate(0, -monthlyWindow, 0).Format(time.RFC3339)
	rows, err := r.db.Query(`SELECT substr(paid_at, 1, 7) AS month, COALESCE(SUM(total_price), 0), COUNT(*)
		FROM orders
		WHERE is_paid = TRUE AND paid_at >= $1
		GROUP BY month
		ORDER BY month ASC`, cutoff)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var bucket MonthlyRevenue
		var revenue string
		if err := rows.Scan(&bucket.Month, &revenue, &bucket.Orders); err != nil {
			return err
		}
		bucket.Revenue, err = decimal.NewFromString(revenue)
		if err != nil {
			return err
		}
		stats.MonthlyRevenue = append(stats.MonthlyRevenue, bucket)
	}
	return rows.Err()
}

func (r *PostgresRepository) lowStock(stats *Stats) error {
	rows, err := r.db.Query(`SELECT product_id, name, price, stock
		FROM products
		WHERE stock < $1 AND status = $2
		ORDER BY stock ASC
		LIMIT $3`, lowStockThreshold, product.StatusActive, lowStockLimit)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p product.Product
		var price string
		if err := rows.Scan(&p.ID, &p.Name, &price, &p.Stock); err != nil {
			return err
		}
		p.Price, err = decimal.NewFromString(price)
		if err != nil {
			return err
		}
		p.Status = product.StatusActive
		stats.LowStock = append(stats.LowStock, p)
	}
	return rows.Err()
}
