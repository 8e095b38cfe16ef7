package admin

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"github.com/sirawit-dev/storefront-backend/internal/order"
)

func TestDashboard(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db, order.NewInMemoryRepository())

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"users", "products", "orders", "revenue"}).
			AddRow(120, 45, 300, "15250.75"))

	mock.ExpectQuery("GROUP BY order_status").WillReturnRows(
		sqlmock.NewRows([]string{"order_status", "count"}).
			AddRow("pending", 12).
			AddRow("delivered", 250))

	mock.ExpectQuery("GROUP BY month").WillReturnRows(
		sqlmock.NewRows([]string{"month", "revenue", "orders"}).
			AddRow("2026-07", "8000.25", 150).
			AddRow("2026-08", "7250.50", 140))

	mock.ExpectQuery("FROM products").WillReturnRows(
		sqlmock.NewRows([]string{"product_id", "name", "price", "stock"}).
			AddRow(3, "USB-C Hub", "34.00", 2))

	stats, err := repo.Dashboard()
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if stats.TotalUsers != 120 || stats.TotalProducts != 45 || stats.TotalOrders != 300 {
		t.Fatalf("unexpected totals %+v", stats)
	}
	if !stats.TotalRevenue.Equal(decimal.RequireFromString("15250.75")) {
		t.Fatalf("unexpected revenue %s", stats.TotalRevenue)
	}
	if stats.OrdersByStatus["pending"] != 12 || stats.OrdersByStatus["delivered"] != 250 {
		t.Fatalf("unexpected status distribution %+v", stats.OrdersByStatus)
	}
	if len(stats.MonthlyRevenue) != 2 || stats.MonthlyRevenue[0].Month != "2026-07" {
		t.Fatalf("unexpected monthly revenue %+v", stats.MonthlyRevenue)
	}
	if len(stats.LowStock) != 1 || stats.LowStock[0].Stock != 2 {
		t.Fatalf("unexpected low stock %+v", stats.LowStock)
	}
	if len(stats.RecentOrders) != 0 {
		t.Fatalf("expected no recent orders, got %d", len(stats.RecentOrders))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
