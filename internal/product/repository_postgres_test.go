package product

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"product_id", "name", "description", "price", "stock", "status",
		"category_id", "brand", "image", "featured", "ratings", "num_reviews",
		"created_at", "updated_at",
	})
}

func TestGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := productRows().
		AddRow(5, "Speaker", "loud", "49.90", 12, "active", 2, "Soundline", "/img/5.png", true, 4.5, 2, "2026-01-01T00:00:00Z", "2026-01-01T00:00:00Z")
	mock.ExpectQuery("FROM products WHERE product_id").WithArgs(5).WillReturnRows(rows)

	p, err := repo.GetByID(5)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name != "Speaker" || !p.Price.Equal(decimal.RequireFromString("49.90")) {
		t.Fatalf("unexpected product %+v", p)
	}
	if p.CategoryID == nil || *p.CategoryID != 2 {
		t.Fatalf("expected category 2, got %v", p.CategoryID)
	}
	if p.Rating != 4.5 || p.NumReviews != 2 {
		t.Fatalf("expected review aggregate 4.5/2, got %v/%d", p.Rating, p.NumReviews)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM products WHERE product_id").WithArgs(99).WillReturnRows(productRows())

	if _, err := repo.GetByID(99); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_SearchFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("active", "%speaker%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	rows := productRows().
		AddRow(5, "Speaker", "loud", "49.90", 12, "active", nil, "", "", false, 0.0, 0, "t", "u")
	mock.ExpectQuery("FROM products WHERE status").
		WithArgs("active", "%speaker%", 12, 0).
		WillReturnRows(rows)

	out, total, err := repo.List(Filter{Search: "speaker"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(out) != 1 {
		t.Fatalf("expected one match, got total=%d len=%d", total, len(out))
	}
	if out[0].CategoryID != nil {
		t.Fatalf("expected nil category, got %v", out[0].CategoryID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDecrementStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE products SET stock").
		WithArgs(5, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DecrementStock(5, 3); err != nil {
		t.Fatalf("decrement: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDecrementStock_Insufficient(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// conditional update touches no rows, but the product exists
	mock.ExpectExec("UPDATE products SET stock").
		WithArgs(5, 30).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM products").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(1))

	if err := repo.DecrementStock(5, 30); err != ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestDecrementStock_MissingProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE products SET stock").
		WithArgs(99, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM products").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}))

	if err := repo.DecrementStock(99, 1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
