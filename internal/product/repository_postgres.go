package product

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const productColumns = `product_id, name, description, price, stock, status, category_id, brand, image, featured, ratings, num_reviews, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	var desc, brand, image, createdAt, updatedAt sql.NullString
	var categoryID sql.NullInt64
	err := row.Scan(&p.ID, &p.Name, &desc, &p.Price, &p.Stock, &p.Status,
		&categoryID, &brand, &image, &p.Featured, &p.Rating, &p.NumReviews, &createdAt, &updatedAt)
	if err != nil {
		return Product{}, err
	}
	p.Description = desc.String
	p.Brand = brand.String
	p.Image = image.String
	p.CreatedAt = createdAt.String
	p.UpdatedAt = updatedAt.String
	if categoryID.Valid {
		id := int(categoryID.Int64)
		p.CategoryID = &id
	}
	return p, nil
}

func (r *PostgresRepository) List(f Filter) ([]Product, int, error) {
	f = f.normalized()

	where := make([]string, 0, 6)
	args := make([]any, 0, 6)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != "all" {
		where = append(where, "status = "+arg(f.Status))
	}
	if f.CategoryID > 0 {
		where = append(where, "category_id = "+arg(f.CategoryID))
	}
	if f.Featured {
		where = append(where, "featured = true")
	}
	if f.MinPrice != nil {
		where = append(where, "price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= "+arg(*f.MaxPrice))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		where = append(where, "(name ILIKE "+p+" OR description ILIKE "+p+")")
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	switch f.Sort {
	case "price_low":
		order = "price ASC"
	case "price_high":
		order = "price DESC"
	case "name":
		order = "name ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY %s LIMIT %s OFFSET %s`,
		productColumns, clause, order, arg(f.Limit), arg((f.Page-1)*f.Limit))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE product_id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) ListByIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM products
		WHERE product_id = ANY($1::int[])
		ORDER BY array_position($1::int[], product_id)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ListFeatured(limit int) ([]Product, error) {
	if limit <= 0 {
		limit = 8
	}
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM products
		WHERE featured = true AND status = $1
		ORDER BY created_at DESC LIMIT $2`, StatusActive, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	if p.Status == "" {
		p.Status = StatusActive
	}
	err := r.db.QueryRow(`INSERT INTO products (name, description, price, stock, status, category_id, brand, image, featured, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING product_id`,
		p.Name, p.Description, p.Price, p.Stock, p.Status, p.CategoryID, p.Brand, p.Image, p.Featured, p.CreatedAt, p.UpdatedAt).
		Scan(&p.ID)
	return p, err
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	res, err := r.db.Exec(`UPDATE products
		SET name=$1, description=$2, price=$3, stock=$4, status=$5, category_id=$6, brand=$7, image=$8, featured=$9, updated_at=$10
		WHERE product_id=$11`,
		p.Name, p.Description, p.Price, p.Stock, p.Status, p.CategoryID, p.Brand, p.Image, p.Featured, p.UpdatedAt, id)
	if err != nil {
		return Product{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) CountByCategory(categoryID int) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&count)
	return count, err
}

// DecrementStock relies on the conditional UPDATE for atomicity; two
// concurrent confirmations cannot drive stock below zero.
func (r *PostgresRepository) DecrementStock(id int, qty int) error {
	res, err := r.db.Exec(`UPDATE products SET stock = stock - $2 WHERE product_id = $1 AND stock >= $2`, id, qty)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.db.QueryRow(`SELECT 1 FROM products WHERE product_id = $1`, id).Scan(&exists); err == sql.ErrNoRows {
			return ErrNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

func (r *PostgresRepository) UpdateRating(id int, rating float64, count int) error {
	res, err := r.db.Exec(`UPDATE products SET ratings = $2, num_reviews = $3 WHERE product_id = $1`, id, rating, count)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) RestoreStock(id int, qty int) error {
	res, err := r.db.Exec(`UPDATE products SET stock = stock + $2 WHERE product_id = $1`, id, qty)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
