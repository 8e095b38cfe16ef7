package category

import (
	"database/sql"
	"strings"
)

const categoryColumns = "category_id, name, slug, description, parent_id, status, sort_order, created_at, updated_at"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanCategory(row interface{ Scan(...any) error }) (Category, error) {
	var cat Category
	var parentID sql.NullInt64
	err := row.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &parentID,
		&cat.Status, &cat.SortOrder, &cat.CreatedAt, &cat.UpdatedAt)
	if parentID.Valid {
		v := int(parentID.Int64)
		cat.ParentID = &v
	}
	return cat, err
}

func (r *PostgresRepository) List() ([]Category, error) {
	rows, err := r.db.Query("SELECT " + categoryColumns + " FROM categories ORDER BY sort_order ASC, category_id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Category, error) {
	row := r.db.QueryRow("SELECT "+categoryColumns+" FROM categories WHERE category_id = $1", id)
	cat, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return Category{}, ErrNotFound
	}
	return cat, err
}

func (r *PostgresRepository) GetBySlug(slug string) (Category, error) {
	row := r.db.QueryRow("SELECT "+categoryColumns+" FROM categories WHERE slug = $1", slug)
	cat, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return Category{}, ErrNotFound
	}
	return cat, err
}

func (r *PostgresRepository) Create(cat Category) (Category, error) {
	err := r.db.QueryRow(
		`INSERT INTO categories (name, slug, description, parent_id, status, sort_order, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING category_id`,
		cat.Name, cat.Slug, cat.Description, nullableInt(cat.ParentID), cat.Status, cat.SortOrder, cat.CreatedAt, cat.UpdatedAt,
	).Scan(&cat.ID)
	if err != nil && isUniqueViolation(err) {
		return Category{}, ErrSlugExists
	}
	return cat, err
}

func (r *PostgresRepository) Update(cat Category) (Category, error) {
	result, err := r.db.Exec(
		`UPDATE categories SET name = $2, slug = $3, description = $4, parent_id = $5,
		 status = $6, sort_order = $7, updated_at = $8
		 WHERE category_id = $1`,
		cat.ID, cat.Name, cat.Slug, cat.Description, nullableInt(cat.ParentID), cat.Status, cat.SortOrder, cat.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Category{}, ErrSlugExists
		}
		return Category{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Category{}, err
	}
	if affected == 0 {
		return Category{}, ErrNotFound
	}
	return cat, nil
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM categories WHERE category_id = $1", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
