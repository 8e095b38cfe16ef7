package review

import (
	"database/sql"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const reviewColumns = `review_id, product_id, user_id, name, rating, comment, created_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanReview(row interface{ Scan(...any) error }) (Review, error) {
	var rv Review
	var comment, createdAt sql.NullString
	err := row.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Name, &rv.Rating, &comment, &createdAt)
	if err != nil {
		return Review{}, err
	}
	rv.Comment = comment.String
	rv.CreatedAt = createdAt.String
	return rv, nil
}

// Create relies on the unique (product_id, user_id) constraint to reject
// a second review from the same user.
func (r *PostgresRepository) Create(rv Review) (Review, error) {
	err := r.db.QueryRow(`INSERT INTO reviews (product_id, user_id, name, rating, comment, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING review_id`,
		rv.ProductID, rv.UserID, rv.Name, rv.Rating, rv.Comment, rv.CreatedAt).
		Scan(&rv.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return Review{}, ErrAlreadyReviewed
		}
		return Review{}, err
	}
	return rv, nil
}

func (r *PostgresRepository) ListByProduct(productID int) ([]Review, error) {
	rows, err := r.db.Query(`SELECT `+reviewColumns+` FROM reviews
		WHERE product_id = $1 ORDER BY created_at DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
