package wishlist

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	addWishlistQuery = `
		UPDATE users
		SET wishlist = array_append(coalesce(wishlist, ARRAY[]::integer[]), $2),
			updated_at = $3
		WHERE user_id = $1
			AND NOT ($2 = ANY(coalesce(wishlist, ARRAY[]::integer[])))
		RETURNING wishlist
	`
	removeWishlistQuery = `
		UPDATE users
		SET wishlist = array_remove(coalesce(wishlist, ARRAY[]::integer[]), $2),
			updated_at = $3
		WHERE user_id = $1
			AND ($2 = ANY(coalesce(wishlist, ARRAY[]::integer[])))
		RETURNING wishlist
	`
	listWishlistQuery = `SELECT coalesce(wishlist, ARRAY[]::integer[]) FROM users WHERE user_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(userID int, productID int, updatedAt string) ([]int, error) {
	var arr pq.Int64Array
	err := r.db.QueryRow(addWishlistQuery, userID, productID, updatedAt).Scan(&arr)
	if err == sql.ErrNoRows {
		// no row updated: either the user is missing or the guard rejected a duplicate
		var exists int
		if err2 := r.db.QueryRow("SELECT 1 FROM users WHERE user_id = $1", userID).Scan(&exists); err2 == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, ErrAlreadyInWishlist
	}
	if err != nil {
		return nil, err
	}
	return toInts(arr), nil
}

func (r *PostgresRepository) Remove(userID int, productID int, updatedAt string) ([]int, error) {
	var arr pq.Int64Array
	err := r.db.QueryRow(removeWishlistQuery, userID, productID, updatedAt).Scan(&arr)
	if err == sql.ErrNoRows {
		var exists int
		if err2 := r.db.QueryRow("SELECT 1 FROM users WHERE user_id = $1", userID).Scan(&exists); err2 == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, ErrNotInWishlist
	}
	if err != nil {
		return nil, err
	}
	return toInts(arr), nil
}

func (r *PostgresRepository) List(userID int) ([]int, error) {
	var arr pq.Int64Array
	err := r.db.QueryRow(listWishlistQuery, userID).Scan(&arr)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toInts(arr), nil
}

func toInts(arr pq.Int64Array) []int {
	out := make([]int, 0, len(arr))
	for _, v := range arr {
		out = append(out, int(v))
	}
	return out
}
