package address

import "database/sql"

const addressColumns = "address_id, user_id, full_name, address, city, state, zip_code, country, is_default, created_at, updated_at"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanAddress(row interface{ Scan(...any) error }) (Address, error) {
	var a Address
	err := row.Scan(&a.ID, &a.UserID, &a.FullName, &a.Address, &a.City, &a.State,
		&a.ZipCode, &a.Country, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *PostgresRepository) ListByUser(userID int) ([]Address, error) {
	rows, err := r.db.Query(
		"SELECT "+addressColumns+" FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, address_id ASC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addresses := make([]Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Address, error) {
	row := r.db.QueryRow("SELECT "+addressColumns+" FROM addresses WHERE address_id = $1", id)
	a, err := scanAddress(row)
	if err == sql.ErrNoRows {
		return Address{}, ErrNotFound
	}
	return a, err
}

func (r *PostgresRepository) Create(a Address) (Address, error) {
	err := r.db.QueryRow(
		`INSERT INTO addresses (user_id, full_name, address, city, state, zip_code, country, is_default, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING address_id`,
		a.UserID, a.FullName, a.Address, a.City, a.State, a.ZipCode, a.Country, a.IsDefault, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	return a, err
}

func (r *PostgresRepository) Update(a Address) (Address, error) {
	result, err := r.db.Exec(
		`UPDATE addresses SET full_name = $2, address = $3, city = $4, state = $5,
		 zip_code = $6, country = $7, is_default = $8, updated_at = $9
		 WHERE address_id = $1`,
		a.ID, a.FullName, a.Address, a.City, a.State, a.ZipCode, a.Country, a.IsDefault, a.UpdatedAt)
	if err != nil {
		return Address{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Address{}, err
	}
	if affected == 0 {
		return Address{}, ErrNotFound
	}
	return a, nil
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM addresses WHERE address_id = $1", id)
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

func (r *PostgresRepository) ClearDefault(userID int) error {
	_, err := r.db.Exec("UPDATE addresses SET is_default = FALSE WHERE user_id = $1 AND is_default = TRUE", userID)
	return err
}
