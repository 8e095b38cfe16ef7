package user

import (
	"database/sql"
	"strconv"
)

type PostgresRepository struct {
	db *sql.DB
}

const userColumns = `user_id, name, email, password, role, status, phone, avatar, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	var phone, avatar, createdAt, updatedAt sql.NullString
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Status,
		&phone, &avatar, &createdAt, &updatedAt)
	if err != nil {
		return User{}, err
	}
	u.Phone = phone.String
	u.Avatar = avatar.String
	u.CreatedAt = createdAt.String
	u.UpdatedAt = updatedAt.String
	return u, nil
}

func (r *PostgresRepository) List(role, search string, page, limit int) ([]User, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	where := ""
	args := make([]any, 0, 3)
	if role != "" && role != "all" {
		args = append(args, role)
		where = " WHERE role = $1"
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		cond := "(name ILIKE $" + strconv.Itoa(len(args)) + " OR email ILIKE $" + strconv.Itoa(len(args)) + ")"
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, (page-1)*limit)
	query := `SELECT ` + userColumns + ` FROM users` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, sanitizeUser(u))
	}
	return out, total, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *PostgresRepository) Create(u User) (User, error) {
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	err := r.db.QueryRow(`INSERT INTO users (name, email, password, role, status, phone, avatar, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING user_id`,
		u.Name, u.Email, u.Password, u.Role, u.Status, u.Phone, u.Avatar, u.CreatedAt, u.UpdatedAt).
		Scan(&u.ID)
	return u, err
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	res, err := r.db.Exec(`UPDATE users
		SET name=$1, email=$2, password=$3, role=$4, status=$5, phone=$6, avatar=$7, updated_at=$8
		WHERE user_id=$9`,
		u.Name, u.Email, u.Password, u.Role, u.Status, u.Phone, u.Avatar, u.UpdatedAt, id)
	if err != nil {
		return User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return User{}, ErrNotFound
	}
	u.ID = id
	return u, nil
}

func (r *PostgresRepository) UpdateRole(id int, role string) (User, error) {
	row := r.db.QueryRow(`UPDATE users SET role = $1 WHERE user_id = $2 RETURNING `+userColumns, role, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return sanitizeUser(u), err
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
