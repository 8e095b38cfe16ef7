package order

import (
	"database/sql"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *sql.DB
}

const orderColumns = `order_id, user_id, items, shipping_address, payment_method,
	items_price, tax_price, shipping_price, total_price,
	order_status, status_history, is_paid, paid_at, payment_info,
	is_delivered, delivered_at, shipping_date, tracking_number, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var ord Order
	var items, address, history, paymentInfo []byte
	var paidAt, deliveredAt, shippingDate, tracking, createdAt, updatedAt sql.NullString
	err := row.Scan(&ord.ID, &ord.UserID, &items, &address, &ord.PaymentMethod,
		&ord.ItemsPrice, &ord.TaxPrice, &ord.ShippingPrice, &ord.TotalPrice,
		&ord.Status, &history, &ord.IsPaid, &paidAt, &paymentInfo,
		&ord.IsDelivered, &deliveredAt, &shippingDate, &tracking, &createdAt, &updatedAt)
	if err != nil {
		return Order{}, err
	}

	if err := json.Unmarshal(items, &ord.Items); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(address, &ord.ShippingAddress); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(history, &ord.StatusHistory); err != nil {
		return Order{}, err
	}
	if len(paymentInfo) > 0 {
		info := PaymentInfo{}
		if err := json.Unmarshal(paymentInfo, &info); err != nil {
			return Order{}, err
		}
		if info.ID != "" || info.Status != "" {
			ord.PaymentInfo = &info
		}
	}
	ord.PaidAt = paidAt.String
	ord.DeliveredAt = deliveredAt.String
	ord.ShippingDate = shippingDate.String
	ord.TrackingNumber = tracking.String
	ord.CreatedAt = createdAt.String
	ord.UpdatedAt = updatedAt.String
	return ord, nil
}

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	items, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}
	address, err := json.Marshal(ord.ShippingAddress)
	if err != nil {
		return Order{}, err
	}
	history, err := json.Marshal(ord.StatusHistory)
	if err != nil {
		return Order{}, err
	}

	err = r.db.QueryRow(`INSERT INTO orders (user_id, items, shipping_address, payment_method,
			items_price, tax_price, shipping_price, total_price,
			order_status, status_history, is_paid, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING order_id`,
		ord.UserID, items, address, ord.PaymentMethod,
		ord.ItemsPrice, ord.TaxPrice, ord.ShippingPrice, ord.TotalPrice,
		ord.Status, history, ord.IsPaid, ord.CreatedAt, ord.UpdatedAt).
		Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	row := r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, id)
	ord, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ord)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) List(f Filter) ([]Order, int, error) {
	f = f.normalized()

	where := ""
	args := make([]any, 0, 4)
	add := func(clause string, v any) {
		args = append(args, v)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += clause
	}
	if f.Status != "" {
		add("order_status = $"+strconv.Itoa(len(args)+1), f.Status)
	}
	if f.StartDate != "" {
		add("created_at >= $"+strconv.Itoa(len(args)+1), f.StartDate)
	}
	if f.EndDate != "" {
		add("created_at <= $"+strconv.Itoa(len(args)+1), f.EndDate)
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	query := `SELECT ` + orderColumns + ` FROM orders` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, ord)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepository) ListPaidByUser(userID, page, limit int) ([]Order, int, decimal.Decimal, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int
	var spent decimal.Decimal
	err := r.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(total_price), 0) FROM orders
		WHERE user_id = $1 AND is_paid = true`, userID).Scan(&total, &spent)
	if err != nil {
		return nil, 0, decimal.Zero, err
	}

	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders
		WHERE user_id = $1 AND is_paid = true
		ORDER BY paid_at DESC LIMIT $2 OFFSET $3`, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, decimal.Zero, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, 0, decimal.Zero, err
		}
		out = append(out, ord)
	}
	return out, total, spent, rows.Err()
}

func (r *PostgresRepository) Update(ord Order) (Order, error) {
	history, err := json.Marshal(ord.StatusHistory)
	if err != nil {
		return Order{}, err
	}
	var paymentInfo []byte
	if ord.PaymentInfo != nil {
		paymentInfo, err = json.Marshal(ord.PaymentInfo)
		if err != nil {
			return Order{}, err
		}
	}

	res, err := r.db.Exec(`UPDATE orders
		SET order_status=$1, status_history=$2, is_paid=$3, paid_at=$4, payment_info=$5,
			is_delivered=$6, delivered_at=$7, shipping_date=$8, tracking_number=$9, updated_at=$10
		WHERE order_id=$11`,
		ord.Status, history, ord.IsPaid, nullable(ord.PaidAt), paymentInfo,
		ord.IsDelivered, nullable(ord.DeliveredAt), nullable(ord.ShippingDate),
		nullable(ord.TrackingNumber), ord.UpdatedAt, ord.ID)
	if err != nil {
		return Order{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Order{}, ErrNotFound
	}
	return ord, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
