package cart

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// storedItem is the persisted shape of a line item. Populated product
// details never reach the jsonb column.
type storedItem struct {
	ItemID    string `json:"itemId"`
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}

func (r *PostgresRepository) Get(userID int) (Cart, error) {
	var raw []byte
	var c Cart
	var updatedAt sql.NullString
	err := r.db.QueryRow(`SELECT user_id, items, total_items, total_amount, updated_at FROM carts WHERE user_id = $1`, userID).
		Scan(&c.UserID, &raw, &c.TotalItems, &c.TotalAmount, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Cart{}, ErrNotFound
		}
		return Cart{}, err
	}
	c.UpdatedAt = updatedAt.String

	var stored []storedItem
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &stored); err != nil {
			return Cart{}, err
		}
	}
	c.Items = make([]CartItem, 0, len(stored))
	for _, it := range stored {
		c.Items = append(c.Items, CartItem{
			ID:        it.ItemID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Color:     it.Color,
			Size:      it.Size,
		})
	}
	return c, nil
}

func (r *PostgresRepository) Save(cart Cart) (Cart, error) {
	stored := make([]storedItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		stored = append(stored, storedItem{
			ItemID:    it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Color:     it.Color,
			Size:      it.Size,
		})
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return Cart{}, err
	}

	_, err = r.db.Exec(`INSERT INTO carts (user_id, items, total_items, total_amount, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id) DO UPDATE
		SET items = EXCLUDED.items,
			total_items = EXCLUDED.total_items,
			total_amount = EXCLUDED.total_amount,
			updated_at = EXCLUDED.updated_at`,
		cart.UserID, raw, cart.TotalItems, cart.TotalAmount, cart.UpdatedAt)
	if err != nil {
		return Cart{}, err
	}
	return cart, nil
}
