package product

import "github.com/shopspring/decimal"

// Product statuses. Anything not active is hidden from the storefront and
// pruned from carts on recompute.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Product represents a catalog entry and maps to the `products` table.
type Product struct {
	ID          int             `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Status      string          `json:"status"`
	CategoryID  *int            `json:"categoryId,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	Image       string          `json:"image,omitempty"`
	Featured    bool            `json:"featured"`
	Rating      float64         `json:"ratings"`
	NumReviews  int             `json:"numOfReviews"`
	CreatedAt   string          `json:"createdAt,omitempty"`
	UpdatedAt   string          `json:"updatedAt,omitempty"`
}

// Available reports whether the product can currently be sold.
func (p Product) Available() bool {
	return p.Status == StatusActive
}

// Filter narrows catalog listings. Zero values mean "no constraint".
type Filter struct {
	CategoryID int
	Search     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Featured   bool
	Status     string
	Sort       string // price_low | price_high | name | newest (default)
	Page       int
	Limit      int
}

func (f Filter) normalized() Filter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 12
	}
	if f.Status == "" {
		f.Status = StatusActive
	}
	return f
}
