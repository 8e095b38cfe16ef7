package cart

import (
	"github.com/shopspring/decimal"
	"github.com/sirawit-dev/storefront-backend/internal/product"
)

// CartItem is one line in a cart. Items are keyed by a generated id so the
// client can address them directly; the (product, color, size) tuple is
// unique within a cart and merges on repeated adds.
type CartItem struct {
	ID        string `json:"itemId"`
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`

	// Product carries current catalog state for responses. It is
	// populated on recompute and never persisted.
	Product *product.Product `json:"product,omitempty"`
}

func (i CartItem) sameVariant(productID int, color, size string) bool {
	return i.ProductID == productID && i.Color == color && i.Size == size
}

// Cart holds a user's pending purchase intentions. TotalItems and
// TotalAmount are derived: they are recomputed from items plus current
// product state before every read and persist, never trusted as stored.
type Cart struct {
	UserID      int             `json:"userId"`
	Items       []CartItem      `json:"items"`
	TotalItems  int             `json:"totalItems"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	UpdatedAt   string          `json:"updatedAt,omitempty"`
}
