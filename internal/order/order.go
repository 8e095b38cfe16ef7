package order

import "github.com/shopspring/decimal"

// Status is an order's lifecycle state. The usual path is pending →
// confirmed → processing → shipped → delivered; cancelled and refunded are
// alternate terminal exits.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

// Statuses lists every recognized value, in lifecycle order.
var Statuses = []Status{
	StatusPending, StatusConfirmed, StatusProcessing, StatusShipped,
	StatusDelivered, StatusCancelled, StatusRefunded,
}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal statuses accept no further transitions.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusRefunded
}

// OrderItem is an immutable snapshot of a product at checkout time,
// deliberately decoupled from the live catalog row.
type OrderItem struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
	Color     string          `json:"color,omitempty"`
	Size      string          `json:"size,omitempty"`
}

// StatusEvent is one entry in the append-only status history.
type StatusEvent struct {
	Status Status `json:"status"`
	Date   string `json:"date"`
	Note   string `json:"note,omitempty"`
}

type ShippingAddress struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
	Phone    string `json:"phone,omitempty"`
}

// PaymentInfo records what the gateway reported at confirmation time.
type PaymentInfo struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	PaidAt string `json:"paidAt,omitempty"`
}

// Order is created at checkout and mutated only through state-machine
// transitions. Orders are never deleted; cancellation is a terminal
// status, not removal.
type Order struct {
	ID              int             `json:"orderId"`
	UserID          int             `json:"userId"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`

	ItemsPrice    decimal.Decimal `json:"itemsPrice"`
	TaxPrice      decimal.Decimal `json:"taxPrice"`
	ShippingPrice decimal.Decimal `json:"shippingPrice"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`

	Status        Status        `json:"orderStatus"`
	StatusHistory []StatusEvent `json:"statusHistory"`

	IsPaid      bool         `json:"isPaid"`
	PaidAt      string       `json:"paidAt,omitempty"`
	PaymentInfo *PaymentInfo `json:"paymentInfo,omitempty"`

	IsDelivered    bool   `json:"isDelivered"`
	DeliveredAt    string `json:"deliveredAt,omitempty"`
	ShippingDate   string `json:"shippingDate,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Filter narrows admin order listings.
type Filter struct {
	Status    Status
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}

func (f Filter) normalized() Filter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	return f
}
