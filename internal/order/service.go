package order

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirawit-dev/storefront-backend/internal/inventory"
)

// Gateway verifies a payment reference with the payment provider.
type Gateway interface {
	Retrieve(paymentRef string) (PaymentInfo, error)
}

// StatusChange is emitted after every successful lifecycle mutation.
type StatusChange struct {
	OrderID int    `json:"orderId"`
	UserID  int    `json:"userId"`
	Status  Status `json:"status"`
	Note    string `json:"note,omitempty"`
	At      string `json:"at"`
}

// Publisher forwards status changes to interested consumers. A nil
// publisher disables publication.
type Publisher interface {
	OrderStatusChanged(change StatusChange)
}

// Pricing holds the checkout pricing rules. Tax applies to the item
// subtotal; the flat shipping fee is waived once the subtotal reaches the
// free-shipping threshold.
type Pricing struct {
	TaxRate         decimal.Decimal
	ShippingFee     decimal.Decimal
	FreeShippingMin decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		TaxRate:         decimal.NewFromFloat(0.10),
		ShippingFee:     decimal.NewFromInt(10),
		FreeShippingMin: decimal.NewFromInt(100),
	}
}

type Service struct {
	repo      Repository
	guard     *inventory.Guard
	gateway   Gateway
	publisher Publisher
	pricing   Pricing
}

func NewService(repo Repository, guard *inventory.Guard, gateway Gateway, publisher Publisher, pricing Pricing) *Service {
	return &Service{repo: repo, guard: guard, gateway: gateway, publisher: publisher, pricing: pricing}
}

// PlaceItem is one requested line at checkout.
type PlaceItem struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}

// PlaceInput is everything needed to convert purchase intent into an
// order snapshot.
type PlaceInput struct {
	Items           []PlaceItem
	ShippingAddress ShippingAddress
	PaymentMethod   string
}

// Place converts the requested items into an immutable order snapshot.
// Availability is checked per item but no stock is reserved; the decrement
// happens at payment confirmation.
func (s *Service) Place(userID int, in PlaceInput) (Order, error) {
	if userID <= 0 {
		return Order{}, ErrNotFound
	}
	if len(in.Items) == 0 {
		return Order{}, ErrEmptyOrder
	}

	items := make([]OrderItem, 0, len(in.Items))
	itemsPrice := decimal.Zero
	for _, req := range in.Items {
		if req.Quantity < 1 {
			return Order{}, ErrInvalidQuantity
		}
		p, err := s.guard.EnsureAvailable(req.ProductID, req.Quantity)
		if err != nil {
			return Order{}, err
		}
		items = append(items, OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  req.Quantity,
			Image:     p.Image,
			Color:     req.Color,
			Size:      req.Size,
		})
		itemsPrice = itemsPrice.Add(p.Price.Mul(decimal.NewFromInt(int64(req.Quantity))))
	}

	taxPrice := itemsPrice.Mul(s.pricing.TaxRate).Round(2)
	shippingPrice := s.pricing.ShippingFee
	if itemsPrice.GreaterThanOrEqual(s.pricing.FreeShippingMin) {
		shippingPrice = decimal.Zero
	}

	now := time.Now().UTC().Format(time.RFC3339)
	ord := Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		ItemsPrice:      itemsPrice,
		TaxPrice:        taxPrice,
		ShippingPrice:   shippingPrice,
		TotalPrice:      itemsPrice.Add(taxPrice).Add(shippingPrice),
		Status:          StatusPending,
		StatusHistory: []StatusEvent{
			{Status: StatusPending, Date: now, Note: "Order placed"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ord)
	if err != nil {
		return Order{}, err
	}
	s.publish(created, "Order placed")
	return created, nil
}

// Get returns an order, restricted to its owner unless the requester is
// an admin.
func (s *Service) Get(orderID, requesterID int, isAdmin bool) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if !isAdmin && ord.UserID != requesterID {
		return Order{}, ErrNotAuthorized
	}
	return ord, nil
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) List(f Filter) ([]Order, int, error) {
	return s.repo.List(f)
}

func (s *Service) PaymentHistory(userID, page, limit int) ([]Order, int, decimal.Decimal, error) {
	return s.repo.ListPaidByUser(userID, page, limit)
}

// UpdateStatus drives the admin-facing status transition.
func (s *Service) UpdateStatus(orderID int, next Status, note, trackingNumber string) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if err := Transition(&ord, next, note, trackingNumber, time.Now()); err != nil {
		return Order{}, err
	}
	updated, err := s.repo.Update(ord)
	if err != nil {
		return Order{}, err
	}
	s.publish(updated, note)
	return updated, nil
}

// ConfirmPayment verifies the reference with the gateway, marks the order
// paid and confirmed, and commits the stock decrement. The decrement
// happens here and nowhere else.
func (s *Service) ConfirmPayment(orderID, requesterID int, paymentRef string) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if ord.UserID != requesterID {
		return Order{}, ErrNotAuthorized
	}

	info, err := s.gateway.Retrieve(paymentRef)
	if err != nil {
		return Order{}, err
	}
	if info.Status != "succeeded" {
		return Order{}, ErrPaymentNotSettled
	}

	if err := ConfirmPayment(&ord, info, time.Now()); err != nil {
		return Order{}, err
	}

	reservations := make([]inventory.Reservation, 0, len(ord.Items))
	for _, item := range ord.Items {
		reservations = append(reservations, inventory.Reservation{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	if err := s.guard.Commit(reservations); err != nil {
		return Order{}, err
	}

	updated, err := s.repo.Update(ord)
	if err != nil {
		return Order{}, err
	}
	s.publish(updated, "Payment confirmed")
	return updated, nil
}

// Cancel moves a pending order to cancelled. The pending-only rule and the
// ownership check live here, at the calling boundary, not in the state
// machine.
func (s *Service) Cancel(orderID, requesterID int) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if ord.UserID != requesterID {
		return Order{}, ErrNotAuthorized
	}
	if ord.Status != StatusPending {
		return Order{}, ErrNotPending
	}

	if err := Transition(&ord, StatusCancelled, "Cancelled by customer", "", time.Now()); err != nil {
		return Order{}, err
	}
	updated, err := s.repo.Update(ord)
	if err != nil {
		return Order{}, err
	}
	s.publish(updated, "Cancelled by customer")
	return updated, nil
}

func (s *Service) publish(ord Order, note string) {
	if s.publisher == nil {
		return
	}
	s.publisher.OrderStatusChanged(StatusChange{
		OrderID: ord.ID,
		UserID:  ord.UserID,
		Status:  ord.Status,
		Note:    note,
		At:      ord.UpdatedAt,
	})
}
