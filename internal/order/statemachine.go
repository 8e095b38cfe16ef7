package order

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrFinalized         = errors.New("order is already finalized")
	ErrNotPending        = errors.New("only pending orders can be cancelled")
	ErrNotAuthorized     = errors.New("not authorized for this order")
	ErrPaymentNotSettled = errors.New("payment not successful")
)

// Transition moves an order to next and appends the matching history
// entry. Any non-terminal order accepts any recognized status, backward
// moves included; this permissiveness mirrors the admin-driven model the
// storefront uses. Only terminal statuses block further transitions.
func Transition(ord *Order, next Status, note, trackingNumber string, now time.Time) error {
	if !next.Valid() {
		return ErrInvalidStatus
	}
	if ord.Status.Terminal() {
		return ErrFinalized
	}

	stamp := now.UTC().Format(time.RFC3339)
	ord.Status = next
	ord.StatusHistory = append(ord.StatusHistory, StatusEvent{Status: next, Date: stamp, Note: note})

	if trackingNumber != "" {
		ord.TrackingNumber = trackingNumber
	}
	switch next {
	case StatusShipped:
		ord.ShippingDate = stamp
	case StatusDelivered:
		ord.IsDelivered = true
		ord.DeliveredAt = stamp
	}
	ord.UpdatedAt = stamp
	return nil
}

// ConfirmPayment is the specialized transition triggered by a successful
// gateway confirmation: the order is forced to confirmed, marked paid, and
// the gateway's report is recorded.
func ConfirmPayment(ord *Order, info PaymentInfo, now time.Time) error {
	if ord.Status.Terminal() {
		return ErrFinalized
	}

	stamp := now.UTC().Format(time.RFC3339)
	ord.IsPaid = true
	ord.PaidAt = stamp
	info.PaidAt = stamp
	ord.PaymentInfo = &info
	ord.Status = StatusConfirmed
	ord.StatusHistory = append(ord.StatusHistory, StatusEvent{
		Status: StatusConfirmed,
		Date:   stamp,
		Note:   "Payment confirmed",
	})
	ord.UpdatedAt = stamp
	return nil
}
