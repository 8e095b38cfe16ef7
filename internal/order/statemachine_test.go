package order

import (
	"testing"
	"time"
)

func pendingOrder() Order {
	return Order{
		ID:     1,
		UserID: 7,
		Status: StatusPending,
		StatusHistory: []StatusEvent{
			{Status: StatusPending, Date: "2026-01-01T00:00:00Z", Note: "Order placed"},
		},
	}
}

func TestTransition_AppendsHistory(t *testing.T) {
	ord := pendingOrder()
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	if err := Transition(&ord, StatusConfirmed, "Payment received", "", now); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if ord.Status != StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", ord.Status)
	}
	if len(ord.StatusHistory) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(ord.StatusHistory))
	}
	last := ord.StatusHistory[len(ord.StatusHistory)-1]
	if last.Status != StatusConfirmed || last.Note != "Payment received" {
		t.Fatalf("unexpected history entry %+v", last)
	}
	if last.Date != "2026-01-02T10:00:00Z" {
		t.Fatalf("unexpected history date %s", last.Date)
	}
}

func TestTransition_HistoryGrowsMonotonically(t *testing.T) {
	ord := pendingOrder()
	steps := []Status{StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered}
	for i, next := range steps {
		if err := Transition(&ord, next, "", "", time.Now()); err != nil {
			t.Fatalf("step %d to %s: %v", i, next, err)
		}
		if len(ord.StatusHistory) != i+2 {
			t.Fatalf("expected %d history entries after step %d, got %d", i+2, i, len(ord.StatusHistory))
		}
	}
}

func TestTransition_ShippedSetsShippingDateAndTracking(t *testing.T) {
	ord := pendingOrder()
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	if err := Transition(&ord, StatusShipped, "On the way", "TRK123", now); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if ord.TrackingNumber != "TRK123" {
		t.Fatalf("expected tracking TRK123, got %q", ord.TrackingNumber)
	}
	if ord.ShippingDate != "2026-03-04T12:00:00Z" {
		t.Fatalf("expected shipping date set, got %q", ord.ShippingDate)
	}
}

func TestTransition_DeliveredSetsFlags(t *testing.T) {
	ord := pendingOrder()
	if err := Transition(&ord, StatusDelivered, "", "", time.Now()); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if !ord.IsDelivered || ord.DeliveredAt == "" {
		t.Fatalf("expected delivered flags set, got %+v", ord)
	}
}

func TestTransition_BackwardMoveAllowed(t *testing.T) {
	ord := pendingOrder()
	if err := Transition(&ord, StatusShipped, "", "", time.Now()); err != nil {
		t.Fatalf("to shipped: %v", err)
	}
	if err := Transition(&ord, StatusProcessing, "Returned to warehouse", "", time.Now()); err != nil {
		t.Fatalf("backward move should be allowed: %v", err)
	}
	if ord.Status != StatusProcessing {
		t.Fatalf("expected processing, got %s", ord.Status)
	}
}

func TestTransition_TerminalLock(t *testing.T) {
	for _, terminal := range []Status{StatusDelivered, StatusCancelled, StatusRefunded} {
		ord := pendingOrder()
		if err := Transition(&ord, terminal, "", "", time.Now()); err != nil {
			t.Fatalf("to %s: %v", terminal, err)
		}
		if err := Transition(&ord, StatusProcessing, "", "", time.Now()); err != ErrFinalized {
			t.Fatalf("expected ErrFinalized after %s, got %v", terminal, err)
		}
	}
}

func TestTransition_InvalidStatus(t *testing.T) {
	ord := pendingOrder()
	if err := Transition(&ord, Status("misplaced"), "", "", time.Now()); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if len(ord.StatusHistory) != 1 {
		t.Fatalf("history must not grow on rejected transition, got %d entries", len(ord.StatusHistory))
	}
}

func TestConfirmPayment(t *testing.T) {
	ord := pendingOrder()
	now := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)

	err := ConfirmPayment(&ord, PaymentInfo{ID: "pay_123", Status: "succeeded"}, now)
	if err != nil {
		t.Fatalf("confirm payment: %v", err)
	}
	if !ord.IsPaid || ord.PaidAt != "2026-02-01T09:30:00Z" {
		t.Fatalf("expected paid flags set, got %+v", ord)
	}
	if ord.Status != StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", ord.Status)
	}
	if ord.PaymentInfo == nil || ord.PaymentInfo.ID != "pay_123" {
		t.Fatalf("expected payment info recorded, got %+v", ord.PaymentInfo)
	}
	last := ord.StatusHistory[len(ord.StatusHistory)-1]
	if last.Note != "Payment confirmed" {
		t.Fatalf("unexpected history note %q", last.Note)
	}
}

func TestConfirmPayment_TerminalOrder(t *testing.T) {
	ord := pendingOrder()
	if err := Transition(&ord, StatusCancelled, "", "", time.Now()); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := ConfirmPayment(&ord, PaymentInfo{ID: "pay_1", Status: "succeeded"}, time.Now()); err != ErrFinalized {
		t.Fatalf("expected ErrFinalized, got %v", err)
	}
}
