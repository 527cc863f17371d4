package notifications

import (
	"context"
	"time"

	"reservio/pkg/model"
)

// Event types published to the booking-events topic.
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventPaymentProcessed     = "payment.processed"
	EventPaymentRefunded      = "payment.refunded"
)

// Notifier delivers lifecycle events to interested parties. Delivery is
// best-effort: implementations log failures and never propagate them, so a
// broken notification channel cannot fail a booking or a payment.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingStatusChanged(ctx context.Context, booking *model.Booking, previousStatus string)
	PaymentProcessed(ctx context.Context, payment *model.Payment)
	PaymentRefunded(ctx context.Context, payment *model.Payment)
}

type BookingEvent struct {
	BookingID      string    `json:"booking_id"`
	UserID         string    `json:"user_id"`
	ProviderID     string    `json:"provider_id"`
	ServiceID      string    `json:"service_id"`
	Date           string    `json:"date"`
	StartMinute    int       `json:"start_minute"`
	EndMinute      int       `json:"end_minute"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type PaymentEvent struct {
	PaymentID     string    `json:"payment_id"`
	BookingID     string    `json:"booking_id"`
	AmountCents   int64     `json:"amount_cents"`
	Method        string    `json:"method"`
	TransactionID string    `json:"transaction_id"`
	Status        string    `json:"status"`
	FailureReason string    `json:"failure_reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func newBookingEvent(b *model.Booking, previousStatus string) BookingEvent {
	return BookingEvent{
		BookingID:      b.ID,
		UserID:         b.UserID,
		ProviderID:     b.ProviderID,
		ServiceID:      b.ServiceID,
		Date:           b.Date,
		StartMinute:    b.StartMinute,
		EndMinute:      b.EndMinute,
		Status:         b.Status,
		PreviousStatus: previousStatus,
		OccurredAt:     time.Now().UTC(),
	}
}

func newPaymentEvent(p *model.Payment) PaymentEvent {
	return PaymentEvent{
		PaymentID:     p.ID,
		BookingID:     p.BookingID,
		AmountCents:   p.AmountCents,
		Method:        p.Method,
		TransactionID: p.TransactionID,
		Status:        p.Status,
		FailureReason: p.FailureReason,
		OccurredAt:    time.Now().UTC(),
	}
}
