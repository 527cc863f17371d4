package model

import "time"

// Payment status values.
const (
	PaymentPending  = "Pending"
	PaymentSuccess  = "Success"
	PaymentFailed   = "Failed"
	PaymentRefunded = "Refunded"
)

// Payment is the settlement record for a booking. At most one payment row
// ever exists per booking; the uniqueness is backed by a unique index on
// booking_id, not only by the application-level pre-check.
type Payment struct {
	ID            string     `json:"id" bson:"_id,omitempty"`
	BookingID     string     `json:"booking_id" bson:"booking_id"`
	AmountCents   int64      `json:"amount_cents" bson:"amount_cents"`
	Method        string     `json:"method" bson:"method"`
	TransactionID string     `json:"transaction_id" bson:"transaction_id"`
	Status        string     `json:"status" bson:"status"`
	FailureReason string     `json:"failure_reason,omitempty" bson:"failure_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty" bson:"processed_at,omitempty"`
}
