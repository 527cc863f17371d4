package model

import (
	"time"
)

// Booking status values. A booking is never deleted: cancellation, rejection
// and refund are terminal statuses, not row removal.
const (
	BookingPending       = "Pending"
	BookingConfirmed     = "Confirmed"
	BookingInProgress    = "InProgress"
	BookingCompleted     = "Completed"
	BookingCancelled     = "Cancelled"
	BookingRejected      = "Rejected"
	BookingPaymentFailed = "PaymentFailed"
	BookingRefunded      = "Refunded"
)

// MinutesPerDay bounds the start/end minute fields.
const MinutesPerDay = 24 * 60

// Booking occupies a [start,end) slot on a provider's calendar day.
// Price and end time are snapshotted from the service catalog at creation,
// so later catalog edits never change existing bookings.
type Booking struct {
	ID                  string     `json:"id" bson:"_id,omitempty"`
	UserID              string     `json:"user_id" bson:"user_id"`
	ProviderID          string     `json:"provider_id" bson:"provider_id"`
	ServiceID           string     `json:"service_id" bson:"service_id"`
	Date                string     `json:"date" bson:"date"`
	StartMinute         int        `json:"start_minute" bson:"start_minute"`
	EndMinute           int        `json:"end_minute" bson:"end_minute"`
	Address             string     `json:"address" bson:"address"`
	SpecialInstructions string     `json:"special_instructions,omitempty" bson:"special_instructions,omitempty"`
	AmountCents         int64      `json:"amount_cents" bson:"amount_cents"`
	Status              string     `json:"status" bson:"status"`
	CreatedAt           time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
	ConfirmedAt         *time.Time `json:"confirmed_at,omitempty" bson:"confirmed_at,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
}

// BookingRequest is the caller-supplied part of a new booking. Provider,
// end time and amount are resolved from the service catalog.
type BookingRequest struct {
	UserID              string `json:"user_id" validate:"required"`
	ServiceID           string `json:"service_id" validate:"required"`
	Date                string `json:"date" validate:"required,datetime=2006-01-02"`
	StartMinute         int    `json:"start_minute" validate:"min=0,max=1439"`
	Address             string `json:"address" validate:"required,min=2,max=500"`
	SpecialInstructions string `json:"special_instructions,omitempty" validate:"omitempty,max=1000"`
}

// StatusChange describes a guarded booking status update. The update only
// applies when the stored status is one of From; a guard miss is reported to
// the caller instead of applying the change. Refund reversal guards with the
// post-payment statuses rather than forcing.
type StatusChange struct {
	From        []string
	To          string
	UpdatedAt   time.Time
	ConfirmedAt *time.Time
	CompletedAt *time.Time
}

// Live reports whether the booking occupies its slot. Cancelled and rejected
// bookings free the slot for other candidates.
func (b *Booking) Live() bool {
	return b.Status != BookingCancelled && b.Status != BookingRejected
}

func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted,
		BookingCancelled, BookingRejected, BookingPaymentFailed, BookingRefunded:
		return true
	}
	return false
}
