package errors

import "errors"

var (
	// ErrNotFound indicates no payment matches the lookup.
	ErrNotFound = errors.New("payment not found")

	// ErrInvalidID indicates the provided payment ID is malformed.
	ErrInvalidID = errors.New("invalid payment ID format")

	// ErrDuplicatePayment indicates a payment row already exists for the
	// booking. It also covers the unique-index backstop on booking_id.
	ErrDuplicatePayment = errors.New("payment already exists for booking")
)
