package errors

import "errors"

var (
	// ErrNotFound indicates the booking does not exist.
	ErrNotFound = errors.New("booking not found")

	// ErrInvalidID indicates the provided booking ID is malformed.
	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrSlotLocked indicates another request holds the advisory lock for the
	// same slot.
	ErrSlotLocked = errors.New("slot is locked by another request")

	// ErrStatusChanged indicates the guarded status update matched the booking
	// but not its expected current status.
	ErrStatusChanged = errors.New("booking status changed concurrently")
)
