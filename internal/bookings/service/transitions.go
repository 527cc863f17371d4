package service

import "reservio/pkg/model"

// allowedTransitions is the booking lifecycle table. Statuses absent from the
// map are terminal. Refunded never appears as a target here: it is applied by
// the payment settlement path through a guarded repository update.
var allowedTransitions = map[string][]string{
	model.BookingPending:       {model.BookingConfirmed, model.BookingPaymentFailed, model.BookingRejected, model.BookingCancelled},
	model.BookingConfirmed:     {model.BookingInProgress, model.BookingCompleted, model.BookingCancelled},
	model.BookingInProgress:    {model.BookingCompleted, model.BookingCancelled},
	model.BookingPaymentFailed: {model.BookingConfirmed, model.BookingCancelled},
}

// CanTransition reports whether the lifecycle permits moving from one status
// to the other.
func CanTransition(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a booking in this status accepts no further
// lifecycle updates.
func IsTerminal(status string) bool {
	return len(allowedTransitions[status]) == 0
}
