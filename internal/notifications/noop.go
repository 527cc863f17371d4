package notifications

import (
	"context"

	"reservio/pkg/model"
)

type noopNotifier struct{}

// NewNoop returns a Notifier that discards every event.
func NewNoop() Notifier {
	return noopNotifier{}
}

func (noopNotifier) BookingCreated(context.Context, *model.Booking)               {}
func (noopNotifier) BookingStatusChanged(context.Context, *model.Booking, string) {}
func (noopNotifier) PaymentProcessed(context.Context, *model.Payment)             {}
func (noopNotifier) PaymentRefunded(context.Context, *model.Payment)              {}
