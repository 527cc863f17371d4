package notifications

import (
	"context"
	"fmt"

	"reservio/pkg/kafka"
	"reservio/pkg/logger"
)

// Worker consumes the booking-events topic and delivers notifications.
// Delivery is a structured log line per event; a real channel (email, SMS)
// would slot in behind the same handler.
type Worker struct {
	consumer *kafka.Consumer
	log      *logger.Logger
}

func NewWorker(brokers []string, topic, groupID string, log *logger.Logger) (*Worker, error) {
	w := &Worker{log: log}

	consumer, err := kafka.NewConsumer(brokers, topic, groupID, w.handle, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create notifications consumer: %w", err)
	}
	w.consumer = consumer

	return w, nil
}

func (w *Worker) Run(ctx context.Context) error {
	w.log.Info("Notifications worker started")
	return w.consumer.Start(ctx)
}

func (w *Worker) Close() error {
	return w.consumer.Close()
}

func (w *Worker) handle(ctx context.Context, msg kafka.Message) error {
	switch msg.EventType() {
	case EventBookingCreated, EventBookingStatusChanged:
		var event BookingEvent
		if err := msg.DecodeValue(&event); err != nil {
			return fmt.Errorf("failed to decode booking event: %w", err)
		}
		w.log.Info("Booking notification delivered",
			"event_type", msg.EventType(),
			"booking_id", event.BookingID,
			"user_id", event.UserID,
			"status", event.Status,
			"previous_status", event.PreviousStatus,
		)
	case EventPaymentProcessed, EventPaymentRefunded:
		var event PaymentEvent
		if err := msg.DecodeValue(&event); err != nil {
			return fmt.Errorf("failed to decode payment event: %w", err)
		}
		w.log.Info("Payment notification delivered",
			"event_type", msg.EventType(),
			"payment_id", event.PaymentID,
			"booking_id", event.BookingID,
			"status", event.Status,
		)
	default:
		w.log.Warn("Unknown event type skipped",
			"event_type", msg.EventType(),
			"event_id", msg.EventID(),
		)
	}
	return nil
}
