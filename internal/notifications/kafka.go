package notifications

import (
	"context"
	"time"

	"reservio/pkg/kafka"
	"reservio/pkg/logger"
	"reservio/pkg/model"
)

const publishTimeout = 5 * time.Second

type kafkaNotifier struct {
	producer *kafka.Producer
	source   string
	log      *logger.Logger
}

// NewKafkaNotifier publishes lifecycle events to the booking-events topic,
// keyed by booking ID so per-booking ordering survives partitioning.
func NewKafkaNotifier(producer *kafka.Producer, source string, log *logger.Logger) Notifier {
	return &kafkaNotifier{
		producer: producer,
		source:   source,
		log:      log,
	}
}

func (n *kafkaNotifier) BookingCreated(ctx context.Context, booking *model.Booking) {
	n.publish(ctx, booking.ID, EventBookingCreated, newBookingEvent(booking, ""))
}

func (n *kafkaNotifier) BookingStatusChanged(ctx context.Context, booking *model.Booking, previousStatus string) {
	n.publish(ctx, booking.ID, EventBookingStatusChanged, newBookingEvent(booking, previousStatus))
}

func (n *kafkaNotifier) PaymentProcessed(ctx context.Context, payment *model.Payment) {
	n.publish(ctx, payment.BookingID, EventPaymentProcessed, newPaymentEvent(payment))
}

func (n *kafkaNotifier) PaymentRefunded(ctx context.Context, payment *model.Payment) {
	n.publish(ctx, payment.BookingID, EventPaymentRefunded, newPaymentEvent(payment))
}

func (n *kafkaNotifier) publish(ctx context.Context, key, eventType string, payload any) {
	// Detach from the request context so a finished request cannot cancel
	// the publish mid-flight.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	msg := kafka.NewMessage(key, eventType, n.source, payload)
	if err := n.producer.Publish(publishCtx, msg); err != nil {
		n.log.Error("Failed to publish notification event",
			"event_type", eventType,
			"key", key,
			"error", err,
		)
	}
}
