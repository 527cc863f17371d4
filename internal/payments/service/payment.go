package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	bookingserrors "reservio/internal/bookings/errors"
	"reservio/internal/notifications"
	paymentserrors "reservio/internal/payments/errors"
	"reservio/internal/payments/gateway"
	"reservio/internal/payments/repository"
	"reservio/pkg/config"
	apperrors "reservio/pkg/errors"
	"reservio/pkg/model"
)

// BookingStore is the slice of the booking repository the settlement
// coordinator needs. It never owns bookings; it only reads them and applies
// guarded status changes inside its own transactions.
type BookingStore interface {
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, change model.StatusChange) error
}

type PaymentService interface {
	Settle(ctx context.Context, bookingID, method string) (*model.Payment, error)
	Refund(ctx context.Context, paymentID, reason string) (*model.Payment, error)
	Validate(ctx context.Context, transactionID string) (bool, *model.Payment, error)
	GetByID(ctx context.Context, id string) (*model.Payment, error)
	GetByBookingID(ctx context.Context, bookingID string) (*model.Payment, error)
}

type paymentService struct {
	repo     repository.PaymentRepository
	bookings BookingStore
	gateway  gateway.Gateway
	notifier notifications.Notifier
	cfg      *config.Config
}

func NewPaymentService(
	repo repository.PaymentRepository,
	bookings BookingStore,
	gw gateway.Gateway,
	notifier notifications.Notifier,
	cfg *config.Config,
) PaymentService {
	return &paymentService{
		repo:     repo,
		bookings: bookings,
		gateway:  gw,
		notifier: notifier,
		cfg:      cfg,
	}
}

// Settle charges the booking amount through the gateway and records the
// outcome. Exactly one payment row per booking: a previous failed attempt is
// overwritten in place, anything else is a duplicate. The payment write and
// the booking status change commit in one transaction.
func (s *paymentService) Settle(ctx context.Context, bookingID, method string) (*model.Payment, error) {
	if bookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if method == "" {
		return nil, apperrors.InvalidInput("Payment method cannot be empty")
	}

	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, translateBookingError(err, bookingID)
	}
	if booking.Status != model.BookingPending && booking.Status != model.BookingPaymentFailed {
		return nil, apperrors.InvalidState("Booking is not awaiting payment")
	}

	// Reject duplicates before touching the gateway so a settled booking is
	// never charged twice.
	existing, err := s.repo.FindByBookingID(ctx, bookingID)
	if err != nil && !errors.Is(err, paymentserrors.ErrNotFound) {
		return nil, apperrors.Internal("Failed to check existing payment", err)
	}
	if existing != nil && existing.Status != model.PaymentFailed {
		return nil, apperrors.DuplicatePayment(bookingID)
	}

	outcome, err := s.gateway.Authorize(ctx, booking.AmountCents, method)
	if err != nil {
		return nil, apperrors.Internal("Payment gateway unavailable", err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	payment := &model.Payment{
		BookingID:     bookingID,
		AmountCents:   booking.AmountCents,
		Method:        method,
		TransactionID: newTransactionID(),
	}
	if outcome.Accepted {
		payment.Status = model.PaymentSuccess
		payment.ProcessedAt = &now
	} else {
		payment.Status = model.PaymentFailed
		payment.FailureReason = outcome.Reason
	}

	bookingStatus := model.BookingConfirmed
	if !outcome.Accepted {
		bookingStatus = model.BookingPaymentFailed
	}

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if existing != nil {
			payment.ID = existing.ID
			payment.CreatedAt = existing.CreatedAt
			if err := s.repo.Update(txCtx, existing.ID, payment); err != nil {
				return apperrors.Internal("Failed to record payment", err)
			}
		} else {
			if err := s.repo.Create(txCtx, payment); err != nil {
				if errors.Is(err, paymentserrors.ErrDuplicatePayment) {
					return apperrors.DuplicatePayment(bookingID)
				}
				return apperrors.Internal("Failed to record payment", err)
			}
		}

		change := model.StatusChange{
			From:      []string{model.BookingPending, model.BookingPaymentFailed},
			To:        bookingStatus,
			UpdatedAt: now,
		}
		if bookingStatus == model.BookingConfirmed {
			change.ConfirmedAt = &now
		}
		if err := s.bookings.UpdateStatus(txCtx, bookingID, change); err != nil {
			if errors.Is(err, bookingserrors.ErrStatusChanged) {
				return apperrors.Conflict("Booking status changed during settlement")
			}
			return apperrors.Internal("Failed to update booking status", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to settle payment", "booking_id", bookingID, "error", err)
		return nil, err
	}

	s.notifier.PaymentProcessed(ctx, payment)
	s.cfg.Log.Info("Payment settled",
		"payment_id", payment.ID,
		"booking_id", bookingID,
		"status", payment.Status,
		"amount_cents", payment.AmountCents,
	)
	return payment, nil
}

// Refund reverses a successful payment and forces the booking to Refunded.
// The refund reason is kept in failure_reason; processed_at is restamped to
// the refund time.
func (s *paymentService) Refund(ctx context.Context, paymentID, reason string) (*model.Payment, error) {
	if paymentID == "" {
		return nil, apperrors.InvalidInput("Payment ID cannot be empty")
	}

	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, translatePaymentError(err, paymentID)
	}
	if payment.Status != model.PaymentSuccess {
		return nil, apperrors.InvalidState("Only successful payments can be refunded")
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	payment.Status = model.PaymentRefunded
	payment.FailureReason = reason
	payment.ProcessedAt = &now

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, paymentID, payment); err != nil {
			return apperrors.Internal("Failed to update payment", err)
		}

		change := model.StatusChange{
			From:      []string{model.BookingConfirmed, model.BookingInProgress, model.BookingCompleted},
			To:        model.BookingRefunded,
			UpdatedAt: now,
		}
		if err := s.bookings.UpdateStatus(txCtx, payment.BookingID, change); err != nil {
			if errors.Is(err, bookingserrors.ErrStatusChanged) {
				return apperrors.InvalidState("Booking state does not allow a refund")
			}
			return apperrors.Internal("Failed to update booking status", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to refund payment", "payment_id", paymentID, "error", err)
		return nil, err
	}

	s.notifier.PaymentRefunded(ctx, payment)
	s.cfg.Log.Info("Payment refunded",
		"payment_id", paymentID,
		"booking_id", payment.BookingID,
		"reason", reason,
	)
	return payment, nil
}

// Validate reports whether the transaction ID belongs to a successful
// payment. An unknown transaction is invalid, not an error.
func (s *paymentService) Validate(ctx context.Context, transactionID string) (bool, *model.Payment, error) {
	if transactionID == "" {
		return false, nil, apperrors.InvalidInput("Transaction ID cannot be empty")
	}

	payment, err := s.repo.FindByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, paymentserrors.ErrNotFound) {
			return false, nil, nil
		}
		return false, nil, apperrors.Internal("Failed to validate transaction", err)
	}

	return payment.Status == model.PaymentSuccess, payment, nil
}

func (s *paymentService) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Payment ID cannot be empty")
	}

	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translatePaymentError(err, id)
	}
	return payment, nil
}

func (s *paymentService) GetByBookingID(ctx context.Context, bookingID string) (*model.Payment, error) {
	if bookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	payment, err := s.repo.FindByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, paymentserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Payment", bookingID)
		}
		return nil, apperrors.Internal("Failed to retrieve payment", err)
	}
	return payment, nil
}

func newTransactionID() string {
	return "TXN_" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
}

func translatePaymentError(err error, id string) error {
	switch {
	case errors.Is(err, paymentserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Payment", id)
	case errors.Is(err, paymentserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid payment ID format")
	default:
		return apperrors.Internal("Failed to retrieve payment", err)
	}
}

func translateBookingError(err error, id string) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	default:
		return apperrors.Internal("Failed to retrieve booking", err)
	}
}
