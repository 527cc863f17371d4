package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "reservio/internal/bookings/errors"
	"reservio/internal/bookings/repository"
	"reservio/internal/bookings/validator"
	catalogservice "reservio/internal/catalog/service"
	"reservio/internal/notifications"
	paymentservice "reservio/internal/payments/service"
	"reservio/pkg/config"
	apperrors "reservio/pkg/errors"
	"reservio/pkg/model"
	"reservio/pkg/sanitizer"
)

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error)
	GetByProvider(ctx context.Context, providerID string, limit int, offset int64) ([]*model.Booking, int64, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Booking, error)
	Cancel(ctx context.Context, id, requesterID string) (bool, error)
	Pay(ctx context.Context, id, method string) (*model.Payment, error)
}

type bookingService struct {
	repo         repository.BookingRepository
	locks        repository.SlotLockRepository
	availability AvailabilityChecker
	catalog      catalogservice.Catalog
	payments     paymentservice.PaymentService
	validator    *validator.BookingValidator
	notifier     notifications.Notifier
	cfg          *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	locks repository.SlotLockRepository,
	availability AvailabilityChecker,
	catalog catalogservice.Catalog,
	payments paymentservice.PaymentService,
	validator *validator.BookingValidator,
	notifier notifications.Notifier,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:         repo,
		locks:        locks,
		availability: availability,
		catalog:      catalog,
		payments:     payments,
		validator:    validator,
		notifier:     notifier,
		cfg:          cfg,
	}
}

// Create books a slot. The end time and amount come from the service catalog
// at this moment and never change afterwards. The availability check and the
// insert run inside one transaction, serialized per provider-day by an
// advisory lock held until the transaction finishes.
func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	s.sanitizeRequest(req)
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	svc, err := s.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, apperrors.InvalidInput("Service is not available for booking")
	}

	endMinute := req.StartMinute + svc.DurationMinutes
	if endMinute > model.MinutesPerDay {
		return nil, apperrors.InvalidInput("Booking cannot extend past midnight")
	}

	if err := s.checkBusinessHours(ctx, svc.ProviderID, req.Date, req.StartMinute, endMinute); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		UserID:              req.UserID,
		ProviderID:          svc.ProviderID,
		ServiceID:           svc.ID,
		Date:                req.Date,
		StartMinute:         req.StartMinute,
		EndMinute:           endMinute,
		Address:             req.Address,
		SpecialInstructions: req.SpecialInstructions,
		AmountCents:         svc.PriceCents,
		Status:              model.BookingPending,
	}

	lockID, err := s.acquireSlotLock(ctx, booking.ProviderID, booking.Date)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.locks.Release(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.availability.EnsureAvailable(txCtx, booking.ProviderID, booking.Date, booking.StartMinute, booking.EndMinute); err != nil {
			return err
		}
		if err := s.repo.Create(txCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, err
	}

	s.notifier.BookingCreated(ctx, booking)
	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"provider_id", booking.ProviderID,
		"service_id", booking.ServiceID,
		"date", booking.Date,
		"start_minute", booking.StartMinute,
	)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, id)
	}
	return booking, nil
}

func (s *bookingService) GetByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if userID == "" {
		return nil, 0, apperrors.InvalidInput("User ID cannot be empty")
	}
	return s.getPage(ctx,
		func(ctx context.Context) ([]*model.Booking, error) { return s.repo.FindByUser(ctx, userID, limit, offset) },
		func(ctx context.Context) (int64, error) { return s.repo.CountByUser(ctx, userID) },
	)
}

func (s *bookingService) GetByProvider(ctx context.Context, providerID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if providerID == "" {
		return nil, 0, apperrors.InvalidInput("Provider ID cannot be empty")
	}
	return s.getPage(ctx,
		func(ctx context.Context) ([]*model.Booking, error) {
			return s.repo.FindByProvider(ctx, providerID, limit, offset)
		},
		func(ctx context.Context) (int64, error) { return s.repo.CountByProvider(ctx, providerID) },
	)
}

// UpdateStatus applies one lifecycle step. Transitions outside the table fail
// with IllegalTransition; the repository guard catches racing updates.
func (s *bookingService) UpdateStatus(ctx context.Context, id, status string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if !model.ValidBookingStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Unknown booking status: %s", status))
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, id)
	}

	if !CanTransition(booking.Status, status) {
		return nil, apperrors.IllegalTransition(booking.Status, status)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	change := model.StatusChange{
		From:      []string{booking.Status},
		To:        status,
		UpdatedAt: now,
	}
	switch status {
	case model.BookingConfirmed:
		change.ConfirmedAt = &now
	case model.BookingCompleted:
		change.CompletedAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, id, change); err != nil {
		if errors.Is(err, bookingserrors.ErrStatusChanged) {
			return nil, apperrors.Conflict("Booking status changed concurrently, please retry")
		}
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("Failed to update booking status", err)
	}

	previous := booking.Status
	booking.Status = status
	booking.UpdatedAt = &now
	if change.ConfirmedAt != nil {
		booking.ConfirmedAt = change.ConfirmedAt
	}
	if change.CompletedAt != nil {
		booking.CompletedAt = change.CompletedAt
	}

	s.notifier.BookingStatusChanged(ctx, booking, previous)
	s.cfg.Log.Info("Booking status updated", "id", id, "from", previous, "to", status)
	return booking, nil
}

// Cancel reports success as a boolean: false means the requester may not
// cancel this booking or its status no longer allows it. Only a missing
// booking or a storage failure is an error.
func (s *bookingService) Cancel(ctx context.Context, id, requesterID string) (bool, error) {
	if id == "" {
		return false, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if requesterID == "" {
		return false, apperrors.InvalidInput("Requester ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, translateLookupError(err, id)
	}

	if requesterID != booking.UserID && requesterID != booking.ProviderID {
		s.cfg.Log.Warn("Cancel denied for non-participant", "id", id, "requester_id", requesterID)
		return false, nil
	}
	if !CanTransition(booking.Status, model.BookingCancelled) {
		return false, nil
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	err = s.repo.UpdateStatus(ctx, id, model.StatusChange{
		From:      []string{booking.Status},
		To:        model.BookingCancelled,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, bookingserrors.ErrStatusChanged) {
			// Lost the race; the booking moved on. Same answer as any other
			// non-cancellable state.
			return false, nil
		}
		return false, apperrors.Internal("Failed to cancel booking", err)
	}

	previous := booking.Status
	booking.Status = model.BookingCancelled
	booking.UpdatedAt = &now

	s.notifier.BookingStatusChanged(ctx, booking, previous)
	s.cfg.Log.Info("Booking cancelled", "id", id, "requester_id", requesterID)
	return true, nil
}

// Pay settles the booking through the payment coordinator.
func (s *bookingService) Pay(ctx context.Context, id, method string) (*model.Payment, error) {
	return s.payments.Settle(ctx, id, method)
}

func (s *bookingService) sanitizeRequest(req *model.BookingRequest) {
	req.UserID = sanitizer.CleanID(req.UserID)
	req.ServiceID = sanitizer.CleanID(req.ServiceID)
	req.Address = sanitizer.CleanText(req.Address)
	req.SpecialInstructions = sanitizer.CleanText(req.SpecialInstructions)
}

// checkBusinessHours enforces provider working hours when the provider has
// declared any active window for the booking's weekday. Providers without
// windows stay unconstrained.
func (s *bookingService) checkBusinessHours(ctx context.Context, providerID, date string, startMinute, endMinute int) error {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return apperrors.InvalidInput("Invalid booking date")
	}

	windows, err := s.catalog.ActiveWindows(ctx, providerID, day.Weekday())
	if err != nil {
		return err
	}
	if len(windows) == 0 {
		return nil
	}

	for _, w := range windows {
		if w.Contains(startMinute, endMinute) {
			return nil
		}
	}
	return apperrors.SlotUnavailable("Requested slot is outside the provider's working hours")
}

// acquireSlotLock takes the advisory lock for the provider's whole day.
// Overlapping intervals can start at different minutes, so anything finer
// than provider+date would let two conflicting creates run concurrently.
func (s *bookingService) acquireSlotLock(ctx context.Context, providerID, date string) (string, error) {
	lockID := fmt.Sprintf("slot_%s_%s", providerID, date)

	err := s.locks.Acquire(ctx, &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	})
	if err != nil {
		if errors.Is(err, bookingserrors.ErrSlotLocked) {
			return "", apperrors.SlotUnavailable("This slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}
	return lockID, nil
}

func (s *bookingService) getPage(
	ctx context.Context,
	find func(ctx context.Context) ([]*model.Booking, error),
	count func(ctx context.Context) (int64, error),
) ([]*model.Booking, int64, error) {
	var (
		bookings          []*model.Booking
		total             int64
		errFind, errCount error
		wg                sync.WaitGroup
	)
	wg.Add(2)

	go func() {
		defer wg.Done()
		bookings, errFind = find(ctx)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	go func() {
		defer wg.Done()
		total, errCount = count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	wg.Wait()
	if errFind != nil {
		return nil, 0, errFind
	}
	if errCount != nil {
		return nil, 0, errCount
	}

	return bookings, total, nil
}

func translateLookupError(err error, id string) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	default:
		return apperrors.Internal("Failed to retrieve booking", err)
	}
}
