package service

import (
	"context"
	"fmt"

	"reservio/internal/bookings/repository"
	"reservio/pkg/config"
	apperrors "reservio/pkg/errors"
)

// AvailabilityChecker answers whether a [start,end) slot on a provider's day
// is free of live bookings.
type AvailabilityChecker interface {
	EnsureAvailable(ctx context.Context, providerID, date string, startMinute, endMinute int) error
	IsAvailable(ctx context.Context, providerID, date string, startMinute, endMinute int) (bool, error)
}

type availabilityChecker struct {
	repo repository.BookingRepository
	cfg  *config.Config
}

func NewAvailabilityChecker(repo repository.BookingRepository, cfg *config.Config) AvailabilityChecker {
	return &availabilityChecker{
		repo: repo,
		cfg:  cfg,
	}
}

// EnsureAvailable returns a SlotUnavailable error when the requested slot
// overlaps a live booking. Intervals are half-open, so a booking ending at
// the requested start does not conflict.
func (c *availabilityChecker) EnsureAvailable(ctx context.Context, providerID, date string, startMinute, endMinute int) error {
	existing, err := c.repo.FindLiveByProviderAndDate(ctx, providerID, date)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	for _, b := range existing {
		if overlaps(b.StartMinute, b.EndMinute, startMinute, endMinute) {
			return apperrors.SlotUnavailable(fmt.Sprintf(
				"Requested slot overlaps an existing booking (%s - %s)",
				formatMinute(b.StartMinute), formatMinute(b.EndMinute),
			)).WithDetails(map[string]any{
				"provider_id":  providerID,
				"date":         date,
				"start_minute": b.StartMinute,
				"end_minute":   b.EndMinute,
			})
		}
	}
	return nil
}

func (c *availabilityChecker) IsAvailable(ctx context.Context, providerID, date string, startMinute, endMinute int) (bool, error) {
	err := c.EnsureAvailable(ctx, providerID, date, startMinute, endMinute)
	if err == nil {
		return true, nil
	}
	if appErr, ok := err.(*apperrors.AppError); ok && appErr.Code == apperrors.CodeSlotUnavailable {
		return false, nil
	}
	return false, err
}

// overlaps is the single overlap predicate for half-open minute intervals.
func overlaps(start1, end1, start2, end2 int) bool {
	return start1 < end2 && start2 < end1
}

func formatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
