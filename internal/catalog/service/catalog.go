package service

import (
	"context"
	"errors"
	"time"

	catalogerrors "reservio/internal/catalog/errors"
	"reservio/internal/catalog/repository"
	"reservio/pkg/config"
	apperrors "reservio/pkg/errors"
	"reservio/pkg/model"
)

// Catalog is the read-only collaborator the booking engine resolves services
// and provider working hours through.
type Catalog interface {
	GetService(ctx context.Context, serviceID string) (*model.Service, error)
	ActiveWindows(ctx context.Context, providerID string, weekday time.Weekday) ([]*model.AvailabilityWindow, error)
}

type catalog struct {
	services repository.ServiceRepository
	windows  repository.WindowRepository
	cfg      *config.Config
}

func NewCatalog(services repository.ServiceRepository, windows repository.WindowRepository, cfg *config.Config) Catalog {
	return &catalog{
		services: services,
		windows:  windows,
		cfg:      cfg,
	}
}

func (c *catalog) GetService(ctx context.Context, serviceID string) (*model.Service, error) {
	if serviceID == "" {
		return nil, apperrors.InvalidInput("Service ID cannot be empty")
	}

	svc, err := c.services.FindByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrServiceNotFound) {
			return nil, apperrors.NotFoundWithID("Service", serviceID)
		}
		return nil, apperrors.Internal("Failed to retrieve service", err)
	}

	return svc, nil
}

func (c *catalog) ActiveWindows(ctx context.Context, providerID string, weekday time.Weekday) ([]*model.AvailabilityWindow, error) {
	windows, err := c.windows.FindActiveByProviderAndWeekday(ctx, providerID, weekday)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve availability windows", err)
	}
	return windows, nil
}
