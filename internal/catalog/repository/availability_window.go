package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"reservio/pkg/config"
	"reservio/pkg/model"
)

const (
	WindowsCollectionName = "Availability_windows"
)

type WindowRepository interface {
	FindActiveByProviderAndWeekday(ctx context.Context, providerID string, weekday time.Weekday) ([]*model.AvailabilityWindow, error)
}

type mongoWindowRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoWindowRepository(cfg *config.Config) WindowRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoWindowRepository{
		cfg:        cfg,
		collection: db.Collection(WindowsCollectionName),
	}
}

func (r *mongoWindowRepository) FindActiveByProviderAndWeekday(ctx context.Context, providerID string, weekday time.Weekday) ([]*model.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"weekday":     int(weekday),
		"active":      true,
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_minute", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find availability windows: %w", err)
	}
	defer cursor.Close(ctx)

	var windows []*model.AvailabilityWindow
	if err = cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("failed to decode availability windows: %w", err)
	}

	return windows, nil
}
