package model

import "time"

// Service is a catalog entry owned by a provider. The booking engine reads
// it to resolve the provider, snapshot the price and derive the slot length;
// it never mutates the catalog.
type Service struct {
	ID              string     `json:"id" bson:"_id,omitempty"`
	ProviderID      string     `json:"provider_id" bson:"provider_id"`
	Name            string     `json:"name" bson:"name"`
	Category        string     `json:"category,omitempty" bson:"category,omitempty"`
	PriceCents      int64      `json:"price_cents" bson:"price_cents"`
	DurationMinutes int        `json:"duration_minutes" bson:"duration_minutes"`
	Active          bool       `json:"active" bson:"active"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
