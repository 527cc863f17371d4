package model

import "time"

// AvailabilityWindow expresses a provider's standing business hours for one
// weekday, in minutes from midnight. Read-only input to the availability
// checker; a provider with no active windows for a weekday is unconstrained.
type AvailabilityWindow struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	ProviderID  string       `json:"provider_id" bson:"provider_id"`
	Weekday     time.Weekday `json:"weekday" bson:"weekday"`
	StartMinute int          `json:"start_minute" bson:"start_minute"`
	EndMinute   int          `json:"end_minute" bson:"end_minute"`
	Active      bool         `json:"active" bson:"active"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
}

// Contains reports whether the [start,end) candidate fits inside the window.
func (w *AvailabilityWindow) Contains(startMinute, endMinute int) bool {
	return w.StartMinute <= startMinute && endMinute <= w.EndMinute
}
