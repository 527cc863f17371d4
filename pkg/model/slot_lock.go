package model

import "time"

// SlotLock is an advisory lock keyed by (provider, date). It serializes the
// check-then-insert of every create touching that provider's day: snapshot
// isolation alone would let two overlapping creates both read "no overlap"
// and commit distinct documents. The TTL index reaps locks leaked by crashes.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
