package domain

import "time"

// UploadGrant authorizes exactly one PUT of one object. It is never persisted;
// it lives for a single upload round-trip.
type UploadGrant struct {
	ObjectKey string    `json:"objectKey"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
