package domain

import "time"

// AnonymousName is recorded when an SOS alert is triggered without a session.
const AnonymousName = "Anonymous"

// SOSAlert is an emergency broadcast record. Rows are immutable once created
// and the trigger path is never gated behind login.
type SOSAlert struct {
	ID              string    `json:"id"`
	RoomNo          string    `json:"room_no"`
	TriggeredBy     string    `json:"triggered_by,omitempty"`
	TriggeredByName string    `json:"triggered_by_name"`
	IsAnonymous     bool      `json:"is_anonymous"`
	CreatedAt       time.Time `json:"created_at"`
}
