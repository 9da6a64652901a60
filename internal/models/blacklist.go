package models

import "time"

// BlacklistEntry bars a user from a single event, or from all events when
// EventID is zero.
type BlacklistEntry struct {
	ID       int       `json:"id"`
	EventID  int       `json:"event_id,omitempty"`
	Username string    `json:"username"`
	AddedBy  string    `json:"added_by,omitempty"`
	Reason   string    `json:"reason,omitempty"`
	AddedAt  time.Time `json:"added_at"`
}
