package models

import "time"

// UnlimitedSlots is returned by slot calculations for events without a cap.
const UnlimitedSlots = -1

type Event struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Date            time.Time `json:"date"`
	Capacity        int       `json:"capacity"` // 0 means unlimited
	Registered      int       `json:"registered"`
	IsCompleted     bool      `json:"is_completed"`
	IsCancelled     bool      `json:"is_cancelled"`
	Reminder24hSent bool      `json:"reminder_24h_sent"`
	Reminder1hSent  bool      `json:"reminder_1h_sent"`
	CreatedAt       time.Time `json:"created_at"`
}

// Closed reports whether the event accepts further registrations.
func (e *Event) Closed() bool {
	return e.IsCompleted || e.IsCancelled
}

// AvailableSlots returns the number of free seats, or UnlimitedSlots for
// events with no cap. The result is a snapshot and may be stale by the time
// the caller acts on it; the cap itself is enforced at the write side.
func (e *Event) AvailableSlots() int {
	if e.Capacity == 0 {
		return UnlimitedSlots
	}
	if e.Registered >= e.Capacity {
		return 0
	}
	return e.Capacity - e.Registered
}
