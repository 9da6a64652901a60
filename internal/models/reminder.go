package models

// ReminderWindow names a time-before-event threshold at which a one-time
// notification is due.
type ReminderWindow string

const (
	Reminder24h ReminderWindow = "24h"
	Reminder1h  ReminderWindow = "1h"
)
