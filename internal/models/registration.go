package models

import "time"

type RegistrationStatus string

const (
	StatusRegistered RegistrationStatus = "registered"
	StatusWaitlist   RegistrationStatus = "waitlist"
	StatusCancelled  RegistrationStatus = "cancelled"
)

type Registration struct {
	ID               int                `json:"id"`
	EventID          int                `json:"event_id"`
	Username         string             `json:"username"`
	Status           RegistrationStatus `json:"status"`
	RegistrationDate time.Time          `json:"registration_date"`
}

// Participant is a registration joined with the user's chat handle, used
// for notification fan-out.
type Participant struct {
	Username         string             `json:"username"`
	ChatID           int64              `json:"chat_id"`
	Status           RegistrationStatus `json:"status"`
	RegistrationDate time.Time          `json:"registration_date"`
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"tg_username"`
	ChatID    int64     `json:"chat_id"`
	CreatedAt time.Time `json:"created_at"`
}
