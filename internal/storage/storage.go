// Package storage defines the sentinel errors shared by every store
// implementation. Services match on these with errors.Is and translate them
// into their own taxonomy.
package storage

import "errors"

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventClosed       = errors.New("event is completed or cancelled")
	ErrEventFull         = errors.New("event has no available slots")
	ErrEventNotFull      = errors.New("event still has available slots")
	ErrAlreadyRegistered = errors.New("user already registered")
	ErrAlreadyWaitlisted = errors.New("user already on waitlist")
	ErrNotRegistered     = errors.New("user not registered")
	ErrNotWaitlisted     = errors.New("user not on waitlist")
	ErrBlacklisted       = errors.New("user is blacklisted")
	ErrNotBlacklisted    = errors.New("user is not blacklisted")
	ErrWaitlistEmpty     = errors.New("waitlist is empty")
	ErrUserNotFound      = errors.New("user not found")
)
