package ledger

import "errors"

// Domain-rule outcomes. These are expected results of user actions and are
// reported to the caller verbatim, never treated as system failures.
var (
	ErrAlreadyRegistered = errors.New("already registered")
	ErrAlreadyWaitlisted = errors.New("already on waitlist")
	ErrNotRegistered     = errors.New("not registered")
	ErrNotWaitlisted     = errors.New("not on waitlist")
	ErrNotFull           = errors.New("event is not full")
	ErrBlacklisted       = errors.New("user is blocked from this event")
	ErrEventClosed       = errors.New("event is completed or cancelled")
	ErrCapacityExceeded  = errors.New("no available slots")
	ErrEventNotFound     = errors.New("event not found")
	ErrNotBlacklisted    = errors.New("user is not blacklisted")
)
