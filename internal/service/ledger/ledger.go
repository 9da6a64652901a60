// Package ledger owns the registration and waitlist state machine per
// (event, user) pair. All seat-count correctness lives behind the store's
// transactional primitives; this service sequences them, translates store
// errors into the domain taxonomy and fans out best-effort notifications.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"eventbot/internal/lib/logger/sl"
	"eventbot/internal/models"
	"eventbot/internal/storage"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RegistrationStore
type RegistrationStore interface {
	RegisterUser(ctx context.Context, eventID int, username string) error
	UnregisterUser(ctx context.Context, eventID int, username string) error
	JoinWaitlist(ctx context.Context, eventID int, username string) error
	LeaveWaitlist(ctx context.Context, eventID int, username string) error
	PromoteNext(ctx context.Context, eventID int) (string, error)
	WaitlistPosition(ctx context.Context, eventID int, username string) (int, error)
	EventParticipants(ctx context.Context, eventID int) ([]models.Participant, error)
	CancelActiveRegistration(ctx context.Context, eventID int, username string) (models.RegistrationStatus, error)
	ActiveRegistrations(ctx context.Context, username string) ([]models.Registration, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventProvider
type EventProvider interface {
	GetEvent(ctx context.Context, id int) (*models.Event, error)
	CancelEvent(ctx context.Context, id int) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserStore
type UserStore interface {
	EnsureUser(ctx context.Context, username string, chatID int64) error
	UserChatID(ctx context.Context, username string) (int64, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BlacklistStore
type BlacklistStore interface {
	AddToBlacklist(ctx context.Context, eventID int, username, addedBy, reason string) error
	RemoveFromBlacklist(ctx context.Context, eventID int, username string) error
	AddToGlobalBlacklist(ctx context.Context, username, addedBy string) error
	RemoveFromGlobalBlacklist(ctx context.Context, username string) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Notifier
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type Ledger struct {
	log           *slog.Logger
	registrations RegistrationStore
	events        EventProvider
	users         UserStore
	blacklist     BlacklistStore
	notifier      Notifier
}

func New(
	log *slog.Logger,
	registrations RegistrationStore,
	events EventProvider,
	users UserStore,
	blacklist BlacklistStore,
	notifier Notifier,
) *Ledger {
	return &Ledger{
		log:           log,
		registrations: registrations,
		events:        events,
		users:         users,
		blacklist:     blacklist,
		notifier:      notifier,
	}
}

// Register takes a seat for the user and returns the remaining slot count.
// The capacity check and the status write happen as one conditional store
// operation, so racing calls for the last seat cannot both succeed.
func (l *Ledger) Register(ctx context.Context, eventID int, username string, chatID int64) (int, error) {
	const op = "ledger.Register"
	log := l.log.With(slog.String("op", op), slog.Int("event_id", eventID))

	username = NormalizeUsername(username)

	if err := l.users.EnsureUser(ctx, username, chatID); err != nil {
		log.Error("failed to ensure user", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := l.registrations.RegisterUser(ctx, eventID, username); err != nil {
		if domainErr := mapStorageErr(err); domainErr != nil {
			log.Info("registration rejected", slog.String("reason", domainErr.Error()))
			return 0, domainErr
		}
		log.Error("failed to register user", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("username", username))

	return l.slots(ctx, eventID), nil
}

// Unregister frees the user's seat and synchronously promotes the earliest
// waitlisted user, so the returned slot count reflects the post-promotion
// state.
func (l *Ledger) Unregister(ctx context.Context, eventID int, username string) (int, error) {
	const op = "ledger.Unregister"
	log := l.log.With(slog.String("op", op), slog.Int("event_id", eventID))

	username = NormalizeUsername(username)

	if err := l.registrations.UnregisterUser(ctx, eventID, username); err != nil {
		if domainErr := mapStorageErr(err); domainErr != nil {
			log.Info("unregistration rejected", slog.String("reason", domainErr.Error()))
			return 0, domainErr
		}
		log.Error("failed to unregister user", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user unregistered", slog.String("username", username))

	l.promoteNext(ctx, eventID)

	return l.slots(ctx, eventID), nil
}

// JoinWaitlist appends the user to the waitlist and returns their 1-based
// position. Only full events accept waitlist joins.
func (l *Ledger) JoinWaitlist(ctx context.Context, eventID int, username string, chatID int64) (int, error) {
	const op = "ledger.JoinWaitlist"
	log := l.log.With(slog.String("op", op), slog.Int("event_id", eventID))

	username = NormalizeUsername(username)

	if err := l.users.EnsureUser(ctx, username, chatID); err != nil {
		log.Error("failed to ensure user", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := l.registrations.JoinWaitlist(ctx, eventID, username); err != nil {
		if domainErr := mapStorageErr(err); domainErr != nil {
			log.Info("waitlist join rejected", slog.String("reason", domainErr.Error()))
			return 0, domainErr
		}
		log.Error("failed to join waitlist", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user joined waitlist", slog.String("username", username))

	pos, err := l.registrations.WaitlistPosition(ctx, eventID, username)
	if err != nil {
		log.Error("failed to get waitlist position", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return pos, nil
}

// LeaveWaitlist removes the user from the waitlist. No seat is freed, so no
// promotion runs.
func (l *Ledger) LeaveWaitlist(ctx context.Context, eventID int, username string) error {
	const op = "ledger.LeaveWaitlist"
	log := l.log.With(slog.String("op", op), slog.Int("event_id", eventID))

	username = NormalizeUsername(username)

	if err := l.registrations.LeaveWaitlist(ctx, eventID, username); err != nil {
		if domainErr := mapStorageErr(err); domainErr != nil {
			log.Info("waitlist leave rejected", slog.String("reason", domainErr.Error()))
			return domainErr
		}
		log.Error("failed to leave waitlist", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user left waitlist", slog.String("username", username))

	return nil
}

// Position returns the user's 1-based FIFO rank on the event's waitlist.
func (l *Ledger) Position(ctx context.Context, eventID int, username string) (int, error) {
	const op = "ledger.Position"

	pos, err := l.registrations.WaitlistPosition(ctx, eventID, NormalizeUsername(username))
	if err != nil {
		if domainErr := mapStorageErr(err); domainErr != nil {
			return 0, domainErr
		}
		l.log.Error("failed to get waitlist position", slog.String("op", op), sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return pos, nil
}

// AvailableSlots returns the number of free seats at read time, or
// models.UnlimitedSlots for uncapped events. The value may be stale by the
// time the caller acts on it; the cap is enforced at the write side.
func (l *Ledger) AvailableSlots(ctx context.Context, eventID int) (int, error) {
	const op = "ledger.AvailableSlots"

	event, err := l.events.GetEvent(ctx, eventID)
	if err != nil {
		if domainErr := mapStorageErr(err); domainErr != nil {
			return 0, domainErr
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return event.AvailableSlots(), nil
}

// IsFull reports whether every seat of a capped event is taken.
func (l *Ledger) IsFull(ctx context.Context, eventID int) (bool, error) {
	const op = "ledger.IsFull"

	event, err := l.events.GetEvent(ctx, eventID)
	if err != nil {
		if domainErr := mapStorageErr(err); domainErr != nil {
			return false, domainErr
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return event.Capacity > 0 && event.Registered >= event.Capacity, nil
}

// Participants lists registered and waitlisted users in FIFO order.
func (l *Ledger) Participants(ctx context.Context, eventID int) ([]models.Participant, error) {
	const op = "ledger.Participants"

	participants, err := l.registrations.EventParticipants(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return participants, nil
}

// CancelEvent flips the cancelled flag then informs every participant
// best-effort. Individual delivery failures are logged and skipped.
func (l *Ledger) CancelEvent(ctx context.Context, eventID int) error {
	const op = "ledger.CancelEvent"
	log := l.log.With(slog.String("op", op), slog.Int("event_id", eventID))

	event, err := l.events.GetEvent(ctx, eventID)
	if err != nil {
		if domainErr := mapStorageErr(err); domainErr != nil {
			return domainErr
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = l.events.CancelEvent(ctx, eventID); err != nil {
		if domainErr := mapStorageErr(err); domainErr != nil {
			return domainErr
		}
		log.Error("failed to cancel event", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("event cancelled")

	participants, err := l.registrations.EventParticipants(ctx, eventID)
	if err != nil {
		log.Error("failed to get participants for cancellation notice", sl.Err(err))
		return nil
	}

	text := fmt.Sprintf("Event '%s' on %s has been cancelled.",
		event.Title, event.Date.Format("2006-01-02 15:04"))
	for _, p := range participants {
		if p.ChatID == 0 {
			log.Warn("no chat id for participant", slog.String("username", p.Username))
			continue
		}
		if err = l.notifier.SendMessage(ctx, p.ChatID, text); err != nil {
			log.Error("failed to send cancellation notice",
				slog.String("username", p.Username), sl.Err(err))
		}
	}

	return nil
}

// promoteNext advances the earliest waitlisted user into the freed seat.
// The store re-validates open-event and capacity under the event row lock,
// so an empty waitlist, a seat retaken by a racing registration, or a
// closed event are all no-ops here. Failures never fail the caller: the
// seat simply stays open.
func (l *Ledger) promoteNext(ctx context.Context, eventID int) {
	const op = "ledger.promoteNext"
	log := l.log.With(slog.String("op", op), slog.Int("event_id", eventID))

	username, err := l.registrations.PromoteNext(ctx, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrWaitlistEmpty) ||
			errors.Is(err, storage.ErrEventFull) ||
			errors.Is(err, storage.ErrEventClosed) ||
			errors.Is(err, storage.ErrEventNotFound) {
			return
		}
		log.Error("failed to promote from waitlist", sl.Err(err))
		return
	}

	log.Info("promoted from waitlist", slog.String("username", username))

	chatID, err := l.users.UserChatID(ctx, username)
	if err != nil {
		log.Warn("no chat id for promoted user",
			slog.String("username", username), sl.Err(err))
		return
	}

	text := l.promotionText(ctx, eventID)
	if err = l.notifier.SendMessage(ctx, chatID, text); err != nil {
		log.Error("failed to notify promoted user",
			slog.String("username", username), sl.Err(err))
	}
}

func (l *Ledger) promotionText(ctx context.Context, eventID int) string {
	event, err := l.events.GetEvent(ctx, eventID)
	if err != nil {
		return "A seat freed up and you have been registered from the waitlist."
	}
	return fmt.Sprintf(
		"A seat freed up for '%s' on %s and you have been registered from the waitlist.",
		event.Title, event.Date.Format("2006-01-02 15:04"))
}

// slots is the post-write snapshot returned to callers. Failures degrade to
// zero rather than failing an operation that already succeeded.
func (l *Ledger) slots(ctx context.Context, eventID int) int {
	event, err := l.events.GetEvent(ctx, eventID)
	if err != nil {
		l.log.Error("failed to get event for slot count",
			slog.Int("event_id", eventID), sl.Err(err))
		return 0
	}
	return event.AvailableSlots()
}

// NormalizeUsername brings a telegram handle to its @-prefixed form.
func NormalizeUsername(username string) string {
	username = strings.TrimSpace(username)
	if username == "" || strings.HasPrefix(username, "@") {
		return username
	}
	return "@" + username
}

// mapStorageErr translates store sentinels into the domain taxonomy.
// Returns nil for infrastructure failures, which the caller wraps and logs.
func mapStorageErr(err error) error {
	switch {
	case errors.Is(err, storage.ErrEventNotFound):
		return ErrEventNotFound
	case errors.Is(err, storage.ErrEventClosed):
		return ErrEventClosed
	case errors.Is(err, storage.ErrEventFull):
		return ErrCapacityExceeded
	case errors.Is(err, storage.ErrEventNotFull):
		return ErrNotFull
	case errors.Is(err, storage.ErrAlreadyRegistered):
		return ErrAlreadyRegistered
	case errors.Is(err, storage.ErrAlreadyWaitlisted):
		return ErrAlreadyWaitlisted
	case errors.Is(err, storage.ErrNotRegistered):
		return ErrNotRegistered
	case errors.Is(err, storage.ErrNotWaitlisted):
		return ErrNotWaitlisted
	case errors.Is(err, storage.ErrBlacklisted):
		return ErrBlacklisted
	case errors.Is(err, storage.ErrNotBlacklisted):
		return ErrNotBlacklisted
	default:
		return nil
	}
}
