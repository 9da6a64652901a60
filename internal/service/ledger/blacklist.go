package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"eventbot/internal/lib/logger/sl"
	"eventbot/internal/models"
)

// Blacklist bars the user from one event. Any active registration or
// waitlist entry for that event is force-cancelled; if a registered seat
// freed, the waitlist is promoted.
func (l *Ledger) Blacklist(ctx context.Context, eventID int, username, addedBy, reason string) error {
	const op = "ledger.Blacklist"
	log := l.log.With(slog.String("op", op), slog.Int("event_id", eventID))

	username = NormalizeUsername(username)
	addedBy = NormalizeUsername(addedBy)

	if err := l.blacklist.AddToBlacklist(ctx, eventID, username, addedBy, reason); err != nil {
		log.Error("failed to add to blacklist", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user blacklisted", slog.String("username", username))

	l.forceCancel(ctx, eventID, username)

	return nil
}

// BlacklistGlobal bars the user from all events and force-cancels every
// active registration on still-open events.
func (l *Ledger) BlacklistGlobal(ctx context.Context, username, addedBy string) error {
	const op = "ledger.BlacklistGlobal"
	log := l.log.With(slog.String("op", op))

	username = NormalizeUsername(username)
	addedBy = NormalizeUsername(addedBy)

	if err := l.blacklist.AddToGlobalBlacklist(ctx, username, addedBy); err != nil {
		log.Error("failed to add to global blacklist", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user globally blacklisted", slog.String("username", username))

	regs, err := l.registrations.ActiveRegistrations(ctx, username)
	if err != nil {
		log.Error("failed to list active registrations", sl.Err(err))
		return nil
	}

	for _, reg := range regs {
		l.forceCancel(ctx, reg.EventID, username)
	}

	return nil
}

// Unblacklist lifts an event-scoped bar.
func (l *Ledger) Unblacklist(ctx context.Context, eventID int, username string) error {
	const op = "ledger.Unblacklist"

	err := l.blacklist.RemoveFromBlacklist(ctx, eventID, NormalizeUsername(username))
	if err != nil {
		if domainErr := mapStorageErr(err); domainErr != nil {
			return domainErr
		}
		l.log.Error("failed to remove from blacklist", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UnblacklistGlobal lifts a global bar.
func (l *Ledger) UnblacklistGlobal(ctx context.Context, username string) error {
	const op = "ledger.UnblacklistGlobal"

	err := l.blacklist.RemoveFromGlobalBlacklist(ctx, NormalizeUsername(username))
	if err != nil {
		if domainErr := mapStorageErr(err); domainErr != nil {
			return domainErr
		}
		l.log.Error("failed to remove from global blacklist", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (l *Ledger) forceCancel(ctx context.Context, eventID int, username string) {
	log := l.log.With(slog.Int("event_id", eventID), slog.String("username", username))

	status, err := l.registrations.CancelActiveRegistration(ctx, eventID, username)
	if err != nil {
		if mapStorageErr(err) == nil {
			log.Error("failed to force-cancel registration", sl.Err(err))
		}
		return
	}

	log.Info("registration force-cancelled", slog.String("was", string(status)))

	if status == models.StatusRegistered {
		l.promoteNext(ctx, eventID)
	}
}
