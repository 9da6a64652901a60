// Package reminder delivers the T-24h and T-1h notifications for upcoming
// events. A single goroutine ticks on a fixed period; each tick runs to
// completion before the next one starts, and a sent-flag per (event,
// window) is the only thing that suppresses resending.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventbot/internal/lib/logger/sl"
	"eventbot/internal/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Store
type Store interface {
	UpcomingEvents(ctx context.Context) ([]models.Event, error)
	EventParticipants(ctx context.Context, eventID int) ([]models.Participant, error)
	MarkReminderSent(ctx context.Context, eventID int, window models.ReminderWindow) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Notifier
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type Dispatcher struct {
	log       *slog.Logger
	store     Store
	notifier  Notifier
	interval  time.Duration
	tolerance time.Duration
	now       func() time.Time
}

func New(log *slog.Logger, store Store, notifier Notifier, interval, tolerance time.Duration) *Dispatcher {
	return &Dispatcher{
		log:       log,
		store:     store,
		notifier:  notifier,
		interval:  interval,
		tolerance: tolerance,
		now:       time.Now,
	}
}

// Run ticks until the context is cancelled. The loop body is synchronous,
// so a slow tick delays the next one rather than overlapping it, and an
// in-flight tick finishes its batch on shutdown.
func (d *Dispatcher) Run(ctx context.Context) {
	d.log.Info("reminder dispatcher started", slog.String("interval", d.interval.String()))

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		d.Tick(ctx)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			d.log.Info("reminder dispatcher stopped")
			return
		}
	}
}

// Tick scans open events and dispatches every due (event, window) pair.
func (d *Dispatcher) Tick(ctx context.Context) {
	const op = "reminder.Tick"
	log := d.log.With(slog.String("op", op))

	events, err := d.store.UpcomingEvents(ctx)
	if err != nil {
		log.Error("failed to load events", sl.Err(err))
		return
	}

	now := d.now()
	for i := range events {
		event := &events[i]
		for _, window := range dueWindows(event, now, d.tolerance) {
			d.dispatch(ctx, event, window)
		}
	}
}

// dueWindows reports which reminder windows are due for the event. A window
// is due when the event starts within the window plus a small tolerance
// that absorbs scheduler jitter without resending.
func dueWindows(event *models.Event, now time.Time, tolerance time.Duration) []models.ReminderWindow {
	until := event.Date.Sub(now)
	if until < 0 {
		return nil
	}

	var due []models.ReminderWindow
	if !event.Reminder24hSent && until <= 24*time.Hour+tolerance {
		due = append(due, models.Reminder24h)
	}
	if !event.Reminder1hSent && until <= time.Hour+tolerance {
		due = append(due, models.Reminder1h)
	}
	return due
}

// dispatch notifies every participant, then sets the sent-flag. A single
// recipient's failure never blocks the others or the flag write. If the
// flag write fails the whole pair stays due and is re-attempted next tick.
func (d *Dispatcher) dispatch(ctx context.Context, event *models.Event, window models.ReminderWindow) {
	log := d.log.With(
		slog.Int("event_id", event.ID),
		slog.String("window", string(window)),
	)

	participants, err := d.store.EventParticipants(ctx, event.ID)
	if err != nil {
		log.Error("failed to load participants, will retry next tick", sl.Err(err))
		return
	}

	text := reminderText(event, window)

	var failed int
	for _, p := range participants {
		if p.ChatID == 0 {
			log.Warn("no chat id for participant", slog.String("username", p.Username))
			failed++
			continue
		}
		if err = d.notifier.SendMessage(ctx, p.ChatID, text); err != nil {
			log.Error("failed to send reminder",
				slog.String("username", p.Username), sl.Err(err))
			failed++
		}
	}

	if err = d.store.MarkReminderSent(ctx, event.ID, window); err != nil {
		log.Error("failed to mark reminder sent, will retry next tick", sl.Err(err))
		return
	}

	log.Info("reminders dispatched",
		slog.Int("participants", len(participants)),
		slog.Int("failed", failed),
	)
}

func reminderText(event *models.Event, window models.ReminderWindow) string {
	date := event.Date.Format("2006-01-02 15:04")
	if window == models.Reminder1h {
		return fmt.Sprintf("Reminder: '%s' starts in an hour, at %s", event.Title, date)
	}
	return fmt.Sprintf("Reminder: '%s' is tomorrow, at %s", event.Title, date)
}
