package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventbot/internal/models"
	"eventbot/internal/storage"
)

const eventColumns = `
	e.id, e.title, e.description, e.date, e.capacity,
	e.is_completed, e.is_cancelled, e.reminder_24h_sent, e.reminder_1h_sent, e.created_at,
	(SELECT COUNT(*) FROM event_registrations r
		WHERE r.event_id = e.id AND r.status = 'registered')`

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Date,
		&e.Capacity,
		&e.IsCompleted,
		&e.IsCancelled,
		&e.Reminder24hSent,
		&e.Reminder1hSent,
		&e.CreatedAt,
		&e.Registered,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Storage) CreateEvent(ctx context.Context, title, description string, date time.Time, capacity int) (int, error) {
	query := `
		INSERT INTO events (title, description, date, capacity)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int
	err := s.DB.QueryRowContext(ctx, query, title, description, date, capacity).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}

	return id, nil
}

func (s *Storage) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1`

	event, err := scanEvent(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// UpcomingEvents returns events that are neither completed nor cancelled,
// soonest first.
func (s *Storage) UpcomingEvents(ctx context.Context) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events e
		WHERE e.is_completed = FALSE AND e.is_cancelled = FALSE
		ORDER BY e.date ASC`

	return s.queryEvents(ctx, query)
}

// PastEvents returns completed events, most recent first.
func (s *Storage) PastEvents(ctx context.Context) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events e
		WHERE e.is_completed = TRUE
		ORDER BY e.date DESC`

	return s.queryEvents(ctx, query)
}

func (s *Storage) queryEvents(ctx context.Context, query string, args ...any) ([]models.Event, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

func (s *Storage) UpdateEvent(ctx context.Context, id int, title, description string, date time.Time, capacity int) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, date = $4, capacity = $5
		WHERE id = $1 AND is_completed = FALSE AND is_cancelled = FALSE`

	return s.execEventUpdate(ctx, query, id, title, description, date, capacity)
}

func (s *Storage) CompleteEvent(ctx context.Context, id int) error {
	query := `
		UPDATE events
		SET is_completed = TRUE
		WHERE id = $1 AND is_completed = FALSE AND is_cancelled = FALSE`

	return s.execEventUpdate(ctx, query, id)
}

func (s *Storage) CancelEvent(ctx context.Context, id int) error {
	query := `
		UPDATE events
		SET is_cancelled = TRUE
		WHERE id = $1 AND is_completed = FALSE AND is_cancelled = FALSE`

	return s.execEventUpdate(ctx, query, id)
}

// execEventUpdate runs an update guarded by the open-event condition and
// reports why nothing changed when no row matched.
func (s *Storage) execEventUpdate(ctx context.Context, query string, id int, args ...any) error {
	res, err := s.DB.ExecContext(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if affected > 0 {
		return nil
	}

	if _, err = s.GetEvent(ctx, id); err != nil {
		return err
	}

	return storage.ErrEventClosed
}

// MarkReminderSent flips the sent-flag for a reminder window. It is the only
// writer of the two flags; a flip is what suppresses resending.
func (s *Storage) MarkReminderSent(ctx context.Context, id int, window models.ReminderWindow) error {
	var column string
	switch window {
	case models.Reminder24h:
		column = "reminder_24h_sent"
	case models.Reminder1h:
		column = "reminder_1h_sent"
	default:
		return fmt.Errorf("unknown reminder window: %q", window)
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE events SET `+column+` = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}
	if affected == 0 {
		return storage.ErrEventNotFound
	}

	return nil
}
