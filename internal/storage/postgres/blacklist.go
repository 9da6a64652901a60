package postgres

import (
	"context"
	"fmt"

	"eventbot/internal/models"
	"eventbot/internal/storage"
)

func (s *Storage) AddToBlacklist(ctx context.Context, eventID int, username, addedBy, reason string) error {
	query := `
		INSERT INTO event_blacklist (event_id, user_tg_username, added_by_tg_username, reason)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, user_tg_username) DO NOTHING`

	if _, err := s.DB.ExecContext(ctx, query, eventID, username, addedBy, reason); err != nil {
		return fmt.Errorf("failed to add to blacklist: %w", err)
	}

	return nil
}

func (s *Storage) RemoveFromBlacklist(ctx context.Context, eventID int, username string) error {
	res, err := s.DB.ExecContext(ctx, `
		DELETE FROM event_blacklist
		WHERE event_id = $1 AND user_tg_username = $2`,
		eventID, username)
	if err != nil {
		return fmt.Errorf("failed to remove from blacklist: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to remove from blacklist: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotBlacklisted
	}

	return nil
}

func (s *Storage) AddToGlobalBlacklist(ctx context.Context, username, addedBy string) error {
	query := `
		INSERT INTO global_blacklist (user_tg_username, added_by_tg_username)
		VALUES ($1, $2)
		ON CONFLICT (user_tg_username) DO NOTHING`

	if _, err := s.DB.ExecContext(ctx, query, username, addedBy); err != nil {
		return fmt.Errorf("failed to add to global blacklist: %w", err)
	}

	return nil
}

func (s *Storage) RemoveFromGlobalBlacklist(ctx context.Context, username string) error {
	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM global_blacklist WHERE user_tg_username = $1`, username)
	if err != nil {
		return fmt.Errorf("failed to remove from global blacklist: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to remove from global blacklist: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotBlacklisted
	}

	return nil
}

// IsBlacklisted reports whether the user is barred from the event, either
// by an event-scoped entry or a global one.
func (s *Storage) IsBlacklisted(ctx context.Context, eventID int, username string) (bool, error) {
	var barred bool
	err := s.DB.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM event_blacklist
			WHERE event_id = $1 AND user_tg_username = $2
		) OR EXISTS (
			SELECT 1 FROM global_blacklist WHERE user_tg_username = $2
		)`,
		eventID, username,
	).Scan(&barred)
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}

	return barred, nil
}

func (s *Storage) EventBlacklist(ctx context.Context, eventID int) ([]models.BlacklistEntry, error) {
	query := `
		SELECT id, event_id, user_tg_username, added_by_tg_username, reason, added_at
		FROM event_blacklist
		WHERE event_id = $1
		ORDER BY added_at DESC`

	rows, err := s.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get blacklist: %w", err)
	}
	defer rows.Close()

	var entries []models.BlacklistEntry
	for rows.Next() {
		var e models.BlacklistEntry
		if err = rows.Scan(&e.ID, &e.EventID, &e.Username, &e.AddedBy, &e.Reason, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blacklist entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blacklist: %w", err)
	}

	return entries, nil
}

func (s *Storage) GlobalBlacklist(ctx context.Context) ([]models.BlacklistEntry, error) {
	query := `
		SELECT id, user_tg_username, added_by_tg_username, added_at
		FROM global_blacklist
		ORDER BY added_at DESC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get global blacklist: %w", err)
	}
	defer rows.Close()

	var entries []models.BlacklistEntry
	for rows.Next() {
		var e models.BlacklistEntry
		if err = rows.Scan(&e.ID, &e.Username, &e.AddedBy, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blacklist entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating global blacklist: %w", err)
	}

	return entries, nil
}
