package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventbot/internal/storage"
)

// EnsureUser upserts the user record. A zero chatID never overwrites a
// known chat handle.
func (s *Storage) EnsureUser(ctx context.Context, username string, chatID int64) error {
	query := `
		INSERT INTO users (tg_username, chat_id)
		VALUES ($1, $2)
		ON CONFLICT (tg_username) DO UPDATE
		SET chat_id = EXCLUDED.chat_id
		WHERE EXCLUDED.chat_id <> 0`

	if _, err := s.DB.ExecContext(ctx, query, username, chatID); err != nil {
		return fmt.Errorf("failed to ensure user: %w", err)
	}

	return nil
}

func (s *Storage) UserChatID(ctx context.Context, username string) (int64, error) {
	var chatID int64
	err := s.DB.QueryRowContext(ctx,
		`SELECT chat_id FROM users WHERE tg_username = $1`, username,
	).Scan(&chatID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to get user chat id: %w", err)
	}

	if chatID == 0 {
		return 0, storage.ErrUserNotFound
	}

	return chatID, nil
}
