// Package postgres implements the event store on PostgreSQL. Capacity and
// waitlist transitions run inside transactions holding a row-level lock on
// the event, so two racing registrations can never both take the last seat.
package postgres

import (
	"database/sql"
	"fmt"

	"eventbot/internal/config"

	_ "github.com/lib/pq"
)

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	s := &Storage{DB: db}

	if err = s.createTables(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Storage) createTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			date TIMESTAMPTZ NOT NULL,
			capacity INT NOT NULL DEFAULT 0,
			is_completed BOOLEAN NOT NULL DEFAULT FALSE,
			is_cancelled BOOLEAN NOT NULL DEFAULT FALSE,
			reminder_24h_sent BOOLEAN NOT NULL DEFAULT FALSE,
			reminder_1h_sent BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			tg_username TEXT NOT NULL UNIQUE,
			chat_id BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS event_registrations (
			id SERIAL PRIMARY KEY,
			event_id INT NOT NULL REFERENCES events (id),
			user_tg_username TEXT NOT NULL,
			status TEXT NOT NULL,
			registration_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (event_id, user_tg_username)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_registrations_event_status
			ON event_registrations (event_id, status, registration_date)`,
		`CREATE TABLE IF NOT EXISTS event_blacklist (
			id SERIAL PRIMARY KEY,
			event_id INT NOT NULL REFERENCES events (id),
			user_tg_username TEXT NOT NULL,
			added_by_tg_username TEXT NOT NULL DEFAULT '',
			reason TEXT NOT NULL DEFAULT '',
			added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (event_id, user_tg_username)
		)`,
		`CREATE TABLE IF NOT EXISTS global_blacklist (
			id SERIAL PRIMARY KEY,
			user_tg_username TEXT NOT NULL UNIQUE,
			added_by_tg_username TEXT NOT NULL DEFAULT '',
			added_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
