package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventbot/internal/models"
	"eventbot/internal/storage"
)

// RegisterUser takes a seat for the user. The whole check-and-write runs in
// one transaction holding a row lock on the event, so concurrent calls for
// the last seat are serialized and only one can succeed.
func (s *Storage) RegisterUser(ctx context.Context, eventID int, username string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	capacity, err := lockOpenEvent(ctx, tx, eventID)
	if err != nil {
		return err
	}

	if err = checkBlacklist(ctx, tx, eventID, username); err != nil {
		return err
	}

	regID, status, err := currentRegistration(ctx, tx, eventID, username)
	if err != nil {
		return err
	}
	if status == models.StatusRegistered {
		return storage.ErrAlreadyRegistered
	}

	if capacity > 0 {
		occupied, err := registeredCount(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if occupied >= capacity {
			return storage.ErrEventFull
		}
	}

	if err = upsertRegistration(ctx, tx, regID, eventID, username, models.StatusRegistered); err != nil {
		return err
	}

	return tx.Commit()
}

// JoinWaitlist appends the user to the waitlist. Rejected unless the event
// is currently full: the waitlist is only for overflow.
func (s *Storage) JoinWaitlist(ctx context.Context, eventID int, username string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	capacity, err := lockOpenEvent(ctx, tx, eventID)
	if err != nil {
		return err
	}

	if err = checkBlacklist(ctx, tx, eventID, username); err != nil {
		return err
	}

	regID, status, err := currentRegistration(ctx, tx, eventID, username)
	if err != nil {
		return err
	}
	switch status {
	case models.StatusRegistered:
		return storage.ErrAlreadyRegistered
	case models.StatusWaitlist:
		return storage.ErrAlreadyWaitlisted
	}

	if capacity == 0 {
		return storage.ErrEventNotFull
	}
	occupied, err := registeredCount(ctx, tx, eventID)
	if err != nil {
		return err
	}
	if occupied < capacity {
		return storage.ErrEventNotFull
	}

	if err = upsertRegistration(ctx, tx, regID, eventID, username, models.StatusWaitlist); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Storage) UnregisterUser(ctx context.Context, eventID int, username string) error {
	return s.cancelWithStatus(ctx, eventID, username, models.StatusRegistered, storage.ErrNotRegistered)
}

func (s *Storage) LeaveWaitlist(ctx context.Context, eventID int, username string) error {
	return s.cancelWithStatus(ctx, eventID, username, models.StatusWaitlist, storage.ErrNotWaitlisted)
}

func (s *Storage) cancelWithStatus(ctx context.Context, eventID int, username string, from models.RegistrationStatus, missing error) error {
	query := `
		UPDATE event_registrations
		SET status = 'cancelled'
		WHERE event_id = $1 AND user_tg_username = $2 AND status = $3`

	res, err := s.DB.ExecContext(ctx, query, eventID, username, from)
	if err != nil {
		return fmt.Errorf("failed to cancel registration: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to cancel registration: %w", err)
	}
	if affected == 0 {
		return missing
	}

	return nil
}

// CancelActiveRegistration force-cancels whatever active row the user holds
// and reports the status it had, so the caller knows whether a seat freed.
func (s *Storage) CancelActiveRegistration(ctx context.Context, eventID int, username string) (models.RegistrationStatus, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		regID  int
		status models.RegistrationStatus
	)
	err = tx.QueryRowContext(ctx, `
		SELECT id, status FROM event_registrations
		WHERE event_id = $1 AND user_tg_username = $2
			AND status IN ('registered', 'waitlist')
		FOR UPDATE`,
		eventID, username,
	).Scan(&regID, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrNotRegistered
		}
		return "", fmt.Errorf("failed to find active registration: %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE event_registrations SET status = 'cancelled' WHERE id = $1`, regID); err != nil {
		return "", fmt.Errorf("failed to cancel registration: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}

	return status, nil
}

// PromoteNext moves the earliest waitlisted user into a registered seat. It
// runs in the same transaction shape as RegisterUser: event row locked FOR
// UPDATE, open-event and capacity re-checked under the lock, then the
// transition. A registration racing in through RegisterUser either commits
// first (the re-check sees a full event and nothing is promoted) or waits on
// the row lock and fails its own capacity check. The registration date is
// re-stamped to the promotion instant.
func (s *Storage) PromoteNext(ctx context.Context, eventID int) (string, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	capacity, err := lockOpenEvent(ctx, tx, eventID)
	if err != nil {
		return "", err
	}

	if capacity > 0 {
		occupied, err := registeredCount(ctx, tx, eventID)
		if err != nil {
			return "", err
		}
		if occupied >= capacity {
			return "", storage.ErrEventFull
		}
	}

	query := `
		UPDATE event_registrations
		SET status = 'registered', registration_date = NOW()
		WHERE id = (
			SELECT id FROM event_registrations
			WHERE event_id = $1 AND status = 'waitlist'
			ORDER BY registration_date ASC, id ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING user_tg_username`

	var username string
	err = tx.QueryRowContext(ctx, query, eventID).Scan(&username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrWaitlistEmpty
		}
		return "", fmt.Errorf("failed to promote from waitlist: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}

	return username, nil
}

// WaitlistPosition returns the user's 1-based FIFO rank on the waitlist.
func (s *Storage) WaitlistPosition(ctx context.Context, eventID int, username string) (int, error) {
	query := `
		SELECT pos FROM (
			SELECT user_tg_username,
				ROW_NUMBER() OVER (ORDER BY registration_date ASC, id ASC) AS pos
			FROM event_registrations
			WHERE event_id = $1 AND status = 'waitlist'
		) w
		WHERE w.user_tg_username = $2`

	var pos int
	err := s.DB.QueryRowContext(ctx, query, eventID, username).Scan(&pos)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrNotWaitlisted
		}
		return 0, fmt.Errorf("failed to get waitlist position: %w", err)
	}

	return pos, nil
}

func (s *Storage) RegisteredCount(ctx context.Context, eventID int) (int, error) {
	var count int
	err := s.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM event_registrations
		WHERE event_id = $1 AND status = 'registered'`,
		eventID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	return count, nil
}

// EventParticipants returns registered and waitlisted users in FIFO order,
// joined with their chat handles for notification fan-out.
func (s *Storage) EventParticipants(ctx context.Context, eventID int) ([]models.Participant, error) {
	query := `
		SELECT r.user_tg_username, COALESCE(u.chat_id, 0), r.status, r.registration_date
		FROM event_registrations r
		LEFT JOIN users u ON u.tg_username = r.user_tg_username
		WHERE r.event_id = $1 AND r.status IN ('registered', 'waitlist')
		ORDER BY r.registration_date ASC, r.id ASC`

	rows, err := s.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err = rows.Scan(&p.Username, &p.ChatID, &p.Status, &p.RegistrationDate); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}

	return participants, nil
}

// ActiveRegistrations lists the user's registered or waitlisted rows on
// events that are still open.
func (s *Storage) ActiveRegistrations(ctx context.Context, username string) ([]models.Registration, error) {
	query := `
		SELECT r.id, r.event_id, r.user_tg_username, r.status, r.registration_date
		FROM event_registrations r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_tg_username = $1
			AND r.status IN ('registered', 'waitlist')
			AND e.is_completed = FALSE AND e.is_cancelled = FALSE`

	rows, err := s.DB.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get registrations: %w", err)
	}
	defer rows.Close()

	var regs []models.Registration
	for rows.Next() {
		var r models.Registration
		if err = rows.Scan(&r.ID, &r.EventID, &r.Username, &r.Status, &r.RegistrationDate); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registrations: %w", err)
	}

	return regs, nil
}

func lockOpenEvent(ctx context.Context, tx *sql.Tx, eventID int) (capacity int, err error) {
	var completed, cancelled bool
	err = tx.QueryRowContext(ctx, `
		SELECT capacity, is_completed, is_cancelled
		FROM events WHERE id = $1
		FOR UPDATE`,
		eventID,
	).Scan(&capacity, &completed, &cancelled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrEventNotFound
		}
		return 0, fmt.Errorf("failed to lock event row: %w", err)
	}

	if completed || cancelled {
		return 0, storage.ErrEventClosed
	}

	return capacity, nil
}

func checkBlacklist(ctx context.Context, tx *sql.Tx, eventID int, username string) error {
	var barred bool
	err := tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM event_blacklist
			WHERE event_id = $1 AND user_tg_username = $2
		) OR EXISTS (
			SELECT 1 FROM global_blacklist WHERE user_tg_username = $2
		)`,
		eventID, username,
	).Scan(&barred)
	if err != nil {
		return fmt.Errorf("failed to check blacklist: %w", err)
	}

	if barred {
		return storage.ErrBlacklisted
	}

	return nil
}

// currentRegistration reports the user's existing row for the event, if
// any. regID 0 means no row exists yet.
func currentRegistration(ctx context.Context, tx *sql.Tx, eventID int, username string) (regID int, status models.RegistrationStatus, err error) {
	err = tx.QueryRowContext(ctx, `
		SELECT id, status FROM event_registrations
		WHERE event_id = $1 AND user_tg_username = $2`,
		eventID, username,
	).Scan(&regID, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", nil
		}
		return 0, "", fmt.Errorf("failed to check existing registration: %w", err)
	}

	return regID, status, nil
}

func registeredCount(ctx context.Context, tx *sql.Tx, eventID int) (int, error) {
	var count int
	err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM event_registrations
		WHERE event_id = $1 AND status = 'registered'`,
		eventID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	return count, nil
}

// upsertRegistration reuses a cancelled row when one exists so the (event,
// user) pair never has more than one non-cancelled registration.
func upsertRegistration(ctx context.Context, tx *sql.Tx, regID, eventID int, username string, status models.RegistrationStatus) error {
	var err error
	if regID != 0 {
		_, err = tx.ExecContext(ctx, `
			UPDATE event_registrations
			SET status = $2, registration_date = NOW()
			WHERE id = $1`,
			regID, status)
	} else {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO event_registrations (event_id, user_tg_username, status)
			VALUES ($1, $2, $3)`,
			eventID, username, status)
	}
	if err != nil {
		return fmt.Errorf("failed to write registration: %w", err)
	}

	return nil
}
