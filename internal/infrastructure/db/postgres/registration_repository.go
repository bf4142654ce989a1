package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/institutpi/events-api/internal/core/domain"
)

// RegistrationRepository persists registrations in the registrations table.
type RegistrationRepository struct {
	db *sql.DB
}

func NewRegistrationRepository(db *sql.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

const registrationColumns = `id, event_id, email, confirmation_token,
	is_confirmed, payment_status, registered_at, confirmed_at,
	payment_confirmed_at`

// CreatePending inserts a pending registration. The counter increment is
// conditional on the event being published and under capacity, and runs in
// the same transaction as the insert, so the capacity check cannot race.
func (r *RegistrationRepository) CreatePending(ctx context.Context, reg *domain.Registration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE events
		SET current_registrations = current_registrations + 1,
		    updated_at = now()
		WHERE id = $1
		  AND status = $2
		  AND (max_capacity IS NULL OR current_registrations < max_capacity)`,
		reg.EventID, string(domain.StatusPublished))
	if err != nil {
		return fmt.Errorf("increment counter: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return r.classifyCounterMiss(ctx, reg.EventID)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO registrations (
			id, event_id, email, confirmation_token,
			is_confirmed, payment_status, registered_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		reg.ID, reg.EventID, reg.Email, reg.ConfirmationToken,
		reg.IsConfirmed, string(reg.PaymentStatus), reg.RegisteredAt)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyRegistered
	}
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}

	return tx.Commit()
}

// classifyCounterMiss tells apart the three reasons the conditional counter
// update can touch zero rows.
func (r *RegistrationRepository) classifyCounterMiss(ctx context.Context, eventID string) error {
	var status string
	err := r.db.QueryRowContext(ctx,
		`SELECT status FROM events WHERE id = $1`, eventID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("classify registration failure: %w", err)
	}
	if domain.EventStatus(status) != domain.StatusPublished {
		return domain.ErrEventNotRegistrable
	}
	return domain.ErrCapacityExceeded
}

// FindByEventAndEmail retrieves a registration regardless of state.
func (r *RegistrationRepository) FindByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Registration, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations
		WHERE event_id = $1 AND email = $2`, eventID, email)
	return scanRegistration(row)
}

// FindByToken retrieves a registration by its confirmation token.
func (r *RegistrationRepository) FindByToken(ctx context.Context, token string) (*domain.Registration, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations
		WHERE confirmation_token = $1`, token)
	return scanRegistration(row)
}

// ConfirmPending flips the registration to confirmed iff still pending.
// The WHERE clause makes repeated and concurrent confirmations no-ops, so
// confirmed_at is written exactly once.
func (r *RegistrationRepository) ConfirmPending(ctx context.Context, token string, now time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE registrations
		SET is_confirmed = TRUE, confirmed_at = $2
		WHERE confirmation_token = $1 AND is_confirmed = FALSE`,
		token, now)
	if err != nil {
		return false, fmt.Errorf("confirm registration: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByEvent returns registrations for an event, newest first.
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string, includeUnconfirmed bool) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations
		WHERE event_id = $1`
	if !includeUnconfirmed {
		query += ` AND is_confirmed`
	}
	query += ` ORDER BY registered_at DESC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// CountByEvent returns the confirmed and pending counts for an event.
func (r *RegistrationRepository) CountByEvent(ctx context.Context, eventID string) (confirmed, pending int64, err error) {
	err = r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE is_confirmed),
			COUNT(*) FILTER (WHERE NOT is_confirmed)
		FROM registrations
		WHERE event_id = $1`, eventID).Scan(&confirmed, &pending)
	if err != nil {
		return 0, 0, fmt.Errorf("count registrations: %w", err)
	}
	return confirmed, pending, nil
}

// UpdatePaymentStatus sets the payment state of a registration. Moving to
// paid records the timestamp; moving away clears it.
func (r *RegistrationRepository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus, now time.Time) error {
	var paidAt any
	if status == domain.PaymentPaid {
		paidAt = now
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE registrations
		SET payment_status = $2, payment_confirmed_at = $3
		WHERE id = $1`, id, string(status), paidAt)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	var reg domain.Registration
	var status string

	err := row.Scan(
		&reg.ID, &reg.EventID, &reg.Email, &reg.ConfirmationToken,
		&reg.IsConfirmed, &status, &reg.RegisteredAt,
		&reg.ConfirmedAt, &reg.PaymentConfirmedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan registration: %w", err)
	}

	reg.PaymentStatus = domain.PaymentStatus(status)
	return &reg, nil
}
