package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/institutpi/events-api/internal/core/domain"
	"github.com/institutpi/events-api/internal/core/ports"
)

const uniqueViolation = "23505"

// EventRepository persists events in the events table.
type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, slug, title, short_description,
	COALESCE(long_description, ''), COALESCE(program, ''),
	COALESCE(image_url, ''), COALESCE(image_alt, ''),
	venue_name, venue_address, event_date, start_time, duration_minutes,
	guest_names, is_paid, price_czk, COALESCE(payment_qr_data, ''),
	COALESCE(payment_account, ''), COALESCE(payment_variable_symbol, ''),
	max_capacity, current_registrations, status, created_at, updated_at`

// Create inserts a new event. Slug collisions map to domain.ErrSlugTaken.
func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	guestNames, err := json.Marshal(e.GuestNames)
	if err != nil {
		return fmt.Errorf("marshal guest names: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO events (
			id, slug, title, short_description, long_description, program,
			image_url, image_alt, venue_name, venue_address,
			event_date, start_time, duration_minutes, guest_names,
			is_paid, price_czk, payment_qr_data, payment_account,
			payment_variable_symbol, max_capacity, current_registrations,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`,
		e.ID, e.Slug, e.Title, e.ShortDescription,
		nullable(e.LongDescription), nullable(e.Program),
		nullable(e.ImageURL), nullable(e.ImageAlt),
		e.VenueName, e.VenueAddress, e.EventDate, e.StartTime,
		e.DurationMinutes, guestNames, e.IsPaid, e.PriceCZK,
		nullable(e.PaymentQRData), nullable(e.PaymentAccount),
		nullable(e.PaymentVariableSymbol), e.MaxCapacity,
		e.CurrentRegistrations, string(e.Status), e.CreatedAt, e.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// GetByID retrieves an event regardless of status.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	return scanEvent(row)
}

// GetBySlug retrieves an event by slug, optionally published only.
func (r *EventRepository) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`
	args := []any{slug}
	if publishedOnly {
		query += ` AND status = $2`
		args = append(args, string(domain.StatusPublished))
	}
	return scanEvent(r.db.QueryRowContext(ctx, query, args...))
}

// List returns a page of events matching filter and the unpaginated total.
// Public listings sort upcoming events ascending and archived ones
// descending; the admin view (no date filter) sorts newest first.
func (r *EventRepository) List(ctx context.Context, filter ports.ListEventsFilter) ([]*domain.Event, int64, error) {
	var conds []string
	var args []any

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	order := "event_date DESC, created_at DESC"
	if filter.Today != "" {
		args = append(args, filter.Today)
		if filter.Archive {
			conds = append(conds, fmt.Sprintf("event_date < $%d", len(args)))
		} else {
			conds = append(conds, fmt.Sprintf("event_date >= $%d", len(args)))
			order = "event_date ASC, start_time ASC"
		}
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM events%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		eventColumns, where, order, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

// Update applies the non-nil fields of in to the event row.
func (r *EventRepository) Update(ctx context.Context, id string, in ports.UpdateEventInput) error {
	var sets []string
	var args []any

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if in.Title != nil {
		set("title", *in.Title)
	}
	if in.Slug != nil {
		set("slug", *in.Slug)
	}
	if in.ShortDescription != nil {
		set("short_description", *in.ShortDescription)
	}
	if in.LongDescription != nil {
		set("long_description", *in.LongDescription)
	}
	if in.Program != nil {
		set("program", *in.Program)
	}
	if in.ImageURL != nil {
		set("image_url", *in.ImageURL)
	}
	if in.ImageAlt != nil {
		set("image_alt", *in.ImageAlt)
	}
	if in.VenueName != nil {
		set("venue_name", *in.VenueName)
	}
	if in.VenueAddress != nil {
		set("venue_address", *in.VenueAddress)
	}
	if in.EventDate != nil {
		set("event_date", *in.EventDate)
	}
	if in.StartTime != nil {
		set("start_time", *in.StartTime)
	}
	if in.DurationMinutes != nil {
		set("duration_minutes", *in.DurationMinutes)
	}
	if in.GuestNames != nil {
		guestNames, err := json.Marshal(in.GuestNames)
		if err != nil {
			return fmt.Errorf("marshal guest names: %w", err)
		}
		set("guest_names", guestNames)
	}
	if in.IsPaid != nil {
		set("is_paid", *in.IsPaid)
	}
	if in.PriceCZK != nil {
		set("price_czk", *in.PriceCZK)
	}
	if in.PaymentAccount != nil {
		set("payment_account", *in.PaymentAccount)
	}
	if in.PaymentVariableSymbol != nil {
		set("payment_variable_symbol", *in.PaymentVariableSymbol)
	}
	if in.PaymentQRData != nil {
		set("payment_qr_data", *in.PaymentQRData)
	}
	if in.MaxCapacity != nil {
		set("max_capacity", *in.MaxCapacity)
	}
	if in.Status != nil {
		set("status", *in.Status)
	}

	if len(sets) == 0 {
		return fmt.Errorf("%w: no fields to update", domain.ErrInvalidInput)
	}
	set("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf("UPDATE events SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return domain.ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// Delete removes the event; registrations cascade.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// Stats computes the admin dashboard aggregates in a handful of queries.
func (r *EventRepository) Stats(ctx context.Context, today, since string) (*ports.DashboardStats, error) {
	stats := &ports.DashboardStats{}

	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'published'),
			COUNT(*) FILTER (WHERE status = 'draft'),
			COUNT(*) FILTER (WHERE status = 'published' AND event_date >= $1),
			COUNT(*) FILTER (WHERE status = 'published' AND event_date < $1)
		FROM events`, today).Scan(
		&stats.EventsTotal, &stats.EventsPublished, &stats.EventsDraft,
		&stats.EventsUpcoming, &stats.EventsPast)
	if err != nil {
		return nil, fmt.Errorf("event stats: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE is_confirmed),
			COUNT(*) FILTER (WHERE NOT is_confirmed),
			COUNT(*) FILTER (WHERE is_confirmed AND registered_at >= $1)
		FROM registrations`, since).Scan(
		&stats.RegConfirmed, &stats.RegPending, &stats.RegRecentWeek)
	if err != nil {
		return nil, fmt.Errorf("registration stats: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, slug, event_date, current_registrations, max_capacity
		FROM events
		WHERE status = 'published' AND event_date >= $1
		ORDER BY current_registrations DESC
		LIMIT 5`, today)
	if err != nil {
		return nil, fmt.Errorf("top events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row ports.EventStatsRow
		var date time.Time
		if err := rows.Scan(&row.ID, &row.Title, &row.Slug, &date,
			&row.CurrentRegistrations, &row.MaxCapacity); err != nil {
			return nil, err
		}
		row.EventDate = date.Format("2006-01-02")
		stats.TopEvents = append(stats.TopEvents, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var capacity, registered sql.NullInt64
	err = r.db.QueryRowContext(ctx, `
		SELECT SUM(max_capacity), SUM(current_registrations)
		FROM events
		WHERE status = 'published' AND event_date >= $1 AND max_capacity IS NOT NULL`,
		today).Scan(&capacity, &registered)
	if err != nil {
		return nil, fmt.Errorf("capacity stats: %w", err)
	}
	stats.TotalCapacity = capacity.Int64
	stats.TotalRegistered = registered.Int64
	if stats.TotalCapacity > 0 {
		stats.UtilizationPercent = int(stats.TotalRegistered * 100 / stats.TotalCapacity)
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var e domain.Event
	var eventDate time.Time
	var guestNames []byte
	var status string

	err := row.Scan(
		&e.ID, &e.Slug, &e.Title, &e.ShortDescription,
		&e.LongDescription, &e.Program, &e.ImageURL, &e.ImageAlt,
		&e.VenueName, &e.VenueAddress, &eventDate, &e.StartTime,
		&e.DurationMinutes, &guestNames, &e.IsPaid, &e.PriceCZK,
		&e.PaymentQRData, &e.PaymentAccount, &e.PaymentVariableSymbol,
		&e.MaxCapacity, &e.CurrentRegistrations, &status,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan event: %w", err)
	}

	e.EventDate = eventDate.Format("2006-01-02")
	e.Status = domain.EventStatus(status)
	if err := json.Unmarshal(guestNames, &e.GuestNames); err != nil {
		e.GuestNames = []string{}
	}
	return &e, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
