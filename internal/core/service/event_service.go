package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/institutpi/events-api/internal/core/domain"
	"github.com/institutpi/events-api/internal/core/ports"
)

const (
	defaultPublicPageSize = 10
	defaultAdminPageSize  = 100
	maxPageSize           = 100
)

// EventService implements the public event catalogue and the admin CRUD.
type EventService struct {
	repo    ports.EventRepository
	baseURL string
	log     zerolog.Logger
}

func NewEventService(repo ports.EventRepository, baseURL string, log zerolog.Logger) *EventService {
	return &EventService{repo: repo, baseURL: baseURL, log: log}
}

// ListPublic returns published events: upcoming ascending, or the archive
// (past events) descending when in.Archive is set.
func (s *EventService) ListPublic(ctx context.Context, in ports.ListEventsInput) (*ports.EventList, error) {
	limit, offset := pageBounds(in.Limit, in.Offset, defaultPublicPageSize)

	events, total, err := s.repo.List(ctx, ports.ListEventsFilter{
		Status:  string(domain.StatusPublished),
		Archive: in.Archive,
		Today:   time.Now().UTC().Format("2006-01-02"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, err
	}
	return &ports.EventList{Events: events, Total: total}, nil
}

// GetPublic returns a published event by slug.
func (s *EventService) GetPublic(ctx context.Context, slug string) (*domain.Event, error) {
	return s.repo.GetBySlug(ctx, slug, true)
}

// Calendar renders an event as a downloadable iCalendar file.
func (s *EventService) Calendar(ctx context.Context, eventID string) (*ports.CalendarFile, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	content, err := renderICS(event, s.baseURL)
	if err != nil {
		return nil, err
	}
	return &ports.CalendarFile{Filename: event.Slug + ".ics", Content: content}, nil
}

// AdminList returns events of any status, optionally filtered, newest first.
func (s *EventService) AdminList(ctx context.Context, in ports.ListEventsInput) (*ports.EventList, error) {
	if in.Status != "" && !validEventStatus(in.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, in.Status)
	}
	limit, offset := pageBounds(in.Limit, in.Offset, defaultAdminPageSize)

	events, total, err := s.repo.List(ctx, ports.ListEventsFilter{
		Status: in.Status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	return &ports.EventList{Events: events, Total: total}, nil
}

// AdminGet returns an event by ID regardless of status.
func (s *EventService) AdminGet(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the input and persists a new event. The slug is derived
// from the title unless supplied; a paid event gets its SPD payment QR data
// precomputed.
func (s *EventService) Create(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Title)
	}

	status := domain.EventStatus(in.Status)
	if in.Status == "" {
		status = domain.StatusDraft
	} else if !validEventStatus(in.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, in.Status)
	}

	now := time.Now().UTC()
	event := &domain.Event{
		ID:                    "evt_" + uuid.NewString(),
		Slug:                  slug,
		Title:                 in.Title,
		ShortDescription:      in.ShortDescription,
		LongDescription:       in.LongDescription,
		Program:               in.Program,
		ImageURL:              in.ImageURL,
		ImageAlt:              in.ImageAlt,
		VenueName:             in.VenueName,
		VenueAddress:          in.VenueAddress,
		EventDate:             in.EventDate,
		StartTime:             in.StartTime,
		DurationMinutes:       in.DurationMinutes,
		GuestNames:            in.GuestNames,
		IsPaid:                in.IsPaid,
		PriceCZK:              in.PriceCZK,
		PaymentAccount:        in.PaymentAccount,
		PaymentVariableSymbol: in.PaymentVariableSymbol,
		MaxCapacity:           in.MaxCapacity,
		CurrentRegistrations:  0,
		Status:                status,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if event.GuestNames == nil {
		event.GuestNames = []string{}
	}
	if event.IsPaid && event.PaymentAccount != "" {
		event.PaymentQRData = domain.PaymentQR{
			Account:        event.PaymentAccount,
			AmountCZK:      event.PriceCZK,
			VariableSymbol: event.PaymentVariableSymbol,
			Message:        event.Title,
		}.SPD()
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.log.Info().Str("event_id", event.ID).Str("slug", event.Slug).Msg("event created")
	return event, nil
}

// Update applies a partial update to an event. Touching any payment field
// recomputes the stored SPD QR string from the merged state.
func (s *EventService) Update(ctx context.Context, id string, in ports.UpdateEventInput) error {
	if in.Status != nil && !validEventStatus(*in.Status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *in.Status)
	}

	if in.IsPaid != nil || in.PriceCZK != nil || in.PaymentAccount != nil ||
		in.PaymentVariableSymbol != nil || in.Title != nil {
		event, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		applyPaymentFields(event, in)

		qr := ""
		if event.IsPaid && event.PaymentAccount != "" {
			qr = domain.PaymentQR{
				Account:        event.PaymentAccount,
				AmountCZK:      event.PriceCZK,
				VariableSymbol: event.PaymentVariableSymbol,
				Message:        event.Title,
			}.SPD()
		}
		in.PaymentQRData = &qr
	}

	if err := s.repo.Update(ctx, id, in); err != nil {
		return err
	}
	s.log.Info().Str("event_id", id).Msg("event updated")
	return nil
}

// Delete removes an event; its registrations go with it (cascade).
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("event_id", id).Msg("event deleted")
	return nil
}

// Stats computes the admin dashboard aggregates.
func (s *EventService) Stats(ctx context.Context) (*ports.DashboardStats, error) {
	now := time.Now().UTC()
	today := now.Format("2006-01-02")
	weekAgo := now.AddDate(0, 0, -7).Format("2006-01-02")
	return s.repo.Stats(ctx, today, weekAgo)
}

// applyPaymentFields merges the payment-relevant update fields onto the
// current event state so the QR string can be derived.
func applyPaymentFields(event *domain.Event, in ports.UpdateEventInput) {
	if in.Title != nil {
		event.Title = *in.Title
	}
	if in.IsPaid != nil {
		event.IsPaid = *in.IsPaid
	}
	if in.PriceCZK != nil {
		event.PriceCZK = *in.PriceCZK
	}
	if in.PaymentAccount != nil {
		event.PaymentAccount = *in.PaymentAccount
	}
	if in.PaymentVariableSymbol != nil {
		event.PaymentVariableSymbol = *in.PaymentVariableSymbol
	}
}

func validateCreate(in ports.CreateEventInput) error {
	required := []struct {
		name  string
		value string
	}{
		{"title", in.Title},
		{"short_description", in.ShortDescription},
		{"event_date", in.EventDate},
		{"start_time", in.StartTime},
		{"venue_name", in.VenueName},
		{"venue_address", in.VenueAddress},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: missing required field %s", domain.ErrInvalidInput, f.name)
		}
	}
	if in.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration_minutes must be positive", domain.ErrInvalidInput)
	}
	if in.MaxCapacity != nil && *in.MaxCapacity <= 0 {
		return fmt.Errorf("%w: max_capacity must be positive when set", domain.ErrInvalidInput)
	}
	return nil
}

func validEventStatus(s string) bool {
	switch domain.EventStatus(s) {
	case domain.StatusDraft, domain.StatusPublished, domain.StatusCancelled:
		return true
	}
	return false
}

func pageBounds(limit, offset, fallback int) (int, int) {
	if limit <= 0 {
		limit = fallback
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
