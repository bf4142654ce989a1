package ports

import (
	"context"

	"github.com/institutpi/events-api/internal/core/domain"
)

// CreateEventInput carries all data needed to create a new event.
// Slug is optional; when empty it is derived from Title.
type CreateEventInput struct {
	Title                 string
	Slug                  string
	ShortDescription      string
	LongDescription       string
	Program               string
	ImageURL              string
	ImageAlt              string
	VenueName             string
	VenueAddress          string
	EventDate             string
	StartTime             string
	DurationMinutes       int
	GuestNames            []string
	IsPaid                bool
	PriceCZK              int
	PaymentAccount        string
	PaymentVariableSymbol string
	MaxCapacity           *int
	Status                string // defaults to draft
}

// UpdateEventInput holds a partial update; nil fields are left untouched.
type UpdateEventInput struct {
	Title                 *string
	Slug                  *string
	ShortDescription      *string
	LongDescription       *string
	Program               *string
	ImageURL              *string
	ImageAlt              *string
	VenueName             *string
	VenueAddress          *string
	EventDate             *string
	StartTime             *string
	DurationMinutes       *int
	GuestNames            []string
	IsPaid                *bool
	PriceCZK              *int
	PaymentAccount        *string
	PaymentVariableSymbol *string
	PaymentQRData         *string // derived by the service, not client-settable
	MaxCapacity           *int
	Status                *string
}

// ListEventsInput carries pagination and filters for listings.
type ListEventsInput struct {
	Status  string // admin only
	Archive bool   // public: past events instead of upcoming
	Limit   int
	Offset  int
}

// EventList is a page of events plus the unpaginated total.
type EventList struct {
	Events []*domain.Event
	Total  int64
}

// CalendarFile is a rendered iCalendar attachment.
type CalendarFile struct {
	Filename string
	Content  []byte
}

// EventService defines use-case operations on events.
type EventService interface {
	// ListPublic returns published events: upcoming by default, past when
	// in.Archive is set.
	ListPublic(ctx context.Context, in ListEventsInput) (*EventList, error)
	// GetPublic returns a published event by slug.
	GetPublic(ctx context.Context, slug string) (*domain.Event, error)
	// Calendar renders the event as an .ics file.
	Calendar(ctx context.Context, eventID string) (*CalendarFile, error)

	// Admin operations (callers must be authenticated).
	AdminList(ctx context.Context, in ListEventsInput) (*EventList, error)
	AdminGet(ctx context.Context, id string) (*domain.Event, error)
	Create(ctx context.Context, in CreateEventInput) (*domain.Event, error)
	Update(ctx context.Context, id string, in UpdateEventInput) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*DashboardStats, error)
}
