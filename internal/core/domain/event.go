package domain

import (
	"errors"
	"time"
)

// EventStatus represents the publication state of an event.
type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPublished EventStatus = "published"
	StatusCancelled EventStatus = "cancelled"
)

var ErrEventNotFound = errors.New("event not found")
var ErrEventNotRegistrable = errors.New("event is not open for registration")
var ErrCapacityExceeded = errors.New("event capacity exceeded")
var ErrSlugTaken = errors.New("event slug already exists")
var ErrInvalidInput = errors.New("invalid input")

// IsRegistrable reports whether public registrations are accepted for the
// current status. Only published events take registrations.
func (s EventStatus) IsRegistrable() bool {
	return s == StatusPublished
}

// Event is the core aggregate root. MaxCapacity nil means unlimited.
// CurrentRegistrations counts pending and confirmed registrations; it is
// maintained by the registration transaction, never by confirmation.
type Event struct {
	ID                   string      `json:"id"`
	Slug                 string      `json:"slug"`
	Title                string      `json:"title"`
	ShortDescription     string      `json:"short_description"`
	LongDescription      string      `json:"long_description,omitempty"`
	Program              string      `json:"program,omitempty"`
	ImageURL             string      `json:"image_url,omitempty"`
	ImageAlt             string      `json:"image_alt,omitempty"`
	VenueName            string      `json:"venue_name"`
	VenueAddress         string      `json:"venue_address"`
	EventDate            string      `json:"event_date"` // ISO date, e.g. 2026-01-10
	StartTime            string      `json:"start_time"` // HH:MM, local
	DurationMinutes      int         `json:"duration_minutes"`
	GuestNames           []string    `json:"guest_names"`
	IsPaid               bool        `json:"is_paid"`
	PriceCZK             int         `json:"price_czk"`
	PaymentQRData        string      `json:"payment_qr_data,omitempty"`
	PaymentAccount       string      `json:"payment_account,omitempty"`
	PaymentVariableSymbol string     `json:"payment_variable_symbol,omitempty"`
	MaxCapacity          *int        `json:"max_capacity"`
	CurrentRegistrations int         `json:"current_registrations"`
	Status               EventStatus `json:"status"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// HasCapacity reports whether the event can accept one more registration.
// The repository enforces the same rule atomically; this is the fast path
// used before opening a transaction.
func (e *Event) HasCapacity() bool {
	if e.MaxCapacity == nil {
		return true
	}
	return e.CurrentRegistrations < *e.MaxCapacity
}

// StartsAt combines EventDate and StartTime into a single instant in loc.
func (e *Event) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", e.EventDate+" "+e.StartTime, loc)
}
