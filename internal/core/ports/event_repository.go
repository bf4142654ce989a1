package ports

import (
	"context"

	"github.com/institutpi/events-api/internal/core/domain"
)

// ListEventsFilter carries the query parameters for event listings.
type ListEventsFilter struct {
	Status  string // optional: filter by event status; empty = all (admin only)
	Archive bool   // true = events before Today, false = Today and later
	Today   string // ISO date boundary for the archive split; empty = no date filter
	Limit   int
	Offset  int
}

// EventStatsRow is one entry in the dashboard's "top upcoming events" list.
type EventStatsRow struct {
	ID                   string `json:"id"`
	Title                string `json:"title"`
	Slug                 string `json:"slug"`
	EventDate            string `json:"event_date"`
	CurrentRegistrations int    `json:"current_registrations"`
	MaxCapacity          *int   `json:"max_capacity"`
}

// DashboardStats aggregates the admin dashboard numbers.
type DashboardStats struct {
	EventsTotal        int64           `json:"events_total"`
	EventsPublished    int64           `json:"events_published"`
	EventsDraft        int64           `json:"events_draft"`
	EventsUpcoming     int64           `json:"events_upcoming"`
	EventsPast         int64           `json:"events_past"`
	RegConfirmed       int64           `json:"registrations_confirmed"`
	RegPending         int64           `json:"registrations_pending"`
	RegRecentWeek      int64           `json:"registrations_recent_week"`
	TopEvents          []EventStatsRow `json:"top_events"`
	TotalCapacity      int64           `json:"total_capacity"`
	TotalRegistered    int64           `json:"total_registered"`
	UtilizationPercent int             `json:"utilization_percent"`
}

// EventRepository defines persistence operations for events.
type EventRepository interface {
	// Create inserts a new event. A slug collision yields domain.ErrSlugTaken.
	Create(ctx context.Context, e *domain.Event) error
	// GetByID retrieves an event regardless of status.
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// GetBySlug retrieves an event by slug. When publishedOnly is true,
	// drafts and cancelled events yield domain.ErrEventNotFound.
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*domain.Event, error)
	// List returns a page of events matching filter and the total count.
	List(ctx context.Context, filter ListEventsFilter) ([]*domain.Event, int64, error)
	// Update applies the non-nil fields of in. domain.ErrEventNotFound when
	// the event does not exist, domain.ErrSlugTaken on a slug collision.
	Update(ctx context.Context, id string, in UpdateEventInput) error
	// Delete removes the event and, via cascade, its registrations.
	Delete(ctx context.Context, id string) error
	// Stats computes dashboard aggregates. today and since are ISO dates;
	// since bounds the "recent registrations" window.
	Stats(ctx context.Context, today, since string) (*DashboardStats, error)
}
