package handler

import (
	"github.com/institutpi/events-api/internal/core/domain"
	"github.com/institutpi/events-api/internal/core/ports"
)

// createEventRequest is the admin payload for creating an event.
type createEventRequest struct {
	Title                 string   `json:"title" validate:"required"`
	Slug                  string   `json:"slug,omitempty"`
	ShortDescription      string   `json:"short_description" validate:"required"`
	LongDescription       string   `json:"long_description,omitempty"`
	Program               string   `json:"program,omitempty"`
	ImageURL              string   `json:"image_url,omitempty"`
	ImageAlt              string   `json:"image_alt,omitempty"`
	VenueName             string   `json:"venue_name" validate:"required"`
	VenueAddress          string   `json:"venue_address" validate:"required"`
	EventDate             string   `json:"event_date" validate:"required,datetime=2006-01-02"`
	StartTime             string   `json:"start_time" validate:"required"`
	DurationMinutes       int      `json:"duration_minutes" validate:"gt=0"`
	GuestNames            []string `json:"guest_names,omitempty"`
	IsPaid                bool     `json:"is_paid"`
	PriceCZK              int      `json:"price_czk" validate:"min=0"`
	PaymentAccount        string   `json:"payment_account,omitempty"`
	PaymentVariableSymbol string   `json:"payment_variable_symbol,omitempty"`
	MaxCapacity           *int     `json:"max_capacity,omitempty"`
	Status                string   `json:"status,omitempty" validate:"omitempty,oneof=draft published cancelled"`
}

// updateEventRequest is the admin payload for a partial update; absent
// fields are left untouched.
type updateEventRequest struct {
	Title                 *string  `json:"title,omitempty"`
	Slug                  *string  `json:"slug,omitempty"`
	ShortDescription      *string  `json:"short_description,omitempty"`
	LongDescription       *string  `json:"long_description,omitempty"`
	Program               *string  `json:"program,omitempty"`
	ImageURL              *string  `json:"image_url,omitempty"`
	ImageAlt              *string  `json:"image_alt,omitempty"`
	VenueName             *string  `json:"venue_name,omitempty"`
	VenueAddress          *string  `json:"venue_address,omitempty"`
	EventDate             *string  `json:"event_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime             *string  `json:"start_time,omitempty"`
	DurationMinutes       *int     `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
	GuestNames            []string `json:"guest_names,omitempty"`
	IsPaid                *bool    `json:"is_paid,omitempty"`
	PriceCZK              *int     `json:"price_czk,omitempty" validate:"omitempty,min=0"`
	PaymentAccount        *string  `json:"payment_account,omitempty"`
	PaymentVariableSymbol *string  `json:"payment_variable_symbol,omitempty"`
	MaxCapacity           *int     `json:"max_capacity,omitempty"`
	Status                *string  `json:"status,omitempty" validate:"omitempty,oneof=draft published cancelled"`
}

// eventListResponse is a page of events plus the unpaginated total.
type eventListResponse struct {
	Events []*domain.Event `json:"events"`
	Total  int64           `json:"total"`
}

func toCreateInput(r createEventRequest) ports.CreateEventInput {
	return ports.CreateEventInput{
		Title:                 r.Title,
		Slug:                  r.Slug,
		ShortDescription:      r.ShortDescription,
		LongDescription:       r.LongDescription,
		Program:               r.Program,
		ImageURL:              r.ImageURL,
		ImageAlt:              r.ImageAlt,
		VenueName:             r.VenueName,
		VenueAddress:          r.VenueAddress,
		EventDate:             r.EventDate,
		StartTime:             r.StartTime,
		DurationMinutes:       r.DurationMinutes,
		GuestNames:            r.GuestNames,
		IsPaid:                r.IsPaid,
		PriceCZK:              r.PriceCZK,
		PaymentAccount:        r.PaymentAccount,
		PaymentVariableSymbol: r.PaymentVariableSymbol,
		MaxCapacity:           r.MaxCapacity,
		Status:                r.Status,
	}
}

func toUpdateInput(r updateEventRequest) ports.UpdateEventInput {
	return ports.UpdateEventInput{
		Title:                 r.Title,
		Slug:                  r.Slug,
		ShortDescription:      r.ShortDescription,
		LongDescription:       r.LongDescription,
		Program:               r.Program,
		ImageURL:              r.ImageURL,
		ImageAlt:              r.ImageAlt,
		VenueName:             r.VenueName,
		VenueAddress:          r.VenueAddress,
		EventDate:             r.EventDate,
		StartTime:             r.StartTime,
		DurationMinutes:       r.DurationMinutes,
		GuestNames:            r.GuestNames,
		IsPaid:                r.IsPaid,
		PriceCZK:              r.PriceCZK,
		PaymentAccount:        r.PaymentAccount,
		PaymentVariableSymbol: r.PaymentVariableSymbol,
		MaxCapacity:           r.MaxCapacity,
		Status:                r.Status,
	}
}
