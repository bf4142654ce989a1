package ports

import (
	"context"
	"time"

	"github.com/institutpi/events-api/internal/core/domain"
)

// RegistrationRepository defines persistence operations for registrations.
type RegistrationRepository interface {
	// CreatePending inserts a pending registration and increments the
	// event's registration counter in a single transaction. The conditional
	// counter update is the authoritative capacity check; the unique
	// (event_id, email) constraint is the authoritative duplicate check.
	// Errors: domain.ErrEventNotFound, domain.ErrEventNotRegistrable,
	// domain.ErrCapacityExceeded, domain.ErrAlreadyRegistered.
	CreatePending(ctx context.Context, r *domain.Registration) error

	// FindByEventAndEmail retrieves a registration regardless of state.
	FindByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Registration, error)

	// FindByToken retrieves a registration by confirmation token.
	FindByToken(ctx context.Context, token string) (*domain.Registration, error)

	// ConfirmPending flips the registration to confirmed iff it is still
	// pending. Reports whether the update applied; false means a concurrent
	// request won the race (or the record was already confirmed).
	ConfirmPending(ctx context.Context, token string, now time.Time) (bool, error)

	// ListByEvent returns registrations for an event, newest first.
	// includeUnconfirmed=false restricts to confirmed ones.
	ListByEvent(ctx context.Context, eventID string, includeUnconfirmed bool) ([]*domain.Registration, error)

	// CountByEvent returns confirmed and pending counts for an event.
	CountByEvent(ctx context.Context, eventID string) (confirmed, pending int64, err error)

	// UpdatePaymentStatus sets the payment state of a registration.
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus, now time.Time) error
}

// ConfirmationStatus is the outcome class of a confirmation attempt.
type ConfirmationStatus string

const (
	ConfirmationApplied ConfirmationStatus = "confirmed"
	ConfirmationRepeat  ConfirmationStatus = "already_confirmed"
)

// ConfirmationResult carries the outcome and enough event context for the
// caller to build a landing-page redirect.
type ConfirmationResult struct {
	Status    ConfirmationStatus
	EventSlug string
}

// RegistrationList is the admin view of an event's registrations.
type RegistrationList struct {
	Registrations []*domain.Registration
	Confirmed     int64
	Pending       int64
}

// RegistrationService defines the registration and confirmation workflows.
type RegistrationService interface {
	// Register validates the email, checks event state and capacity, persists
	// a pending registration and enqueues the confirmation email. Returns the
	// new registration ID.
	Register(ctx context.Context, eventID, email string) (string, error)
	// Confirm resolves a confirmation token. Unknown tokens yield
	// domain.ErrRegistrationNotFound; repeated confirmations are a no-op
	// success reported as ConfirmationRepeat.
	Confirm(ctx context.Context, token string) (*ConfirmationResult, error)

	// Admin operations.
	ListByEvent(ctx context.Context, eventID string, includeUnconfirmed bool) (*RegistrationList, error)
	UpdatePaymentStatus(ctx context.Context, id string, status string) error
}
