package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/institutpi/events-api/internal/core/domain"
	"github.com/institutpi/events-api/internal/core/ports"
)

// emailPattern is deliberately loose: one @, no whitespace, a dot in the
// domain part. Deliverability is proven by the confirmation email, not here.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegistrationService implements the registration and confirmation workflows.
type RegistrationService struct {
	events  ports.EventRepository
	regs    ports.RegistrationRepository
	mail    ports.EmailDispatcher
	baseURL string
	log     zerolog.Logger
}

func NewRegistrationService(
	events ports.EventRepository,
	regs ports.RegistrationRepository,
	mail ports.EmailDispatcher,
	baseURL string,
	log zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{events: events, regs: regs, mail: mail, baseURL: baseURL, log: log}
}

// Register creates a pending registration for eventID and queues the
// confirmation email. Pending registrations count toward capacity; the
// repository enforces both the capacity limit and the one-registration-per
// -email rule atomically, the checks here only fail fast.
func (s *RegistrationService) Register(ctx context.Context, eventID, email string) (string, error) {
	if eventID == "" || !emailPattern.MatchString(email) {
		return "", fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return "", err
	}
	if !event.Status.IsRegistrable() {
		return "", domain.ErrEventNotRegistrable
	}
	if !event.HasCapacity() {
		return "", domain.ErrCapacityExceeded
	}

	if _, err := s.regs.FindByEventAndEmail(ctx, eventID, email); err == nil {
		return "", domain.ErrAlreadyRegistered
	}

	confirmationToken, err := newConfirmationToken()
	if err != nil {
		return "", fmt.Errorf("generate confirmation token: %w", err)
	}

	reg := &domain.Registration{
		ID:                "reg_" + uuid.NewString(),
		EventID:           eventID,
		Email:             email,
		ConfirmationToken: confirmationToken,
		IsConfirmed:       false,
		PaymentStatus:     domain.PaymentPending,
		RegisteredAt:      time.Now().UTC(),
	}

	if err := s.regs.CreatePending(ctx, reg); err != nil {
		return "", err
	}

	// Fire-and-forget: a full mail queue must never roll back a committed
	// registration.
	s.mail.Enqueue(ports.EmailJob{
		Type:            ports.EmailConfirmation,
		To:              email,
		EventTitle:      event.Title,
		EventDate:       event.EventDate,
		StartTime:       event.StartTime,
		VenueName:       event.VenueName,
		VenueAddress:    event.VenueAddress,
		ConfirmationURL: s.baseURL + "/api/confirm/" + confirmationToken,
	})

	s.log.Info().
		Str("registration_id", reg.ID).
		Str("event_id", eventID).
		Msg("registration created")

	return reg.ID, nil
}

// Confirm resolves a confirmation token. The pending → confirmed transition
// is a single conditional update, so a racing duplicate click observes
// ConfirmationRepeat instead of re-applying the write. Unknown tokens yield
// ErrRegistrationNotFound without revealing whether they ever existed.
func (s *RegistrationService) Confirm(ctx context.Context, confirmationToken string) (*ports.ConfirmationResult, error) {
	if confirmationToken == "" {
		return nil, domain.ErrRegistrationNotFound
	}

	reg, err := s.regs.FindByToken(ctx, confirmationToken)
	if err != nil {
		return nil, err
	}

	event, err := s.events.GetByID(ctx, reg.EventID)
	if err != nil {
		return nil, err
	}

	if reg.IsConfirmed {
		return &ports.ConfirmationResult{Status: ports.ConfirmationRepeat, EventSlug: event.Slug}, nil
	}

	applied, err := s.regs.ConfirmPending(ctx, confirmationToken, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !applied {
		// Lost the race against a concurrent confirmation of the same token.
		return &ports.ConfirmationResult{Status: ports.ConfirmationRepeat, EventSlug: event.Slug}, nil
	}

	s.log.Info().
		Str("registration_id", reg.ID).
		Str("event_id", reg.EventID).
		Msg("registration confirmed")

	return &ports.ConfirmationResult{Status: ports.ConfirmationApplied, EventSlug: event.Slug}, nil
}

// ListByEvent returns an event's registrations with confirmed/pending counts.
func (s *RegistrationService) ListByEvent(ctx context.Context, eventID string, includeUnconfirmed bool) (*ports.RegistrationList, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	regs, err := s.regs.ListByEvent(ctx, eventID, includeUnconfirmed)
	if err != nil {
		return nil, err
	}
	confirmed, pending, err := s.regs.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &ports.RegistrationList{Registrations: regs, Confirmed: confirmed, Pending: pending}, nil
}

// UpdatePaymentStatus sets the payment state of a registration.
func (s *RegistrationService) UpdatePaymentStatus(ctx context.Context, id string, status string) error {
	ps := domain.PaymentStatus(status)
	if !domain.ValidPaymentStatus(ps) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPaymentStatus, status)
	}
	return s.regs.UpdatePaymentStatus(ctx, id, ps, time.Now().UTC())
}

// newConfirmationToken returns a 64-char hex string carrying 32 bytes of
// entropy, unguessable by construction.
func newConfirmationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
