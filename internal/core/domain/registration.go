package domain

import (
	"errors"
	"time"
)

// PaymentStatus tracks the payment state of a registration for paid events.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentWaived  PaymentStatus = "waived"
)

var ErrRegistrationNotFound = errors.New("registration not found")
var ErrAlreadyRegistered = errors.New("already registered for this event")
var ErrInvalidPaymentStatus = errors.New("invalid payment status")

// ValidPaymentStatus reports whether s is a known payment state.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentWaived:
		return true
	}
	return false
}

// Registration links an email address to an event. The (EventID, Email) pair
// is unique; ConfirmationToken is unique and single-use for the pending →
// confirmed transition. Once confirmed the record is terminal: confirming
// again is a no-op, never an error.
type Registration struct {
	ID                 string        `json:"id"`
	EventID            string        `json:"event_id"`
	Email              string        `json:"email"`
	ConfirmationToken  string        `json:"-"`
	IsConfirmed        bool          `json:"is_confirmed"`
	PaymentStatus      PaymentStatus `json:"payment_status"`
	RegisteredAt       time.Time     `json:"registered_at"`
	ConfirmedAt        *time.Time    `json:"confirmed_at,omitempty"`
	PaymentConfirmedAt *time.Time    `json:"payment_confirmed_at,omitempty"`
}
