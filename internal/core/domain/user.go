package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")

// AdminUser models an administrator account. PasswordHash is a bcrypt hash
// for accounts created by this system; legacy accounts may still carry a
// SHA-256 hex digest (see internal/password).
type AdminUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
