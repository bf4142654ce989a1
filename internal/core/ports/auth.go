package ports

import (
	"context"

	"github.com/institutpi/events-api/internal/core/domain"
)

// AuthRepository defines persistence for administrator accounts.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
}

// AuthService authenticates administrators and mints session tokens.
type AuthService interface {
	// Login verifies the credentials and returns a signed session token
	// together with the authenticated user. Returns
	// domain.ErrInvalidCredentials on any mismatch.
	Login(ctx context.Context, email, password string) (string, *domain.AdminUser, error)
}
