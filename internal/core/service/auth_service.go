package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/institutpi/events-api/internal/core/domain"
	"github.com/institutpi/events-api/internal/core/ports"
	pwhash "github.com/institutpi/events-api/internal/password"
	"github.com/institutpi/events-api/internal/token"
)

// BootstrapAdmin is an operator-supplied fallback credential consulted when
// no matching row exists in admin_users yet. Both fields come from the
// environment; nothing is embedded in code.
type BootstrapAdmin struct {
	Email        string
	PasswordHash string
}

const bootstrapAdminID = "admin_bootstrap"

// AuthService implements administrator login.
type AuthService struct {
	repo      ports.AuthRepository
	issuer    *token.Issuer
	bootstrap BootstrapAdmin
	log       zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, issuer *token.Issuer, bootstrap BootstrapAdmin, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, bootstrap: bootstrap, log: log}
}

// Login verifies the credentials and mints a session token. All failure
// modes collapse into ErrInvalidCredentials so callers cannot probe which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.AdminUser, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUserNotFound):
		if s.bootstrap.Email == "" || email != s.bootstrap.Email {
			return "", nil, domain.ErrInvalidCredentials
		}
		s.log.Info().Str("email", email).Msg("using bootstrap admin credentials")
		user = &domain.AdminUser{
			ID:           bootstrapAdminID,
			Email:        s.bootstrap.Email,
			PasswordHash: s.bootstrap.PasswordHash,
		}
	default:
		return "", nil, err
	}

	if !pwhash.Verify(password, user.PasswordHash) {
		s.log.Warn().Str("email", email).Msg("login rejected: password mismatch")
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.issuer.Issue(user.ID, user.Email, time.Now().UTC())
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("email", email).Msg("admin logged in")
	return tok, user, nil
}
