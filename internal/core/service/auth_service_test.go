package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/institutpi/events-api/internal/core/domain"
	"github.com/institutpi/events-api/internal/password"
	"github.com/institutpi/events-api/internal/token"
)

type stubAuthRepo struct {
	users map[string]*domain.AdminUser
}

func newStubAuthRepo(users ...*domain.AdminUser) *stubAuthRepo {
	r := &stubAuthRepo{users: make(map[string]*domain.AdminUser)}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func newAuthSvc(repo *stubAuthRepo, bootstrap BootstrapAdmin) (*AuthService, *token.Issuer) {
	issuer := token.NewIssuer("test-secret")
	return NewAuthService(repo, issuer, bootstrap, zerolog.Nop()), issuer
}

func TestLogin_Success(t *testing.T) {
	hash, err := password.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := newStubAuthRepo(&domain.AdminUser{ID: "admin_1", Email: "carol@example.com", PasswordHash: hash})
	svc, issuer := newAuthSvc(repo, BootstrapAdmin{})

	tok, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.ID != "admin_1" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := issuer.Verify(tok, time.Now().UTC())
	if err != nil {
		t.Fatalf("minted token invalid: %v", err)
	}
	if claims.UserID != "admin_1" || claims.Email != "carol@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLogin_LegacyHash(t *testing.T) {
	repo := newStubAuthRepo(&domain.AdminUser{
		ID:           "admin_1",
		Email:        "old@example.com",
		PasswordHash: password.LegacyHash("oldpass"),
	})
	svc, _ := newAuthSvc(repo, BootstrapAdmin{})

	if _, _, err := svc.Login(context.Background(), "old@example.com", "oldpass"); err != nil {
		t.Fatalf("legacy hash login failed: %v", err)
	}
}

func TestLogin_InvalidPassword(t *testing.T) {
	hash, _ := password.Hash("goodpass")
	repo := newStubAuthRepo(&domain.AdminUser{ID: "admin_1", Email: "dave@example.com", PasswordHash: hash})
	svc, _ := newAuthSvc(repo, BootstrapAdmin{})

	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newAuthSvc(newStubAuthRepo(), BootstrapAdmin{})

	// Unknown accounts are indistinguishable from wrong passwords.
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_EmptyInput(t *testing.T) {
	svc, _ := newAuthSvc(newStubAuthRepo(), BootstrapAdmin{})

	if _, _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@b.cz", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_BootstrapAdmin(t *testing.T) {
	hash, _ := password.Hash("bootpass")
	svc, _ := newAuthSvc(newStubAuthRepo(), BootstrapAdmin{
		Email:        "root@example.com",
		PasswordHash: hash,
	})

	tok, user, err := svc.Login(context.Background(), "root@example.com", "bootpass")
	if err != nil {
		t.Fatalf("bootstrap login failed: %v", err)
	}
	if tok == "" || user.ID != "admin_bootstrap" {
		t.Fatalf("unexpected bootstrap user: %+v", user)
	}

	// A stored account with the same email takes precedence over bootstrap.
	dbHash, _ := password.Hash("dbpass")
	repo := newStubAuthRepo(&domain.AdminUser{ID: "admin_1", Email: "root@example.com", PasswordHash: dbHash})
	svc, _ = newAuthSvc(repo, BootstrapAdmin{Email: "root@example.com", PasswordHash: hash})

	if _, _, err := svc.Login(context.Background(), "root@example.com", "bootpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("bootstrap must not shadow a stored account, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "root@example.com", "dbpass"); err != nil {
		t.Fatalf("stored account login failed: %v", err)
	}
}
