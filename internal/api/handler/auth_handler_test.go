package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/institutpi/events-api/internal/core/domain"
)

type stubAuthService struct {
	token string
	user  *domain.AdminUser
	err   error
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (string, *domain.AdminUser, error) {
	return s.token, s.user, s.err
}

func TestLogin_ReturnsToken(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{
		token: "header.payload.sig",
		user:  &domain.AdminUser{ID: "admin_1", Email: "carol@example.com"},
	})

	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"email":"carol@example.com","password":"s3cret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "header.payload.sig") {
		t.Fatalf("response missing token: %s", body)
	}
	if strings.Contains(body, "password_hash") {
		t.Fatalf("response leaks password hash: %s", body)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{err: domain.ErrInvalidCredentials})

	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"email":"carol@example.com","password":"wrong"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Login(e.NewContext(req, rec))
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected the domain error to propagate, got %v", err)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"carol@example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Login(e.NewContext(req, rec))
	if err == nil {
		t.Fatalf("expected validation error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
