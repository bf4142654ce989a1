package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubLimiter struct {
	allowed bool
	err     error
	scopes  []string
}

func (l *stubLimiter) Allow(_ context.Context, scope string) (bool, error) {
	l.scopes = append(l.scopes, scope)
	return l.allowed, l.err
}

func runRateLimit(t *testing.T, limiter *stubLimiter) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := RateLimit(limiter, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusCreated)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestRateLimit_Allowed(t *testing.T) {
	limiter := &stubLimiter{allowed: true}
	rec, called := runRateLimit(t, limiter)
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(limiter.scopes) != 1 || limiter.scopes[0] != "203.0.113.7" {
		t.Fatalf("limiter not scoped to client IP: %v", limiter.scopes)
	}
}

func TestRateLimit_Blocked(t *testing.T) {
	rec, called := runRateLimit(t, &stubLimiter{allowed: false})
	if called {
		t.Fatalf("next must not run when over the limit")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestRateLimit_BackendDown(t *testing.T) {
	// A broken limiter backend fails open.
	rec, called := runRateLimit(t, &stubLimiter{err: errors.New("redis down")})
	if !called {
		t.Fatalf("request must pass when the limiter backend is down")
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}
