package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/institutpi/events-api/internal/core/domain"
	"github.com/institutpi/events-api/internal/core/ports"
)

type stubRegService struct {
	registerID  string
	registerErr error
	confirm     *ports.ConfirmationResult
	confirmErr  error

	gotEventID string
	gotEmail   string
	gotToken   string
}

func (s *stubRegService) Register(_ context.Context, eventID, email string) (string, error) {
	s.gotEventID, s.gotEmail = eventID, email
	return s.registerID, s.registerErr
}

func (s *stubRegService) Confirm(_ context.Context, token string) (*ports.ConfirmationResult, error) {
	s.gotToken = token
	return s.confirm, s.confirmErr
}

func (s *stubRegService) ListByEvent(context.Context, string, bool) (*ports.RegistrationList, error) {
	return &ports.RegistrationList{}, nil
}

func (s *stubRegService) UpdatePaymentStatus(context.Context, string, string) error {
	return nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestRegister_Created(t *testing.T) {
	e := newTestEcho()
	svc := &stubRegService{registerID: "reg_1"}
	h := NewRegistrationHandler(svc, "https://akce.example.cz")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"alice@example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("evt_1")

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.gotEventID != "evt_1" || svc.gotEmail != "alice@example.com" {
		t.Fatalf("service called with %q / %q", svc.gotEventID, svc.gotEmail)
	}
	if !strings.Contains(rec.Body.String(), "reg_1") {
		t.Fatalf("response missing registration id: %s", rec.Body.String())
	}
}

func TestRegister_InvalidEmail(t *testing.T) {
	e := newTestEcho()
	h := NewRegistrationHandler(&stubRegService{}, "https://akce.example.cz")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("evt_1")

	err := h.Register(c)
	if err == nil {
		t.Fatalf("expected error for invalid email")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestConfirm_RedirectsToLanding(t *testing.T) {
	e := newTestEcho()
	svc := &stubRegService{confirm: &ports.ConfirmationResult{
		Status:    ports.ConfirmationApplied,
		EventSlug: "debata-o-energetice",
	}}
	h := NewRegistrationHandler(svc, "https://akce.example.cz")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("token")
	c.SetParamValues("sometoken")

	if err := h.Confirm(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	location := rec.Header().Get(echo.HeaderLocation)
	if location != "https://akce.example.cz/potvrzeni?status=confirmed&event=debata-o-energetice" {
		t.Fatalf("unexpected redirect: %s", location)
	}
	if svc.gotToken != "sometoken" {
		t.Fatalf("service called with token %q", svc.gotToken)
	}
}

func TestConfirm_UnknownTokenRedirectsInvalid(t *testing.T) {
	e := newTestEcho()
	svc := &stubRegService{confirmErr: domain.ErrRegistrationNotFound}
	h := NewRegistrationHandler(svc, "https://akce.example.cz")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("token")
	c.SetParamValues("bogus")

	if err := h.Confirm(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	location := rec.Header().Get(echo.HeaderLocation)
	if location != "https://akce.example.cz/potvrzeni?status=invalid" {
		t.Fatalf("unexpected redirect: %s", location)
	}
}
