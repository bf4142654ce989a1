package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/institutpi/events-api/internal/api/metrics"
	"github.com/institutpi/events-api/internal/core/domain"
	"github.com/institutpi/events-api/internal/core/ports"
)

// RegistrationHandler serves the public registration flow and the admin
// registration views.
type RegistrationHandler struct {
	regs    ports.RegistrationService
	baseURL string
}

func NewRegistrationHandler(regs ports.RegistrationService, baseURL string) *RegistrationHandler {
	return &RegistrationHandler{regs: regs, baseURL: baseURL}
}

type registerRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type registerResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Register handles POST /api/events/:id/register.
//
// @Summary      Register an email for an event
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Event ID"
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/events/{id}/register [post]
func (h *RegistrationHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsRejectedTotal.WithLabelValues("invalid_email").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.regs.Register(c.Request().Context(), c.Param("id"), req.Email)
	if err != nil {
		metrics.RegistrationsRejectedTotal.WithLabelValues(rejectionReason(err)).Inc()
		return err
	}

	metrics.RegistrationsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		ID:      id,
		Message: "registration created, confirmation email sent",
	})
}

// Confirm handles GET /api/confirm/:token. The link arrives from an email
// client, so the outcome is a redirect to the confirmation landing page
// rather than a JSON body.
//
// @Summary      Confirm a registration
// @Tags         registrations
// @Param        token  path  string  true  "Confirmation token"
// @Success      303
// @Router       /api/confirm/{token} [get]
func (h *RegistrationHandler) Confirm(c echo.Context) error {
	result, err := h.regs.Confirm(c.Request().Context(), c.Param("token"))
	if errors.Is(err, domain.ErrRegistrationNotFound) {
		metrics.ConfirmationsTotal.WithLabelValues("not_found").Inc()
		return c.Redirect(http.StatusSeeOther, h.landingURL("invalid", ""))
	}
	if err != nil {
		return err
	}

	metrics.ConfirmationsTotal.WithLabelValues(string(result.Status)).Inc()
	return c.Redirect(http.StatusSeeOther, h.landingURL(string(result.Status), result.EventSlug))
}

// ListByEvent handles GET /api/admin/events/:id/registrations.
//
// @Summary      List registrations for an event (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true   "Event ID"
// @Param        all  query     bool    false  "Include unconfirmed registrations"
// @Success      200  {object}  ports.RegistrationList
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/events/{id}/registrations [get]
func (h *RegistrationHandler) ListByEvent(c echo.Context) error {
	includeUnconfirmed := c.QueryParam("all") == "true"
	list, err := h.regs.ListByEvent(c.Request().Context(), c.Param("id"), includeUnconfirmed)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

type paymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=pending paid waived"`
}

// UpdatePaymentStatus handles PUT /api/admin/registrations/:id/payment.
//
// @Summary      Set the payment status of a registration (admin)
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string                true  "Registration ID"
// @Param        body  body  paymentStatusRequest  true  "New payment status"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/registrations/{id}/payment [put]
func (h *RegistrationHandler) UpdatePaymentStatus(c echo.Context) error {
	var req paymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.regs.UpdatePaymentStatus(c.Request().Context(), c.Param("id"), req.PaymentStatus); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RegistrationHandler) landingURL(status, slug string) string {
	u := h.baseURL + "/potvrzeni?status=" + url.QueryEscape(status)
	if slug != "" {
		u += "&event=" + url.QueryEscape(slug)
	}
	return u
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_email"
	case errors.Is(err, domain.ErrEventNotFound):
		return "event_not_found"
	case errors.Is(err, domain.ErrEventNotRegistrable):
		return "not_registrable"
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return "duplicate"
	default:
		return "internal"
	}
}
