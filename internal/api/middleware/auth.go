// Package middleware provides the Echo middleware for the events API.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/institutpi/events-api/internal/token"
)

// Context keys set by Auth for downstream handlers.
const (
	ContextUserID = "userId"
	ContextEmail  = "email"
)

// Auth validates the session token and injects the claims into context.
// The Authorization header may carry either "Bearer <token>" or the bare
// token; both forms are accepted.
func Auth(issuer *token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			raw := authHeader
			if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				raw = parts[1]
			}

			claims, err := issuer.Verify(raw, time.Now().UTC())
			if err != nil {
				// All verification failures look the same to the caller.
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextEmail, claims.Email)

			return next(c)
		}
	}
}
