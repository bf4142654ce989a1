// Package api builds the HTTP surface of the events service.
package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/institutpi/events-api/docs"
	"github.com/institutpi/events-api/internal/api/handler"
	"github.com/institutpi/events-api/internal/api/middleware"
	"github.com/institutpi/events-api/internal/core/ports"
	"github.com/institutpi/events-api/internal/core/service"
	"github.com/institutpi/events-api/internal/infrastructure/config"
	"github.com/institutpi/events-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/institutpi/events-api/internal/infrastructure/db/redis"
	"github.com/institutpi/events-api/internal/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, rdb *redis.Client, cfg *config.Config, issuer *token.Issuer, mail ports.EmailDispatcher, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("events"))

	// --- Dependencies ---
	eventRepo := postgres.NewEventRepository(db)
	regRepo := postgres.NewRegistrationRepository(db)
	authRepo := postgres.NewAuthRepository(db)

	eventService := service.NewEventService(eventRepo, cfg.BaseURL, log)
	regService := service.NewRegistrationService(eventRepo, regRepo, mail, cfg.BaseURL, log)
	authService := service.NewAuthService(authRepo, issuer, service.BootstrapAdmin{
		Email:        cfg.Admin.Email,
		PasswordHash: cfg.Admin.PasswordHash,
	}, log)

	eventHandler := handler.NewEventHandler(eventService)
	regHandler := handler.NewRegistrationHandler(regService, cfg.BaseURL)
	authHandler := handler.NewAuthHandler(authService)

	limiter := redisinfra.NewRateLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	rateLimit := middleware.RateLimit(limiter, log)
	requireAuth := middleware.Auth(issuer)

	// --- Public routes ---
	e.GET("/api/events", eventHandler.ListPublic)
	e.GET("/api/events/archive", eventHandler.ListArchive)
	e.GET("/api/events/:slug", eventHandler.GetBySlug)
	e.GET("/api/events/:id/calendar", eventHandler.Calendar)
	e.POST("/api/events/:id/register", regHandler.Register, rateLimit)
	e.GET("/api/confirm/:token", regHandler.Confirm)

	// --- Admin routes ---
	e.POST("/api/admin/login", authHandler.Login)

	admin := e.Group("/api/admin", requireAuth)
	admin.GET("/events", eventHandler.AdminList)
	admin.POST("/events", eventHandler.Create)
	admin.GET("/events/:id", eventHandler.AdminGet)
	admin.PUT("/events/:id", eventHandler.Update)
	admin.DELETE("/events/:id", eventHandler.Delete)
	admin.GET("/events/:id/registrations", regHandler.ListByEvent)
	admin.PUT("/registrations/:id/payment", regHandler.UpdatePaymentStatus)
	admin.GET("/stats", eventHandler.Stats)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
