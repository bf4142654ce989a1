// Command server runs the events API.
//
// @title        Institut Pi Events API
// @version      1.0
// @description  Event catalogue, public registration and admin backoffice.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/institutpi/events-api/internal/api"
	"github.com/institutpi/events-api/internal/core/ports"
	"github.com/institutpi/events-api/internal/infrastructure/config"
	"github.com/institutpi/events-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/institutpi/events-api/internal/infrastructure/db/redis"
	"github.com/institutpi/events-api/internal/infrastructure/mail"
	"github.com/institutpi/events-api/internal/infrastructure/queue"
	"github.com/institutpi/events-api/internal/token"
	"github.com/institutpi/events-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("configuration error")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- PostgreSQL ---
	db, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer db.Close()

	if err := postgres.Migrate(cfg.Postgres.URL); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	// --- Redis ---
	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Email pipeline ---
	var sender ports.EmailSender
	if cfg.Mail.ResendAPIKey != "" {
		sender = mail.NewResendSender(cfg.Mail.ResendAPIKey, cfg.Mail.From, log)
	} else {
		log.Warn().Msg("RESEND_API_KEY not set, email delivery disabled")
		sender = mail.NewLogSender(log)
	}

	dispatcher := queue.NewDispatcher(cfg.Mail.Workers, sender, log)
	dispatcher.Start(ctx)

	issuer := token.NewIssuer(cfg.JWTSecret)

	// --- Reminder loop ---
	reminder := queue.NewReminder(
		postgres.NewEventRepository(db),
		postgres.NewRegistrationRepository(db),
		dispatcher,
		24*time.Hour,
		log,
	)
	reminder.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, cfg, issuer, dispatcher, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
