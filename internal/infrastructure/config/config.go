package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	BaseURL   string `env:"BASE_URL,  default=http://localhost:8080"`

	Postgres  PostgresConfig
	Redis     RedisConfig
	Admin     AdminConfig
	Mail      MailConfig
	RateLimit RateLimitConfig
}

type PostgresConfig struct {
	URL string `env:"DATABASE_URL"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// AdminConfig bootstraps a fallback admin login when the admin_users table
// is empty. PasswordHash is a bcrypt hash, never a plaintext password.
type AdminConfig struct {
	Email        string `env:"ADMIN_EMAIL"`
	PasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

type MailConfig struct {
	ResendAPIKey string `env:"RESEND_API_KEY"`
	From         string `env:"EMAIL_FROM, default=akce@institutpi.cz"`
	Workers      int    `env:"EMAIL_WORKERS, default=4"`
}

type RateLimitConfig struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS, default=10"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW,   default=1m"`
}

// Load reads configuration from environment variables using go-envconfig.
// Secrets have no defaults: a missing JWT_SECRET or DATABASE_URL is a
// startup error, never a silently weaker deployment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.Postgres.URL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	return &cfg, nil
}
