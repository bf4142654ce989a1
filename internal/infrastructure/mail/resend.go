// Package mail delivers transactional email through the Resend HTTP API.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/institutpi/events-api/internal/core/ports"
)

const (
	resendEndpoint = "https://api.resend.com/emails"
	sendTimeout    = 15 * time.Second
)

// ResendSender sends email through the Resend REST API.
type ResendSender struct {
	apiKey string
	from   string
	client *http.Client
	log    zerolog.Logger
}

// NewResendSender creates a sender authenticating with apiKey and sending
// from the given address.
func NewResendSender(apiKey, from string, log zerolog.Logger) *ResendSender {
	return &ResendSender{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: sendTimeout},
		log:    log,
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send renders the job and posts it to Resend. Non-2xx responses are errors.
func (s *ResendSender) Send(ctx context.Context, job ports.EmailJob) error {
	subject, html := render(job)

	body, err := json.Marshal(resendRequest{
		From:    s.from,
		To:      []string{job.To},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("resend responded %d: %s", resp.StatusCode, detail)
	}

	s.log.Debug().
		Str("to", job.To).
		Str("type", string(job.Type)).
		Msg("email delivered")
	return nil
}

// LogSender logs email jobs instead of delivering them. Used when no API key
// is configured, typically in local development.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, job ports.EmailJob) error {
	subject, _ := render(job)
	s.log.Info().
		Str("to", job.To).
		Str("type", string(job.Type)).
		Str("subject", subject).
		Str("confirmation_url", job.ConfirmationURL).
		Msg("email delivery skipped (no API key)")
	return nil
}
