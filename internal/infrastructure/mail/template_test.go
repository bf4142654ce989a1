package mail

import (
	"strings"
	"testing"

	"github.com/institutpi/events-api/internal/core/ports"
)

func TestRender_Confirmation(t *testing.T) {
	subject, html := render(ports.EmailJob{
		Type:            ports.EmailConfirmation,
		To:              "alice@example.com",
		EventTitle:      "Debata o energetice",
		EventDate:       "2026-09-10",
		StartTime:       "18:00",
		VenueName:       "Kampus Hybernská",
		VenueAddress:    "Hybernská 4, Praha",
		ConfirmationURL: "https://akce.example.cz/api/confirm/abc123",
	})

	if !strings.Contains(subject, "Debata o energetice") {
		t.Fatalf("subject missing event title: %s", subject)
	}
	if !strings.Contains(html, `href="https://akce.example.cz/api/confirm/abc123"`) {
		t.Fatalf("body missing confirmation link:\n%s", html)
	}
	if !strings.Contains(html, "Kampus Hybernská") {
		t.Fatalf("body missing venue:\n%s", html)
	}
}

func TestRender_Reminder(t *testing.T) {
	subject, html := render(ports.EmailJob{
		Type:       ports.EmailReminder,
		EventTitle: "Debata o energetice",
		EventDate:  "2026-09-10",
		StartTime:  "18:00",
	})

	if !strings.Contains(subject, "Připomínka") {
		t.Fatalf("reminder subject unexpected: %s", subject)
	}
	if strings.Contains(html, "confirm") {
		t.Fatalf("reminder must not carry a confirmation link:\n%s", html)
	}
}
