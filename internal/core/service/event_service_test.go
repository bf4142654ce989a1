package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/institutpi/events-api/internal/core/domain"
	"github.com/institutpi/events-api/internal/core/ports"
)

func newEventSvc(repo *stubEventRepo) *EventService {
	return NewEventService(repo, "https://akce.example.cz", zerolog.Nop())
}

func validCreateInput() ports.CreateEventInput {
	return ports.CreateEventInput{
		Title:            "Klimatická politika ČR",
		ShortDescription: "Debata o klimatu",
		EventDate:        "2026-10-01",
		StartTime:        "18:30",
		DurationMinutes:  90,
		VenueName:        "Kampus Hybernská",
		VenueAddress:     "Hybernská 4, Praha",
	}
}

func TestCreateEvent_Defaults(t *testing.T) {
	repo := newStubEventRepo()
	svc := newEventSvc(repo)

	event, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !strings.HasPrefix(event.ID, "evt_") {
		t.Fatalf("unexpected id: %s", event.ID)
	}
	if event.Slug != "klimaticka-politika-cr" {
		t.Fatalf("unexpected slug: %s", event.Slug)
	}
	if event.Status != domain.StatusDraft {
		t.Fatalf("new events must default to draft, got %s", event.Status)
	}
	if event.CurrentRegistrations != 0 {
		t.Fatalf("counter must start at zero")
	}
	if event.GuestNames == nil {
		t.Fatalf("guest names must be an empty slice, not nil")
	}
}

func TestCreateEvent_Validation(t *testing.T) {
	svc := newEventSvc(newStubEventRepo())

	cases := []func(*ports.CreateEventInput){
		func(in *ports.CreateEventInput) { in.Title = "" },
		func(in *ports.CreateEventInput) { in.ShortDescription = "" },
		func(in *ports.CreateEventInput) { in.EventDate = "" },
		func(in *ports.CreateEventInput) { in.StartTime = "" },
		func(in *ports.CreateEventInput) { in.VenueName = "" },
		func(in *ports.CreateEventInput) { in.VenueAddress = "" },
		func(in *ports.CreateEventInput) { in.DurationMinutes = 0 },
		func(in *ports.CreateEventInput) { in.MaxCapacity = intPtr(0) },
		func(in *ports.CreateEventInput) { in.Status = "archived" },
	}
	for i, mutate := range cases {
		in := validCreateInput()
		mutate(&in)
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestCreateEvent_PaidEventGetsQR(t *testing.T) {
	svc := newEventSvc(newStubEventRepo())

	in := validCreateInput()
	in.Title = "Vstupne test"
	in.IsPaid = true
	in.PriceCZK = 200
	in.PaymentAccount = "CZ6508000000192000145399"
	in.PaymentVariableSymbol = "20261001"

	event, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	want := "SPD*1.0*ACC:CZ6508000000192000145399*AM:200.00*CC:CZK*X-VS:20261001*MSG:Vstupne+test"
	if event.PaymentQRData != want {
		t.Fatalf("PaymentQRData = %s, want %s", event.PaymentQRData, want)
	}
}

func TestCreateEvent_SlugCollision(t *testing.T) {
	repo := newStubEventRepo()
	svc := newEventSvc(repo)

	if _, err := svc.Create(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), validCreateInput()); !errors.Is(err, domain.ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestUpdateEvent_RecomputesQR(t *testing.T) {
	repo := newStubEventRepo()
	svc := newEventSvc(repo)

	in := validCreateInput()
	in.IsPaid = true
	in.PriceCZK = 100
	in.PaymentAccount = "CZ6508000000192000145399"
	event, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newPrice := 250
	if err := svc.Update(context.Background(), event.ID, ports.UpdateEventInput{PriceCZK: &newPrice}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	updated, _ := repo.GetByID(context.Background(), event.ID)
	if !strings.Contains(updated.PaymentQRData, "*AM:250.00*") {
		t.Fatalf("QR not recomputed: %s", updated.PaymentQRData)
	}

	// Turning off payment clears the QR string.
	free := false
	if err := svc.Update(context.Background(), event.ID, ports.UpdateEventInput{IsPaid: &free}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	updated, _ = repo.GetByID(context.Background(), event.ID)
	if updated.PaymentQRData != "" {
		t.Fatalf("QR should be cleared for free events: %s", updated.PaymentQRData)
	}
}

func TestUpdateEvent_InvalidStatus(t *testing.T) {
	svc := newEventSvc(newStubEventRepo(publishedEvent("evt_1")))

	bad := "archived"
	if err := svc.Update(context.Background(), "evt_1", ports.UpdateEventInput{Status: &bad}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetPublic_HidesDrafts(t *testing.T) {
	draft := publishedEvent("evt_1")
	draft.Status = domain.StatusDraft
	svc := newEventSvc(newStubEventRepo(draft))

	if _, err := svc.GetPublic(context.Background(), draft.Slug); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound for a draft, got %v", err)
	}
}

func TestAdminList_RejectsUnknownStatus(t *testing.T) {
	svc := newEventSvc(newStubEventRepo())

	if _, err := svc.AdminList(context.Background(), ports.ListEventsInput{Status: "archived"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCalendar(t *testing.T) {
	event := publishedEvent("evt_1")
	event.ShortDescription = "Debata; s hosty"
	event.DurationMinutes = 90
	svc := newEventSvc(newStubEventRepo(event))

	file, err := svc.Calendar(context.Background(), "evt_1")
	if err != nil {
		t.Fatalf("Calendar returned error: %v", err)
	}
	if file.Filename != event.Slug+".ics" {
		t.Fatalf("unexpected filename: %s", file.Filename)
	}

	ics := string(file.Content)
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"UID:evt_1@akce.institutpi.cz",
		"SUMMARY:Debata o energetice",
		"DESCRIPTION:Debata\\; s hosty",
		"END:VCALENDAR",
	} {
		if !strings.Contains(ics, want) {
			t.Fatalf("ics missing %q:\n%s", want, ics)
		}
	}
	if !strings.Contains(ics, "\r\n") {
		t.Fatalf("ics must use CRLF line endings")
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Klimatická politika ČR": "klimaticka-politika-cr",
		"  Hello,   World!  ":    "hello-world",
		"Příliš žluťoučký kůň":   "prilis-zlutoucky-kun",
		"2026: Co nás čeká?":     "2026-co-nas-ceka",
		"---":                    "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
