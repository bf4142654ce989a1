package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/institutpi/events-api/internal/core/domain"
)

// renderICS builds a minimal single-event iCalendar document. Times are
// interpreted in the Prague timezone the venue addresses live in and
// emitted as UTC instants.
func renderICS(event *domain.Event, baseURL string) ([]byte, error) {
	loc, err := time.LoadLocation("Europe/Prague")
	if err != nil {
		loc = time.UTC
	}

	start, err := event.StartsAt(loc)
	if err != nil {
		return nil, fmt.Errorf("event %s has unparseable date/time: %w", event.ID, err)
	}
	end := start.Add(time.Duration(event.DurationMinutes) * time.Minute)

	location := event.VenueAddress
	if event.VenueName != "" {
		location = event.VenueName + ", " + event.VenueAddress
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Institut Pi//Event Management//CS",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + event.ID + "@akce.institutpi.cz",
		"DTSTAMP:" + icsTime(time.Now().UTC()),
		"DTSTART:" + icsTime(start),
		"DTEND:" + icsTime(end),
		"SUMMARY:" + icsEscape(event.Title),
		"DESCRIPTION:" + icsEscape(event.ShortDescription),
		"LOCATION:" + icsEscape(location),
		"URL:" + baseURL + "/akce/" + event.Slug,
		"STATUS:CONFIRMED",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return []byte(strings.Join(lines, "\r\n") + "\r\n"), nil
}

func icsTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func icsEscape(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return r.Replace(s)
}
