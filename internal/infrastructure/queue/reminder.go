package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/institutpi/events-api/internal/core/domain"
	"github.com/institutpi/events-api/internal/core/ports"
)

const reminderPageSize = 200

// Reminder periodically enqueues reminder email for events happening the
// next day. It scans once per interval; resending is bounded by the scan
// interval, which is acceptable for a daily reminder.
type Reminder struct {
	events   ports.EventRepository
	regs     ports.RegistrationRepository
	mail     ports.EmailDispatcher
	interval time.Duration
	log      zerolog.Logger
}

func NewReminder(events ports.EventRepository, regs ports.RegistrationRepository, mail ports.EmailDispatcher, interval time.Duration, log zerolog.Logger) *Reminder {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Reminder{events: events, regs: regs, mail: mail, interval: interval, log: log}
}

// Start runs the reminder loop until ctx is cancelled.
func (r *Reminder) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.run(ctx)
			}
		}
	}()
}

func (r *Reminder) run(ctx context.Context) {
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	events, _, err := r.events.List(ctx, ports.ListEventsFilter{
		Status: string(domain.StatusPublished),
		Today:  tomorrow,
		Limit:  reminderPageSize,
	})
	if err != nil {
		r.log.Error().Err(err).Msg("reminder scan failed")
		return
	}

	for _, event := range events {
		if event.EventDate != tomorrow {
			continue
		}
		regs, err := r.regs.ListByEvent(ctx, event.ID, false)
		if err != nil {
			r.log.Error().Err(err).
				Str("event_id", event.ID).
				Msg("reminder registration lookup failed")
			continue
		}
		for _, reg := range regs {
			r.mail.Enqueue(ports.EmailJob{
				Type:         ports.EmailReminder,
				To:           reg.Email,
				EventTitle:   event.Title,
				EventDate:    event.EventDate,
				StartTime:    event.StartTime,
				VenueName:    event.VenueName,
				VenueAddress: event.VenueAddress,
			})
		}
		r.log.Info().
			Str("event_id", event.ID).
			Int("recipients", len(regs)).
			Msg("reminder emails enqueued")
	}
}
