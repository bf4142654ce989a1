package ports

import "context"

// EmailJobType distinguishes the templates the mail worker can render.
type EmailJobType string

const (
	EmailConfirmation EmailJobType = "confirmation"
	EmailReminder     EmailJobType = "reminder"
)

// EmailJob is the unit of work handed to the mail dispatcher.
type EmailJob struct {
	Type            EmailJobType
	To              string
	EventTitle      string
	EventDate       string
	StartTime       string
	VenueName       string
	VenueAddress    string
	ConfirmationURL string
}

// EmailDispatcher accepts jobs for asynchronous delivery. Enqueue must not
// block the caller's request; delivery failures never surface here.
type EmailDispatcher interface {
	Enqueue(job EmailJob)
}

// EmailSender performs the actual delivery of a single job.
type EmailSender interface {
	Send(ctx context.Context, job EmailJob) error
}
