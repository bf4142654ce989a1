package mail

import (
	"fmt"

	"github.com/institutpi/events-api/internal/core/ports"
)

// render produces the subject and HTML body for a job. Email copy is in
// Czech, matching the audience of the events site.
func render(job ports.EmailJob) (subject, html string) {
	switch job.Type {
	case ports.EmailReminder:
		subject = fmt.Sprintf("Připomínka: %s už zítra", job.EventTitle)
		html = fmt.Sprintf(`<p>Dobrý den,</p>
<p>připomínáme, že akce <strong>%s</strong> se koná %s od %s.</p>
<p>Místo konání: %s, %s</p>
<p>Těšíme se na vás!</p>`,
			job.EventTitle, job.EventDate, job.StartTime,
			job.VenueName, job.VenueAddress)
	default:
		subject = fmt.Sprintf("Potvrďte svou registraci: %s", job.EventTitle)
		html = fmt.Sprintf(`<p>Dobrý den,</p>
<p>děkujeme za registraci na akci <strong>%s</strong> (%s od %s).</p>
<p>Místo konání: %s, %s</p>
<p>Registraci prosím dokončete kliknutím na odkaz:</p>
<p><a href="%s">Potvrdit registraci</a></p>
<p>Pokud jste se neregistrovali, tento e-mail ignorujte.</p>`,
			job.EventTitle, job.EventDate, job.StartTime,
			job.VenueName, job.VenueAddress, job.ConfirmationURL)
	}
	return subject, html
}
