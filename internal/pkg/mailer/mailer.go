package mailer

import "log"

// Mailer delivers transactional mail. SMTP wiring lives outside this
// service; the reminder job and tests use the log implementation.
type Mailer interface {
	SendResumeLink(email, name, resumeURL string) error
}

type LogMailer struct{}

func (LogMailer) SendResumeLink(email, name, resumeURL string) error {
	log.Printf("mailer: resume link for %s <%s>: %s", name, email, resumeURL)
	return nil
}
