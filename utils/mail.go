// utils/mail.go
package utils

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/reelframe/reelframe_backend/config"
)

// Mailer delivers contact form submissions over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewMailer builds a mailer from the SMTP configuration. When mail is
// not configured the mailer is still usable; Send just reports the
// missing configuration as the delivery failure.
func NewMailer(cfg *config.Config) *Mailer {
	m := &Mailer{
		from: cfg.MailFrom,
		to:   cfg.MailRecipient,
	}
	if cfg.MailConfigured() {
		m.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	}
	return m
}

// SendContactMessage forwards a contact form submission to the site
// owner's configured recipient address.
func (m *Mailer) SendContactMessage(subject, name, email, message string) error {
	if m.dialer == nil {
		return errors.New("mail transport is not configured")
	}

	body := fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", name, email, message)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", subject)
	if email != "" {
		msg.SetHeader("Reply-To", email)
	}
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
