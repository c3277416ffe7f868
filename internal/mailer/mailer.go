package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/abrarlaghari22/absrefer/internal/logger"
)

// Mailer sends notification emails. Delivery is best-effort: callers dispatch
// after the financial transaction commits and never treat a send failure as
// an operation failure.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer delivers mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPMailer builds a mailer for host:port. user may be empty for
// unauthenticated relays.
func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}
	return &SMTPMailer{
		addr: host + ":" + port,
		auth: auth,
		from: from,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		m.from, to, subject, htmlBody)

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes outgoing mail to the log instead of delivering it. Used
// in development when no SMTP relay is configured.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) Send(_ context.Context, to, subject, _ string) error {
	if logger.Log != nil {
		logger.Log.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("mailer: email suppressed (no SMTP configured)")
	}
	return nil
}
