// Package mail sends transactional email over SMTP. When no SMTP host is
// configured the mailer degrades to logging the message, which keeps local
// development and tests free of a mail server.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"lapados-backend/internal/config"
	logger "lapados-backend/pkg/logging"
)

type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	addr string
	from string
	auth smtp.Auth
}

type logMailer struct{}

// NewMailer picks the SMTP transport when configured, the log transport
// otherwise.
func NewMailer(cfg config.SMTPConfig) Mailer {
	if cfg.Host == "" {
		logger.Info("SMTP not configured, mail will be logged only")
		return &logMailer{}
	}
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &smtpMailer{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from: cfg.From,
		auth: auth,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func (m *logMailer) Send(to, subject, body string) error {
	logger.Info("mail (not sent): to=%s subject=%q", to, subject)
	return nil
}
