package mailer

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"resume-services-backend/internal/config"
)

// ErrNotConfigured is returned when SMTP credentials are absent. Callers
// decide whether that is a silent no-op (most transactional mail) or a real
// failure (resume-later, test email).
var ErrNotConfigured = errors.New("smtp transport not configured")

type Message struct {
	To       string
	ToName   string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer is the single SMTP transport every transactional email goes through.
type Mailer interface {
	Send(msg Message) error
	Configured() bool
}

type smtpMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	enabled  bool
}

func New(cfg config.SMTP) Mailer {
	m := &smtpMailer{
		from:     cfg.User,
		fromName: cfg.FromName,
		enabled:  cfg.Configured(),
	}
	if m.enabled {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return m
}

func (m *smtpMailer) Configured() bool {
	return m.enabled
}

func (m *smtpMailer) Send(msg Message) error {
	if !m.enabled {
		return ErrNotConfigured
	}

	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.from, m.fromName)
	if msg.ToName != "" {
		gm.SetAddressHeader("To", msg.To, msg.ToName)
	} else {
		gm.SetHeader("To", msg.To)
	}
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		gm.AddAlternative("text/html", msg.HTMLBody)
	}

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
