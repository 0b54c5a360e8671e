package service

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"resume-services-backend/internal/mailer"
)

const alertCooldown = time.Hour

// Clock lets tests control time. Production wiring passes time.Now.
type Clock func() time.Time

// FailureAlerter emails an admin when transactional mail delivery fails,
// at most once per email type per rolling cooldown window. The cooldown
// state is in-process only and resets on restart.
type FailureAlerter interface {
	Alert(data mailer.FailureAlertData) bool
	CooldownStatus() map[string]time.Duration
}

type failureAlerter struct {
	mailer     mailer.Mailer
	adminEmail string
	now        Clock
	log        zerolog.Logger

	mu         sync.Mutex
	lastAlerts map[string]time.Time
}

func NewFailureAlerter(m mailer.Mailer, adminEmail string, now Clock, log zerolog.Logger) FailureAlerter {
	return &failureAlerter{
		mailer:     m,
		adminEmail: adminEmail,
		now:        now,
		log:        log,
		lastAlerts: make(map[string]time.Time),
	}
}

func (a *failureAlerter) shouldAlert(emailType string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	last, ok := a.lastAlerts[emailType]
	if !ok {
		return true
	}
	return a.now().Sub(last) >= alertCooldown
}

func (a *failureAlerter) recordAlert(emailType string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastAlerts[emailType] = a.now()
}

// Alert reports whether a notification was actually sent. A failure to send
// the alert itself is only logged; alerting about alert failures would
// cascade noise.
func (a *failureAlerter) Alert(data mailer.FailureAlertData) bool {
	if !a.shouldAlert(data.EmailType) {
		a.log.Debug().Str("email_type", data.EmailType).Msg("failure alert skipped, cooldown active")
		return false
	}

	if !a.mailer.Configured() {
		a.log.Warn().Msg("smtp not configured, cannot send failure alert")
		return false
	}

	msg := mailer.FailureAlert(a.adminEmail, data)
	if err := a.mailer.Send(msg); err != nil {
		a.log.Error().Err(err).Str("email_type", data.EmailType).Msg("failed to send failure alert")
		return false
	}

	a.recordAlert(data.EmailType)
	a.log.Info().Str("email_type", data.EmailType).Msg("admin notified about email failure")
	return true
}

func (a *failureAlerter) CooldownStatus() map[string]time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()

	status := make(map[string]time.Duration, len(a.lastAlerts))
	for emailType, last := range a.lastAlerts {
		remaining := alertCooldown - a.now().Sub(last)
		if remaining < 0 {
			remaining = 0
		}
		status[emailType] = remaining
	}
	return status
}
