package service

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-services-backend/internal/mailer"
	"resume-services-backend/internal/model"
)

type steppableClock struct {
	now time.Time
}

func (c *steppableClock) Now() time.Time {
	return c.now
}

func (c *steppableClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func alertFixture(emailType string) mailer.FailureAlertData {
	return mailer.FailureAlertData{
		EmailType:      emailType,
		RecipientEmail: "jess@example.com",
		Subject:        "Order Confirmation",
		ErrorMessage:   "smtp timeout",
	}
}

func TestAlert_CooldownSuppressesSameType(t *testing.T) {
	clock := &steppableClock{now: testNow()}
	mail := &mockMailer{configured: true}
	alerter := NewFailureAlerter(mail, "admin@example.com", clock.Now, zerolog.Nop())

	assert.True(t, alerter.Alert(alertFixture(model.EmailTypeOrderConfirmation)))

	clock.Advance(10 * time.Minute)
	assert.False(t, alerter.Alert(alertFixture(model.EmailTypeOrderConfirmation)))
	assert.Len(t, mail.sentMessages(), 1, "cooldown must suppress the second alert")

	// A different email type has its own cooldown window.
	assert.True(t, alerter.Alert(alertFixture(model.EmailTypeReviewRequest)))
	assert.Len(t, mail.sentMessages(), 2)
}

func TestAlert_SendsAgainAfterCooldown(t *testing.T) {
	clock := &steppableClock{now: testNow()}
	mail := &mockMailer{configured: true}
	alerter := NewFailureAlerter(mail, "admin@example.com", clock.Now, zerolog.Nop())

	require.True(t, alerter.Alert(alertFixture(model.EmailTypeOrderConfirmation)))

	clock.Advance(time.Hour)
	assert.True(t, alerter.Alert(alertFixture(model.EmailTypeOrderConfirmation)))
	assert.Len(t, mail.sentMessages(), 2)
}

func TestAlert_UnconfiguredMailerNeverSends(t *testing.T) {
	clock := &steppableClock{now: testNow()}
	alerter := NewFailureAlerter(&mockMailer{configured: false}, "admin@example.com", clock.Now, zerolog.Nop())

	assert.False(t, alerter.Alert(alertFixture(model.EmailTypeOrderConfirmation)))
}

func TestAlert_SendFailureDoesNotStartCooldown(t *testing.T) {
	clock := &steppableClock{now: testNow()}
	mail := &mockMailer{configured: true, sendErr: errors.New("smtp down")}
	alerter := NewFailureAlerter(mail, "admin@example.com", clock.Now, zerolog.Nop())

	assert.False(t, alerter.Alert(alertFixture(model.EmailTypeOrderConfirmation)))

	// The failed attempt left no cooldown, so a recovered transport alerts.
	mail.sendErr = nil
	assert.True(t, alerter.Alert(alertFixture(model.EmailTypeOrderConfirmation)))
}

func TestCooldownStatus(t *testing.T) {
	clock := &steppableClock{now: testNow()}
	mail := &mockMailer{configured: true}
	alerter := NewFailureAlerter(mail, "admin@example.com", clock.Now, zerolog.Nop())

	require.True(t, alerter.Alert(alertFixture(model.EmailTypeOrderConfirmation)))
	clock.Advance(15 * time.Minute)

	status := alerter.CooldownStatus()
	assert.Equal(t, 45*time.Minute, status[model.EmailTypeOrderConfirmation])
}
