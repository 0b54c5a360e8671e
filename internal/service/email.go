package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"resume-services-backend/internal/mailer"
	"resume-services-backend/internal/model"
	"resume-services-backend/internal/repository"
)

// EmailService is the send-log-alert pipeline every transactional email goes
// through. Each attempt is recorded in the email log; failures additionally
// trigger the rate-limited admin alert. When SMTP is not configured most
// sends degrade to a logged no-op; the few paths whose whole purpose is the
// email surface that as an error to the caller.
type EmailService interface {
	SendOrderConfirmation(ctx context.Context, data mailer.OrderEmailData) error
	SendAdminOrderNotification(ctx context.Context, data mailer.OrderEmailData) error
	SendIntakeConfirmation(ctx context.Context, clientEmail, clientName, purchasedService string) error
	SendIntakeAdminNotification(ctx context.Context, clientName, clientEmail, purchasedService, transactionID string, intakeID uint) error
	SendResumeLater(ctx context.Context, clientEmail, clientName, resumeToken string) error
	SendReviewRequest(ctx context.Context, clientEmail string, data mailer.ReviewRequestData) error
	SendContactNotification(ctx context.Context, data mailer.ContactFormData) error
	SendLeadMagnetGuide(ctx context.Context, email, name string) error
	SendTestEmail(ctx context.Context, recipient string) error

	RecentLogs(ctx context.Context, limit int) ([]*model.EmailLog, error)
	LogsByType(ctx context.Context, emailType string, limit int) ([]*model.EmailLog, error)
	LogsByRecipient(ctx context.Context, email string, limit int) ([]*model.EmailLog, error)
	Statistics(ctx context.Context, days int) (*EmailStatistics, error)
}

type EmailStatistics struct {
	Total          int               `json:"total"`
	Sent           int               `json:"sent"`
	Failed         int               `json:"failed"`
	Pending        int               `json:"pending"`
	ByType         map[string]int    `json:"byType"`
	RecentFailures []*model.EmailLog `json:"recentFailures"`
}

type emailServiceImpl struct {
	mailer       mailer.Mailer
	emailLogRepo repository.EmailLogRepository
	alerter      FailureAlerter
	siteURL      string
	adminEmail   string
	contactEmail string
	log          zerolog.Logger
}

func NewEmailService(
	m mailer.Mailer,
	emailLogRepo repository.EmailLogRepository,
	alerter FailureAlerter,
	siteURL string,
	adminEmail string,
	contactEmail string,
	log zerolog.Logger,
) EmailService {
	return &emailServiceImpl{
		mailer:       m,
		emailLogRepo: emailLogRepo,
		alerter:      alerter,
		siteURL:      siteURL,
		adminEmail:   adminEmail,
		contactEmail: contactEmail,
		log:          log,
	}
}

func (s *emailServiceImpl) logAttempt(ctx context.Context, emailType string, msg mailer.Message, sendErr error, metadata map[string]interface{}) {
	entry := &model.EmailLog{
		EmailType:      emailType,
		RecipientEmail: msg.To,
		RecipientName:  msg.ToName,
		Subject:        msg.Subject,
		Status:         model.EmailStatusSent,
	}
	if sendErr != nil {
		entry.Status = model.EmailStatusFailed
		entry.ErrorMessage = sendErr.Error()
	}
	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			entry.Metadata = datatypes.JSON(raw)
		}
	}

	if err := s.emailLogRepo.Create(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("email_type", emailType).Msg("failed to log email attempt")
	}
}

// deliver attempts the send and runs the log + alert pipeline. An
// unconfigured transport is a silent no-op: nothing is logged to the
// database and no alert fires, but the caller still sees ErrNotConfigured
// so the paths that must propagate can.
func (s *emailServiceImpl) deliver(ctx context.Context, emailType string, msg mailer.Message, metadata map[string]interface{}) error {
	if !s.mailer.Configured() {
		s.log.Warn().Str("email_type", emailType).Msg("smtp not configured, skipping email")
		return mailer.ErrNotConfigured
	}

	err := s.mailer.Send(msg)
	s.logAttempt(ctx, emailType, msg, err, metadata)

	if err != nil {
		s.log.Error().Err(err).
			Str("email_type", emailType).
			Str("recipient", msg.To).
			Msg("email delivery failed")

		s.alerter.Alert(mailer.FailureAlertData{
			EmailType:      emailType,
			RecipientEmail: msg.To,
			RecipientName:  msg.ToName,
			Subject:        msg.Subject,
			ErrorMessage:   err.Error(),
			AttemptedAt:    time.Now(),
		})
		return fmt.Errorf("send %s email: %w", emailType, err)
	}

	s.log.Info().
		Str("email_type", emailType).
		Str("recipient", msg.To).
		Msg("email sent")
	return nil
}

// swallowNotConfigured turns the unconfigured-transport case into success for
// the best-effort paths.
func swallowNotConfigured(err error) error {
	if errors.Is(err, mailer.ErrNotConfigured) {
		return nil
	}
	return err
}

func (s *emailServiceImpl) SendOrderConfirmation(ctx context.Context, data mailer.OrderEmailData) error {
	msg := mailer.OrderConfirmation(data)
	err := s.deliver(ctx, model.EmailTypeOrderConfirmation, msg, map[string]interface{}{
		"orderId": data.OrderID,
	})
	return swallowNotConfigured(err)
}

func (s *emailServiceImpl) SendAdminOrderNotification(ctx context.Context, data mailer.OrderEmailData) error {
	msg := mailer.AdminOrderNotification(s.adminEmail, data)
	err := s.deliver(ctx, model.EmailTypeOrderAdminNotification, msg, map[string]interface{}{
		"orderId": data.OrderID,
	})
	return swallowNotConfigured(err)
}

func (s *emailServiceImpl) SendIntakeConfirmation(ctx context.Context, clientEmail, clientName, purchasedService string) error {
	msg := mailer.IntakeConfirmation(clientEmail, clientName, purchasedService)
	return swallowNotConfigured(s.deliver(ctx, model.EmailTypeIntakeConfirmation, msg, nil))
}

func (s *emailServiceImpl) SendIntakeAdminNotification(ctx context.Context, clientName, clientEmail, purchasedService, transactionID string, intakeID uint) error {
	msg := mailer.IntakeAdminNotification(s.adminEmail, clientName, clientEmail, purchasedService, transactionID, intakeID)
	err := s.deliver(ctx, model.EmailTypeIntakeAdminNotice, msg, map[string]interface{}{
		"intakeRecordId": intakeID,
	})
	return swallowNotConfigured(err)
}

// SendResumeLater propagates every failure, including an unconfigured
// transport: the email is this path's entire purpose.
func (s *emailServiceImpl) SendResumeLater(ctx context.Context, clientEmail, clientName, resumeToken string) error {
	msg := mailer.ResumeLater(s.siteURL, clientEmail, clientName, resumeToken)
	return s.deliver(ctx, model.EmailTypeIntakeResumeLater, msg, nil)
}

func (s *emailServiceImpl) SendReviewRequest(ctx context.Context, clientEmail string, data mailer.ReviewRequestData) error {
	msg := mailer.ReviewRequest(clientEmail, data)
	return s.deliver(ctx, model.EmailTypeReviewRequest, msg, nil)
}

func (s *emailServiceImpl) SendContactNotification(ctx context.Context, data mailer.ContactFormData) error {
	msg := mailer.ContactNotification(s.contactEmail, data, time.Now())
	return swallowNotConfigured(s.deliver(ctx, model.EmailTypeContactForm, msg, nil))
}

func (s *emailServiceImpl) SendLeadMagnetGuide(ctx context.Context, email, name string) error {
	msg := mailer.LeadMagnetGuide(email, name, s.siteURL)
	return swallowNotConfigured(s.deliver(ctx, model.EmailTypeLeadMagnet, msg, nil))
}

// SendTestEmail propagates failures so the admin sees whether the transport
// works.
func (s *emailServiceImpl) SendTestEmail(ctx context.Context, recipient string) error {
	msg := mailer.TestEmail(recipient)
	return s.deliver(ctx, model.EmailTypeTest, msg, nil)
}

func (s *emailServiceImpl) RecentLogs(ctx context.Context, limit int) ([]*model.EmailLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.emailLogRepo.Recent(ctx, limit)
}

func (s *emailServiceImpl) LogsByType(ctx context.Context, emailType string, limit int) ([]*model.EmailLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.emailLogRepo.ByType(ctx, emailType, limit)
}

func (s *emailServiceImpl) LogsByRecipient(ctx context.Context, email string, limit int) ([]*model.EmailLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.emailLogRepo.ByRecipient(ctx, email, limit)
}

func (s *emailServiceImpl) Statistics(ctx context.Context, days int) (*EmailStatistics, error) {
	if days <= 0 {
		days = 30
	}
	logs, err := s.emailLogRepo.Since(ctx, time.Now().AddDate(0, 0, -days))
	if err != nil {
		return nil, fmt.Errorf("load email logs: %w", err)
	}

	stats := &EmailStatistics{
		Total:  len(logs),
		ByType: make(map[string]int),
	}
	for _, entry := range logs {
		switch entry.Status {
		case model.EmailStatusSent:
			stats.Sent++
		case model.EmailStatusFailed:
			stats.Failed++
			if len(stats.RecentFailures) < 10 {
				stats.RecentFailures = append(stats.RecentFailures, entry)
			}
		case model.EmailStatusPending:
			stats.Pending++
		}
		stats.ByType[entry.EmailType]++
	}
	return stats, nil
}
