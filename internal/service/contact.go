package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"resume-services-backend/internal/mailer"
	"resume-services-backend/internal/model"
	"resume-services-backend/internal/repository"
)

var ErrContactNotFound = errors.New("contact submission not found")

type ContactFormInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ServiceInterest string `json:"serviceInterest"`
	Message         string `json:"message"`
}

type LeadMagnetInput struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

type ContactService interface {
	SubmitContactForm(ctx context.Context, input ContactFormInput) (*model.ContactSubmission, error)
	ListSubmissions(ctx context.Context) ([]*model.ContactSubmission, error)
	UpdateSubmissionStatus(ctx context.Context, id uint, status string) error
	CaptureLeadMagnet(ctx context.Context, input LeadMagnetInput) error
	ListSubscribers(ctx context.Context) ([]*model.LeadMagnetSubscriber, error)
}

type contactServiceImpl struct {
	contactRepo repository.ContactRepository
	emails      EmailService
	log         zerolog.Logger
}

func NewContactService(contactRepo repository.ContactRepository, emails EmailService, log zerolog.Logger) ContactService {
	return &contactServiceImpl{contactRepo: contactRepo, emails: emails, log: log}
}

func validateContactForm(input ContactFormInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return &ValidationError{Field: "name", Message: "Name is required"}
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return &ValidationError{Field: "email", Message: "Valid email is required"}
	}
	if strings.TrimSpace(input.Message) == "" {
		return &ValidationError{Field: "message", Message: "Message is required"}
	}
	return nil
}

// SubmitContactForm persists the submission and fires the admin notification
// without awaiting it. The caller's response depends only on the database
// write; the email settles in the background.
func (s *contactServiceImpl) SubmitContactForm(ctx context.Context, input ContactFormInput) (*model.ContactSubmission, error) {
	if err := validateContactForm(input); err != nil {
		return nil, err
	}

	submission := &model.ContactSubmission{
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		ServiceInterest: input.ServiceInterest,
		Message:         input.Message,
		Status:          model.ContactStatusNew,
	}
	if err := s.contactRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("store contact submission: %w", err)
	}

	data := mailer.ContactFormData{
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		ServiceInterest: input.ServiceInterest,
		Message:         input.Message,
	}
	go func() {
		bg, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.emails.SendContactNotification(bg, data); err != nil {
			s.log.Error().Err(err).Uint("submission_id", submission.ID).Msg("contact notification failed")
		}
	}()

	return submission, nil
}

func (s *contactServiceImpl) ListSubmissions(ctx context.Context) ([]*model.ContactSubmission, error) {
	return s.contactRepo.ListAll(ctx)
}

func (s *contactServiceImpl) UpdateSubmissionStatus(ctx context.Context, id uint, status string) error {
	switch status {
	case model.ContactStatusNew, model.ContactStatusContacted, model.ContactStatusConverted, model.ContactStatusArchived:
	default:
		return &ValidationError{Field: "status", Message: "Invalid status"}
	}
	err := s.contactRepo.UpdateStatus(ctx, id, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrContactNotFound
	}
	return err
}

// CaptureLeadMagnet upserts the subscriber, so resubmitting the form is
// idempotent, then sends the guide best-effort.
func (s *contactServiceImpl) CaptureLeadMagnet(ctx context.Context, input LeadMagnetInput) error {
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return &ValidationError{Field: "email", Message: "Valid email is required"}
	}

	sub := &model.LeadMagnetSubscriber{
		Email:  input.Email,
		Name:   input.Name,
		Source: input.Source,
	}
	if err := s.contactRepo.UpsertLeadMagnetSubscriber(ctx, sub); err != nil {
		return fmt.Errorf("store lead magnet subscriber: %w", err)
	}

	if err := s.emails.SendLeadMagnetGuide(ctx, input.Email, input.Name); err != nil {
		s.log.Error().Err(err).Str("recipient", input.Email).Msg("lead magnet guide email failed")
	}
	return nil
}

func (s *contactServiceImpl) ListSubscribers(ctx context.Context) ([]*model.LeadMagnetSubscriber, error) {
	return s.contactRepo.ListLeadMagnetSubscribers(ctx)
}
