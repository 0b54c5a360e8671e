package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-services-backend/internal/model"
)

type mockContactRepo struct {
	created      []*model.ContactSubmission
	upserted     []*model.LeadMagnetSubscriber
	updateStatus func(ctx context.Context, id uint, status string) error
}

func (m *mockContactRepo) Create(ctx context.Context, submission *model.ContactSubmission) error {
	submission.ID = uint(len(m.created) + 1)
	m.created = append(m.created, submission)
	return nil
}

func (m *mockContactRepo) ListAll(ctx context.Context) ([]*model.ContactSubmission, error) {
	return m.created, nil
}

func (m *mockContactRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	if m.updateStatus == nil {
		return nil
	}
	return m.updateStatus(ctx, id, status)
}

func (m *mockContactRepo) UpsertLeadMagnetSubscriber(ctx context.Context, sub *model.LeadMagnetSubscriber) error {
	m.upserted = append(m.upserted, sub)
	return nil
}

func (m *mockContactRepo) ListLeadMagnetSubscribers(ctx context.Context) ([]*model.LeadMagnetSubscriber, error) {
	return m.upserted, nil
}

func newContactService(repo *mockContactRepo, mail *mockMailer) ContactService {
	emails := newTestEmailService(mail, &memEmailLogRepo{})
	return NewContactService(repo, emails, zerolog.Nop())
}

func TestSubmitContactForm_Validation(t *testing.T) {
	svc := newContactService(&mockContactRepo{}, &mockMailer{})

	tests := []struct {
		name  string
		input ContactFormInput
	}{
		{"missing name", ContactFormInput{Email: "a@b.com", Message: "hi"}},
		{"bad email", ContactFormInput{Name: "Jess", Email: "nope", Message: "hi"}},
		{"missing message", ContactFormInput{Name: "Jess", Email: "a@b.com"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SubmitContactForm(context.Background(), tc.input)
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestSubmitContactForm_PersistsBeforeNotification(t *testing.T) {
	repo := &mockContactRepo{}
	svc := newContactService(repo, &mockMailer{configured: false})

	submission, err := svc.SubmitContactForm(context.Background(), ContactFormInput{
		Name:    "Jess",
		Email:   "jess@example.com",
		Message: "Need a resume refresh",
	})
	require.NoError(t, err)

	assert.NotZero(t, submission.ID)
	assert.Equal(t, model.ContactStatusNew, submission.Status)
	require.Len(t, repo.created, 1)
}

func TestCaptureLeadMagnet_UpsertsAndSurvivesEmailFailure(t *testing.T) {
	repo := &mockContactRepo{}
	svc := newContactService(repo, &mockMailer{configured: false})

	err := svc.CaptureLeadMagnet(context.Background(), LeadMagnetInput{
		Email:  "jess@example.com",
		Name:   "Jess",
		Source: "homepage",
	})
	require.NoError(t, err)

	require.Len(t, repo.upserted, 1)
	assert.Equal(t, "homepage", repo.upserted[0].Source)
}

func TestUpdateSubmissionStatus_RejectsUnknownStatus(t *testing.T) {
	svc := newContactService(&mockContactRepo{}, &mockMailer{})

	err := svc.UpdateSubmissionStatus(context.Background(), 1, "bogus")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}
