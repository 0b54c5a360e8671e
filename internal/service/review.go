package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"resume-services-backend/internal/config"
	"resume-services-backend/internal/mailer"
	"resume-services-backend/internal/model"
	"resume-services-backend/internal/repository"
)

var (
	ErrReviewsDisabled   = errors.New("review requests are disabled")
	ErrNotReviewEligible = errors.New("intake record is not eligible for a review request")
)

// ReviewRunResult summarizes one scheduler pass.
type ReviewRunResult struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
}

type ReviewService interface {
	ProcessReviewRequests(ctx context.Context) (*ReviewRunResult, error)
	SendManualReviewRequest(ctx context.Context, intakeID uint) error
}

type reviewServiceImpl struct {
	intakeRepo repository.IntakeRepository
	emails     EmailService
	cfg        config.Review
	now        Clock
	log        zerolog.Logger
}

func NewReviewService(
	intakeRepo repository.IntakeRepository,
	emails EmailService,
	cfg config.Review,
	now Clock,
	log zerolog.Logger,
) ReviewService {
	return &reviewServiceImpl{
		intakeRepo: intakeRepo,
		emails:     emails,
		cfg:        cfg,
		now:        now,
		log:        log,
	}
}

// reviewEligible is the single source of truth for whether a record may
// receive a review request: the work is done and no request has gone out.
func reviewEligible(record *model.ClientIntakeRecord) bool {
	return record.Status == model.IntakeStatusCompleted &&
		record.ReviewRequestSentAt == nil &&
		record.Email != ""
}

func (s *reviewServiceImpl) completionDate(record *model.ClientIntakeRecord) string {
	if record.CompletedAt != nil {
		return record.CompletedAt.Format("2 January 2006")
	}
	return ""
}

func (s *reviewServiceImpl) sendOne(ctx context.Context, record *model.ClientIntakeRecord) error {
	data := mailer.ReviewRequestData{
		ClientName:       record.FirstName + " " + record.LastName,
		ServiceName:      record.PurchasedService,
		CompletionDate:   s.completionDate(record),
		GoogleReviewLink: s.cfg.GoogleReviewLink,
	}
	if err := s.emails.SendReviewRequest(ctx, record.Email, data); err != nil {
		return err
	}
	if err := s.intakeRepo.MarkReviewRequestSent(ctx, record.ID, s.now()); err != nil {
		// The email is out but the flag is not set; surface it so the
		// operator knows a duplicate is possible on the next run.
		return fmt.Errorf("mark review request sent for intake %d: %w", record.ID, err)
	}
	return nil
}

// ProcessReviewRequests walks every eligible record and sends the request.
// One record failing does not stop the run; the result counts both outcomes.
func (s *reviewServiceImpl) ProcessReviewRequests(ctx context.Context) (*ReviewRunResult, error) {
	if !s.cfg.Enabled {
		return nil, ErrReviewsDisabled
	}

	candidates, err := s.intakeRepo.ListReviewCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list review candidates: %w", err)
	}

	result := &ReviewRunResult{}
	for _, record := range candidates {
		if !reviewEligible(record) {
			continue
		}
		result.Processed++
		if err := s.sendOne(ctx, record); err != nil {
			result.Failed++
			s.log.Error().Err(err).Uint("intake_id", record.ID).Msg("review request failed")
			continue
		}
		result.Sent++
		s.log.Info().Uint("intake_id", record.ID).Str("recipient", record.Email).Msg("review request sent")
	}
	return result, nil
}

// SendManualReviewRequest lets an admin push a single request regardless of
// the scheduler being enabled, but the eligibility rules still apply.
func (s *reviewServiceImpl) SendManualReviewRequest(ctx context.Context, intakeID uint) error {
	record, err := s.intakeRepo.FindByID(ctx, intakeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIntakeNotFound
		}
		return err
	}
	if !reviewEligible(record) {
		return ErrNotReviewEligible
	}
	return s.sendOne(ctx, record)
}
