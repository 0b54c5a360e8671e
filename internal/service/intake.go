package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resume-services-backend/internal/model"
	"resume-services-backend/internal/repository"
)

// ValidationError carries a user-facing message for a rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var ErrIntakeNotFound = errors.New("intake record not found")

type EmploymentEntryInput struct {
	JobTitle            string `json:"jobTitle"`
	Employer            string `json:"employer"`
	Location            string `json:"location"`
	StartDate           string `json:"startDate"`
	EndDate             string `json:"endDate"`
	EmploymentType      string `json:"employmentType"`
	KeyResponsibilities string `json:"keyResponsibilities"`
	KeyAchievements     string `json:"keyAchievements"`
}

type RefereeInput struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// SubmitIntakeInput mirrors the multi-section intake form. Only the four
// identity fields are mandatory; the form never blocks on incompleteness.
type SubmitIntakeInput struct {
	OrderID             *uint  `json:"orderId"`
	PaypalTransactionID string `json:"paypalTransactionId"`
	PurchasedService    string `json:"purchasedService"`

	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	CityState       string `json:"cityState"`
	BestContactTime string `json:"bestContactTime"`

	LinkedinURL      string `json:"linkedinUrl"`
	LinkedinConcerns string `json:"linkedinConcerns"`

	EmploymentStatus    string `json:"employmentStatus"`
	CurrentJobTitle     string `json:"currentJobTitle"`
	CurrentEmployer     string `json:"currentEmployer"`
	CurrentRoleOverview string `json:"currentRoleOverview"`

	TargetRoles         string   `json:"targetRoles"`
	PreferredIndustries string   `json:"preferredIndustries"`
	LocationPreferences string   `json:"locationPreferences"`
	WorkArrangements    []string `json:"workArrangements"`
	JobAdLink1          string   `json:"jobAdLink1"`
	JobAdLink2          string   `json:"jobAdLink2"`
	JobAdLink3          string   `json:"jobAdLink3"`

	EmploymentHistory []EmploymentEntryInput `json:"employmentHistory"`

	HighestQualification     string `json:"highestQualification"`
	Institution              string `json:"institution"`
	YearCompleted            string `json:"yearCompleted"`
	AdditionalQualifications string `json:"additionalQualifications"`

	DriversLicence     string `json:"driversLicence"`
	HighRiskLicences   string `json:"highRiskLicences"`
	SiteInductions     string `json:"siteInductions"`
	SecurityClearances string `json:"securityClearances"`

	TechnicalSkills        string `json:"technicalSkills"`
	InterpersonalStrengths string `json:"interpersonalStrengths"`

	EmploymentGaps  string `json:"employmentGaps"`
	KeyAchievements string `json:"keyAchievements"`
	PreferredStyle  string `json:"preferredStyle"`
	HearAboutUs     string `json:"hearAboutUs"`

	Referees []RefereeInput `json:"referees"`

	ResumeFileURL      string   `json:"resumeFileUrl"`
	SupportingDocsURLs []string `json:"supportingDocsUrls"`
}

type SubmitIntakeResult struct {
	IntakeRecordID uint   `json:"intakeRecordId"`
	Message        string `json:"message"`
}

// IntakeDetail is the admin read model: the record with its list fields
// decoded and its employment history attached in form order.
type IntakeDetail struct {
	Record             *model.ClientIntakeRecord       `json:"record"`
	WorkArrangements   []string                        `json:"workArrangements"`
	SupportingDocsURLs []string                        `json:"supportingDocsUrls"`
	Referees           []RefereeInput                  `json:"referees"`
	EmploymentHistory  []*model.EmploymentHistoryEntry `json:"employmentHistory"`
}

type DraftView struct {
	Email               string          `json:"email"`
	PaypalTransactionID string          `json:"paypalTransactionId"`
	FormData            json.RawMessage `json:"formData"`
}

type IntakeService interface {
	SubmitIntake(ctx context.Context, input SubmitIntakeInput) (*SubmitIntakeResult, error)
	GetIntakeByID(ctx context.Context, id uint) (*IntakeDetail, error)
	GetIntakeByTransaction(ctx context.Context, transactionID string) (*model.ClientIntakeRecord, error)
	GetAllIntakes(ctx context.Context) ([]*model.ClientIntakeRecord, error)
	UpdateIntakeStatus(ctx context.Context, id uint, status, adminNotes string) error
	SaveDraft(ctx context.Context, email, transactionID string, formData json.RawMessage) (string, error)
	GetDraftByToken(ctx context.Context, token string) (*DraftView, error)
	RequestResumeLater(ctx context.Context, email, name string, formData json.RawMessage) error
	CompleteDraft(ctx context.Context, email string) error
	GetIncompleteDrafts(ctx context.Context) ([]*model.DraftIntakeRecord, error)
}

type intakeServiceImpl struct {
	intakeRepo repository.IntakeRepository
	draftRepo  repository.DraftRepository
	emails     EmailService
	log        zerolog.Logger
}

func NewIntakeService(
	intakeRepo repository.IntakeRepository,
	draftRepo repository.DraftRepository,
	emails EmailService,
	log zerolog.Logger,
) IntakeService {
	return &intakeServiceImpl{
		intakeRepo: intakeRepo,
		draftRepo:  draftRepo,
		emails:     emails,
		log:        log,
	}
}

func validateIntake(input SubmitIntakeInput) error {
	if strings.TrimSpace(input.FirstName) == "" {
		return &ValidationError{Field: "firstName", Message: "First name is required"}
	}
	if strings.TrimSpace(input.LastName) == "" {
		return &ValidationError{Field: "lastName", Message: "Last name is required"}
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return &ValidationError{Field: "email", Message: "Valid email is required"}
	}
	if strings.TrimSpace(input.Phone) == "" {
		return &ValidationError{Field: "phone", Message: "Phone number is required"}
	}
	return nil
}

func marshalList(list []string) string {
	if list == nil {
		return ""
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return ""
	}
	return string(raw)
}

func unmarshalList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}
	}
	return list
}

// SubmitIntake validates the four mandatory fields, writes the record and
// its employment entries in one transaction, then fires the confirmation and
// admin emails best-effort: once the database write succeeds the submission
// succeeds from the client's point of view.
func (s *intakeServiceImpl) SubmitIntake(ctx context.Context, input SubmitIntakeInput) (*SubmitIntakeResult, error) {
	if err := validateIntake(input); err != nil {
		return nil, err
	}

	refereesJSON := ""
	if input.Referees != nil {
		if raw, err := json.Marshal(input.Referees); err == nil {
			refereesJSON = string(raw)
		}
	}

	record := &model.ClientIntakeRecord{
		OrderID:             input.OrderID,
		PaypalTransactionID: input.PaypalTransactionID,
		PurchasedService:    input.PurchasedService,

		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Email:           input.Email,
		Phone:           input.Phone,
		CityState:       input.CityState,
		BestContactTime: input.BestContactTime,

		LinkedinURL:      input.LinkedinURL,
		LinkedinConcerns: input.LinkedinConcerns,

		EmploymentStatus:    input.EmploymentStatus,
		CurrentJobTitle:     input.CurrentJobTitle,
		CurrentEmployer:     input.CurrentEmployer,
		CurrentRoleOverview: input.CurrentRoleOverview,

		TargetRoles:         input.TargetRoles,
		PreferredIndustries: input.PreferredIndustries,
		LocationPreferences: input.LocationPreferences,
		WorkArrangements:    marshalList(input.WorkArrangements),
		JobAdLink1:          input.JobAdLink1,
		JobAdLink2:          input.JobAdLink2,
		JobAdLink3:          input.JobAdLink3,

		HighestQualification:     input.HighestQualification,
		Institution:              input.Institution,
		YearCompleted:            input.YearCompleted,
		AdditionalQualifications: input.AdditionalQualifications,

		DriversLicence:     input.DriversLicence,
		HighRiskLicences:   input.HighRiskLicences,
		SiteInductions:     input.SiteInductions,
		SecurityClearances: input.SecurityClearances,

		TechnicalSkills:        input.TechnicalSkills,
		InterpersonalStrengths: input.InterpersonalStrengths,

		EmploymentGaps:  input.EmploymentGaps,
		KeyAchievements: input.KeyAchievements,
		PreferredStyle:  input.PreferredStyle,
		HearAboutUs:     input.HearAboutUs,

		Referees: refereesJSON,

		ResumeFileURL:      input.ResumeFileURL,
		SupportingDocsURLs: marshalList(input.SupportingDocsURLs),

		Status: model.IntakeStatusPending,
	}

	entries := make([]*model.EmploymentHistoryEntry, 0, len(input.EmploymentHistory))
	for i, job := range input.EmploymentHistory {
		entries = append(entries, &model.EmploymentHistoryEntry{
			JobTitle:            job.JobTitle,
			Employer:            job.Employer,
			Location:            job.Location,
			StartDate:           job.StartDate,
			EndDate:             job.EndDate,
			EmploymentType:      job.EmploymentType,
			KeyResponsibilities: job.KeyResponsibilities,
			KeyAchievements:     job.KeyAchievements,
			SortOrder:           i,
		})
	}

	if err := s.intakeRepo.CreateWithHistory(ctx, record, entries); err != nil {
		return nil, fmt.Errorf("store intake record: %w", err)
	}

	clientName := input.FirstName + " " + input.LastName
	if err := s.emails.SendIntakeConfirmation(ctx, input.Email, clientName, input.PurchasedService); err != nil {
		s.log.Error().Err(err).Uint("intake_id", record.ID).Msg("intake confirmation email failed")
	}
	if err := s.emails.SendIntakeAdminNotification(ctx, clientName, input.Email, input.PurchasedService, input.PaypalTransactionID, record.ID); err != nil {
		s.log.Error().Err(err).Uint("intake_id", record.ID).Msg("intake admin notification failed")
	}

	return &SubmitIntakeResult{
		IntakeRecordID: record.ID,
		Message:        "Thank you! Your information has been submitted successfully.",
	}, nil
}

func (s *intakeServiceImpl) GetIntakeByID(ctx context.Context, id uint) (*IntakeDetail, error) {
	record, err := s.intakeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntakeNotFound
		}
		return nil, err
	}

	entries, err := s.intakeRepo.EmploymentHistory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load employment history: %w", err)
	}

	detail := &IntakeDetail{
		Record:             record,
		WorkArrangements:   unmarshalList(record.WorkArrangements),
		SupportingDocsURLs: unmarshalList(record.SupportingDocsURLs),
		Referees:           []RefereeInput{},
		EmploymentHistory:  entries,
	}
	if record.Referees != "" {
		_ = json.Unmarshal([]byte(record.Referees), &detail.Referees)
	}
	return detail, nil
}

func (s *intakeServiceImpl) GetIntakeByTransaction(ctx context.Context, transactionID string) (*model.ClientIntakeRecord, error) {
	record, err := s.intakeRepo.FindByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func (s *intakeServiceImpl) GetAllIntakes(ctx context.Context) ([]*model.ClientIntakeRecord, error) {
	return s.intakeRepo.ListAll(ctx)
}

func (s *intakeServiceImpl) UpdateIntakeStatus(ctx context.Context, id uint, status, adminNotes string) error {
	err := s.intakeRepo.UpdateStatus(ctx, id, status, adminNotes)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrIntakeNotFound
	}
	return err
}

// newResumeToken returns 256 bits of CSPRNG output as 64 hex characters.
// The token is the sole credential for the resume-later link.
func newResumeToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate resume token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// SaveDraft upserts the autosave snapshot keyed by email. The resume token
// is minted once on first save and stays stable across updates.
func (s *intakeServiceImpl) SaveDraft(ctx context.Context, email, transactionID string, formData json.RawMessage) (string, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return "", &ValidationError{Field: "email", Message: "Valid email is required"}
	}

	existing, err := s.draftRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("look up draft: %w", err)
	}

	if existing != nil {
		if err := s.draftRepo.UpdateFormData(ctx, email, datatypes.JSON(formData), transactionID); err != nil {
			return "", fmt.Errorf("update draft: %w", err)
		}
		return existing.ResumeToken, nil
	}

	token, err := newResumeToken()
	if err != nil {
		return "", err
	}

	draft := &model.DraftIntakeRecord{
		Email:               email,
		PaypalTransactionID: transactionID,
		FormData:            datatypes.JSON(formData),
		ResumeToken:         token,
	}
	if err := s.draftRepo.Create(ctx, draft); err != nil {
		return "", fmt.Errorf("create draft: %w", err)
	}
	return token, nil
}

// GetDraftByToken returns nil when the token was never issued; the token is
// the only authorization check by design.
func (s *intakeServiceImpl) GetDraftByToken(ctx context.Context, token string) (*DraftView, error) {
	draft, err := s.draftRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &DraftView{
		Email:               draft.Email,
		PaypalTransactionID: draft.PaypalTransactionID,
		FormData:            json.RawMessage(draft.FormData),
	}, nil
}

// RequestResumeLater saves the draft like SaveDraft, then sends the deep
// link. Unlike the confirmation emails, a send failure here propagates: the
// email is the entire point of the operation.
func (s *intakeServiceImpl) RequestResumeLater(ctx context.Context, email, name string, formData json.RawMessage) error {
	token, err := s.SaveDraft(ctx, email, "", formData)
	if err != nil {
		return err
	}
	if err := s.emails.SendResumeLater(ctx, email, name, token); err != nil {
		return fmt.Errorf("send resume-later email: %w", err)
	}
	return nil
}

// CompleteDraft flips the flag but keeps the row for audit.
func (s *intakeServiceImpl) CompleteDraft(ctx context.Context, email string) error {
	return s.draftRepo.MarkCompleted(ctx, email)
}

func (s *intakeServiceImpl) GetIncompleteDrafts(ctx context.Context) ([]*model.DraftIntakeRecord, error) {
	return s.draftRepo.ListIncomplete(ctx)
}
