package model

import (
	"time"

	"gorm.io/datatypes"
)

type IntakeStatus = string

const (
	IntakeStatusPending    IntakeStatus = "pending"
	IntakeStatusInProgress IntakeStatus = "in_progress"
	IntakeStatusCompleted  IntakeStatus = "completed"
)

// ClientIntakeRecord holds the full career-information submission a client
// fills in after purchase. Only first/last name, email and phone are
// mandatory; the form never blocks on an incomplete section. The record is
// linked to an order by OrderID / PaypalTransactionID but neither is a hard
// foreign key, since intakes can arrive for purchases made outside the site.
type ClientIntakeRecord struct {
	ID                  uint   `gorm:"primaryKey"`
	OrderID             *uint  `gorm:"index"`
	PaypalTransactionID string `gorm:"size:64;index"`
	PurchasedService    string `gorm:"size:255"`

	// Section 1: personal details
	FirstName       string `gorm:"size:128;not null"`
	LastName        string `gorm:"size:128;not null"`
	Email           string `gorm:"size:255;not null;index"`
	Phone           string `gorm:"size:64;not null"`
	CityState       string `gorm:"size:255"`
	BestContactTime string `gorm:"size:128"`

	// Section 2: LinkedIn
	LinkedinURL      string `gorm:"size:512"`
	LinkedinConcerns string `gorm:"type:text"`

	// Section 3: current situation
	EmploymentStatus    string `gorm:"size:64"`
	CurrentJobTitle     string `gorm:"size:255"`
	CurrentEmployer     string `gorm:"size:255"`
	CurrentRoleOverview string `gorm:"type:text"`

	// Section 4: target roles
	TargetRoles         string `gorm:"type:text"`
	PreferredIndustries string `gorm:"type:text"`
	LocationPreferences string `gorm:"size:512"`
	WorkArrangements    string `gorm:"type:text"` // JSON-encoded []string
	JobAdLink1          string `gorm:"size:1024"`
	JobAdLink2          string `gorm:"size:1024"`
	JobAdLink3          string `gorm:"size:1024"`

	// Section 6: education
	HighestQualification     string `gorm:"size:255"`
	Institution              string `gorm:"size:255"`
	YearCompleted            string `gorm:"size:16"`
	AdditionalQualifications string `gorm:"type:text"`

	// Section 7: licences and clearances
	DriversLicence     string `gorm:"size:255"`
	HighRiskLicences   string `gorm:"type:text"`
	SiteInductions     string `gorm:"type:text"`
	SecurityClearances string `gorm:"type:text"`

	// Section 8: skills
	TechnicalSkills        string `gorm:"type:text"`
	InterpersonalStrengths string `gorm:"type:text"`

	// Section 9: professional development / additional info
	EmploymentGaps  string `gorm:"type:text"`
	KeyAchievements string `gorm:"type:text"`
	PreferredStyle  string `gorm:"size:255"`
	HearAboutUs     string `gorm:"size:255"`

	// Referees, stored as a JSON-encoded array of objects
	Referees string `gorm:"type:text"`

	// File uploads
	ResumeFileURL      string `gorm:"size:1024"`
	SupportingDocsURLs string `gorm:"type:text"` // JSON-encoded []string

	Status              string `gorm:"size:32;index;not null;default:pending"`
	AdminNotes          string `gorm:"type:text"`
	CompletedAt         *time.Time
	ReviewRequestSentAt *time.Time `gorm:"index"`

	SubmittedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time
}

type EmploymentType = string

const (
	EmploymentFullTime EmploymentType = "full_time"
	EmploymentPartTime EmploymentType = "part_time"
	EmploymentCasual   EmploymentType = "casual"
	EmploymentContract EmploymentType = "contract"
)

// EmploymentHistoryEntry is one job on the intake form. Entries are only ever
// created together with their parent record; SortOrder preserves the order
// the client listed them in.
type EmploymentHistoryEntry struct {
	ID                  uint   `gorm:"primaryKey"`
	IntakeRecordID      uint   `gorm:"index;not null"`
	JobTitle            string `gorm:"size:255;not null"`
	Employer            string `gorm:"size:255;not null"`
	Location            string `gorm:"size:255"`
	StartDate           string `gorm:"size:32;not null"` // free text "MM/YYYY"
	EndDate             string `gorm:"size:32;not null"` // "MM/YYYY" or "Current"
	EmploymentType      string `gorm:"size:32;not null"`
	KeyResponsibilities string `gorm:"type:text"`
	KeyAchievements     string `gorm:"type:text"`
	SortOrder           int    `gorm:"not null"`
	CreatedAt           time.Time
}

// DraftIntakeRecord is the autosave snapshot of an in-progress intake form,
// keyed by email (at most one live draft per address). ResumeToken is the
// capability secret embedded in the resume-later link; it is the sole
// credential for retrieving the draft.
type DraftIntakeRecord struct {
	ID                  uint           `gorm:"primaryKey"`
	Email               string         `gorm:"size:255;uniqueIndex;not null"`
	PaypalTransactionID string         `gorm:"size:64"`
	FormData            datatypes.JSON `gorm:"not null"`
	ResumeToken         string         `gorm:"size:64;uniqueIndex;not null"`
	Completed           bool           `gorm:"not null;default:false"`
	ReminderSent        bool           `gorm:"not null;default:false"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
