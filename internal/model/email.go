package model

import (
	"time"

	"gorm.io/datatypes"
)

type EmailType = string

const (
	EmailTypeContactForm            EmailType = "contact_form"
	EmailTypeOrderConfirmation      EmailType = "order_confirmation"
	EmailTypeOrderAdminNotification EmailType = "order_admin_notification"
	EmailTypeReviewRequest          EmailType = "review_request"
	EmailTypeLeadMagnet             EmailType = "lead_magnet"
	EmailTypeIntakeConfirmation     EmailType = "intake_confirmation"
	EmailTypeIntakeAdminNotice      EmailType = "intake_admin_notification"
	EmailTypeIntakeResumeLater      EmailType = "intake_resume_later"
	EmailTypeTest                   EmailType = "test"
)

type EmailStatus = string

const (
	EmailStatusSent    EmailStatus = "sent"
	EmailStatusFailed  EmailStatus = "failed"
	EmailStatusPending EmailStatus = "pending"
)

// EmailLog records every outbound email attempt. Rows are append-only and
// exist for audit and troubleshooting.
type EmailLog struct {
	ID             uint           `gorm:"primaryKey"`
	EmailType      string         `gorm:"size:64;index;not null"`
	RecipientEmail string         `gorm:"size:255;index;not null"`
	RecipientName  string         `gorm:"size:255"`
	Subject        string         `gorm:"size:512"`
	Status         string         `gorm:"size:16;index;not null"`
	ErrorMessage   string         `gorm:"type:text"`
	Metadata       datatypes.JSON
	SentAt         time.Time `gorm:"autoCreateTime;index"`
}
