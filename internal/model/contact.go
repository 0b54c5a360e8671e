package model

import "time"

type ContactStatus = string

const (
	ContactStatusNew       ContactStatus = "new"
	ContactStatusContacted ContactStatus = "contacted"
	ContactStatusConverted ContactStatus = "converted"
	ContactStatusArchived  ContactStatus = "archived"
)

type ContactSubmission struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"size:255;not null"`
	Email           string `gorm:"size:255;not null;index"`
	Phone           string `gorm:"size:64"`
	ServiceInterest string `gorm:"size:255"`
	Message         string `gorm:"type:text;not null"`
	Status          string `gorm:"size:32;index;not null;default:new"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LeadMagnetSubscriber is an email captured in exchange for the free guide.
type LeadMagnetSubscriber struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	Name      string `gorm:"size:255"`
	Source    string `gorm:"size:128"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
