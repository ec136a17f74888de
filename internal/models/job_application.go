package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationStatusPending            ApplicationStatus = "pending"
	ApplicationStatusReviewing          ApplicationStatus = "reviewing"
	ApplicationStatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	ApplicationStatusOffered            ApplicationStatus = "offered"
	ApplicationStatusHired              ApplicationStatus = "hired"
	ApplicationStatusRejected           ApplicationStatus = "rejected"
)

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewing, ApplicationStatusInterviewScheduled,
		ApplicationStatusOffered, ApplicationStatusHired, ApplicationStatusRejected:
		return true
	}
	return false
}

type JobApplication struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	JobOfferID  uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_job_applications_offer_email" json:"job_offer_id"`
	Name        string            `gorm:"type:varchar(255);not null" json:"name"`
	Email       string            `gorm:"type:varchar(255);not null;uniqueIndex:idx_job_applications_offer_email" json:"email"`
	Phone       string            `gorm:"type:varchar(50)" json:"phone"`
	CoverLetter string            `gorm:"type:text" json:"cover_letter"`
	ResumeURL   string            `gorm:"type:varchar(500)" json:"resume_url"`
	Status      ApplicationStatus `gorm:"type:varchar(30);not null;default:'pending';index" json:"status"`
	ReviewedBy  *uuid.UUID        `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time        `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	// Relations
	JobOffer JobOffer `gorm:"foreignKey:JobOfferID" json:"job_offer,omitempty"`
	Reviewer *User    `gorm:"foreignKey:ReviewedBy" json:"reviewer,omitempty"`
}

func (a *JobApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
