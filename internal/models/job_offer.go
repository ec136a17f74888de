package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobOfferStatus string

const (
	JobOfferStatusActive JobOfferStatus = "active"
	JobOfferStatusPaused JobOfferStatus = "paused"
	JobOfferStatusClosed JobOfferStatus = "closed"
)

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full_time"
	EmploymentPartTime   EmploymentType = "part_time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
)

// ValidEmploymentType reports whether t is a known employment type.
func ValidEmploymentType(t EmploymentType) bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}

type JobOffer struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title               string         `gorm:"type:varchar(255);not null" json:"title"`
	Department          string         `gorm:"type:varchar(100);not null;index" json:"department"`
	Location            string         `gorm:"type:varchar(100);not null" json:"location"`
	EmploymentType      EmploymentType `gorm:"type:varchar(20);not null" json:"employment_type"`
	Description         string         `gorm:"type:text" json:"description"`
	Requirements        string         `gorm:"type:text" json:"requirements"`
	SalaryRange         string         `gorm:"type:varchar(100)" json:"salary_range"`
	Status              JobOfferStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	ApplicationDeadline *time.Time     `json:"application_deadline,omitempty"`
	CreatedBy           uuid.UUID      `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`

	// Relations
	Creator      User             `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Applications []JobApplication `gorm:"foreignKey:JobOfferID" json:"applications,omitempty"`
}

func (o *JobOffer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// AcceptsApplications reports whether new applications may be submitted:
// the offer must be active and its deadline, if set, not yet passed.
func (o *JobOffer) AcceptsApplications(now time.Time) bool {
	if o.Status != JobOfferStatusActive {
		return false
	}
	if o.ApplicationDeadline != nil && o.ApplicationDeadline.Before(now) {
		return false
	}
	return true
}
