package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/avencia/company-cms-api/internal/models"
	"github.com/avencia/company-cms-api/internal/utils"
)

// JobOfferDTO represents a job offer in API responses
type JobOfferDTO struct {
	ID                    uuid.UUID             `json:"id"`
	Title                 string                `json:"title"`
	Department            string                `json:"department"`
	Location              string                `json:"location"`
	EmploymentType        models.EmploymentType `json:"employment_type"`
	Description           string                `json:"description"`
	Requirements          string                `json:"requirements"`
	SalaryRange           string                `json:"salary_range,omitempty"`
	Status                models.JobOfferStatus `json:"status"`
	ApplicationDeadline   *time.Time            `json:"application_deadline,omitempty"`
	AcceptingApplications bool                  `json:"accepting_applications"`
	CreatedAt             time.Time             `json:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at"`
}

// ToJobOfferDTO converts an offer model to its API representation
func ToJobOfferDTO(o models.JobOffer) JobOfferDTO {
	return JobOfferDTO{
		ID:                    o.ID,
		Title:                 o.Title,
		Department:            o.Department,
		Location:              o.Location,
		EmploymentType:        o.EmploymentType,
		Description:           o.Description,
		Requirements:          o.Requirements,
		SalaryRange:           o.SalaryRange,
		Status:                o.Status,
		ApplicationDeadline:   o.ApplicationDeadline,
		AcceptingApplications: o.AcceptsApplications(time.Now()),
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
}

// JobOfferListResponse is a paginated list of offers
type JobOfferListResponse struct {
	Items      []JobOfferDTO        `json:"items"`
	Pagination utils.PaginationMeta `json:"pagination"`
}

// NewJobOfferListResponse builds a paginated offer list response
func NewJobOfferListResponse(offers []models.JobOffer, meta utils.PaginationMeta) JobOfferListResponse {
	items := make([]JobOfferDTO, len(offers))
	for i, o := range offers {
		items[i] = ToJobOfferDTO(o)
	}
	return JobOfferListResponse{Items: items, Pagination: meta}
}

// JobApplicationDTO represents a job application in API responses
type JobApplicationDTO struct {
	ID          uuid.UUID                `json:"id"`
	JobOfferID  uuid.UUID                `json:"job_offer_id"`
	JobTitle    string                   `json:"job_title,omitempty"`
	Name        string                   `json:"name"`
	Email       string                   `json:"email"`
	Phone       string                   `json:"phone,omitempty"`
	CoverLetter string                   `json:"cover_letter,omitempty"`
	ResumeURL   string                   `json:"resume_url,omitempty"`
	Status      models.ApplicationStatus `json:"status"`
	ReviewedBy  *uuid.UUID               `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time               `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

// ToJobApplicationDTO converts an application model to its API representation
func ToJobApplicationDTO(a models.JobApplication) JobApplicationDTO {
	return JobApplicationDTO{
		ID:          a.ID,
		JobOfferID:  a.JobOfferID,
		JobTitle:    a.JobOffer.Title,
		Name:        a.Name,
		Email:       a.Email,
		Phone:       a.Phone,
		CoverLetter: a.CoverLetter,
		ResumeURL:   a.ResumeURL,
		Status:      a.Status,
		ReviewedBy:  a.ReviewedBy,
		ReviewedAt:  a.ReviewedAt,
		CreatedAt:   a.CreatedAt,
	}
}

// JobApplicationListResponse is a paginated list of applications
type JobApplicationListResponse struct {
	Items      []JobApplicationDTO  `json:"items"`
	Pagination utils.PaginationMeta `json:"pagination"`
}

// NewJobApplicationListResponse builds a paginated application list response
func NewJobApplicationListResponse(apps []models.JobApplication, meta utils.PaginationMeta) JobApplicationListResponse {
	items := make([]JobApplicationDTO, len(apps))
	for i, a := range apps {
		items[i] = ToJobApplicationDTO(a)
	}
	return JobApplicationListResponse{Items: items, Pagination: meta}
}
