package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avencia/company-cms-api/internal/models"
	"github.com/avencia/company-cms-api/internal/repository"
)

var (
	ErrOfferNotFound         = errors.New("job offer not found")
	ErrOfferTitleRequired    = errors.New("title is required")
	ErrInvalidEmploymentType = errors.New("invalid employment type")
	ErrInvalidOfferStatus    = errors.New("invalid offer status")

	ErrApplicationNotFound  = errors.New("application not found")
	ErrOfferNotOpen         = errors.New("this position is not accepting applications")
	ErrDeadlinePassed       = errors.New("the application deadline has passed")
	ErrDuplicateApplication = errors.New("an application with this email already exists for this position")
	ErrInvalidAppStatus     = errors.New("invalid application status")
	ErrApplicantIncomplete  = errors.New("name and email are required")
)

// JobService handles job offer and application business logic
type JobService struct {
	jobRepo repository.JobRepository
}

// NewJobService creates a new JobService
func NewJobService(jobRepo repository.JobRepository) *JobService {
	return &JobService{jobRepo: jobRepo}
}

// CreateOfferInput represents input for creating a job offer
type CreateOfferInput struct {
	Title               string
	Department          string
	Location            string
	EmploymentType      models.EmploymentType
	Description         string
	Requirements        string
	SalaryRange         string
	ApplicationDeadline *time.Time
	CreatedBy           uuid.UUID
}

// CreateOffer validates and stores a job offer.
func (s *JobService) CreateOffer(input CreateOfferInput) (*models.JobOffer, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrOfferTitleRequired
	}
	if !models.ValidEmploymentType(input.EmploymentType) {
		return nil, ErrInvalidEmploymentType
	}

	offer := &models.JobOffer{
		Title:               strings.TrimSpace(input.Title),
		Department:          input.Department,
		Location:            input.Location,
		EmploymentType:      input.EmploymentType,
		Description:         input.Description,
		Requirements:        input.Requirements,
		SalaryRange:         input.SalaryRange,
		Status:              models.JobOfferStatusActive,
		ApplicationDeadline: input.ApplicationDeadline,
		CreatedBy:           input.CreatedBy,
	}

	if err := s.jobRepo.CreateOffer(offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	return offer, nil
}

// UpdateOfferInput represents an allow-listed partial offer update
type UpdateOfferInput struct {
	Title               *string
	Department          *string
	Location            *string
	EmploymentType      *models.EmploymentType
	Description         *string
	Requirements        *string
	SalaryRange         *string
	Status              *models.JobOfferStatus
	ApplicationDeadline *time.Time
	ClearDeadline       bool
}

// UpdateOffer applies a partial update. Closing an offer keeps its
// applications intact.
func (s *JobService) UpdateOffer(id uuid.UUID, input UpdateOfferInput) (*models.JobOffer, error) {
	if _, err := s.GetOffer(id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrOfferTitleRequired
		}
		fields["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Department != nil {
		fields["department"] = *input.Department
	}
	if input.Location != nil {
		fields["location"] = *input.Location
	}
	if input.EmploymentType != nil {
		if !models.ValidEmploymentType(*input.EmploymentType) {
			return nil, ErrInvalidEmploymentType
		}
		fields["employment_type"] = *input.EmploymentType
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Requirements != nil {
		fields["requirements"] = *input.Requirements
	}
	if input.SalaryRange != nil {
		fields["salary_range"] = *input.SalaryRange
	}
	if input.Status != nil {
		switch *input.Status {
		case models.JobOfferStatusActive, models.JobOfferStatusPaused, models.JobOfferStatusClosed:
			fields["status"] = *input.Status
		default:
			return nil, ErrInvalidOfferStatus
		}
	}
	if input.ClearDeadline {
		fields["application_deadline"] = nil
	} else if input.ApplicationDeadline != nil {
		fields["application_deadline"] = input.ApplicationDeadline
	}

	if err := s.jobRepo.UpdateOffer(id, fields); err != nil {
		return nil, err
	}

	return s.GetOffer(id)
}

// GetOffer returns an offer by ID.
func (s *JobService) GetOffer(id uuid.UUID) (*models.JobOffer, error) {
	offer, err := s.jobRepo.FindOfferByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to find offer: %w", err)
	}
	return offer, nil
}

// ListOffersInput represents filters for listing offers
type ListOffersInput struct {
	Status         *models.JobOfferStatus
	Department     string
	Location       string
	EmploymentType *models.EmploymentType
	OpenOnly       bool
	Search         string
	SortBy         string
	SortDesc       bool
	Page           int
	PageSize       int
}

// ListOffers returns offers matching the filters.
func (s *JobService) ListOffers(input ListOffersInput) ([]models.JobOffer, int64, error) {
	return s.jobRepo.ListOffers(repository.JobOfferFilter{
		Status:         input.Status,
		Department:     input.Department,
		Location:       input.Location,
		EmploymentType: input.EmploymentType,
		OpenOnly:       input.OpenOnly,
		Search:         input.Search,
		SortBy:         input.SortBy,
		SortDesc:       input.SortDesc,
		Page:           input.Page,
		PageSize:       input.PageSize,
	})
}

// DeleteOffer removes an offer together with its applications.
func (s *JobService) DeleteOffer(id uuid.UUID) error {
	if _, err := s.GetOffer(id); err != nil {
		return err
	}
	return s.jobRepo.DeleteOffer(id)
}

// ApplyInput represents a public job application submission
type ApplyInput struct {
	JobOfferID  uuid.UUID
	Name        string
	Email       string
	Phone       string
	CoverLetter string
	ResumeURL   string
}

// Apply submits an application against an open offer. One application per
// (offer, email); a past deadline blocks new applications.
func (s *JobService) Apply(input ApplyInput) (*models.JobApplication, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, ErrApplicantIncomplete
	}

	offer, err := s.GetOffer(input.JobOfferID)
	if err != nil {
		return nil, err
	}

	if offer.ApplicationDeadline != nil && offer.ApplicationDeadline.Before(time.Now()) {
		return nil, ErrDeadlinePassed
	}
	if offer.Status != models.JobOfferStatusActive {
		return nil, ErrOfferNotOpen
	}

	exists, err := s.jobRepo.ApplicationExists(offer.ID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate application: %w", err)
	}
	if exists {
		return nil, ErrDuplicateApplication
	}

	app := &models.JobApplication{
		JobOfferID:  offer.ID,
		Name:        name,
		Email:       email,
		Phone:       input.Phone,
		CoverLetter: input.CoverLetter,
		ResumeURL:   input.ResumeURL,
		Status:      models.ApplicationStatusPending,
	}

	if err := s.jobRepo.CreateApplication(app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return app, nil
}

// GetApplication returns an application by ID.
func (s *JobService) GetApplication(id uuid.UUID) (*models.JobApplication, error) {
	app, err := s.jobRepo.FindApplicationByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return app, nil
}

// ListApplicationsInput represents filters for listing applications
type ListApplicationsInput struct {
	JobOfferID *uuid.UUID
	Status     *models.ApplicationStatus
	Email      string
	SortBy     string
	SortDesc   bool
	Page       int
	PageSize   int
}

// ListApplications returns applications matching the filters.
func (s *JobService) ListApplications(input ListApplicationsInput) ([]models.JobApplication, int64, error) {
	return s.jobRepo.ListApplications(repository.JobApplicationFilter{
		JobOfferID: input.JobOfferID,
		Status:     input.Status,
		Email:      input.Email,
		SortBy:     input.SortBy,
		SortDesc:   input.SortDesc,
		Page:       input.Page,
		PageSize:   input.PageSize,
	})
}

// UpdateApplicationStatus moves an application to a new status and stamps the
// reviewer and time of the change.
func (s *JobService) UpdateApplicationStatus(id uuid.UUID, status models.ApplicationStatus, reviewerID uuid.UUID) (*models.JobApplication, error) {
	if !models.ValidApplicationStatus(status) {
		return nil, ErrInvalidAppStatus
	}
	if _, err := s.GetApplication(id); err != nil {
		return nil, err
	}

	if err := s.jobRepo.UpdateApplicationStatus(id, status, reviewerID); err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	return s.GetApplication(id)
}

// Named shorthands over UpdateApplicationStatus.

func (s *JobService) Review(id uuid.UUID, reviewerID uuid.UUID) (*models.JobApplication, error) {
	return s.UpdateApplicationStatus(id, models.ApplicationStatusReviewing, reviewerID)
}

func (s *JobService) ScheduleInterview(id uuid.UUID, reviewerID uuid.UUID) (*models.JobApplication, error) {
	return s.UpdateApplicationStatus(id, models.ApplicationStatusInterviewScheduled, reviewerID)
}

func (s *JobService) Offer(id uuid.UUID, reviewerID uuid.UUID) (*models.JobApplication, error) {
	return s.UpdateApplicationStatus(id, models.ApplicationStatusOffered, reviewerID)
}

func (s *JobService) Hire(id uuid.UUID, reviewerID uuid.UUID) (*models.JobApplication, error) {
	return s.UpdateApplicationStatus(id, models.ApplicationStatusHired, reviewerID)
}

func (s *JobService) Reject(id uuid.UUID, reviewerID uuid.UUID) (*models.JobApplication, error) {
	return s.UpdateApplicationStatus(id, models.ApplicationStatusRejected, reviewerID)
}

// Stats returns job counts for the admin dashboard.
func (s *JobService) Stats() (*repository.JobStats, error) {
	return s.jobRepo.Stats()
}
