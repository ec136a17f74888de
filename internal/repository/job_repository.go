package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avencia/company-cms-api/internal/database"
	"github.com/avencia/company-cms-api/internal/models"
)

// GormJobRepository is a GORM implementation of JobRepository
type GormJobRepository struct {
	db *gorm.DB
}

var jobOfferSortColumns = map[string]string{
	"title":      "title",
	"department": "department",
	"deadline":   "application_deadline",
	"created_at": "created_at",
}

var jobApplicationSortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"status":     "status",
	"created_at": "created_at",
}

var jobOfferUpdatableFields = map[string]bool{
	"title":                true,
	"department":           true,
	"location":             true,
	"employment_type":      true,
	"description":          true,
	"requirements":         true,
	"salary_range":         true,
	"status":               true,
	"application_deadline": true,
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &GormJobRepository{db: db}
}

// CreateOffer creates a new job offer
func (r *GormJobRepository) CreateOffer(offer *models.JobOffer) error {
	return r.db.Create(offer).Error
}

// FindOfferByID finds an offer by ID
func (r *GormJobRepository) FindOfferByID(id uuid.UUID) (*models.JobOffer, error) {
	var offer models.JobOffer
	if err := r.db.First(&offer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// ListOffers retrieves offers with filtering and pagination
func (r *GormJobRepository) ListOffers(filter JobOfferFilter) ([]models.JobOffer, int64, error) {
	query := r.db.Model(&models.JobOffer{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Location != "" {
		query = query.Where("LOWER(location) LIKE LOWER(?)", "%"+filter.Location+"%")
	}
	if filter.EmploymentType != nil {
		query = query.Where("employment_type = ?", *filter.EmploymentType)
	}
	if filter.OpenOnly {
		query = query.Where("status = ?", models.JobOfferStatusActive).
			Where("application_deadline IS NULL OR application_deadline > ?", time.Now())
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(jobOfferSortColumns, filter.SortBy, filter.SortDesc, "created_at")).
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	var offers []models.JobOffer
	if err := query.Find(&offers).Error; err != nil {
		return nil, 0, err
	}

	return offers, total, nil
}

// UpdateOffer applies an allow-listed partial update
func (r *GormJobRepository) UpdateOffer(id uuid.UUID, fields map[string]interface{}) error {
	filtered := filterFields(fields, jobOfferUpdatableFields)
	if len(filtered) == 0 {
		return ErrNoValidFields
	}
	return r.db.Model(&models.JobOffer{}).Where("id = ?", id).Updates(filtered).Error
}

// DeleteOffer removes an offer and its applications in one transaction, so a
// failure between the two statements cannot orphan applications.
func (r *GormJobRepository) DeleteOffer(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_offer_id = ?", id).Delete(&models.JobApplication{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.JobOffer{}, "id = ?", id).Error
	})
}

// CreateApplication creates a new job application
func (r *GormJobRepository) CreateApplication(app *models.JobApplication) error {
	return r.db.Create(app).Error
}

// FindApplicationByID finds an application by ID
func (r *GormJobRepository) FindApplicationByID(id uuid.UUID) (*models.JobApplication, error) {
	var app models.JobApplication
	if err := r.db.Preload("JobOffer").First(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// ApplicationExists reports whether an (offer, email) application exists
func (r *GormJobRepository) ApplicationExists(offerID uuid.UUID, email string) (bool, error) {
	var app models.JobApplication
	err := r.db.Select("id").
		Where("job_offer_id = ? AND email = ?", offerID, email).
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListApplications retrieves applications with filtering and pagination
func (r *GormJobRepository) ListApplications(filter JobApplicationFilter) ([]models.JobApplication, int64, error) {
	query := r.db.Model(&models.JobApplication{})

	if filter.JobOfferID != nil {
		query = query.Where("job_offer_id = ?", *filter.JobOfferID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(jobApplicationSortColumns, filter.SortBy, filter.SortDesc, "created_at")).
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	var apps []models.JobApplication
	if err := query.Preload("JobOffer").Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// UpdateApplicationStatus sets the status and stamps reviewer identity and time
func (r *GormJobRepository) UpdateApplicationStatus(id uuid.UUID, status models.ApplicationStatus, reviewerID uuid.UUID) error {
	now := time.Now()
	return r.db.Model(&models.JobApplication{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewerID,
			"reviewed_at": &now,
		}).Error
}

// Stats returns offer and application counts for the admin dashboard
func (r *GormJobRepository) Stats() (*JobStats, error) {
	var stats JobStats

	if err := r.db.Model(&models.JobOffer{}).Count(&stats.TotalOffers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.JobOffer{}).
		Where("status = ?", models.JobOfferStatusActive).
		Count(&stats.ActiveOffers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.JobApplication{}).Count(&stats.TotalApplications).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.JobApplication{}).
		Where("status = ?", models.ApplicationStatusPending).
		Count(&stats.PendingApplications).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
