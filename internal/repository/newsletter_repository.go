package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avencia/company-cms-api/internal/database"
	"github.com/avencia/company-cms-api/internal/models"
)

// GormNewsletterRepository is a GORM implementation of NewsletterRepository
type GormNewsletterRepository struct {
	db *gorm.DB
}

var subscriberSortColumns = map[string]string{
	"email":      "email",
	"created_at": "created_at",
}

var subscriberUpdatableFields = map[string]bool{
	"active":       true,
	"confirmed_at": true,
}

// NewNewsletterRepository creates a new NewsletterRepository
func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &GormNewsletterRepository{db: db}
}

// Create creates a new subscriber
func (r *GormNewsletterRepository) Create(sub *models.NewsletterSubscriber) error {
	return r.db.Create(sub).Error
}

// FindByEmail finds a subscriber by email
func (r *GormNewsletterRepository) FindByEmail(email string) (*models.NewsletterSubscriber, error) {
	var sub models.NewsletterSubscriber
	if err := r.db.Where("email = ?", email).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindByToken finds a subscriber by unsubscribe token
func (r *GormNewsletterRepository) FindByToken(token string) (*models.NewsletterSubscriber, error) {
	var sub models.NewsletterSubscriber
	if err := r.db.Where("unsubscribe_token = ?", token).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// List retrieves subscribers with filtering and pagination
func (r *GormNewsletterRepository) List(filter SubscriberFilter) ([]models.NewsletterSubscriber, int64, error) {
	query := r.db.Model(&models.NewsletterSubscriber{})

	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(email) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(subscriberSortColumns, filter.SortBy, filter.SortDesc, "created_at")).
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	var subs []models.NewsletterSubscriber
	if err := query.Find(&subs).Error; err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}

// Update applies an allow-listed partial update
func (r *GormNewsletterRepository) Update(id uuid.UUID, fields map[string]interface{}) error {
	filtered := filterFields(fields, subscriberUpdatableFields)
	if len(filtered) == 0 {
		return ErrNoValidFields
	}
	return r.db.Model(&models.NewsletterSubscriber{}).Where("id = ?", id).Updates(filtered).Error
}

// CountActive counts active subscribers
func (r *GormNewsletterRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.NewsletterSubscriber{}).
		Where("active = ?", true).
		Count(&count).Error
	return count, err
}
