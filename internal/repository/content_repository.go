package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/avencia/company-cms-api/internal/models"
)

// GormContentRepository is a GORM implementation of ContentRepository
type GormContentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &GormContentRepository{db: db}
}

// Upsert creates the (section, key) entry or overwrites its value, content
// type, and updated_by when it already exists.
func (r *GormContentRepository) Upsert(content *models.SiteContent) error {
	var existing models.SiteContent
	err := r.db.Where("section = ? AND key = ?", content.Section, content.Key).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(content).Error
	}
	if err != nil {
		return err
	}

	content.ID = existing.ID
	content.CreatedAt = existing.CreatedAt
	return r.db.Model(&existing).Updates(map[string]interface{}{
		"value":        content.Value,
		"content_type": content.ContentType,
		"updated_by":   content.UpdatedBy,
	}).Error
}

// FindBySectionKey finds a single entry
func (r *GormContentRepository) FindBySectionKey(section, key string) (*models.SiteContent, error) {
	var content models.SiteContent
	if err := r.db.Where("section = ? AND key = ?", section, key).
		First(&content).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

// ListBySection lists every entry of a section
func (r *GormContentRepository) ListBySection(section string) ([]models.SiteContent, error) {
	var contents []models.SiteContent
	if err := r.db.Where("section = ?", section).
		Order("key ASC").
		Find(&contents).Error; err != nil {
		return nil, err
	}
	return contents, nil
}
