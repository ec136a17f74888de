package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avencia/company-cms-api/internal/models"
	"github.com/avencia/company-cms-api/internal/repository"
)

var (
	ErrContentNotFound    = errors.New("content not found")
	ErrContentKeyRequired = errors.New("section and key are required")
	ErrContentEmpty       = errors.New("at least one language value is required")
	ErrInvalidContentType = errors.New("invalid content type")
)

// ContentService handles editable site content business logic
type ContentService struct {
	contentRepo repository.ContentRepository
}

// NewContentService creates a new ContentService
func NewContentService(contentRepo repository.ContentRepository) *ContentService {
	return &ContentService{contentRepo: contentRepo}
}

// UpsertContentInput represents input for creating or replacing a content entry
type UpsertContentInput struct {
	Section     string
	Key         string
	Value       map[string]string
	ContentType models.ContentType
	UpdatedBy   uuid.UUID
}

// Upsert creates or replaces the (section, key) entry.
func (s *ContentService) Upsert(input UpsertContentInput) (*models.SiteContent, error) {
	section := strings.TrimSpace(input.Section)
	key := strings.TrimSpace(input.Key)
	if section == "" || key == "" {
		return nil, ErrContentKeyRequired
	}
	if len(input.Value) == 0 {
		return nil, ErrContentEmpty
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = models.ContentTypeText
	}
	if !models.ValidContentType(contentType) {
		return nil, ErrInvalidContentType
	}

	content := &models.SiteContent{
		Section:     section,
		Key:         key,
		Value:       models.LocalizedText(input.Value),
		ContentType: contentType,
		UpdatedBy:   input.UpdatedBy,
	}

	if err := s.contentRepo.Upsert(content); err != nil {
		return nil, fmt.Errorf("failed to upsert content: %w", err)
	}

	return content, nil
}

// Get returns a single (section, key) entry.
func (s *ContentService) Get(section, key string) (*models.SiteContent, error) {
	content, err := s.contentRepo.FindBySectionKey(section, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to find content: %w", err)
	}
	return content, nil
}

// GetSection returns every entry of a section.
func (s *ContentService) GetSection(section string) ([]models.SiteContent, error) {
	contents, err := s.contentRepo.ListBySection(section)
	if err != nil {
		return nil, fmt.Errorf("failed to list section: %w", err)
	}
	return contents, nil
}

// FlattenSection maps each key of a section to its value in lang, falling
// back to the default language where lang has no entry.
func (s *ContentService) FlattenSection(section, lang string) (map[string]string, error) {
	contents, err := s.GetSection(section)
	if err != nil {
		return nil, err
	}

	flat := make(map[string]string, len(contents))
	for i := range contents {
		flat[contents[i].Key] = contents[i].ValueFor(lang, defaultLanguage)
	}
	return flat, nil
}
