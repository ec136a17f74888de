package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContentType string

const (
	ContentTypeText     ContentType = "text"
	ContentTypeHTML     ContentType = "html"
	ContentTypeMarkdown ContentType = "markdown"
	ContentTypeImageURL ContentType = "image_url"
)

// ValidContentType reports whether t is a known content type.
func ValidContentType(t ContentType) bool {
	switch t {
	case ContentTypeText, ContentTypeHTML, ContentTypeMarkdown, ContentTypeImageURL:
		return true
	}
	return false
}

type SiteContent struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Section     string        `gorm:"type:varchar(100);not null;uniqueIndex:idx_site_content_section_key" json:"section"`
	Key         string        `gorm:"type:varchar(100);not null;uniqueIndex:idx_site_content_section_key" json:"key"`
	Value       LocalizedText `gorm:"type:text;not null" json:"value"`
	ContentType ContentType   `gorm:"type:varchar(20);not null;default:'text'" json:"content_type"`
	UpdatedBy   uuid.UUID     `gorm:"type:uuid;not null" json:"updated_by"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (c *SiteContent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ValueFor returns the value for lang, falling back to fallback when the
// requested language has no entry.
func (c *SiteContent) ValueFor(lang, fallback string) string {
	if v, ok := c.Value[lang]; ok {
		return v
	}
	return c.Value[fallback]
}
