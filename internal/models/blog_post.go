package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogPostStatus string

const (
	BlogPostStatusDraft     BlogPostStatus = "draft"
	BlogPostStatusPublished BlogPostStatus = "published"
)

type BlogPost struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_blog_posts_slug_language" json:"slug"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	Excerpt     string         `gorm:"type:text" json:"excerpt"`
	Status      BlogPostStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	Language    string         `gorm:"type:varchar(10);not null;default:'en';uniqueIndex:idx_blog_posts_slug_language" json:"language"`
	AuthorID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	Tags        StringList     `gorm:"type:text" json:"tags"`
	ViewCount   int64          `gorm:"not null;default:0" json:"view_count"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	// Relations
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsPublished reports whether the post is visible on the public site.
func (p *BlogPost) IsPublished() bool {
	return p.Status == BlogPostStatusPublished
}
