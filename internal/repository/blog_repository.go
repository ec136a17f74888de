package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avencia/company-cms-api/internal/database"
	"github.com/avencia/company-cms-api/internal/models"
)

// GormBlogPostRepository is a GORM implementation of BlogPostRepository
type GormBlogPostRepository struct {
	db *gorm.DB
}

var blogSortColumns = map[string]string{
	"title":        "title",
	"created_at":   "created_at",
	"published_at": "published_at",
	"views":        "view_count",
}

var blogUpdatableFields = map[string]bool{
	"title":        true,
	"slug":         true,
	"content":      true,
	"excerpt":      true,
	"status":       true,
	"language":     true,
	"tags":         true,
	"published_at": true,
}

// NewBlogPostRepository creates a new BlogPostRepository
func NewBlogPostRepository(db *gorm.DB) BlogPostRepository {
	return &GormBlogPostRepository{db: db}
}

// Create creates a new blog post
func (r *GormBlogPostRepository) Create(post *models.BlogPost) error {
	return r.db.Create(post).Error
}

// FindByID finds a post by ID with the author preloaded
func (r *GormBlogPostRepository) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.Preload("Author").First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindBySlug finds a post by (slug, language)
func (r *GormBlogPostRepository) FindBySlug(slug, language string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.Preload("Author").
		Where("slug = ? AND language = ?", slug, language).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// SlugExists reports whether a (slug, language) pair is already taken
func (r *GormBlogPostRepository) SlugExists(slug, language string) (bool, error) {
	var post models.BlogPost
	err := r.db.Select("id").
		Where("slug = ? AND language = ?", slug, language).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List retrieves posts with filtering and pagination
func (r *GormBlogPostRepository) List(filter BlogPostFilter) ([]models.BlogPost, int64, error) {
	query := r.db.Model(&models.BlogPost{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Language != "" {
		query = query.Where("language = ?", filter.Language)
	}
	if filter.Tag != "" {
		query = query.Where("tags LIKE ?", `%"`+filter.Tag+`"%`)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?) OR LOWER(excerpt) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(blogSortColumns, filter.SortBy, filter.SortDesc, "created_at")).
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	var posts []models.BlogPost
	if err := query.Preload("Author").Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// Update applies an allow-listed partial update
func (r *GormBlogPostRepository) Update(id uuid.UUID, fields map[string]interface{}) error {
	filtered := filterFields(fields, blogUpdatableFields)
	if len(filtered) == 0 {
		return ErrNoValidFields
	}
	return r.db.Model(&models.BlogPost{}).Where("id = ?", id).Updates(filtered).Error
}

// Delete removes a post
func (r *GormBlogPostRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.BlogPost{}, "id = ?", id).Error
}

// IncrementViewCount bumps view_count atomically
func (r *GormBlogPostRepository) IncrementViewCount(id uuid.UUID) error {
	return r.db.Model(&models.BlogPost{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// Stats returns per-status post counts and the total view count
func (r *GormBlogPostRepository) Stats() (*BlogStats, error) {
	var stats BlogStats

	if err := r.db.Model(&models.BlogPost{}).Count(&stats.TotalPosts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.BlogPost{}).
		Where("status = ?", models.BlogPostStatusPublished).
		Count(&stats.PublishedPosts).Error; err != nil {
		return nil, err
	}
	stats.DraftPosts = stats.TotalPosts - stats.PublishedPosts

	var totalViews *int64
	if err := r.db.Model(&models.BlogPost{}).
		Select("SUM(view_count)").Scan(&totalViews).Error; err != nil {
		return nil, err
	}
	if totalViews != nil {
		stats.TotalViews = *totalViews
	}

	return &stats, nil
}
