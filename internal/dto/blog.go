package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/avencia/company-cms-api/internal/models"
	"github.com/avencia/company-cms-api/internal/utils"
)

// BlogPostDTO represents a blog post in API responses
type BlogPostDTO struct {
	ID          uuid.UUID             `json:"id"`
	Title       string                `json:"title"`
	Slug        string                `json:"slug"`
	Content     string                `json:"content,omitempty"`
	Excerpt     string                `json:"excerpt"`
	Status      models.BlogPostStatus `json:"status"`
	Language    string                `json:"language"`
	Tags        []string              `json:"tags"`
	ViewCount   int64                 `json:"view_count"`
	AuthorID    uuid.UUID             `json:"author_id"`
	Author      *UserDTO              `json:"author,omitempty"`
	PublishedAt *time.Time            `json:"published_at,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// ToBlogPostDTO converts a post model to its API representation. withContent
// controls whether the full body is included; list responses omit it.
func ToBlogPostDTO(p models.BlogPost, withContent bool) BlogPostDTO {
	d := BlogPostDTO{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Status:      p.Status,
		Language:    p.Language,
		Tags:        p.Tags,
		ViewCount:   p.ViewCount,
		AuthorID:    p.AuthorID,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if withContent {
		d.Content = p.Content
	}
	if p.Author.ID != uuid.Nil {
		author := ToUserDTO(p.Author)
		d.Author = &author
	}
	return d
}

// BlogPostListResponse is a paginated list of posts
type BlogPostListResponse struct {
	Items      []BlogPostDTO        `json:"items"`
	Pagination utils.PaginationMeta `json:"pagination"`
}

// NewBlogPostListResponse builds a list response without post bodies
func NewBlogPostListResponse(posts []models.BlogPost, meta utils.PaginationMeta) BlogPostListResponse {
	items := make([]BlogPostDTO, len(posts))
	for i, p := range posts {
		items[i] = ToBlogPostDTO(p, false)
	}
	return BlogPostListResponse{Items: items, Pagination: meta}
}
