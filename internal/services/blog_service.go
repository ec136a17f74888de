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
	"github.com/avencia/company-cms-api/internal/utils"
)

var (
	ErrPostNotFound      = errors.New("blog post not found")
	ErrPostTitleRequired = errors.New("title is required")
	ErrPostBodyRequired  = errors.New("content is required")
	ErrInvalidPostStatus = errors.New("invalid post status")
)

const defaultLanguage = "en"

// slugProbeLimit bounds the uniqueness loop; with per-(slug,language) titles
// this is never reached in practice.
const slugProbeLimit = 1000

// BlogService handles blog post business logic
type BlogService struct {
	blogRepo repository.BlogPostRepository
}

// NewBlogService creates a new BlogService
func NewBlogService(blogRepo repository.BlogPostRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo}
}

// CreatePostInput represents input for creating a blog post
type CreatePostInput struct {
	Title    string
	Content  string
	Excerpt  string
	Status   models.BlogPostStatus
	Language string
	Tags     []string
	AuthorID uuid.UUID
}

// CreatePost validates input, derives a unique slug, and stores the post.
func (s *BlogService) CreatePost(input CreatePostInput) (*models.BlogPost, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrPostTitleRequired
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrPostBodyRequired
	}

	language := input.Language
	if language == "" {
		language = defaultLanguage
	}

	status := input.Status
	if status == "" {
		status = models.BlogPostStatusDraft
	}
	if status != models.BlogPostStatusDraft && status != models.BlogPostStatusPublished {
		return nil, ErrInvalidPostStatus
	}

	slug, err := s.uniqueSlug(title, language)
	if err != nil {
		return nil, err
	}

	post := &models.BlogPost{
		Title:    title,
		Slug:     slug,
		Content:  input.Content,
		Excerpt:  input.Excerpt,
		Status:   status,
		Language: language,
		Tags:     models.StringList(input.Tags),
		AuthorID: input.AuthorID,
	}
	if status == models.BlogPostStatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.blogRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// UpdatePostInput represents an allow-listed partial post update
type UpdatePostInput struct {
	Title    *string
	Content  *string
	Excerpt  *string
	Status   *models.BlogPostStatus
	Language *string
	Tags     []string
}

// UpdatePost applies a partial update. A title or language change regenerates
// the slug through the same uniqueness probe; first publication stamps
// published_at.
func (s *BlogService) UpdatePost(id uuid.UUID, input UpdatePostInput) (*models.BlogPost, error) {
	post, err := s.GetPost(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}

	language := post.Language
	if input.Language != nil && *input.Language != "" {
		language = *input.Language
		fields["language"] = language
	}

	title := post.Title
	if input.Title != nil {
		title = strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrPostTitleRequired
		}
		fields["title"] = title
	}
	// A title or language change regenerates the slug so the (slug, language)
	// pair stays unique.
	if title != post.Title || language != post.Language {
		slug, err := s.uniqueSlug(title, language)
		if err != nil {
			return nil, err
		}
		fields["slug"] = slug
	}
	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, ErrPostBodyRequired
		}
		fields["content"] = *input.Content
	}
	if input.Excerpt != nil {
		fields["excerpt"] = *input.Excerpt
	}
	if input.Tags != nil {
		fields["tags"] = models.StringList(input.Tags)
	}
	if input.Status != nil {
		status := *input.Status
		if status != models.BlogPostStatusDraft && status != models.BlogPostStatusPublished {
			return nil, ErrInvalidPostStatus
		}
		fields["status"] = status
		if status == models.BlogPostStatusPublished && post.PublishedAt == nil {
			now := time.Now()
			fields["published_at"] = &now
		}
	}

	if err := s.blogRepo.Update(id, fields); err != nil {
		return nil, err
	}

	return s.GetPost(id)
}

// GetPost returns a post by ID.
func (s *BlogService) GetPost(id uuid.UUID) (*models.BlogPost, error) {
	post, err := s.blogRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return post, nil
}

// GetPublishedPost returns a published post by slug and counts the view.
func (s *BlogService) GetPublishedPost(slug, language string) (*models.BlogPost, error) {
	if language == "" {
		language = defaultLanguage
	}

	post, err := s.blogRepo.FindBySlug(slug, language)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	if !post.IsPublished() {
		return nil, ErrPostNotFound
	}

	if err := s.blogRepo.IncrementViewCount(post.ID); err != nil {
		return nil, fmt.Errorf("failed to count view: %w", err)
	}
	post.ViewCount++

	return post, nil
}

// PreviewPost returns a post by (slug, language) in any status, without
// counting a view. Used by editors to inspect drafts through the public URL.
func (s *BlogService) PreviewPost(slug, language string) (*models.BlogPost, error) {
	if language == "" {
		language = defaultLanguage
	}

	post, err := s.blogRepo.FindBySlug(slug, language)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	return post, nil
}

// ListPostsInput represents filters for listing posts
type ListPostsInput struct {
	Status        *models.BlogPostStatus
	Language      string
	Tag           string
	AuthorID      *uuid.UUID
	Search        string
	PublishedOnly bool
	SortBy        string
	SortDesc      bool
	Page          int
	PageSize      int
}

// ListPosts returns posts matching the filters.
func (s *BlogService) ListPosts(input ListPostsInput) ([]models.BlogPost, int64, error) {
	filter := repository.BlogPostFilter{
		Status:   input.Status,
		Language: input.Language,
		Tag:      input.Tag,
		AuthorID: input.AuthorID,
		Search:   input.Search,
		SortBy:   input.SortBy,
		SortDesc: input.SortDesc,
		Page:     input.Page,
		PageSize: input.PageSize,
	}
	if input.PublishedOnly {
		published := models.BlogPostStatusPublished
		filter.Status = &published
	}

	return s.blogRepo.List(filter)
}

// DeletePost removes a post.
func (s *BlogService) DeletePost(id uuid.UUID) error {
	if _, err := s.GetPost(id); err != nil {
		return err
	}
	return s.blogRepo.Delete(id)
}

// Stats returns blog counts for the admin dashboard.
func (s *BlogService) Stats() (*repository.BlogStats, error) {
	return s.blogRepo.Stats()
}

// uniqueSlug derives the slug from the title, then probes the store and
// appends -1, -2, ... until the (slug, language) pair is free.
func (s *BlogService) uniqueSlug(title, language string) (string, error) {
	base := utils.Slugify(title)
	if base == "" {
		base = "post"
	}

	slug := base
	for i := 1; i <= slugProbeLimit; i++ {
		taken, err := s.blogRepo.SlugExists(slug, language)
		if err != nil {
			return "", fmt.Errorf("failed to probe slug: %w", err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}

	return "", fmt.Errorf("could not find a free slug for %q", base)
}
