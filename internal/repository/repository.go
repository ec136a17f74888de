package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avencia/company-cms-api/internal/models"
)

// ErrNoValidFields is returned by Update when, after filtering against the
// entity's allow-list, nothing remains to change.
var ErrNoValidFields = errors.New("no valid fields to update")

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uuid.UUID) (*models.User, error)

	// FindByUsernameOrEmail finds a user whose username or email matches identifier
	FindByUsernameOrEmail(identifier string) (*models.User, error)

	// ExistsByUsernameOrEmail reports whether a user with the username or email exists
	ExistsByUsernameOrEmail(username, email string) (bool, error)

	// List retrieves users with filtering and pagination
	List(filter UserFilter) ([]models.User, int64, error)

	// Update applies an allow-listed partial update
	Update(id uuid.UUID, fields map[string]interface{}) error

	// RecordLogin stamps last_login_at
	RecordLogin(id uuid.UUID) error
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Active   *bool
	Role     string
	Search   string
	SortBy   string
	SortDesc bool
	Page     int
	PageSize int
}

// BlogPostRepository defines the interface for blog post data access
type BlogPostRepository interface {
	// Create creates a new blog post
	Create(post *models.BlogPost) error

	// FindByID finds a post by ID with the author preloaded
	FindByID(id uuid.UUID) (*models.BlogPost, error)

	// FindBySlug finds a post by (slug, language)
	FindBySlug(slug, language string) (*models.BlogPost, error)

	// SlugExists reports whether a (slug, language) pair is already taken
	SlugExists(slug, language string) (bool, error)

	// List retrieves posts with filtering and pagination
	List(filter BlogPostFilter) ([]models.BlogPost, int64, error)

	// Update applies an allow-listed partial update
	Update(id uuid.UUID, fields map[string]interface{}) error

	// Delete removes a post
	Delete(id uuid.UUID) error

	// IncrementViewCount bumps view_count atomically
	IncrementViewCount(id uuid.UUID) error

	// Stats returns per-status post counts and the total view count
	Stats() (*BlogStats, error)
}

// BlogPostFilter holds filtering options for listing blog posts
type BlogPostFilter struct {
	Status   *models.BlogPostStatus
	Language string
	Tag      string
	AuthorID *uuid.UUID
	Search   string
	SortBy   string
	SortDesc bool
	Page     int
	PageSize int
}

// BlogStats aggregates counts for the admin dashboard.
type BlogStats struct {
	TotalPosts     int64 `json:"total_posts"`
	PublishedPosts int64 `json:"published_posts"`
	DraftPosts     int64 `json:"draft_posts"`
	TotalViews     int64 `json:"total_views"`
}

// JobRepository defines the interface for job offer and application data access
type JobRepository interface {
	// CreateOffer creates a new job offer
	CreateOffer(offer *models.JobOffer) error

	// FindOfferByID finds an offer by ID
	FindOfferByID(id uuid.UUID) (*models.JobOffer, error)

	// ListOffers retrieves offers with filtering and pagination
	ListOffers(filter JobOfferFilter) ([]models.JobOffer, int64, error)

	// UpdateOffer applies an allow-listed partial update
	UpdateOffer(id uuid.UUID, fields map[string]interface{}) error

	// DeleteOffer removes an offer and its applications in one transaction
	DeleteOffer(id uuid.UUID) error

	// CreateApplication creates a new job application
	CreateApplication(app *models.JobApplication) error

	// FindApplicationByID finds an application by ID
	FindApplicationByID(id uuid.UUID) (*models.JobApplication, error)

	// ApplicationExists reports whether an (offer, email) application exists
	ApplicationExists(offerID uuid.UUID, email string) (bool, error)

	// ListApplications retrieves applications with filtering and pagination
	ListApplications(filter JobApplicationFilter) ([]models.JobApplication, int64, error)

	// UpdateApplicationStatus sets the status and stamps reviewer identity and time
	UpdateApplicationStatus(id uuid.UUID, status models.ApplicationStatus, reviewerID uuid.UUID) error

	// Stats returns offer and application counts for the admin dashboard
	Stats() (*JobStats, error)
}

// JobOfferFilter holds filtering options for listing job offers
type JobOfferFilter struct {
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

// JobApplicationFilter holds filtering options for listing job applications
type JobApplicationFilter struct {
	JobOfferID *uuid.UUID
	Status     *models.ApplicationStatus
	Email      string
	SortBy     string
	SortDesc   bool
	Page       int
	PageSize   int
}

// JobStats aggregates counts for the admin dashboard.
type JobStats struct {
	TotalOffers         int64 `json:"total_offers"`
	ActiveOffers        int64 `json:"active_offers"`
	TotalApplications   int64 `json:"total_applications"`
	PendingApplications int64 `json:"pending_applications"`
}

// NewsletterRepository defines the interface for newsletter subscriber data access
type NewsletterRepository interface {
	// Create creates a new subscriber
	Create(sub *models.NewsletterSubscriber) error

	// FindByEmail finds a subscriber by email
	FindByEmail(email string) (*models.NewsletterSubscriber, error)

	// FindByToken finds a subscriber by unsubscribe token
	FindByToken(token string) (*models.NewsletterSubscriber, error)

	// List retrieves subscribers with filtering and pagination
	List(filter SubscriberFilter) ([]models.NewsletterSubscriber, int64, error)

	// Update applies an allow-listed partial update
	Update(id uuid.UUID, fields map[string]interface{}) error

	// CountActive counts active subscribers
	CountActive() (int64, error)
}

// SubscriberFilter holds filtering options for listing subscribers
type SubscriberFilter struct {
	Active   *bool
	Search   string
	SortBy   string
	SortDesc bool
	Page     int
	PageSize int
}

// ContentRepository defines the interface for site content data access
type ContentRepository interface {
	// Upsert creates or updates the entry for (section, key)
	Upsert(content *models.SiteContent) error

	// FindBySectionKey finds a single entry
	FindBySectionKey(section, key string) (*models.SiteContent, error)

	// ListBySection lists every entry of a section
	ListBySection(section string) ([]models.SiteContent, error)
}

// ActivityLogRepository defines the interface for activity log data access
type ActivityLogRepository interface {
	// Create records an activity log entry
	Create(entry *models.ActivityLog) error

	// List retrieves log entries with filtering and pagination
	List(filter ActivityLogFilter) ([]models.ActivityLog, int64, error)
}

// ActivityLogFilter holds filtering options for listing activity log entries
type ActivityLogFilter struct {
	UserID     *uuid.UUID
	Action     string
	EntityType string
	Page       int
	PageSize   int
}

// orderClause maps a caller-supplied sort key through an allow-list of trusted
// column names. Unknown keys fall back to the default column, so caller input
// is never interpolated into SQL.
func orderClause(columns map[string]string, sortBy string, desc bool, defaultColumn string) string {
	column, ok := columns[sortBy]
	if !ok {
		column = defaultColumn
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}

// filterFields keeps only the allow-listed keys of a partial update.
func filterFields(fields map[string]interface{}, allowed map[string]bool) map[string]interface{} {
	filtered := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if allowed[k] {
			filtered[k] = v
		}
	}
	return filtered
}
