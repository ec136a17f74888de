package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avencia/company-cms-api/internal/database"
	"github.com/avencia/company-cms-api/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var userSortColumns = map[string]string{
	"username":   "username",
	"email":      "email",
	"created_at": "created_at",
	"last_login": "last_login_at",
}

var userUpdatableFields = map[string]bool{
	"username":      true,
	"email":         true,
	"password_hash": true,
	"roles":         true,
	"active":        true,
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsernameOrEmail finds a user whose username or email matches identifier
func (r *GormUserRepository) FindByUsernameOrEmail(identifier string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsernameOrEmail reports whether a user with the username or email exists
func (r *GormUserRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

// List retrieves users with filtering and pagination
func (r *GormUserRepository) List(filter UserFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.Role != "" {
		query = query.Where("roles LIKE ?", `%"`+filter.Role+`"%`)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(username) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(userSortColumns, filter.SortBy, filter.SortDesc, "created_at")).
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update applies an allow-listed partial update
func (r *GormUserRepository) Update(id uuid.UUID, fields map[string]interface{}) error {
	filtered := filterFields(fields, userUpdatableFields)
	if len(filtered) == 0 {
		return ErrNoValidFields
	}
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(filtered).Error
}

// RecordLogin stamps last_login_at
func (r *GormUserRepository) RecordLogin(id uuid.UUID) error {
	now := time.Now()
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("last_login_at", &now).Error
}
