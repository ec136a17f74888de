package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/avencia/company-cms-api/internal/auth"
	"github.com/avencia/company-cms-api/internal/models"
	"github.com/avencia/company-cms-api/internal/repository"
	"github.com/avencia/company-cms-api/internal/utils"
)

var (
	// ErrInvalidCredentials covers wrong identifier, wrong password, and
	// inactive accounts alike, so responses cannot be used to enumerate users.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username or email already in use")
	ErrInvalidRole        = errors.New("unknown role")
	ErrNoRoles            = errors.New("at least one role is required")

	// ErrWeakPassword wraps the itemized policy violations.
	ErrWeakPassword = errors.New("password does not meet the policy")

	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// PasswordPolicyError carries the itemized list of policy violations.
type PasswordPolicyError struct {
	Violations []string
}

func (e *PasswordPolicyError) Error() string {
	return ErrWeakPassword.Error()
}

func (e *PasswordPolicyError) Unwrap() error {
	return ErrWeakPassword
}

// AuthService handles authentication and user administration.
type AuthService struct {
	userRepo   repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, bcryptCost int) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Identifier string // username or email
	Password   string
	RememberMe bool
}

// LoginResult is what a successful login returns.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *models.User
}

// dummyHash is compared against when the identifier matches no account, so an
// unknown identifier costs the same as a wrong password and response timing
// does not reveal which one it was.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("placeholder"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// Login verifies credentials against an active account and issues the token pair.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsernameOrEmail(strings.TrimSpace(input.Identifier))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(input.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Checked after the password compare so both paths cost the same.
	if !user.Active {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Username, user.Roles, input.RememberMe)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.ID, user.Username, user.Roles)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	if err := s.userRepo.RecordLogin(user.ID); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The user
// must still exist and be active.
func (s *AuthService) Refresh(refreshToken string) (string, *models.User, error) {
	claims, err := s.tokens.Verify(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return "", nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, auth.ErrTokenInvalid
		}
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.Active {
		return "", nil, auth.ErrTokenInvalid
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Username, user.Roles, false)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return accessToken, user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateUserInput represents the required information to create an admin user.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Roles    []string
}

// CreateUser registers a new admin console user.
func (s *AuthService) CreateUser(input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	roles, err := validateRoles(input.Roles)
	if err != nil {
		return nil, err
	}

	if violations := utils.ValidatePassword(input.Password); len(violations) > 0 {
		return nil, &PasswordPolicyError{Violations: violations}
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user uniqueness: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Roles:        roles,
		Active:       true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// UpdateUserInput represents an allow-listed partial user update.
type UpdateUserInput struct {
	Email    *string
	Password *string
	Roles    []string
	Active   *bool
}

// UpdateUser applies a partial update to a user.
func (s *AuthService) UpdateUser(id uuid.UUID, input UpdateUserInput) (*models.User, error) {
	fields := map[string]interface{}{}

	if input.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Password != nil {
		if violations := utils.ValidatePassword(*input.Password); len(violations) > 0 {
			return nil, &PasswordPolicyError{Violations: violations}
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), s.bcryptCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		fields["password_hash"] = string(hashed)
	}
	if input.Roles != nil {
		roles, err := validateRoles(input.Roles)
		if err != nil {
			return nil, err
		}
		fields["roles"] = roles
	}
	if input.Active != nil {
		fields["active"] = *input.Active
	}

	if err := s.userRepo.Update(id, fields); err != nil {
		return nil, err
	}

	return s.GetUser(id)
}

// DeactivateUser marks a user inactive. Tokens already issued stop working at
// the next refresh; the account record is kept for audit attribution.
func (s *AuthService) DeactivateUser(id uuid.UUID) error {
	return s.userRepo.Update(id, map[string]interface{}{"active": false})
}

// ListUsersInput represents filters for listing users.
type ListUsersInput struct {
	Active   *bool
	Role     string
	Search   string
	SortBy   string
	SortDesc bool
	Page     int
	PageSize int
}

// ListUsers returns users matching the filters.
func (s *AuthService) ListUsers(input ListUsersInput) ([]models.User, int64, error) {
	return s.userRepo.List(repository.UserFilter{
		Active:   input.Active,
		Role:     input.Role,
		Search:   input.Search,
		SortBy:   input.SortBy,
		SortDesc: input.SortDesc,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
}

func validateRoles(raw []string) (models.StringList, error) {
	if len(raw) == 0 {
		return nil, ErrNoRoles
	}
	roles := make(models.StringList, 0, len(raw))
	for _, r := range raw {
		role := models.Role(r)
		if !role.IsValid() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRole, r)
		}
		if !roles.Contains(r) {
			roles = append(roles, r)
		}
	}
	return roles, nil
}
