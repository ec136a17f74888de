package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avencia/company-cms-api/internal/auth"
	"github.com/avencia/company-cms-api/internal/dto"
	apierrors "github.com/avencia/company-cms-api/internal/errors"
	"github.com/avencia/company-cms-api/internal/middleware"
	"github.com/avencia/company-cms-api/internal/repository"
	"github.com/avencia/company-cms-api/internal/services"
	"github.com/avencia/company-cms-api/internal/utils"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates a user and returns the token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Identifier string `json:"identifier" binding:"required"`
		Password   string `json:"password" binding:"required"`
		RememberMe bool   `json:"remember_me"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "", "Invalid request body")
		return
	}

	result, err := h.authService.Login(services.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Login successful", dto.LoginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         dto.ToUserDTO(*result.User),
	})
}

// Refresh exchanges a refresh token for a new access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	type RefreshRequest struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "", "Invalid request body")
		return
	}

	accessToken, user, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "", dto.RefreshResponse{
		AccessToken: accessToken,
		User:        dto.ToUserDTO(*user),
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "", "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "", dto.ToUserDTO(*user))
}

// ListUsers returns admin console users (admin only).
func (h *AuthHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListUsersInput{
		Role:     c.Query("role"),
		Search:   c.Query("search"),
		SortBy:   c.Query("sort"),
		SortDesc: c.Query("order") == "desc",
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if v := c.Query("active"); v != "" {
		active := v == "true"
		input.Active = &active
	}

	users, total, err := h.authService.ListUsers(input)
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	apierrors.OK(c, http.StatusOK, "", gin.H{
		"items":      dto.ToUserDTOs(users),
		"pagination": utils.NewPaginationMeta(params, total),
	})
}

// CreateUser registers a new admin console user (admin only).
func (h *AuthHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Username string   `json:"username" binding:"required,min=3,max=50"`
		Email    string   `json:"email" binding:"required,email"`
		Password string   `json:"password" binding:"required"`
		Roles    []string `json:"roles" binding:"required"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "", "Invalid request body")
		return
	}

	user, err := h.authService.CreateUser(services.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Roles:    req.Roles,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	middleware.SetAuditEntityID(c, user.ID.String())
	apierrors.OK(c, http.StatusCreated, "User created", dto.ToUserDTO(*user))
}

// UpdateUser applies a partial update to a user (admin only).
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateUserRequest struct {
		Email    *string  `json:"email"`
		Password *string  `json:"password"`
		Roles    []string `json:"roles"`
		Active   *bool    `json:"active"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "", "Invalid request body")
		return
	}

	user, err := h.authService.UpdateUser(id, services.UpdateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Roles:    req.Roles,
		Active:   req.Active,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "User updated", dto.ToUserDTO(*user))
}

// DeactivateUser marks a user inactive (admin only).
func (h *AuthHandler) DeactivateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.authService.DeactivateUser(id); err != nil {
		respondAuthError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "User deactivated", nil)
}

func respondAuthError(c *gin.Context, err error) {
	var policyErr *services.PasswordPolicyError

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, apierrors.CodeInvalidCredentials, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		apierrors.Unauthorized(c, apierrors.CodeTokenExpired, "Token has expired")
	case errors.Is(err, auth.ErrTokenInvalid):
		apierrors.Unauthorized(c, apierrors.CodeTokenInvalid, "Invalid token")
	case errors.As(err, &policyErr):
		apierrors.BadRequest(c, "", "Password does not meet the policy", policyErr.Violations...)
	case errors.Is(err, services.ErrUserExists):
		apierrors.BadRequest(c, apierrors.CodeAlreadyExists, err.Error())
	case errors.Is(err, services.ErrInvalidRole), errors.Is(err, services.ErrNoRoles):
		apierrors.BadRequest(c, "", err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, repository.ErrNoValidFields):
		apierrors.BadRequest(c, apierrors.CodeNoValidFields, err.Error())
	default:
		apierrors.InternalError(c, err.Error())
	}
}
