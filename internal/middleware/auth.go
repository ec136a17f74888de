package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avencia/company-cms-api/internal/auth"
	"github.com/avencia/company-cms-api/internal/constants"
	apierrors "github.com/avencia/company-cms-api/internal/errors"
	"github.com/avencia/company-cms-api/internal/models"
)

// RequireAuth verifies the bearer access token and loads its claims into the
// request context.
func RequireAuth(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := bearerClaims(c, tm)
		if err != nil {
			respondTokenError(c, err)
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth loads claims when a valid bearer token is present and lets the
// request through either way.
func OptionalAuth(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := bearerClaims(c, tm); err == nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// RequireRoles allows the request through when the authenticated user holds
// at least one of the given roles. Admin satisfies any check; the 403 body
// names the required and actual roles.
func RequireRoles(required ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, ok := GetRoles(c)
		if !ok {
			apierrors.Unauthorized(c, "", "")
			c.Abort()
			return
		}

		for _, req := range required {
			if HoldsRole(c, req) {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "Insufficient permissions",
			fmt.Sprintf("required roles: %s", joinRoles(required)),
			fmt.Sprintf("your roles: %s", strings.Join(roles, ", ")),
		)
		c.Abort()
	}
}

// HoldsRole reports whether the authenticated user satisfies required.
// Unauthenticated requests hold no roles.
func HoldsRole(c *gin.Context, required models.Role) bool {
	roles, ok := GetRoles(c)
	if !ok {
		return false
	}
	for _, held := range roles {
		if models.Role(held).Satisfies(required) {
			return true
		}
	}
	return false
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// GetRoles retrieves the current user's roles from context
func GetRoles(c *gin.Context) ([]string, bool) {
	value, exists := c.Get(constants.ContextKeyRoles)
	if !exists {
		return nil, false
	}
	roles, ok := value.([]string)
	return roles, ok
}

func bearerClaims(c *gin.Context, tm *auth.TokenManager) (*auth.Claims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, auth.ErrTokenInvalid
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil, auth.ErrTokenInvalid
	}

	return tm.Verify(token, auth.TokenTypeAccess)
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(constants.ContextKeyUserID, claims.UserID)
	c.Set(constants.ContextKeyUsername, claims.Username)
	c.Set(constants.ContextKeyRoles, claims.Roles)
}

func respondTokenError(c *gin.Context, err error) {
	if errors.Is(err, auth.ErrTokenExpired) {
		apierrors.Unauthorized(c, apierrors.CodeTokenExpired, "Token has expired")
		return
	}
	apierrors.Unauthorized(c, apierrors.CodeTokenInvalid, "Invalid or missing token")
}

func joinRoles(roles []models.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
