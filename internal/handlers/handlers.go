// Package handlers contains the HTTP route handlers composing middleware,
// services, and the uniform response envelope.
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apierrors "github.com/avencia/company-cms-api/internal/errors"
)

// parseIDParam parses a UUID route parameter, responding 400 when it is not
// UUID-shaped. The second return value reports success.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		apierrors.BadRequest(c, "", "Invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}
