package middleware

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avencia/company-cms-api/internal/constants"
	"github.com/avencia/company-cms-api/internal/models"
	"github.com/avencia/company-cms-api/internal/repository"
)

// SetAuditEntityID exposes a freshly created entity's id to the Audit
// middleware, which has no route parameter to read it from on create routes.
func SetAuditEntityID(c *gin.Context, id string) {
	c.Set(constants.ContextKeyAuditEntityID, id)
}

// Audit records an activity log entry after the response is written. The
// entity ID is taken from the named route parameter when present, falling
// back to the id set by SetAuditEntityID. A failed write is logged and never
// fails the original request.
func Audit(logRepo repository.ActivityLogRepository, logger *zap.Logger, action, entityType, idParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		entry := &models.ActivityLog{
			Action:     action,
			EntityType: entityType,
		}
		if userID, ok := GetUserID(c); ok {
			entry.UserID = &userID
		}
		if idParam != "" {
			entry.EntityID = c.Param(idParam)
		}
		if entry.EntityID == "" {
			entry.EntityID = c.GetString(constants.ContextKeyAuditEntityID)
		}

		details, err := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"url":    c.Request.URL.String(),
			"status": c.Writer.Status(),
		})
		if err == nil {
			entry.Details = string(details)
		}

		if err := logRepo.Create(entry); err != nil {
			logger.Warn("failed to write activity log",
				zap.String("action", action),
				zap.Error(err),
			)
		}
	}
}

// RequestLogger logs every request with zap after it completes.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
