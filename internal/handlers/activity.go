package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apierrors "github.com/avencia/company-cms-api/internal/errors"
	"github.com/avencia/company-cms-api/internal/repository"
	"github.com/avencia/company-cms-api/internal/utils"
)

// ActivityHandler exposes the audit trail to admins.
type ActivityHandler struct {
	logRepo repository.ActivityLogRepository
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(logRepo repository.ActivityLogRepository) *ActivityHandler {
	return &ActivityHandler{logRepo: logRepo}
}

// List returns activity log entries, newest first.
func (h *ActivityHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.ActivityLogFilter{
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
		Page:       params.Page,
		PageSize:   params.Limit,
	}
	if v := c.Query("user_id"); v != "" {
		userID, err := uuid.Parse(v)
		if err != nil {
			apierrors.BadRequest(c, "", "Invalid user_id parameter")
			return
		}
		filter.UserID = &userID
	}

	entries, total, err := h.logRepo.List(filter)
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	apierrors.OK(c, http.StatusOK, "", gin.H{
		"items":      entries,
		"pagination": utils.NewPaginationMeta(params, total),
	})
}
