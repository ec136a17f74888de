package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/avencia/company-cms-api/internal/errors"
	"github.com/avencia/company-cms-api/internal/middleware"
	"github.com/avencia/company-cms-api/internal/models"
	"github.com/avencia/company-cms-api/internal/services"
)

// ContentHandler coordinates site content HTTP handlers.
type ContentHandler struct {
	contentService *services.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// GetSection returns a section's entries. With ?lang= the values are
// flattened to that language (falling back to the default); with ?key= only
// that entry is returned.
func (h *ContentHandler) GetSection(c *gin.Context) {
	section := c.Param("section")

	if key := c.Query("key"); key != "" {
		content, err := h.contentService.Get(section, key)
		if err != nil {
			respondContentError(c, err)
			return
		}
		apierrors.OK(c, http.StatusOK, "", content)
		return
	}

	if lang := c.Query("lang"); lang != "" {
		flat, err := h.contentService.FlattenSection(section, lang)
		if err != nil {
			respondContentError(c, err)
			return
		}
		apierrors.OK(c, http.StatusOK, "", flat)
		return
	}

	contents, err := h.contentService.GetSection(section)
	if err != nil {
		respondContentError(c, err)
		return
	}
	apierrors.OK(c, http.StatusOK, "", contents)
}

// Upsert creates or replaces a (section, key) entry.
func (h *ContentHandler) Upsert(c *gin.Context) {
	type UpsertRequest struct {
		Section     string            `json:"section" binding:"required"`
		Key         string            `json:"key" binding:"required"`
		Value       map[string]string `json:"value" binding:"required"`
		ContentType string            `json:"content_type"`
	}

	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "", "Invalid request body")
		return
	}

	updatedBy, _ := middleware.GetUserID(c)

	content, err := h.contentService.Upsert(services.UpsertContentInput{
		Section:     req.Section,
		Key:         req.Key,
		Value:       req.Value,
		ContentType: models.ContentType(req.ContentType),
		UpdatedBy:   updatedBy,
	})
	if err != nil {
		respondContentError(c, err)
		return
	}

	middleware.SetAuditEntityID(c, content.ID.String())
	apierrors.OK(c, http.StatusOK, "Content saved", content)
}

func respondContentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrContentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrContentKeyRequired),
		errors.Is(err, services.ErrContentEmpty),
		errors.Is(err, services.ErrInvalidContentType):
		apierrors.BadRequest(c, "", err.Error())
	default:
		apierrors.InternalError(c, err.Error())
	}
}
