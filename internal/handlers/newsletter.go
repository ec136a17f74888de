package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avencia/company-cms-api/internal/dto"
	apierrors "github.com/avencia/company-cms-api/internal/errors"
	"github.com/avencia/company-cms-api/internal/services"
	"github.com/avencia/company-cms-api/internal/utils"
)

// NewsletterHandler coordinates newsletter HTTP handlers.
type NewsletterHandler struct {
	newsletterService *services.NewsletterService
}

// NewNewsletterHandler creates a new NewsletterHandler.
func NewNewsletterHandler(newsletterService *services.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

// Subscribe adds an email to the newsletter.
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	type SubscribeRequest struct {
		Email string `json:"email" binding:"required"`
	}

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "", "Invalid request body")
		return
	}

	sub, err := h.newsletterService.Subscribe(req.Email)
	if err != nil {
		respondNewsletterError(c, err)
		return
	}

	apierrors.OK(c, http.StatusCreated, "Subscribed", dto.ToSubscriptionDTO(*sub))
}

// Confirm stamps the subscription confirmed.
func (h *NewsletterHandler) Confirm(c *gin.Context) {
	sub, err := h.newsletterService.Confirm(c.Param("token"))
	if err != nil {
		respondNewsletterError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Subscription confirmed", dto.ToSubscriberDTO(*sub))
}

// Unsubscribe deactivates the subscription owning the token.
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	if err := h.newsletterService.Unsubscribe(c.Param("token")); err != nil {
		respondNewsletterError(c, err)
		return
	}

	apierrors.OK(c, http.StatusOK, "Unsubscribed", nil)
}

// ListSubscribers returns subscribers for the admin console.
func (h *NewsletterHandler) ListSubscribers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListSubscribersInput{
		Search:   c.Query("search"),
		SortBy:   c.Query("sort"),
		SortDesc: c.DefaultQuery("order", "desc") == "desc",
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if v := c.Query("active"); v != "" {
		active := v == "true"
		input.Active = &active
	}

	subs, total, err := h.newsletterService.ListSubscribers(input)
	if err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	apierrors.OK(c, http.StatusOK, "", dto.NewSubscriberListResponse(subs, utils.NewPaginationMeta(params, total)))
}

func respondNewsletterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidEmail):
		apierrors.BadRequest(c, "", err.Error())
	case errors.Is(err, services.ErrAlreadySubscribed):
		apierrors.BadRequest(c, apierrors.CodeAlreadyExists, err.Error())
	case errors.Is(err, services.ErrTokenNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, err.Error())
	}
}
