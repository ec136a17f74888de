package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/avencia/company-cms-api/internal/models"
	"github.com/avencia/company-cms-api/internal/utils"
)

// SubscriberDTO represents a newsletter subscriber in admin API responses
type SubscriberDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Active      bool       `json:"active"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToSubscriberDTO converts a subscriber model to its API representation.
// The unsubscribe token is deliberately not exposed here.
func ToSubscriberDTO(s models.NewsletterSubscriber) SubscriberDTO {
	return SubscriberDTO{
		ID:          s.ID,
		Email:       s.Email,
		Active:      s.Active,
		ConfirmedAt: s.ConfirmedAt,
		CreatedAt:   s.CreatedAt,
	}
}

// SubscriptionDTO is the subscribe response. No confirmation email is sent,
// so the confirm and unsubscribe links are handed back to the caller directly.
type SubscriptionDTO struct {
	SubscriberDTO
	ConfirmURL     string `json:"confirm_url"`
	UnsubscribeURL string `json:"unsubscribe_url"`
}

// ToSubscriptionDTO converts a fresh subscription, including its token links
func ToSubscriptionDTO(s models.NewsletterSubscriber) SubscriptionDTO {
	return SubscriptionDTO{
		SubscriberDTO:  ToSubscriberDTO(s),
		ConfirmURL:     "/api/newsletter/confirm/" + s.UnsubscribeToken,
		UnsubscribeURL: "/api/newsletter/unsubscribe/" + s.UnsubscribeToken,
	}
}

// SubscriberListResponse is a paginated list of subscribers
type SubscriberListResponse struct {
	Items      []SubscriberDTO      `json:"items"`
	Pagination utils.PaginationMeta `json:"pagination"`
}

// NewSubscriberListResponse builds a paginated subscriber list response
func NewSubscriberListResponse(subs []models.NewsletterSubscriber, meta utils.PaginationMeta) SubscriberListResponse {
	items := make([]SubscriberDTO, len(subs))
	for i, s := range subs {
		items[i] = ToSubscriberDTO(s)
	}
	return SubscriberListResponse{Items: items, Pagination: meta}
}
