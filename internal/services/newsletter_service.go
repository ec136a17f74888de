package services

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/avencia/company-cms-api/internal/models"
	"github.com/avencia/company-cms-api/internal/repository"
	"github.com/avencia/company-cms-api/internal/utils"
)

var (
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrAlreadySubscribed = errors.New("this email is already subscribed")
	ErrTokenNotFound     = errors.New("unknown subscription token")
)

// NewsletterService handles newsletter subscription business logic
type NewsletterService struct {
	subRepo repository.NewsletterRepository
}

// NewNewsletterService creates a new NewsletterService
func NewNewsletterService(subRepo repository.NewsletterRepository) *NewsletterService {
	return &NewsletterService{subRepo: subRepo}
}

// Subscribe adds an email to the newsletter. Re-subscribing a previously
// unsubscribed email reactivates the existing record and keeps its token.
func (s *NewsletterService) Subscribe(email string) (*models.NewsletterSubscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	existing, err := s.subRepo.FindByEmail(email)
	if err == nil {
		if existing.Active {
			return nil, ErrAlreadySubscribed
		}
		if err := s.subRepo.Update(existing.ID, map[string]interface{}{"active": true}); err != nil {
			return nil, fmt.Errorf("failed to reactivate subscriber: %w", err)
		}
		existing.Active = true
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up subscriber: %w", err)
	}

	token, err := utils.GenerateUnsubscribeToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate unsubscribe token: %w", err)
	}

	sub := &models.NewsletterSubscriber{
		Email:            email,
		Active:           true,
		UnsubscribeToken: token,
	}

	if err := s.subRepo.Create(sub); err != nil {
		return nil, fmt.Errorf("failed to create subscriber: %w", err)
	}

	return sub, nil
}

// Confirm stamps confirmed_at for the subscriber owning the token.
func (s *NewsletterService) Confirm(token string) (*models.NewsletterSubscriber, error) {
	sub, err := s.findByToken(token)
	if err != nil {
		return nil, err
	}

	if sub.ConfirmedAt == nil {
		now := time.Now()
		if err := s.subRepo.Update(sub.ID, map[string]interface{}{"confirmed_at": &now}); err != nil {
			return nil, fmt.Errorf("failed to confirm subscriber: %w", err)
		}
		sub.ConfirmedAt = &now
	}

	return sub, nil
}

// Unsubscribe deactivates the subscriber owning the token.
func (s *NewsletterService) Unsubscribe(token string) error {
	sub, err := s.findByToken(token)
	if err != nil {
		return err
	}

	if err := s.subRepo.Update(sub.ID, map[string]interface{}{"active": false}); err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}

	return nil
}

// ListSubscribersInput represents filters for listing subscribers
type ListSubscribersInput struct {
	Active   *bool
	Search   string
	SortBy   string
	SortDesc bool
	Page     int
	PageSize int
}

// ListSubscribers returns subscribers matching the filters.
func (s *NewsletterService) ListSubscribers(input ListSubscribersInput) ([]models.NewsletterSubscriber, int64, error) {
	return s.subRepo.List(repository.SubscriberFilter{
		Active:   input.Active,
		Search:   input.Search,
		SortBy:   input.SortBy,
		SortDesc: input.SortDesc,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
}

// CountActive counts active subscribers.
func (s *NewsletterService) CountActive() (int64, error) {
	return s.subRepo.CountActive()
}

func (s *NewsletterService) findByToken(token string) (*models.NewsletterSubscriber, error) {
	sub, err := s.subRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	return sub, nil
}
