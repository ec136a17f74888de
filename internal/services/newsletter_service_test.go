package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avencia/company-cms-api/internal/models"
	"github.com/avencia/company-cms-api/internal/repository"
)

func setupNewsletterService(t *testing.T) *NewsletterService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.NewsletterSubscriber{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewNewsletterService(repository.NewNewsletterRepository(db))
}

func TestSubscribe(t *testing.T) {
	svc := setupNewsletterService(t)

	sub, err := svc.Subscribe("Reader@Example.com")
	require.NoError(t, err)
	require.Equal(t, "reader@example.com", sub.Email)
	require.True(t, sub.Active)
	require.Len(t, sub.UnsubscribeToken, 32)
	require.Nil(t, sub.ConfirmedAt)

	_, err = svc.Subscribe("reader@example.com")
	require.ErrorIs(t, err, ErrAlreadySubscribed)

	_, err = svc.Subscribe("not-an-email")
	require.ErrorIs(t, err, ErrInvalidEmail)
}

func TestConfirmAndUnsubscribe(t *testing.T) {
	svc := setupNewsletterService(t)

	sub, err := svc.Subscribe("reader@example.com")
	require.NoError(t, err)

	confirmed, err := svc.Confirm(sub.UnsubscribeToken)
	require.NoError(t, err)
	require.NotNil(t, confirmed.ConfirmedAt)

	require.NoError(t, svc.Unsubscribe(sub.UnsubscribeToken))

	subs, total, err := svc.ListSubscribers(ListSubscribersInput{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.False(t, subs[0].Active)

	require.ErrorIs(t, svc.Unsubscribe("deadbeefdeadbeefdeadbeefdeadbeef"), ErrTokenNotFound)
}

func TestResubscribeReactivates(t *testing.T) {
	svc := setupNewsletterService(t)

	sub, err := svc.Subscribe("reader@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(sub.UnsubscribeToken))

	again, err := svc.Subscribe("reader@example.com")
	require.NoError(t, err)
	require.True(t, again.Active)
	// The original record and token are kept.
	require.Equal(t, sub.ID, again.ID)
	require.Equal(t, sub.UnsubscribeToken, again.UnsubscribeToken)

	count, err := svc.CountActive()
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
