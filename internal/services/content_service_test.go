package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avencia/company-cms-api/internal/models"
	"github.com/avencia/company-cms-api/internal/repository"
)

func setupContentService(t *testing.T) *ContentService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SiteContent{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewContentService(repository.NewContentRepository(db))
}

func TestUpsertReplacesExistingEntry(t *testing.T) {
	svc := setupContentService(t)
	editor := uuid.New()

	first, err := svc.Upsert(UpsertContentInput{
		Section:   "homepage",
		Key:       "hero_title",
		Value:     map[string]string{"en": "Welcome"},
		UpdatedBy: editor,
	})
	require.NoError(t, err)
	require.Equal(t, models.ContentTypeText, first.ContentType)

	second, err := svc.Upsert(UpsertContentInput{
		Section:   "homepage",
		Key:       "hero_title",
		Value:     map[string]string{"en": "Welcome back", "fr": "Bienvenue"},
		UpdatedBy: uuid.New(),
	})
	require.NoError(t, err)

	got, err := svc.Get("homepage", "hero_title")
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, second.Value, got.Value)

	entries, err := svc.GetSection("homepage")
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestUpsertValidation(t *testing.T) {
	svc := setupContentService(t)

	_, err := svc.Upsert(UpsertContentInput{Section: "", Key: "k", Value: map[string]string{"en": "x"}})
	require.ErrorIs(t, err, ErrContentKeyRequired)

	_, err = svc.Upsert(UpsertContentInput{Section: "s", Key: "k"})
	require.ErrorIs(t, err, ErrContentEmpty)

	_, err = svc.Upsert(UpsertContentInput{
		Section:     "s",
		Key:         "k",
		Value:       map[string]string{"en": "x"},
		ContentType: "video",
	})
	require.ErrorIs(t, err, ErrInvalidContentType)
}

func TestFlattenSectionLanguageFallback(t *testing.T) {
	svc := setupContentService(t)
	editor := uuid.New()

	_, err := svc.Upsert(UpsertContentInput{
		Section:   "about",
		Key:       "mission",
		Value:     map[string]string{"en": "Our mission", "fr": "Notre mission"},
		UpdatedBy: editor,
	})
	require.NoError(t, err)
	_, err = svc.Upsert(UpsertContentInput{
		Section:   "about",
		Key:       "team",
		Value:     map[string]string{"en": "Our team"},
		UpdatedBy: editor,
	})
	require.NoError(t, err)

	flat, err := svc.FlattenSection("about", "fr")
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"mission": "Notre mission",
		// No French entry, so the default language wins.
		"team": "Our team",
	}, flat)

	_, err = svc.Get("about", "missing")
	require.ErrorIs(t, err, ErrContentNotFound)
}
