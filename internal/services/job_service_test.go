package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avencia/company-cms-api/internal/models"
	"github.com/avencia/company-cms-api/internal/repository"
)

func setupJobService(t *testing.T) (*JobService, *gorm.DB, uuid.UUID) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.JobOffer{}, &models.JobApplication{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	hr := models.User{
		Username:     "recruiter",
		Email:        "recruiter@example.com",
		PasswordHash: "x",
		Roles:        models.StringList{"hr"},
		Active:       true,
	}
	require.NoError(t, db.Create(&hr).Error)

	return NewJobService(repository.NewJobRepository(db)), db, hr.ID
}

func createOffer(t *testing.T, svc *JobService, creatorID uuid.UUID, deadline *time.Time) *models.JobOffer {
	t.Helper()

	offer, err := svc.CreateOffer(CreateOfferInput{
		Title:               "Backend Engineer",
		Department:          "engineering",
		Location:            "Remote",
		EmploymentType:      models.EmploymentFullTime,
		ApplicationDeadline: deadline,
		CreatedBy:           creatorID,
	})
	require.NoError(t, err)
	return offer
}

func TestApplyAndListByOffer(t *testing.T) {
	svc, _, hrID := setupJobService(t)

	future := time.Now().Add(48 * time.Hour)
	offer := createOffer(t, svc, hrID, &future)

	app, err := svc.Apply(ApplyInput{
		JobOfferID: offer.ID,
		Name:       "Jane Doe",
		Email:      "jane@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusPending, app.Status)

	apps, total, err := svc.ListApplications(ListApplicationsInput{JobOfferID: &offer.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, apps, 1)
	require.Equal(t, models.ApplicationStatusPending, apps[0].Status)
}

func TestApplyPastDeadline(t *testing.T) {
	svc, _, hrID := setupJobService(t)

	past := time.Now().Add(-time.Hour)
	offer := createOffer(t, svc, hrID, &past)

	_, err := svc.Apply(ApplyInput{
		JobOfferID: offer.ID,
		Name:       "Jane Doe",
		Email:      "jane@example.com",
	})
	require.ErrorIs(t, err, ErrDeadlinePassed)
}

func TestApplyToClosedOffer(t *testing.T) {
	svc, _, hrID := setupJobService(t)

	offer := createOffer(t, svc, hrID, nil)
	closed := models.JobOfferStatusClosed
	_, err := svc.UpdateOffer(offer.ID, UpdateOfferInput{Status: &closed})
	require.NoError(t, err)

	_, err = svc.Apply(ApplyInput{
		JobOfferID: offer.ID,
		Name:       "Jane Doe",
		Email:      "jane@example.com",
	})
	require.ErrorIs(t, err, ErrOfferNotOpen)
}

func TestDuplicateApplication(t *testing.T) {
	svc, db, hrID := setupJobService(t)

	offer := createOffer(t, svc, hrID, nil)

	_, err := svc.Apply(ApplyInput{JobOfferID: offer.ID, Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)

	// Same email, same offer: rejected, and no second row is created.
	_, err = svc.Apply(ApplyInput{JobOfferID: offer.ID, Name: "Jane Again", Email: "JANE@example.com"})
	require.ErrorIs(t, err, ErrDuplicateApplication)

	var count int64
	require.NoError(t, db.Model(&models.JobApplication{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// A different offer accepts the same email.
	other := createOffer(t, svc, hrID, nil)
	_, err = svc.Apply(ApplyInput{JobOfferID: other.ID, Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)
}

func TestStatusTransitionStampsReviewer(t *testing.T) {
	svc, _, hrID := setupJobService(t)

	offer := createOffer(t, svc, hrID, nil)
	app, err := svc.Apply(ApplyInput{JobOfferID: offer.ID, Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)
	require.Nil(t, app.ReviewedBy)

	reviewed, err := svc.Review(app.ID, hrID)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusReviewing, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	require.Equal(t, hrID, *reviewed.ReviewedBy)
	require.NotNil(t, reviewed.ReviewedAt)

	hired, err := svc.Hire(app.ID, hrID)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusHired, hired.Status)

	_, err = svc.UpdateApplicationStatus(app.ID, "promoted", hrID)
	require.ErrorIs(t, err, ErrInvalidAppStatus)
}

func TestDeleteOfferRemovesApplications(t *testing.T) {
	svc, db, hrID := setupJobService(t)

	offer := createOffer(t, svc, hrID, nil)
	_, err := svc.Apply(ApplyInput{JobOfferID: offer.ID, Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOffer(offer.ID))

	var count int64
	require.NoError(t, db.Model(&models.JobApplication{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestClosingOfferKeepsApplications(t *testing.T) {
	svc, db, hrID := setupJobService(t)

	offer := createOffer(t, svc, hrID, nil)
	_, err := svc.Apply(ApplyInput{JobOfferID: offer.ID, Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)

	closed := models.JobOfferStatusClosed
	_, err = svc.UpdateOffer(offer.ID, UpdateOfferInput{Status: &closed})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.JobApplication{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestListOpenOffersExcludesExpired(t *testing.T) {
	svc, _, hrID := setupJobService(t)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	createOffer(t, svc, hrID, &past)
	open := createOffer(t, svc, hrID, &future)
	createOffer(t, svc, hrID, nil)

	offers, total, err := svc.ListOffers(ListOffersInput{OpenOnly: true})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	ids := []uuid.UUID{offers[0].ID, offers[1].ID}
	require.Contains(t, ids, open.ID)
}
