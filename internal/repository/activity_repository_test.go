package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/avencia/company-cms-api/internal/models"
)

func setupMockActivityRepo(t *testing.T) (ActivityLogRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	require.NoError(t, err)

	return NewActivityLogRepository(db), mock
}

func TestActivityLogCreate(t *testing.T) {
	repo, mock := setupMockActivityRepo(t)

	userID := uuid.New()
	entry := &models.ActivityLog{
		UserID:     &userID,
		Action:     "blog.create",
		EntityType: "blog_post",
		EntityID:   uuid.NewString(),
		Details:    `{"method":"POST","status":201}`,
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "activity_logs"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(entry))
	require.NotEqual(t, uuid.Nil, entry.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityLogListFiltersByAction(t *testing.T) {
	repo, mock := setupMockActivityRepo(t)

	id := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "activity_logs" WHERE action = \$1`).
		WithArgs("auth.login").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "user_id", "action", "entity_type", "entity_id", "details", "created_at"}).
		AddRow(id.String(), userID.String(), "auth.login", "user", userID.String(), "{}", time.Now())
	mock.ExpectQuery(`SELECT \* FROM "activity_logs" WHERE action = \$1 ORDER BY created_at DESC`).
		WithArgs("auth.login", sqlmock.AnyArg()).
		WillReturnRows(rows)

	entries, total, err := repo.List(ActivityLogFilter{Action: "auth.login", Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, entries, 1)
	require.Equal(t, id, entries[0].ID)
	require.Equal(t, "auth.login", entries[0].Action)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityLogListPropagatesErrors(t *testing.T) {
	repo, mock := setupMockActivityRepo(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "activity_logs"`).
		WillReturnError(gorm.ErrInvalidTransaction)

	_, _, err := repo.List(ActivityLogFilter{})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
