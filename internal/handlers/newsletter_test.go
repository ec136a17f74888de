package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avencia/company-cms-api/internal/models"
	"github.com/avencia/company-cms-api/internal/repository"
	"github.com/avencia/company-cms-api/internal/services"
)

func setupNewsletterRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.NewsletterSubscriber{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	h := NewNewsletterHandler(services.NewNewsletterService(repository.NewNewsletterRepository(db)))

	r := gin.New()
	newsletter := r.Group("/api/newsletter")
	newsletter.POST("/subscribe", h.Subscribe)
	newsletter.GET("/confirm/:token", h.Confirm)
	newsletter.GET("/unsubscribe/:token", h.Unsubscribe)

	return r
}

func TestSubscribeReturnsTokenLinks(t *testing.T) {
	r := setupNewsletterRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/newsletter/subscribe", `{"email":"reader@example.com"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, env.Success)

	data := env.Data.(map[string]interface{})
	confirmURL, _ := data["confirm_url"].(string)
	unsubscribeURL, _ := data["unsubscribe_url"].(string)
	require.True(t, strings.HasPrefix(confirmURL, "/api/newsletter/confirm/"))
	require.True(t, strings.HasPrefix(unsubscribeURL, "/api/newsletter/unsubscribe/"))
	require.NotEqual(t, "/api/newsletter/confirm/", confirmURL)

	// The returned links must actually work against the API.
	w, env = doJSON(t, r, http.MethodGet, confirmURL, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	confirmed := env.Data.(map[string]interface{})
	require.NotNil(t, confirmed["confirmed_at"])

	w, env = doJSON(t, r, http.MethodGet, unsubscribeURL, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	// Unknown tokens are rejected.
	w, _ = doJSON(t, r, http.MethodGet, "/api/newsletter/unsubscribe/not-a-token", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirmResponseOmitsToken(t *testing.T) {
	r := setupNewsletterRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/newsletter/subscribe", `{"email":"reader@example.com"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	confirmURL := env.Data.(map[string]interface{})["confirm_url"].(string)
	token := strings.TrimPrefix(confirmURL, "/api/newsletter/confirm/")

	w, env = doJSON(t, r, http.MethodGet, confirmURL, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	for key, value := range env.Data.(map[string]interface{}) {
		s, ok := value.(string)
		require.False(t, ok && strings.Contains(s, token), "field %q leaks the token", key)
	}
}
