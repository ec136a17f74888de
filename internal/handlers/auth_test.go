package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avencia/company-cms-api/internal/auth"
	apierrors "github.com/avencia/company-cms-api/internal/errors"
	"github.com/avencia/company-cms-api/internal/middleware"
	"github.com/avencia/company-cms-api/internal/models"
	"github.com/avencia/company-cms-api/internal/repository"
	"github.com/avencia/company-cms-api/internal/services"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	tm := auth.NewTokenManager("test-secret")
	authService := services.NewAuthService(repository.NewUserRepository(db), tm, bcrypt.MinCost)
	h := NewAuthHandler(authService)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/login", h.Login)
	api.POST("/auth/refresh", h.Refresh)
	api.GET("/auth/me", middleware.RequireAuth(tm), h.GetCurrentUser)

	users := api.Group("/users", middleware.RequireAuth(tm), middleware.RequireRoles(models.RoleAdmin))
	users.GET("", h.ListUsers)
	users.POST("", h.CreateUser)

	return r, authService
}

func createTestUser(t *testing.T, svc *services.AuthService, username string, roles ...string) *models.User {
	t.Helper()
	user, err := svc.CreateUser(services.CreateUserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "Sup3r-secret",
		Roles:    roles,
	})
	require.NoError(t, err)
	return user
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body, token string) (*httptest.ResponseRecorder, apierrors.Envelope) {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env apierrors.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func loginToken(t *testing.T, r *gin.Engine, identifier, password string) string {
	t.Helper()

	w, env := doJSON(t, r, http.MethodPost, "/api/auth/login",
		`{"identifier":"`+identifier+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	data := env.Data.(map[string]interface{})
	token, ok := data["access_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestLoginEndpoint(t *testing.T) {
	r, svc := setupAuthRouter(t)
	createTestUser(t, svc, "alice", "editor")

	w, env := doJSON(t, r, http.MethodPost, "/api/auth/login",
		`{"identifier":"alice","password":"Sup3r-secret"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	data := env.Data.(map[string]interface{})
	require.NotEmpty(t, data["access_token"])
	require.NotEmpty(t, data["refresh_token"])
	user := data["user"].(map[string]interface{})
	require.Equal(t, "alice", user["username"])

	// Email works as the identifier too.
	loginToken(t, r, "alice@example.com", "Sup3r-secret")
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	r, svc := setupAuthRouter(t)
	createTestUser(t, svc, "alice", "editor")

	w, env := doJSON(t, r, http.MethodPost, "/api/auth/login",
		`{"identifier":"alice","password":"wrong"}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.False(t, env.Success)
	require.Equal(t, apierrors.CodeInvalidCredentials, env.Code)
}

func TestGetCurrentUser(t *testing.T) {
	r, svc := setupAuthRouter(t)
	createTestUser(t, svc, "alice", "editor", "hr")

	token := loginToken(t, r, "alice", "Sup3r-secret")

	w, env := doJSON(t, r, http.MethodGet, "/api/auth/me", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	data := env.Data.(map[string]interface{})
	require.Equal(t, "alice", data["username"])
	require.ElementsMatch(t, []interface{}{"editor", "hr"}, data["roles"])
}

func TestGetCurrentUserRequiresToken(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/api/auth/me", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.False(t, env.Success)

	w, env = doJSON(t, r, http.MethodGet, "/api/auth/me", "", "not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, apierrors.CodeTokenInvalid, env.Code)
}

func TestAdminRoutesForbiddenForEditor(t *testing.T) {
	r, svc := setupAuthRouter(t)
	createTestUser(t, svc, "alice", "editor")
	createTestUser(t, svc, "root", "admin")

	editorToken := loginToken(t, r, "alice", "Sup3r-secret")
	w, env := doJSON(t, r, http.MethodGet, "/api/users", "", editorToken)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, apierrors.CodeForbidden, env.Code)

	adminToken := loginToken(t, r, "root", "Sup3r-secret")
	w, env = doJSON(t, r, http.MethodGet, "/api/users", "", adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)
}

func TestCreateUserDuplicate(t *testing.T) {
	r, svc := setupAuthRouter(t)
	createTestUser(t, svc, "root", "admin")
	adminToken := loginToken(t, r, "root", "Sup3r-secret")

	body := `{"username":"bob","email":"bob@example.com","password":"Sup3r-secret","roles":["viewer"]}`
	w, env := doJSON(t, r, http.MethodPost, "/api/users", body, adminToken)
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, env.Success)

	w, env = doJSON(t, r, http.MethodPost, "/api/users", body, adminToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, apierrors.CodeAlreadyExists, env.Code)
}

func TestRefreshEndpoint(t *testing.T) {
	r, svc := setupAuthRouter(t)
	createTestUser(t, svc, "alice", "editor")

	w, env := doJSON(t, r, http.MethodPost, "/api/auth/login",
		`{"identifier":"alice","password":"Sup3r-secret"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	refreshToken := env.Data.(map[string]interface{})["refresh_token"].(string)

	w, env = doJSON(t, r, http.MethodPost, "/api/auth/refresh",
		`{"refresh_token":"`+refreshToken+`"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)
	require.NotEmpty(t, env.Data.(map[string]interface{})["access_token"])

	// An access token is not accepted where a refresh token is expected.
	accessToken := loginToken(t, r, "alice", "Sup3r-secret")
	w, env = doJSON(t, r, http.MethodPost, "/api/auth/refresh",
		`{"refresh_token":"`+accessToken+`"}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, apierrors.CodeTokenInvalid, env.Code)
}
