package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avencia/company-cms-api/internal/auth"
	"github.com/avencia/company-cms-api/internal/models"
	"github.com/avencia/company-cms-api/internal/repository"
)

func setupAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	tm := auth.NewTokenManager("test-secret")
	return NewAuthService(repository.NewUserRepository(db), tm, bcrypt.MinCost), db
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := setupAuthService(t)

	user, err := svc.CreateUser(CreateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Sunlit42Harbor",
		Roles:    []string{"editor"},
	})
	require.NoError(t, err)

	// Login works with the username and with the email.
	for _, identifier := range []string{"alice", "alice@example.com"} {
		result, err := svc.Login(LoginInput{Identifier: identifier, Password: "Sunlit42Harbor"})
		require.NoError(t, err)
		require.Equal(t, user.ID, result.User.ID)

		// The issued token verifies back to the same user.
		tm := auth.NewTokenManager("test-secret")
		claims, err := tm.Verify(result.AccessToken, auth.TokenTypeAccess)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.UserID)
	}

	// Login stamps last_login_at.
	fresh, err := svc.GetUser(user.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.CreateUser(CreateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Sunlit42Harbor",
		Roles:    []string{"editor"},
	})
	require.NoError(t, err)

	_, err = svc.Login(LoginInput{Identifier: "alice", Password: "WrongOne99x"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(LoginInput{Identifier: "nobody", Password: "Sunlit42Harbor"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, _ := setupAuthService(t)

	user, err := svc.CreateUser(CreateUserInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "Sunlit42Harbor",
		Roles:    []string{"viewer"},
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeactivateUser(user.ID))

	// Fails with the generic credentials error even with the right password.
	_, err = svc.Login(LoginInput{Identifier: "bob", Password: "Sunlit42Harbor"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := setupAuthService(t)

	// Weak password is itemized, never stored.
	_, err := svc.CreateUser(CreateUserInput{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "password",
		Roles:    []string{"editor"},
	})
	var policyErr *PasswordPolicyError
	require.ErrorAs(t, err, &policyErr)
	require.NotEmpty(t, policyErr.Violations)

	// Unknown role is rejected.
	_, err = svc.CreateUser(CreateUserInput{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "Sunlit42Harbor",
		Roles:    []string{"superuser"},
	})
	require.ErrorIs(t, err, ErrInvalidRole)

	// Roles are mandatory.
	_, err = svc.CreateUser(CreateUserInput{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "Sunlit42Harbor",
	})
	require.ErrorIs(t, err, ErrNoRoles)
}

func TestCreateUserDuplicate(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.CreateUser(CreateUserInput{
		Username: "dave",
		Email:    "dave@example.com",
		Password: "Sunlit42Harbor",
		Roles:    []string{"hr"},
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(CreateUserInput{
		Username: "dave",
		Email:    "other@example.com",
		Password: "Sunlit42Harbor",
		Roles:    []string{"hr"},
	})
	require.ErrorIs(t, err, ErrUserExists)
}

func TestRefresh(t *testing.T) {
	svc, _ := setupAuthService(t)

	user, err := svc.CreateUser(CreateUserInput{
		Username: "erin",
		Email:    "erin@example.com",
		Password: "Sunlit42Harbor",
		Roles:    []string{"admin"},
	})
	require.NoError(t, err)

	result, err := svc.Login(LoginInput{Identifier: "erin", Password: "Sunlit42Harbor"})
	require.NoError(t, err)

	// An access token is not accepted by Refresh.
	_, _, err = svc.Refresh(result.AccessToken)
	require.ErrorIs(t, err, auth.ErrTokenInvalid)

	accessToken, refreshed, err := svc.Refresh(result.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, refreshed.ID)
	require.NotEmpty(t, accessToken)

	// A deactivated user cannot refresh.
	require.NoError(t, svc.DeactivateUser(user.ID))
	_, _, err = svc.Refresh(result.RefreshToken)
	require.ErrorIs(t, err, auth.ErrTokenInvalid)
}
