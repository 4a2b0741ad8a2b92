package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentals/constants"
	apperrors "rentals/errors"
	"rentals/models"
	"rentals/repository"
	"rentals/services/logger"
	"rentals/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

type fakeVerifier struct {
	claims map[string]interface{}
	err    error
}

func (f fakeVerifier) Validate(_ context.Context, _, _ string) (*idtoken.Payload, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &idtoken.Payload{Claims: f.claims}, nil
}

func newAuthFixture(t *testing.T, verifier GoogleVerifier) (*AuthService, *repository.UserRepository) {
	t.Helper()
	db := testutil.NewDB(t, &models.User{})
	users := repository.NewUserRepository(db)
	svc := NewAuthService(AuthServiceOptions{
		Users:          users,
		Tokens:         NewTokenService("test-secret", time.Hour),
		GoogleClientID: "client-id",
		Verifier:       verifier,
		Logger:         logger.Nop{},
	})
	return svc, users
}

func TestAuthLogin(t *testing.T) {
	svc, _ := newAuthFixture(t, nil)
	ctx := context.Background()
	admin, err := svc.CreateAdmin(ctx, " Owner@Example.com ", "", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", admin.Email)
	assert.Equal(t, "Admin", admin.Name)
	assert.Equal(t, constants.RoleAdmin, admin.Role)

	session, err := svc.Login(ctx, "owner@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	user, err := svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, user.ID)

	_, wrongPassword := svc.Login(ctx, "owner@example.com", "nope-nope")
	_, unknownEmail := svc.Login(ctx, "ghost@example.com", "correct-horse")
	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, apperrors.GetAppError(wrongPassword).Message, apperrors.GetAppError(unknownEmail).Message)
	assert.Equal(t, apperrors.ErrCodeInvalidPassword, apperrors.GetAppError(unknownEmail).Code)
}

func TestAuthCreateAdminRules(t *testing.T) {
	svc, _ := newAuthFixture(t, nil)
	ctx := context.Background()

	_, err := svc.CreateAdmin(ctx, "owner@example.com", "Owner", "short")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetAppError(err).Code)

	_, err = svc.CreateAdmin(ctx, "owner@example.com", "Owner", "long-enough")
	require.NoError(t, err)
	_, err = svc.CreateAdmin(ctx, "OWNER@example.com", "Owner", "long-enough")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUserExists, apperrors.GetAppError(err).Code)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	svc, _ := newAuthFixture(t, nil)

	_, err := svc.Authenticate(context.Background(), "garbage")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidToken, apperrors.GetAppError(err).Code)

	other := NewTokenService("other-secret", time.Hour)
	token, _, err := other.GenerateToken(UserInfo{UserID: "u1", Role: constants.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.Authenticate(context.Background(), token)
	assert.Error(t, err)

	expired := NewTokenService("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err = expired.GenerateToken(UserInfo{UserID: "u1"})
	require.NoError(t, err)
	_, err = svc.tokens.ParseToken(token)
	assert.Error(t, err)
}

func TestAuthLoginWithGoogle(t *testing.T) {
	ctx := context.Background()

	t.Run("known verified email", func(t *testing.T) {
		svc, users := newAuthFixture(t, fakeVerifier{claims: map[string]interface{}{
			"email":          "owner@example.com",
			"email_verified": true,
			"picture":        "https://lh3.example/avatar.png",
		}})
		_, err := svc.CreateAdmin(ctx, "owner@example.com", "Owner", "long-enough")
		require.NoError(t, err)

		session, err := svc.LoginWithGoogle(ctx, "id-token")
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)

		stored, err := users.FindByEmail(ctx, "owner@example.com")
		require.NoError(t, err)
		assert.Equal(t, "https://lh3.example/avatar.png", stored.Avatar)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := newAuthFixture(t, fakeVerifier{claims: map[string]interface{}{
			"email": "stranger@example.com", "email_verified": true,
		}})
		_, err := svc.LoginWithGoogle(ctx, "id-token")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeUserNotFound, apperrors.GetAppError(err).Code)
	})

	t.Run("unverified email", func(t *testing.T) {
		svc, _ := newAuthFixture(t, fakeVerifier{claims: map[string]interface{}{
			"email": "owner@example.com", "email_verified": false,
		}})
		_, err := svc.LoginWithGoogle(ctx, "id-token")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeInvalidToken, apperrors.GetAppError(err).Code)
	})

	t.Run("verifier error", func(t *testing.T) {
		svc, _ := newAuthFixture(t, fakeVerifier{err: errors.New("bad audience")})
		_, err := svc.LoginWithGoogle(ctx, "id-token")
		require.Error(t, err)
		assert.Equal(t, "Invalid Google token", apperrors.GetAppError(err).Message)
	})
}
