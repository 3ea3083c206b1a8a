package service

import (
	"context"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/kanban-service/internal/auth"
	"github.com/spec-kit/kanban-service/internal/config"
	"github.com/spec-kit/kanban-service/internal/domain"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

const (
	testSessionSecret = "session-secret"
	testConfirmSecret = "confirm-secret"
	testResetSecret   = "reset-secret"
	testPassword      = "longenough-password"
)

func sessionTestConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Tokens: config.TokensConfig{
			Session: config.TokenConfig{Secret: testSessionSecret, TTLMinutes: 15},
			Confirm: config.TokenConfig{Secret: testConfirmSecret, TTLMinutes: 30},
			Reset:   config.TokenConfig{Secret: testResetSecret, TTLMinutes: 30},
		},
	}
}

func newSessionFixture(t *testing.T) (*SessionService, *stubUserRepo) {
	t.Helper()
	users := newStubUserRepo()
	svc := NewSessionService(sessionTestConfig(), SessionDependencies{UserRepo: users})
	return svc, users
}

func seedUser(t *testing.T, users *stubUserRepo, email string, confirmed bool, roleID *string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		RoleID:       roleID,
		Email:        email,
		PasswordHash: string(hash),
		Confirmed:    confirmed,
	}
	require.NoError(t, users.Create(context.Background(), user))
	// Push the watermark into the past so freshly minted expired tokens
	// still postdate it.
	stored := users.users[user.ID]
	stored.InvalidatedAt = time.Now().Add(-24 * time.Hour)
	user.InvalidatedAt = stored.InvalidatedAt
	return user
}

// expiredSessionToken signs a session token that expired at the given time.
func expiredSessionToken(t *testing.T, userID string, roleID *string, remember bool, expiredAt time.Time) string {
	t.Helper()
	claims := &auth.SessionClaims{
		UserID:   userID,
		RoleID:   roleID,
		Remember: remember,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiredAt),
			IssuedAt:  jwt.NewNumericDate(expiredAt.Add(-15 * time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSessionSecret))
	require.NoError(t, err)
	return signed
}

func expiredActionToken(t *testing.T, secret, userID string) string {
	t.Helper()
	claims := &auth.ActionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestLogin(t *testing.T) {
	svc, users := newSessionFixture(t)
	roleID := "role-1"
	user := seedUser(t, users, "a@example.com", true, &roleID)

	token, expiresAt, err := svc.Login(context.Background(), "a@example.com", testPassword, true)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.SessionCodec().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	require.NotNil(t, claims.RoleID)
	assert.Equal(t, "role-1", *claims.RoleID)
	assert.True(t, claims.Remember)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, users := newSessionFixture(t)
	seedUser(t, users, "a@example.com", true, nil)

	_, _, err := svc.Login(context.Background(), "a@example.com", "wrong-password", false)
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))

	_, _, err = svc.Login(context.Background(), "missing@example.com", testPassword, false)
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}

func TestLoginUnconfirmed(t *testing.T) {
	svc, users := newSessionFixture(t)
	seedUser(t, users, "a@example.com", false, nil)

	_, _, err := svc.Login(context.Background(), "a@example.com", testPassword, false)
	assert.True(t, apperrors.IsCode(err, "USER_NOT_CONFIRMED"))
}

func TestRefreshMissingToken(t *testing.T) {
	svc, _ := newSessionFixture(t)

	_, _, err := svc.Refresh(context.Background(), "", false)
	assert.True(t, apperrors.IsCode(err, "MISSING_PARAMETERS"))
}

func TestRefreshStillValid(t *testing.T) {
	svc, users := newSessionFixture(t)
	seedUser(t, users, "a@example.com", true, nil)

	token, _, err := svc.Login(context.Background(), "a@example.com", testPassword, true)
	require.NoError(t, err)

	_, _, err = svc.Refresh(context.Background(), token, true)
	assert.True(t, apperrors.IsCode(err, "TOKEN_STILL_VALID"))
}

func TestRefreshGarbageToken(t *testing.T) {
	svc, _ := newSessionFixture(t)

	_, _, err := svc.Refresh(context.Background(), "garbage", true)
	assert.True(t, apperrors.IsCode(err, "INTERNAL_ERROR"))
}

func TestRefreshWithoutRemember(t *testing.T) {
	svc, users := newSessionFixture(t)
	user := seedUser(t, users, "a@example.com", true, nil)
	token := expiredSessionToken(t, user.ID, nil, false, time.Now().Add(-time.Hour))

	_, _, err := svc.Refresh(context.Background(), token, true)
	assert.True(t, apperrors.IsCode(err, "RELOGIN_REQUIRED"))
}

func TestRefreshReissuesIdenticalClaims(t *testing.T) {
	svc, users := newSessionFixture(t)
	roleID := "role-1"
	user := seedUser(t, users, "a@example.com", true, &roleID)
	token := expiredSessionToken(t, user.ID, &roleID, true, time.Now().Add(-time.Hour))

	fresh, expiresAt, err := svc.Refresh(context.Background(), token, true)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.SessionCodec().Verify(fresh)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	require.NotNil(t, claims.RoleID)
	assert.Equal(t, "role-1", *claims.RoleID)
	assert.True(t, claims.Remember)
}

func TestRefreshAfterLogout(t *testing.T) {
	svc, users := newSessionFixture(t)
	user := seedUser(t, users, "a@example.com", true, nil)
	token := expiredSessionToken(t, user.ID, nil, true, time.Now().Add(-time.Hour))

	require.NoError(t, svc.Logout(context.Background(), user.ID))

	_, _, err := svc.Refresh(context.Background(), token, true)
	assert.True(t, apperrors.IsCode(err, "RELOGIN_REQUIRED"))
}

func TestRefreshUnknownUser(t *testing.T) {
	svc, _ := newSessionFixture(t)
	token := expiredSessionToken(t, "user-999", nil, true, time.Now().Add(-time.Hour))

	_, _, err := svc.Refresh(context.Background(), token, true)
	assert.True(t, apperrors.IsCode(err, "RELOGIN_REQUIRED"))
}

func TestRegister(t *testing.T) {
	svc, users := newSessionFixture(t)

	require.NoError(t, svc.Register(context.Background(), "new@example.com", "New User", testPassword))

	user, err := users.GetByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.False(t, user.Confirmed)
	assert.Equal(t, "New User", user.Name)
	assert.Equal(t, 3, user.WipLimit)
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _ := newSessionFixture(t)

	err := svc.Register(context.Background(), "new@example.com", "New User", "short")
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, users := newSessionFixture(t)
	seedUser(t, users, "a@example.com", true, nil)

	err := svc.Register(context.Background(), "a@example.com", "Duplicate", testPassword)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestConfirm(t *testing.T) {
	svc, users := newSessionFixture(t)
	user := seedUser(t, users, "a@example.com", false, nil)
	before := user.InvalidatedAt

	codec := auth.NewActionCodec(config.TokenConfig{Secret: testConfirmSecret, TTLMinutes: 30})
	token, err := codec.Issue(user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(context.Background(), token))

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Confirmed)
	assert.True(t, stored.InvalidatedAt.After(before))

	// A second confirmation is a conflict.
	err = svc.Confirm(context.Background(), token)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestConfirmExpiredToken(t *testing.T) {
	svc, users := newSessionFixture(t)
	user := seedUser(t, users, "a@example.com", false, nil)

	err := svc.Confirm(context.Background(), expiredActionToken(t, testConfirmSecret, user.ID))
	assert.True(t, apperrors.IsCode(err, "CONFIRM_TOKEN_EXPIRED"))
}

func TestConfirmRejectsResetToken(t *testing.T) {
	// A reset token must never confirm an account.
	svc, users := newSessionFixture(t)
	user := seedUser(t, users, "a@example.com", false, nil)

	codec := auth.NewActionCodec(config.TokenConfig{Secret: testResetSecret, TTLMinutes: 30})
	token, err := codec.Issue(user.ID)
	require.NoError(t, err)

	err = svc.Confirm(context.Background(), token)
	assert.True(t, apperrors.IsCode(err, "INTERNAL_ERROR"))
}

func TestChangePassword(t *testing.T) {
	svc, users := newSessionFixture(t)
	user := seedUser(t, users, "a@example.com", true, nil)
	before := user.InvalidatedAt

	codec := auth.NewActionCodec(config.TokenConfig{Secret: testResetSecret, TTLMinutes: 30})
	token, err := codec.Issue(user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(context.Background(), token, "a-brand-new-password"))

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.InvalidatedAt.After(before))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("a-brand-new-password")))
}

func TestChangePasswordExpiredToken(t *testing.T) {
	svc, users := newSessionFixture(t)
	user := seedUser(t, users, "a@example.com", true, nil)

	err := svc.ChangePassword(context.Background(), expiredActionToken(t, testResetSecret, user.ID), "a-brand-new-password")
	assert.True(t, apperrors.IsCode(err, "RESET_TOKEN_EXPIRED"))
}

func TestUpdatePassword(t *testing.T) {
	svc, users := newSessionFixture(t)
	user := seedUser(t, users, "a@example.com", true, nil)
	before := user.InvalidatedAt

	require.NoError(t, svc.UpdatePassword(context.Background(), "a@example.com", testPassword, "a-brand-new-password"))

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.InvalidatedAt.After(before))

	err = svc.UpdatePassword(context.Background(), "a@example.com", testPassword, "another-new-password")
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}

func TestLogoutAdvancesWatermark(t *testing.T) {
	svc, users := newSessionFixture(t)
	user := seedUser(t, users, "a@example.com", true, nil)
	before := user.InvalidatedAt

	require.NoError(t, svc.Logout(context.Background(), user.ID))

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.InvalidatedAt.After(before))
}
