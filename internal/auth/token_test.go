package auth

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/kanban-service/internal/config"
)

func sessionCodec(secret string) *SessionCodec {
	return NewSessionCodec(config.TokenConfig{Secret: secret, TTLMinutes: 15})
}

// signExpiredSession builds a token that expired an hour ago, signed with the
// given secret.
func signExpiredSession(t *testing.T, secret string, claims *SessionClaims) string {
	t.Helper()
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestSessionCodecRoundTrip(t *testing.T) {
	codec := sessionCodec("session-secret")
	roleID := "role-1"

	token, expiresAt, err := codec.Issue("user-1", &roleID, true)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	require.NotNil(t, claims.RoleID)
	assert.Equal(t, "role-1", *claims.RoleID)
	assert.True(t, claims.Remember)
}

func TestSessionCodecNilRole(t *testing.T) {
	codec := sessionCodec("session-secret")

	token, _, err := codec.Issue("user-1", nil, false)
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Nil(t, claims.RoleID)
	assert.False(t, claims.Remember)
}

func TestSessionCodecExpiredKeepsClaims(t *testing.T) {
	codec := sessionCodec("session-secret")
	roleID := "role-1"
	token := signExpiredSession(t, "session-secret", &SessionClaims{UserID: "user-1", RoleID: &roleID, Remember: true})

	_, err := codec.Verify(token)
	var expired *ExpiredError
	require.ErrorAs(t, err, &expired)
	require.NotNil(t, expired.Claims)
	assert.Equal(t, "user-1", expired.Claims.UserID)
	require.NotNil(t, expired.Claims.RoleID)
	assert.Equal(t, "role-1", *expired.Claims.RoleID)
	assert.True(t, expired.Claims.Remember)
	assert.WithinDuration(t, time.Now().Add(-time.Hour), expired.ExpiredAt, time.Minute)
}

func TestSessionCodecWrongSecret(t *testing.T) {
	codec := sessionCodec("session-secret")
	other := sessionCodec("other-secret")

	token, _, err := other.Issue("user-1", nil, false)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionCodecExpiredWrongSecret(t *testing.T) {
	// An expired token with a bad signature must read as invalid, not
	// expired; otherwise a forged token could enter the refresh flow.
	codec := sessionCodec("session-secret")
	token := signExpiredSession(t, "other-secret", &SessionClaims{UserID: "user-1", Remember: true})

	_, err := codec.Verify(token)
	var expired *ExpiredError
	assert.False(t, errors.As(err, &expired))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionCodecMalformed(t *testing.T) {
	codec := sessionCodec("session-secret")

	_, err := codec.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestActionCodecRoundTrip(t *testing.T) {
	codec := NewActionCodec(config.TokenConfig{Secret: "confirm-secret", TTLMinutes: 30})

	token, err := codec.Issue("user-1")
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestActionCodecsNotInterchangeable(t *testing.T) {
	confirm := NewActionCodec(config.TokenConfig{Secret: "confirm-secret", TTLMinutes: 30})
	reset := NewActionCodec(config.TokenConfig{Secret: "reset-secret", TTLMinutes: 30})

	token, err := confirm.Issue("user-1")
	require.NoError(t, err)

	_, err = reset.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionTokenRejectedByActionCodec(t *testing.T) {
	session := sessionCodec("shared-secret")
	action := NewActionCodec(config.TokenConfig{Secret: "action-secret", TTLMinutes: 30})

	token, _, err := session.Issue("user-1", nil, false)
	require.NoError(t, err)

	_, err = action.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
