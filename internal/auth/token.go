package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/kanban-service/internal/config"
)

// ErrInvalidToken covers malformed tokens, bad signatures and tokens signed
// for a different purpose. Callers must not treat it as a credentials issue.
var ErrInvalidToken = errors.New("invalid token")

// ExpiredError reports a token that is well-formed and correctly signed but
// past its expiry. The refresh flow depends on telling this apart from
// ErrInvalidToken.
type ExpiredError struct {
	ExpiredAt time.Time
	Claims    *SessionClaims
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("token expired at %s", e.ExpiredAt.Format(time.RFC3339))
}

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	UserID   string  `json:"uid"`
	RoleID   *string `json:"rid,omitempty"`
	Remember bool    `json:"remember"`
	jwt.RegisteredClaims
}

// SessionCodec signs and verifies session tokens.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionCodec builds a codec from one secret+expiry pair.
func NewSessionCodec(cfg config.TokenConfig) *SessionCodec {
	ttl := cfg.TTL()
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionCodec{secret: []byte(cfg.Secret), ttl: ttl}
}

// Issue signs a session token for the given identity.
func (c *SessionCodec) Issue(userID string, roleID *string, remember bool) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(c.ttl)
	claims := &SessionClaims{
		UserID:   userID,
		RoleID:   roleID,
		Remember: remember,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry together. An expired but otherwise
// well-formed token yields *ExpiredError carrying the decoded claims.
func (c *SessionCodec) Verify(tokenStr string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		if parsed != nil && errors.Is(err, jwt.ErrTokenExpired) {
			if claims, ok := parsed.Claims.(*SessionClaims); ok && claims.ExpiresAt != nil {
				return nil, &ExpiredError{ExpiredAt: claims.ExpiresAt.Time, Claims: claims}
			}
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ActionClaims is the payload of single-purpose confirmation and reset tokens.
type ActionClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// ActionCodec signs and verifies single-purpose tokens. Confirmation and
// password-reset codecs carry their own secrets; a token issued by one never
// verifies against another.
type ActionCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewActionCodec builds a codec from one secret+expiry pair.
func NewActionCodec(cfg config.TokenConfig) *ActionCodec {
	ttl := cfg.TTL()
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ActionCodec{secret: []byte(cfg.Secret), ttl: ttl}
}

// Issue signs a token naming the user the action applies to.
func (c *ActionCodec) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &ActionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify returns the claims, *ExpiredError on expiry, or ErrInvalidToken.
func (c *ActionCodec) Verify(tokenStr string) (*ActionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &ActionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		if parsed != nil && errors.Is(err, jwt.ErrTokenExpired) {
			if claims, ok := parsed.Claims.(*ActionClaims); ok && claims.ExpiresAt != nil {
				return nil, &ExpiredError{ExpiredAt: claims.ExpiresAt.Time}
			}
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*ActionClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
