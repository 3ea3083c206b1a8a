package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/kanban-service/internal/auth"
	"github.com/spec-kit/kanban-service/internal/config"
	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/events"
	"github.com/spec-kit/kanban-service/internal/repository"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

const minPasswordLength = 10

// SessionService owns the session lifecycle: registration, confirmation,
// login, logout, refresh and the password flows.
type SessionService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	session    *auth.SessionCodec
	confirm    *auth.ActionCodec
	reset      *auth.ActionCodec
	dispatcher events.Dispatcher
	bcryptCost int
}

// SessionDependencies bundles collaborator requirements.
type SessionDependencies struct {
	UserRepo   repository.UserRepository
	RoleRepo   repository.RoleRepository
	Dispatcher events.Dispatcher
}

// NewSessionService builds the service from configuration.
func NewSessionService(cfg *config.Config, deps SessionDependencies) *SessionService {
	return &SessionService{
		users:      deps.UserRepo,
		roles:      deps.RoleRepo,
		session:    auth.NewSessionCodec(cfg.Tokens.Session),
		confirm:    auth.NewActionCodec(cfg.Tokens.Confirm),
		reset:      auth.NewActionCodec(cfg.Tokens.Reset),
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// SessionCodec exposes the session codec for the gate.
func (s *SessionService) SessionCodec() *auth.SessionCodec {
	return s.session
}

func badCredentials() error {
	return apperrors.NewUnauthorized("bad credentials")
}

func notConfirmed() error {
	return apperrors.NewDomainError("USER_NOT_CONFIRMED", "user has not been confirmed yet", http.StatusForbidden, nil)
}

// Login authenticates credentials and mints a session token carrying the
// user's identity, optional role and the remember flag.
func (s *SessionService) Login(ctx context.Context, email, password string, remember bool) (string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, badCredentials()
		}
		return "", time.Time{}, err
	}
	if !user.Confirmed {
		return "", time.Time{}, notConfirmed()
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, badCredentials()
	}

	return s.session.Issue(user.ID, user.RoleID, remember)
}

// Logout advances the caller's invalidation watermark, making every
// previously issued token ineligible for refresh.
func (s *SessionService) Logout(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user")
		}
		return err
	}

	user.InvalidatedAt = time.Now()
	return s.users.Update(ctx, user)
}

// Refresh exchanges an expired remember-me token for a fresh one. A token
// that has not expired yet is rejected outright: accepting it would let a
// stolen token's life be extended indefinitely.
func (s *SessionService) Refresh(ctx context.Context, token string, present bool) (string, time.Time, error) {
	if !present {
		return "", time.Time{}, apperrors.NewMissingParameters()
	}

	_, err := s.session.Verify(token)
	if err == nil {
		return "", time.Time{}, apperrors.NewTokenStillValid()
	}

	var expired *auth.ExpiredError
	if !errors.As(err, &expired) {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}

	claims := expired.Claims
	if !claims.Remember {
		return "", time.Time{}, apperrors.NewReloginRequired()
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.NewReloginRequired()
		}
		return "", time.Time{}, err
	}

	// The user must not have logged out or changed credentials since the
	// expired token was issued.
	if !user.InvalidatedAt.Before(expired.ExpiredAt) {
		return "", time.Time{}, apperrors.NewReloginRequired()
	}

	return s.session.Issue(claims.UserID, claims.RoleID, claims.Remember)
}

// Register creates an unconfirmed account and emits the confirmation email
// event.
func (s *SessionService) Register(ctx context.Context, email, name, password string) error {
	if len(password) < minPasswordLength {
		return apperrors.NewValidationError("password too short", map[string]any{"min_length": minPasswordLength})
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return apperrors.NewConflict("user already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		WipLimit:     3,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	token, err := s.confirm.Issue(user.ID)
	if err != nil {
		return err
	}

	return s.publishMailEvent(ctx, events.EventUserRegistered, user.ID, user.Email, token)
}

// Confirm activates the account named by a confirmation token.
func (s *SessionService) Confirm(ctx context.Context, token string) error {
	claims, err := s.confirm.Verify(token)
	if err != nil {
		var expired *auth.ExpiredError
		if errors.As(err, &expired) {
			return apperrors.NewDomainError("CONFIRM_TOKEN_EXPIRED", "confirm token has expired", http.StatusBadRequest, nil)
		}
		return apperrors.NewInternalError(err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user")
		}
		return err
	}
	if user.Confirmed {
		return apperrors.NewConflict("user already confirmed", nil)
	}

	user.Confirmed = true
	user.InvalidatedAt = time.Now()
	return s.users.Update(ctx, user)
}

// ResendConfirmation issues a fresh confirmation token for an unconfirmed
// account.
func (s *SessionService) ResendConfirmation(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user")
		}
		return err
	}
	if user.Confirmed {
		return apperrors.NewConflict("user already confirmed", nil)
	}

	token, err := s.confirm.Issue(user.ID)
	if err != nil {
		return err
	}

	return s.publishMailEvent(ctx, events.EventConfirmationResent, user.ID, user.Email, token)
}

// RequestReset issues a password-reset token and emits the reset email event.
func (s *SessionService) RequestReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user")
		}
		return err
	}
	if !user.Confirmed {
		return notConfirmed()
	}

	token, err := s.reset.Issue(user.ID)
	if err != nil {
		return err
	}

	return s.publishMailEvent(ctx, events.EventPasswordResetRequest, user.ID, user.Email, token)
}

// ChangePassword completes the reset flow: a valid reset token replaces the
// credential and advances the invalidation watermark.
func (s *SessionService) ChangePassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.reset.Verify(token)
	if err != nil {
		var expired *auth.ExpiredError
		if errors.As(err, &expired) {
			return apperrors.NewDomainError("RESET_TOKEN_EXPIRED", "reset token has expired", http.StatusBadRequest, nil)
		}
		return apperrors.NewInternalError(err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user")
		}
		return err
	}
	if !user.Confirmed {
		return notConfirmed()
	}

	return s.replacePassword(ctx, user, newPassword)
}

// UpdatePassword is the self-service flow: the old password authorizes the
// new one.
func (s *SessionService) UpdatePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return badCredentials()
		}
		return err
	}
	if !user.Confirmed {
		return notConfirmed()
	}
	if err := auth.ComparePassword(user.PasswordHash, oldPassword); err != nil {
		return badCredentials()
	}

	return s.replacePassword(ctx, user, newPassword)
}

func (s *SessionService) replacePassword(ctx context.Context, user *domain.User, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.NewValidationError("password too short", map[string]any{"min_length": minPasswordLength})
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.InvalidatedAt = time.Now()
	return s.users.Update(ctx, user)
}

func (s *SessionService) publishMailEvent(ctx context.Context, eventType events.EventType, userID, email, token string) error {
	if s.dispatcher == nil {
		return nil
	}
	return s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   events.MailTokenPayload{Email: email, Token: token},
	})
}
