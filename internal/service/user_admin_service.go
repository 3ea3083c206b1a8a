package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/kanban-service/internal/auth"
	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/repository"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

// UserAdminService covers administrator management of user accounts.
type UserAdminService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	privileges *PrivilegeService
	bcryptCost int
}

// NewUserAdminService builds the service.
func NewUserAdminService(users repository.UserRepository, roles repository.RoleRepository, privileges *PrivilegeService, bcryptCost int) *UserAdminService {
	return &UserAdminService{users: users, roles: roles, privileges: privileges, bcryptCost: bcryptCost}
}

// UserParams carries optional fields for add/edit; nil means untouched.
type UserParams struct {
	RoleID   *string
	Name     *string
	WipLimit *int
}

// Browse lists active users. Any authenticated caller may list.
func (s *UserAdminService) Browse(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Read returns one active user.
func (s *UserAdminService) Read(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// Add creates a confirmed account on behalf of an administrator.
func (s *UserAdminService) Add(ctx context.Context, identity domain.Identity, email, password string, params UserParams) (*domain.User, error) {
	if _, err := s.privileges.Resolve(ctx, identity.RoleID, []domain.Privilege{domain.PrivilegeAdministrateUsers}); err != nil {
		return nil, err
	}
	if err := s.checkRole(ctx, params.RoleID); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("user already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if len(password) < minPasswordLength {
		return nil, apperrors.NewValidationError("password too short", map[string]any{"min_length": minPasswordLength})
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		RoleID:       params.RoleID,
		WipLimit:     3,
		Confirmed:    true,
	}
	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.WipLimit != nil {
		user.WipLimit = *params.WipLimit
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Edit applies partial updates to an account.
func (s *UserAdminService) Edit(ctx context.Context, identity domain.Identity, id string, params UserParams) error {
	if _, err := s.privileges.Resolve(ctx, identity.RoleID, []domain.Privilege{domain.PrivilegeAdministrateUsers}); err != nil {
		return err
	}
	if err := s.checkRole(ctx, params.RoleID); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user")
		}
		return err
	}

	if params.RoleID != nil {
		user.RoleID = params.RoleID
	}
	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.WipLimit != nil {
		user.WipLimit = *params.WipLimit
	}

	return s.users.Update(ctx, user)
}

// Delete soft-removes an account and advances its invalidation watermark so
// outstanding tokens cannot be refreshed.
func (s *UserAdminService) Delete(ctx context.Context, identity domain.Identity, id string) error {
	if _, err := s.privileges.Resolve(ctx, identity.RoleID, []domain.Privilege{domain.PrivilegeAdministrateUsers}); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user")
		}
		return err
	}

	user.Removed = true
	user.InvalidatedAt = time.Now()
	return s.users.Update(ctx, user)
}

func (s *UserAdminService) checkRole(ctx context.Context, roleID *string) error {
	if roleID == nil {
		return nil
	}
	if _, err := s.roles.GetByID(ctx, *roleID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("role")
		}
		return err
	}
	return nil
}
