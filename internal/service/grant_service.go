package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/repository"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

// GrantService covers administrator management of role→privilege grants.
type GrantService struct {
	grants     repository.GrantRepository
	roles      repository.RoleRepository
	privileges *PrivilegeService
}

// NewGrantService builds the service.
func NewGrantService(grants repository.GrantRepository, roles repository.RoleRepository, privileges *PrivilegeService) *GrantService {
	return &GrantService{grants: grants, roles: roles, privileges: privileges}
}

var administrateGrants = []domain.Privilege{domain.PrivilegeAdministratePrivilegeLinks}

// Browse lists active grants, optionally narrowed to one role.
func (s *GrantService) Browse(ctx context.Context, identity domain.Identity, roleID string) ([]domain.PrivilegeGrant, error) {
	if _, err := s.privileges.Resolve(ctx, identity.RoleID, administrateGrants); err != nil {
		return nil, err
	}
	return s.grants.List(ctx, roleID)
}

// Read returns one active grant.
func (s *GrantService) Read(ctx context.Context, identity domain.Identity, id string) (*domain.PrivilegeGrant, error) {
	if _, err := s.privileges.Resolve(ctx, identity.RoleID, administrateGrants); err != nil {
		return nil, err
	}

	grant, err := s.grants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("privilege grant")
		}
		return nil, err
	}
	return grant, nil
}

// Add grants a privilege to a role. Unknown privilege names and duplicate
// active grants are rejected here, not deduplicated at read time.
func (s *GrantService) Add(ctx context.Context, identity domain.Identity, roleID string, privilege domain.Privilege) (*domain.PrivilegeGrant, error) {
	if _, err := s.privileges.Resolve(ctx, identity.RoleID, administrateGrants); err != nil {
		return nil, err
	}

	if !privilege.Valid() {
		return nil, apperrors.NewValidationError("unknown privilege", map[string]any{"privilege": string(privilege)})
	}

	if _, err := s.roles.GetByID(ctx, roleID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("role")
		}
		return nil, err
	}

	if _, err := s.grants.FindActive(ctx, roleID, privilege); err == nil {
		return nil, apperrors.NewConflict("privilege grant already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	grant := &domain.PrivilegeGrant{RoleID: roleID, Privilege: privilege}
	if err := s.grants.Create(ctx, grant); err != nil {
		return nil, err
	}
	return grant, nil
}

// Delete revokes a grant. Soft only; the row stays for audit.
func (s *GrantService) Delete(ctx context.Context, identity domain.Identity, id string) error {
	if _, err := s.privileges.Resolve(ctx, identity.RoleID, administrateGrants); err != nil {
		return err
	}

	if err := s.grants.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("privilege grant")
		}
		return err
	}
	return nil
}
