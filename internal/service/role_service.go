package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/repository"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

// RoleService covers administrator management of roles. Every operation,
// reads included, requires the role-administration privilege.
type RoleService struct {
	roles      repository.RoleRepository
	privileges *PrivilegeService
}

// NewRoleService builds the service.
func NewRoleService(roles repository.RoleRepository, privileges *PrivilegeService) *RoleService {
	return &RoleService{roles: roles, privileges: privileges}
}

var administrateRoles = []domain.Privilege{domain.PrivilegeAdministrateRoles}

// Browse lists active roles.
func (s *RoleService) Browse(ctx context.Context, identity domain.Identity) ([]domain.Role, error) {
	if _, err := s.privileges.Resolve(ctx, identity.RoleID, administrateRoles); err != nil {
		return nil, err
	}
	return s.roles.List(ctx)
}

// Read returns one active role.
func (s *RoleService) Read(ctx context.Context, identity domain.Identity, id string) (*domain.Role, error) {
	if _, err := s.privileges.Resolve(ctx, identity.RoleID, administrateRoles); err != nil {
		return nil, err
	}
	return s.getRole(ctx, id)
}

// Add creates a role.
func (s *RoleService) Add(ctx context.Context, identity domain.Identity, name string) (*domain.Role, error) {
	if _, err := s.privileges.Resolve(ctx, identity.RoleID, administrateRoles); err != nil {
		return nil, err
	}

	role := &domain.Role{Name: name}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Edit renames a role.
func (s *RoleService) Edit(ctx context.Context, identity domain.Identity, id, name string) error {
	if _, err := s.privileges.Resolve(ctx, identity.RoleID, administrateRoles); err != nil {
		return err
	}

	role, err := s.getRole(ctx, id)
	if err != nil {
		return err
	}

	role.Name = name
	return s.roles.Update(ctx, role)
}

// Delete soft-removes a role. Users referencing it simply lose every
// privilege, since grant resolution only considers active roles' grants.
func (s *RoleService) Delete(ctx context.Context, identity domain.Identity, id string) error {
	if _, err := s.privileges.Resolve(ctx, identity.RoleID, administrateRoles); err != nil {
		return err
	}

	role, err := s.getRole(ctx, id)
	if err != nil {
		return err
	}

	role.Removed = true
	return s.roles.Update(ctx, role)
}

func (s *RoleService) getRole(ctx context.Context, id string) (*domain.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("role")
		}
		return nil, err
	}
	return role, nil
}
