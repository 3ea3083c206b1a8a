package service

import (
	"context"

	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/repository"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

// PrivilegeService resolves which of a caller's acceptable privileges a role
// actually holds. Read-only; no side effects.
type PrivilegeService struct {
	grants repository.GrantRepository
}

// NewPrivilegeService builds the service.
func NewPrivilegeService(grants repository.GrantRepository) *PrivilegeService {
	return &PrivilegeService{grants: grants}
}

// Resolve returns the first privilege in acceptable for which the role holds
// an active grant. The grant set is unordered; tie-breaking is entirely
// determined by the caller's list order, so callers list broadest first. A nil
// roleID resolves against an empty grant set.
func (s *PrivilegeService) Resolve(ctx context.Context, roleID *string, acceptable []domain.Privilege) (domain.Privilege, error) {
	if roleID == nil {
		return "", apperrors.NewActionNotAllowed()
	}

	grants, err := s.grants.FindActiveGrants(ctx, *roleID)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}

	granted := make(map[domain.Privilege]struct{}, len(grants))
	for _, grant := range grants {
		granted[grant.Privilege] = struct{}{}
	}

	for _, privilege := range acceptable {
		if _, ok := granted[privilege]; ok {
			return privilege, nil
		}
	}
	return "", apperrors.NewActionNotAllowed()
}
