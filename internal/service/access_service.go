package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/repository"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

// AccessService decides whether a specific resource instance is visible to a
// caller under a resolved privilege tier. It is agnostic to what entity the
// resource id refers to.
type AccessService struct {
	links repository.LinkRepository
}

// NewAccessService builds the service.
func NewAccessService(links repository.LinkRepository) *AccessService {
	return &AccessService{links: links}
}

// CheckLinkedAccess fails with a not-found error unless an active link exists
// for (resource, user). Single-item reads and edits on link-scoped tiers call
// this directly.
func (s *AccessService) CheckLinkedAccess(ctx context.Context, resourceID, userID string) error {
	_, err := s.links.FindActiveLink(ctx, resourceID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("link")
		}
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Visible is the per-item predicate for list endpoints. Global tiers see
// everything; linked tiers see only linked resources, and absence of a link
// silently filters the item rather than failing the request.
func (s *AccessService) Visible(ctx context.Context, privilege domain.Privilege, resourceID, userID string) (bool, error) {
	if !privilege.Linked() {
		return true, nil
	}

	_, err := s.links.FindActiveLink(ctx, resourceID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, apperrors.NewInternalError(err)
	}
	return true, nil
}
