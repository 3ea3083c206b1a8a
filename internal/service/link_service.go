package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/repository"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

// LinkService covers management of per-resource user links. Granting and
// revoking links is itself a privileged operation and leaves an activity
// trail.
type LinkService struct {
	links      repository.LinkRepository
	users      repository.UserRepository
	privileges *PrivilegeService
	activity   *ActivityService
}

// NewLinkService builds the service.
func NewLinkService(links repository.LinkRepository, users repository.UserRepository, privileges *PrivilegeService, activity *ActivityService) *LinkService {
	return &LinkService{links: links, users: users, privileges: privileges, activity: activity}
}

var manageLinks = []domain.Privilege{domain.PrivilegeManageUserLinks}

// Browse lists active links, optionally narrowed by resource and/or user.
func (s *LinkService) Browse(ctx context.Context, resourceID, userID string) ([]domain.ResourceLink, error) {
	return s.links.List(ctx, resourceID, userID)
}

// Read returns one active link.
func (s *LinkService) Read(ctx context.Context, id string) (*domain.ResourceLink, error) {
	link, err := s.links.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("link")
		}
		return nil, err
	}
	return link, nil
}

// Add links a user to a resource. The target user must exist; duplicate
// active links are rejected.
func (s *LinkService) Add(ctx context.Context, identity domain.Identity, resourceID, userID string) (*domain.ResourceLink, error) {
	if _, err := s.privileges.Resolve(ctx, identity.RoleID, manageLinks); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}

	if _, err := s.links.FindActiveLink(ctx, resourceID, userID); err == nil {
		return nil, apperrors.NewConflict("link already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	link := &domain.ResourceLink{ResourceID: resourceID, UserID: userID}
	if err := s.links.Create(ctx, link); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, link.ID, identity.UserID, domain.ActivityAddUserLink)
	return link, nil
}

// Delete revokes a link.
func (s *LinkService) Delete(ctx context.Context, identity domain.Identity, id string) error {
	if _, err := s.privileges.Resolve(ctx, identity.RoleID, manageLinks); err != nil {
		return err
	}

	if err := s.links.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("link")
		}
		return err
	}

	s.activity.Record(ctx, id, identity.UserID, domain.ActivityDeleteUserLink)
	return nil
}
