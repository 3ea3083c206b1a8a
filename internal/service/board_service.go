package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/repository"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

// BoardService gates access to boards through the two-tier model: a resolved
// global tier sees everything, a linked tier only resources the caller is
// linked to.
type BoardService struct {
	boards     repository.BoardRepository
	privileges *PrivilegeService
	access     *AccessService
}

// NewBoardService builds the service.
func NewBoardService(boards repository.BoardRepository, privileges *PrivilegeService, access *AccessService) *BoardService {
	return &BoardService{boards: boards, privileges: privileges, access: access}
}

// Acceptable privilege lists, broadest first; caller order decides ties.
var (
	boardViewPrivileges = []domain.Privilege{
		domain.PrivilegeManageBoards,
		domain.PrivilegeManageLinkedBoards,
		domain.PrivilegeViewBoards,
		domain.PrivilegeViewLinkedBoards,
	}
	boardEditPrivileges = []domain.Privilege{
		domain.PrivilegeManageBoards,
		domain.PrivilegeManageLinkedBoards,
	}
	boardAdminPrivileges = []domain.Privilege{domain.PrivilegeManageBoards}
)

// Browse lists boards visible under the caller's resolved tier. On a linked
// tier, unlinked boards are silently filtered out.
func (s *BoardService) Browse(ctx context.Context, identity domain.Identity, projectID string) ([]domain.Board, error) {
	privilege, err := s.privileges.Resolve(ctx, identity.RoleID, boardViewPrivileges)
	if err != nil {
		return nil, err
	}

	boards, err := s.boards.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !privilege.Linked() {
		return boards, nil
	}

	visible := boards[:0]
	for _, board := range boards {
		ok, err := s.access.Visible(ctx, privilege, board.ID, identity.UserID)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, board)
		}
	}
	return visible, nil
}

// Read returns one board; on a linked tier, absence of a link is an error.
func (s *BoardService) Read(ctx context.Context, identity domain.Identity, id string) (*domain.Board, error) {
	privilege, err := s.privileges.Resolve(ctx, identity.RoleID, boardViewPrivileges)
	if err != nil {
		return nil, err
	}
	if privilege.Linked() {
		if err := s.access.CheckLinkedAccess(ctx, id, identity.UserID); err != nil {
			return nil, err
		}
	}

	return s.getBoard(ctx, id)
}

// BoardParams carries optional fields for edit; nil means untouched.
type BoardParams struct {
	ProjectID *string
	Name      *string
}

// Edit applies partial updates under a manage tier.
func (s *BoardService) Edit(ctx context.Context, identity domain.Identity, id string, params BoardParams) error {
	privilege, err := s.privileges.Resolve(ctx, identity.RoleID, boardEditPrivileges)
	if err != nil {
		return err
	}
	if privilege.Linked() {
		if err := s.access.CheckLinkedAccess(ctx, id, identity.UserID); err != nil {
			return err
		}
	}

	board, err := s.getBoard(ctx, id)
	if err != nil {
		return err
	}

	if params.ProjectID != nil {
		board.ProjectID = *params.ProjectID
	}
	if params.Name != nil {
		board.Name = *params.Name
	}
	return s.boards.Update(ctx, board)
}

// Add creates a board; only the global manage tier may create.
func (s *BoardService) Add(ctx context.Context, identity domain.Identity, projectID, name string) (*domain.Board, error) {
	if _, err := s.privileges.Resolve(ctx, identity.RoleID, boardAdminPrivileges); err != nil {
		return nil, err
	}

	board := &domain.Board{ProjectID: projectID, Name: name}
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// Delete soft-removes a board; only the global manage tier may delete.
func (s *BoardService) Delete(ctx context.Context, identity domain.Identity, id string) error {
	if _, err := s.privileges.Resolve(ctx, identity.RoleID, boardAdminPrivileges); err != nil {
		return err
	}

	board, err := s.getBoard(ctx, id)
	if err != nil {
		return err
	}

	board.Removed = true
	return s.boards.Update(ctx, board)
}

func (s *BoardService) getBoard(ctx context.Context, id string) (*domain.Board, error) {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("board")
		}
		return nil, err
	}
	return board, nil
}
