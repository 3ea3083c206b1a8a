package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/repository"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

// CardService applies the two-tier access model to cards and records the
// card activities on every mutation.
type CardService struct {
	cards      repository.CardRepository
	privileges *PrivilegeService
	access     *AccessService
	activity   *ActivityService
}

// NewCardService builds the service.
func NewCardService(cards repository.CardRepository, privileges *PrivilegeService, access *AccessService, activity *ActivityService) *CardService {
	return &CardService{cards: cards, privileges: privileges, access: access, activity: activity}
}

var (
	cardViewPrivileges = []domain.Privilege{
		domain.PrivilegeManageCards,
		domain.PrivilegeManageLinkedCards,
		domain.PrivilegeViewCards,
		domain.PrivilegeViewLinkedCards,
	}
	cardEditPrivileges = []domain.Privilege{
		domain.PrivilegeManageCards,
		domain.PrivilegeManageLinkedCards,
	}
	cardAdminPrivileges = []domain.Privilege{domain.PrivilegeManageCards}
)

// Browse lists cards under the caller's resolved tier; a linked tier drops
// unlinked cards from the result without failing the request.
func (s *CardService) Browse(ctx context.Context, identity domain.Identity, filter repository.CardFilter) ([]domain.Card, error) {
	privilege, err := s.privileges.Resolve(ctx, identity.RoleID, cardViewPrivileges)
	if err != nil {
		return nil, err
	}

	cards, err := s.cards.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if !privilege.Linked() {
		return cards, nil
	}

	visible := cards[:0]
	for _, card := range cards {
		ok, err := s.access.Visible(ctx, privilege, card.ID, identity.UserID)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, card)
		}
	}
	return visible, nil
}

// Read returns one card; on a linked tier a missing link is an error.
func (s *CardService) Read(ctx context.Context, identity domain.Identity, id string) (*domain.Card, error) {
	privilege, err := s.privileges.Resolve(ctx, identity.RoleID, cardViewPrivileges)
	if err != nil {
		return nil, err
	}
	if privilege.Linked() {
		if err := s.access.CheckLinkedAccess(ctx, id, identity.UserID); err != nil {
			return nil, err
		}
	}

	return s.getCard(ctx, id)
}

// CardParams carries optional fields for edit; nil means untouched.
type CardParams struct {
	SwimlaneID  *string
	ColumnID    *string
	PriorityID  *string
	StatusID    *string
	Name        *string
	Description *string
}

// Edit applies partial updates under a manage tier and records updateCard
// when anything actually changed.
func (s *CardService) Edit(ctx context.Context, identity domain.Identity, id string, params CardParams) error {
	privilege, err := s.privileges.Resolve(ctx, identity.RoleID, cardEditPrivileges)
	if err != nil {
		return err
	}
	if privilege.Linked() {
		if err := s.access.CheckLinkedAccess(ctx, id, identity.UserID); err != nil {
			return err
		}
	}

	card, err := s.getCard(ctx, id)
	if err != nil {
		return err
	}

	changed := false
	apply := func(dst *string, src *string) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}
	apply(&card.SwimlaneID, params.SwimlaneID)
	apply(&card.ColumnID, params.ColumnID)
	apply(&card.PriorityID, params.PriorityID)
	apply(&card.StatusID, params.StatusID)
	apply(&card.Name, params.Name)
	apply(&card.Description, params.Description)
	if !changed {
		return nil
	}

	if err := s.cards.Update(ctx, card); err != nil {
		return err
	}
	s.activity.Record(ctx, card.ID, identity.UserID, domain.ActivityUpdateCard)
	return nil
}

// Add creates a card under the global manage tier and records addCard.
func (s *CardService) Add(ctx context.Context, identity domain.Identity, card *domain.Card) error {
	if _, err := s.privileges.Resolve(ctx, identity.RoleID, cardAdminPrivileges); err != nil {
		return err
	}

	if err := s.cards.Create(ctx, card); err != nil {
		return err
	}
	s.activity.Record(ctx, card.ID, identity.UserID, domain.ActivityAddCard)
	return nil
}

// Delete soft-removes a card under the global manage tier and records
// deleteCard.
func (s *CardService) Delete(ctx context.Context, identity domain.Identity, id string) error {
	if _, err := s.privileges.Resolve(ctx, identity.RoleID, cardAdminPrivileges); err != nil {
		return err
	}

	card, err := s.getCard(ctx, id)
	if err != nil {
		return err
	}

	card.Removed = true
	if err := s.cards.Update(ctx, card); err != nil {
		return err
	}
	s.activity.Record(ctx, card.ID, identity.UserID, domain.ActivityDeleteCard)
	return nil
}

func (s *CardService) getCard(ctx context.Context, id string) (*domain.Card, error) {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("card")
		}
		return nil, err
	}
	return card, nil
}
