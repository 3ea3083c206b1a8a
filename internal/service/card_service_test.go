package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/repository"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

type cardFixture struct {
	svc      *CardService
	cards    *stubCardRepo
	grants   *stubGrantRepo
	links    *stubLinkRepo
	queue    *stubQueue
	identity domain.Identity
}

func newCardFixture(t *testing.T, privileges ...domain.Privilege) *cardFixture {
	t.Helper()
	grants := &stubGrantRepo{}
	for _, privilege := range privileges {
		grants.grant("role-1", privilege)
	}
	links := &stubLinkRepo{}
	cards := &stubCardRepo{}
	queue := &stubQueue{}

	activity := NewActivityService(queue, &stubActivityRepo{}, zap.NewNop())
	svc := NewCardService(cards, NewPrivilegeService(grants), NewAccessService(links), activity)

	roleID := "role-1"
	return &cardFixture{
		svc:      svc,
		cards:    cards,
		grants:   grants,
		links:    links,
		queue:    queue,
		identity: domain.Identity{UserID: "user-1", RoleID: &roleID},
	}
}

func (f *cardFixture) seedCard(t *testing.T, name string) *domain.Card {
	t.Helper()
	card := &domain.Card{SwimlaneID: "lane-1", ColumnID: "col-1", Name: name}
	require.NoError(t, f.cards.Create(context.Background(), card))
	return card
}

// recordedActivities drains the fixture queue the way the worker would.
func (f *cardFixture) recordedActivities() []domain.Activity {
	var out []domain.Activity
	for _, entry := range f.feedEntries() {
		out = append(out, entry.Activity)
	}
	return out
}

func (f *cardFixture) feedEntries() []domain.ActivityEntry {
	var out []domain.ActivityEntry
	for _, payload := range f.queue.payloads {
		var entry domain.ActivityEntry
		if err := json.Unmarshal(payload, &entry); err == nil {
			out = append(out, entry)
		}
	}
	return out
}

func TestCardBrowseGlobalTierSeesAll(t *testing.T) {
	f := newCardFixture(t, domain.PrivilegeViewCards)
	f.seedCard(t, "one")
	f.seedCard(t, "two")

	cards, err := f.svc.Browse(context.Background(), f.identity, repository.CardFilter{})
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestCardBrowseLinkedTierFilters(t *testing.T) {
	f := newCardFixture(t, domain.PrivilegeViewLinkedCards)
	linked := f.seedCard(t, "linked")
	f.seedCard(t, "unlinked")
	f.links.link(linked.ID, "user-1")

	cards, err := f.svc.Browse(context.Background(), f.identity, repository.CardFilter{})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, linked.ID, cards[0].ID)
}

func TestCardBrowseNoPrivilege(t *testing.T) {
	f := newCardFixture(t)
	f.seedCard(t, "one")

	_, err := f.svc.Browse(context.Background(), f.identity, repository.CardFilter{})
	assert.True(t, apperrors.IsCode(err, "ACTION_NOT_ALLOWED"))
}

func TestCardReadLinkedTierRequiresLink(t *testing.T) {
	f := newCardFixture(t, domain.PrivilegeViewLinkedCards)
	card := f.seedCard(t, "one")

	_, err := f.svc.Read(context.Background(), f.identity, card.ID)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	f.links.link(card.ID, "user-1")
	got, err := f.svc.Read(context.Background(), f.identity, card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, got.ID)
}

func TestCardEditRecordsActivityOnChange(t *testing.T) {
	f := newCardFixture(t, domain.PrivilegeManageCards)
	card := f.seedCard(t, "one")

	name := "renamed"
	require.NoError(t, f.svc.Edit(context.Background(), f.identity, card.ID, CardParams{Name: &name}))

	stored, err := f.cards.GetByID(context.Background(), card.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", stored.Name)
	assert.Equal(t, []domain.Activity{domain.ActivityUpdateCard}, f.recordedActivities())
}

func TestCardEditNoopRecordsNothing(t *testing.T) {
	f := newCardFixture(t, domain.PrivilegeManageCards)
	card := f.seedCard(t, "one")

	same := "one"
	require.NoError(t, f.svc.Edit(context.Background(), f.identity, card.ID, CardParams{Name: &same}))
	assert.Empty(t, f.recordedActivities())
}

func TestCardEditLinkedManageRequiresLink(t *testing.T) {
	f := newCardFixture(t, domain.PrivilegeManageLinkedCards)
	card := f.seedCard(t, "one")
	name := "renamed"

	err := f.svc.Edit(context.Background(), f.identity, card.ID, CardParams{Name: &name})
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestCardAddRequiresGlobalManage(t *testing.T) {
	f := newCardFixture(t, domain.PrivilegeManageLinkedCards)

	card := &domain.Card{SwimlaneID: "lane-1", ColumnID: "col-1", Name: "new"}
	err := f.svc.Add(context.Background(), f.identity, card)
	assert.True(t, apperrors.IsCode(err, "ACTION_NOT_ALLOWED"))
}

func TestCardAddAndDelete(t *testing.T) {
	f := newCardFixture(t, domain.PrivilegeManageCards)

	card := &domain.Card{SwimlaneID: "lane-1", ColumnID: "col-1", Name: "new"}
	require.NoError(t, f.svc.Add(context.Background(), f.identity, card))
	require.NotEmpty(t, card.ID)

	require.NoError(t, f.svc.Delete(context.Background(), f.identity, card.ID))

	_, err := f.svc.Read(context.Background(), f.identity, card.ID)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	assert.Equal(t, []domain.Activity{domain.ActivityAddCard, domain.ActivityDeleteCard}, f.recordedActivities())

	entries := f.feedEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, card.ID, entries[0].ResourceID)
	assert.Equal(t, "user-1", entries[0].ActorID)
}
