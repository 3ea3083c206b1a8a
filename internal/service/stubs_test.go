package service

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/repository"
)

// In-memory repository stand-ins. They honor the same pgx.ErrNoRows contract
// as the Postgres implementations.

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.seq++
	user.ID = "user-" + strconv.Itoa(r.seq)
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok || user.Removed {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email && !user.Removed {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, user := range r.users {
		if !user.Removed {
			out = append(out, *user)
		}
	}
	return out, nil
}

type stubGrantRepo struct {
	grants []domain.PrivilegeGrant
}

func (r *stubGrantRepo) grant(roleID string, privilege domain.Privilege) {
	r.grants = append(r.grants, domain.PrivilegeGrant{
		ID:        "grant-" + strconv.Itoa(len(r.grants)+1),
		RoleID:    roleID,
		Privilege: privilege,
	})
}

func (r *stubGrantRepo) Create(_ context.Context, grant *domain.PrivilegeGrant) error {
	grant.ID = "grant-" + strconv.Itoa(len(r.grants)+1)
	r.grants = append(r.grants, *grant)
	return nil
}

func (r *stubGrantRepo) GetByID(_ context.Context, id string) (*domain.PrivilegeGrant, error) {
	for _, grant := range r.grants {
		if grant.ID == id && !grant.Removed {
			copied := grant
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubGrantRepo) FindActiveGrants(_ context.Context, roleID string) ([]domain.PrivilegeGrant, error) {
	var out []domain.PrivilegeGrant
	for _, grant := range r.grants {
		if grant.RoleID == roleID && !grant.Removed {
			out = append(out, grant)
		}
	}
	return out, nil
}

func (r *stubGrantRepo) FindActive(_ context.Context, roleID string, privilege domain.Privilege) (*domain.PrivilegeGrant, error) {
	for _, grant := range r.grants {
		if grant.RoleID == roleID && grant.Privilege == privilege && !grant.Removed {
			copied := grant
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubGrantRepo) List(_ context.Context, roleID string) ([]domain.PrivilegeGrant, error) {
	var out []domain.PrivilegeGrant
	for _, grant := range r.grants {
		if grant.Removed {
			continue
		}
		if roleID != "" && grant.RoleID != roleID {
			continue
		}
		out = append(out, grant)
	}
	return out, nil
}

func (r *stubGrantRepo) SoftDelete(_ context.Context, id string) error {
	for i := range r.grants {
		if r.grants[i].ID == id && !r.grants[i].Removed {
			r.grants[i].Removed = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

type stubRoleRepo struct {
	roles map[string]*domain.Role
	seq   int
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: map[string]*domain.Role{}}
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) error {
	r.seq++
	role.ID = "role-" + strconv.Itoa(r.seq)
	copied := *role
	r.roles[role.ID] = &copied
	return nil
}

func (r *stubRoleRepo) Update(_ context.Context, role *domain.Role) error {
	if _, ok := r.roles[role.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *role
	r.roles[role.ID] = &copied
	return nil
}

func (r *stubRoleRepo) GetByID(_ context.Context, id string) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok || role.Removed {
		return nil, pgx.ErrNoRows
	}
	copied := *role
	return &copied, nil
}

func (r *stubRoleRepo) List(_ context.Context) ([]domain.Role, error) {
	var out []domain.Role
	for _, role := range r.roles {
		if !role.Removed {
			out = append(out, *role)
		}
	}
	return out, nil
}

type stubLinkRepo struct {
	links []domain.ResourceLink
}

func (r *stubLinkRepo) link(resourceID, userID string) {
	r.links = append(r.links, domain.ResourceLink{
		ID:         "link-" + strconv.Itoa(len(r.links)+1),
		ResourceID: resourceID,
		UserID:     userID,
	})
}

func (r *stubLinkRepo) Create(_ context.Context, link *domain.ResourceLink) error {
	link.ID = "link-" + strconv.Itoa(len(r.links)+1)
	r.links = append(r.links, *link)
	return nil
}

func (r *stubLinkRepo) GetByID(_ context.Context, id string) (*domain.ResourceLink, error) {
	for _, link := range r.links {
		if link.ID == id && !link.Removed {
			copied := link
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubLinkRepo) FindActiveLink(_ context.Context, resourceID, userID string) (*domain.ResourceLink, error) {
	for _, link := range r.links {
		if link.ResourceID == resourceID && link.UserID == userID && !link.Removed {
			copied := link
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubLinkRepo) List(_ context.Context, resourceID, userID string) ([]domain.ResourceLink, error) {
	var out []domain.ResourceLink
	for _, link := range r.links {
		if link.Removed {
			continue
		}
		if resourceID != "" && link.ResourceID != resourceID {
			continue
		}
		if userID != "" && link.UserID != userID {
			continue
		}
		out = append(out, link)
	}
	return out, nil
}

func (r *stubLinkRepo) SoftDelete(_ context.Context, id string) error {
	for i := range r.links {
		if r.links[i].ID == id && !r.links[i].Removed {
			r.links[i].Removed = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

type stubCardRepo struct {
	cards []domain.Card
}

func (r *stubCardRepo) Create(_ context.Context, card *domain.Card) error {
	card.ID = "card-" + strconv.Itoa(len(r.cards)+1)
	r.cards = append(r.cards, *card)
	return nil
}

func (r *stubCardRepo) Update(_ context.Context, card *domain.Card) error {
	for i := range r.cards {
		if r.cards[i].ID == card.ID {
			r.cards[i] = *card
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *stubCardRepo) GetByID(_ context.Context, id string) (*domain.Card, error) {
	for _, card := range r.cards {
		if card.ID == id && !card.Removed {
			copied := card
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubCardRepo) List(_ context.Context, filter repository.CardFilter) ([]domain.Card, error) {
	var out []domain.Card
	for _, card := range r.cards {
		if card.Removed {
			continue
		}
		if filter.ColumnID != "" && card.ColumnID != filter.ColumnID {
			continue
		}
		if filter.SwimlaneID != "" && card.SwimlaneID != filter.SwimlaneID {
			continue
		}
		out = append(out, card)
	}
	return out, nil
}

type stubActivityRepo struct {
	entries []domain.ActivityEntry
}

func (r *stubActivityRepo) Insert(_ context.Context, entry *domain.ActivityEntry) error {
	entry.ID = "activity-" + strconv.Itoa(len(r.entries)+1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubActivityRepo) GetByID(_ context.Context, id string) (*domain.ActivityEntry, error) {
	for _, entry := range r.entries {
		if entry.ID == id {
			copied := entry
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubActivityRepo) List(_ context.Context, filter repository.ActivityFilter) ([]domain.ActivityEntry, error) {
	var out []domain.ActivityEntry
	for _, entry := range r.entries {
		if filter.ResourceID != "" && entry.ResourceID != filter.ResourceID {
			continue
		}
		if filter.ActorID != "" && entry.ActorID != filter.ActorID {
			continue
		}
		if filter.Activity != "" && string(entry.Activity) != filter.Activity {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

// stubQueue records activity payloads in order.
type stubQueue struct {
	payloads [][]byte
}

func (q *stubQueue) EnqueueActivity(_ context.Context, payload []byte) error {
	q.payloads = append(q.payloads, payload)
	return nil
}
