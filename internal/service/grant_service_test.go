package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/kanban-service/internal/domain"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

func newGrantFixture(t *testing.T) (*GrantService, *stubGrantRepo, *stubRoleRepo, domain.Identity) {
	t.Helper()
	grants := &stubGrantRepo{}
	roles := newStubRoleRepo()
	svc := NewGrantService(grants, roles, NewPrivilegeService(grants))

	admin := &domain.Role{Name: "admin"}
	require.NoError(t, roles.Create(context.Background(), admin))
	grants.grant(admin.ID, domain.PrivilegeAdministratePrivilegeLinks)

	return svc, grants, roles, domain.Identity{UserID: "user-1", RoleID: &admin.ID}
}

func TestGrantAdd(t *testing.T) {
	svc, _, roles, identity := newGrantFixture(t)
	target := &domain.Role{Name: "member"}
	require.NoError(t, roles.Create(context.Background(), target))

	grant, err := svc.Add(context.Background(), identity, target.ID, domain.PrivilegeViewCards)
	require.NoError(t, err)
	assert.Equal(t, target.ID, grant.RoleID)
	assert.Equal(t, domain.PrivilegeViewCards, grant.Privilege)
}

func TestGrantAddDuplicateRejected(t *testing.T) {
	svc, _, roles, identity := newGrantFixture(t)
	target := &domain.Role{Name: "member"}
	require.NoError(t, roles.Create(context.Background(), target))

	_, err := svc.Add(context.Background(), identity, target.ID, domain.PrivilegeViewCards)
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), identity, target.ID, domain.PrivilegeViewCards)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestGrantAddAfterRevokeAllowed(t *testing.T) {
	svc, _, roles, identity := newGrantFixture(t)
	target := &domain.Role{Name: "member"}
	require.NoError(t, roles.Create(context.Background(), target))

	grant, err := svc.Add(context.Background(), identity, target.ID, domain.PrivilegeViewCards)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), identity, grant.ID))

	_, err = svc.Add(context.Background(), identity, target.ID, domain.PrivilegeViewCards)
	assert.NoError(t, err)
}

func TestGrantAddUnknownPrivilege(t *testing.T) {
	svc, _, roles, identity := newGrantFixture(t)
	target := &domain.Role{Name: "member"}
	require.NoError(t, roles.Create(context.Background(), target))

	_, err := svc.Add(context.Background(), identity, target.ID, domain.Privilege("administrateEverything"))
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestGrantAddUnknownRole(t *testing.T) {
	svc, _, _, identity := newGrantFixture(t)

	_, err := svc.Add(context.Background(), identity, "role-999", domain.PrivilegeViewCards)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestGrantOpsRequireAdministratePrivilege(t *testing.T) {
	svc, _, _, _ := newGrantFixture(t)
	memberRole := "role-unprivileged"
	identity := domain.Identity{UserID: "user-2", RoleID: &memberRole}

	_, err := svc.Browse(context.Background(), identity, "")
	assert.True(t, apperrors.IsCode(err, "ACTION_NOT_ALLOWED"))

	_, err = svc.Add(context.Background(), identity, "role-1", domain.PrivilegeViewCards)
	assert.True(t, apperrors.IsCode(err, "ACTION_NOT_ALLOWED"))
}
