package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrivilegeCatalogClosed(t *testing.T) {
	assert.True(t, PrivilegeManageCards.Valid())
	assert.True(t, PrivilegeAdministrateUsers.Valid())
	assert.False(t, Privilege("manageEverything").Valid())
	assert.False(t, Privilege("").Valid())
}

func TestPrivilegeLinkedScope(t *testing.T) {
	assert.False(t, PrivilegeManageCards.Linked())
	assert.True(t, PrivilegeManageLinkedCards.Linked())
	assert.False(t, PrivilegeViewBoards.Linked())
	assert.True(t, PrivilegeViewLinkedBoards.Linked())
	assert.False(t, PrivilegeManageUserLinks.Linked())
	// Unknown privileges are never link-scoped.
	assert.False(t, Privilege("manageEverything").Linked())
}

func TestActivityCatalogClosed(t *testing.T) {
	assert.True(t, ActivityAddCard.Valid())
	assert.True(t, ActivityDeleteUserLink.Valid())
	assert.False(t, Activity("paintCard").Valid())
}
