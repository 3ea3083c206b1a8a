package domain

// Privilege is a named capability grantable to a role. The set is closed;
// unknown names are rejected at the boundary.
type Privilege string

const (
	PrivilegeAdministrateUsers          Privilege = "administrateUsers"
	PrivilegeAdministrateRoles          Privilege = "administrateRoles"
	PrivilegeAdministratePrivilegeLinks Privilege = "administratePrivilegeLinks"
	PrivilegeAdministrateLabels         Privilege = "administrateLabels"
	PrivilegeAdministratePriorities     Privilege = "administratePriorities"
	PrivilegeAdministrateStatuses       Privilege = "administrateStatuses"

	PrivilegeManageProjects       Privilege = "manageProjects"
	PrivilegeManageLinkedProjects Privilege = "manageLinkedProjects"
	PrivilegeViewProjects         Privilege = "viewProjects"
	PrivilegeViewLinkedProjects   Privilege = "viewLinkedProjects"

	PrivilegeManageBoards       Privilege = "manageBoards"
	PrivilegeManageLinkedBoards Privilege = "manageLinkedBoards"
	PrivilegeViewBoards         Privilege = "viewBoards"
	PrivilegeViewLinkedBoards   Privilege = "viewLinkedBoards"

	PrivilegeManageSwimlanes       Privilege = "manageSwimlanes"
	PrivilegeManageLinkedSwimlanes Privilege = "manageLinkedSwimlanes"
	PrivilegeViewSwimlanes         Privilege = "viewSwimlanes"
	PrivilegeViewLinkedSwimlanes   Privilege = "viewLinkedSwimlanes"

	PrivilegeManageColumns       Privilege = "manageColumns"
	PrivilegeManageLinkedColumns Privilege = "manageLinkedColumns"
	PrivilegeViewColumns         Privilege = "viewColumns"
	PrivilegeViewLinkedColumns   Privilege = "viewLinkedColumns"

	PrivilegeManageCards       Privilege = "manageCards"
	PrivilegeManageLinkedCards Privilege = "manageLinkedCards"
	PrivilegeViewCards         Privilege = "viewCards"
	PrivilegeViewLinkedCards   Privilege = "viewLinkedCards"

	PrivilegeManageTasks       Privilege = "manageTasks"
	PrivilegeManageLinkedTasks Privilege = "manageLinkedTasks"
	PrivilegeViewTasks         Privilege = "viewTasks"
	PrivilegeViewLinkedTasks   Privilege = "viewLinkedTasks"

	PrivilegeManageUserLinks  Privilege = "manageUserLinks"
	PrivilegeManageLabelLinks Privilege = "manageLabelLinks"
)

// privilegeCatalog maps every known privilege to whether its scope is
// restricted to explicitly linked resources.
var privilegeCatalog = map[Privilege]bool{
	PrivilegeAdministrateUsers:          false,
	PrivilegeAdministrateRoles:          false,
	PrivilegeAdministratePrivilegeLinks: false,
	PrivilegeAdministrateLabels:         false,
	PrivilegeAdministratePriorities:     false,
	PrivilegeAdministrateStatuses:       false,

	PrivilegeManageProjects:       false,
	PrivilegeManageLinkedProjects: true,
	PrivilegeViewProjects:         false,
	PrivilegeViewLinkedProjects:   true,

	PrivilegeManageBoards:       false,
	PrivilegeManageLinkedBoards: true,
	PrivilegeViewBoards:         false,
	PrivilegeViewLinkedBoards:   true,

	PrivilegeManageSwimlanes:       false,
	PrivilegeManageLinkedSwimlanes: true,
	PrivilegeViewSwimlanes:         false,
	PrivilegeViewLinkedSwimlanes:   true,

	PrivilegeManageColumns:       false,
	PrivilegeManageLinkedColumns: true,
	PrivilegeViewColumns:         false,
	PrivilegeViewLinkedColumns:   true,

	PrivilegeManageCards:       false,
	PrivilegeManageLinkedCards: true,
	PrivilegeViewCards:         false,
	PrivilegeViewLinkedCards:   true,

	PrivilegeManageTasks:       false,
	PrivilegeManageLinkedTasks: true,
	PrivilegeViewTasks:         false,
	PrivilegeViewLinkedTasks:   true,

	PrivilegeManageUserLinks:  false,
	PrivilegeManageLabelLinks: false,
}

// Valid reports whether p names a known privilege.
func (p Privilege) Valid() bool {
	_, ok := privilegeCatalog[p]
	return ok
}

// Linked reports whether p only covers resources the user is linked to.
func (p Privilege) Linked() bool {
	return privilegeCatalog[p]
}

// PrivilegeGrant associates a privilege with a role. Grants are independent
// rows so they can be revoked without rewriting the role; at most one active
// grant per (role, privilege) pair.
type PrivilegeGrant struct {
	ID        string
	RoleID    string
	Privilege Privilege
	Removed   bool
}
