package dto

// RoleRequest payload for role creation and rename.
type RoleRequest struct {
	Name string `json:"name"`
}

// CreateGrantRequest attaches a privilege to a role.
type CreateGrantRequest struct {
	RoleID    string `json:"role_id"`
	Privilege string `json:"privilege"`
}

// CreateLinkRequest ties a user to a resource.
type CreateLinkRequest struct {
	ResourceID string `json:"resource_id"`
	UserID     string `json:"user_id"`
}
