package domain

// Identity is the caller decoded from an admitted session token.
type Identity struct {
	UserID string
	RoleID *string
}
