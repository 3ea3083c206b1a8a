package domain

import "time"

// User is the domain model for account holders. RoleID is optional; a user
// without a role holds no privileges at all.
type User struct {
	ID           string
	RoleID       *string
	Email        string
	Name         string
	PasswordHash string
	WipLimit     int
	// InvalidatedAt is the session invalidation watermark. Logout, password
	// change and account removal all advance it; session tokens issued before
	// a later watermark are stale for refresh purposes.
	InvalidatedAt time.Time
	Confirmed     bool
	Removed       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Role groups privilege grants under a name. Soft-deletable.
type Role struct {
	ID        string
	Name      string
	Removed   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
