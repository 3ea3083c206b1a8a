package domain

import "time"

// ResourceLink grants a single user explicit access to a single resource,
// independent of role. It is consulted only when the resolved privilege tier
// is link-scoped. At most one active link per (resource, user) pair.
type ResourceLink struct {
	ID         string
	ResourceID string
	UserID     string
	Removed    bool
	CreatedAt  time.Time
}
