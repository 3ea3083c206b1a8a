package dto

import (
	"time"

	"github.com/spec-kit/kanban-service/internal/domain"
)

// CreateUserRequest payload for admin-created accounts.
type CreateUserRequest struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Password string  `json:"password"`
	RoleID   *string `json:"role_id"`
	WipLimit *int    `json:"wip_limit"`
}

// UpdateUserRequest payload; omitted fields stay untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	RoleID   *string `json:"role_id"`
	WipLimit *int    `json:"wip_limit"`
}

// UserResponse hides credential fields.
type UserResponse struct {
	ID        string    `json:"id"`
	RoleID    *string   `json:"role_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	WipLimit  int       `json:"wip_limit"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse maps a domain user onto the wire shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		RoleID:    user.RoleID,
		Email:     user.Email,
		Name:      user.Name,
		WipLimit:  user.WipLimit,
		Confirmed: user.Confirmed,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
