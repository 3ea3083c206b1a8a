package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/kanban-service/internal/api/dto"
	"github.com/spec-kit/kanban-service/internal/auth"
	"github.com/spec-kit/kanban-service/internal/service"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

// UsersHandler exposes the session lifecycle plus the administrative user
// endpoints.
type UsersHandler struct {
	sessions *service.SessionService
	admin    *service.UserAdminService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(sessions *service.SessionService, admin *service.UserAdminService) *UsersHandler {
	return &UsersHandler{sessions: sessions, admin: admin}
}

// Register handles POST /users/create.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMissingParameters()
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewMissingParameters()
	}

	if err := h.sessions.Register(c.UserContext(), req.Email, req.Name, req.Password); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"ok": true}})
}

// Confirm handles POST /users/confirm.
func (h *UsersHandler) Confirm(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return apperrors.NewMissingParameters()
	}

	if err := h.sessions.Confirm(c.UserContext(), req.Token); err != nil {
		return err
	}
	return okResponse(c)
}

// Resend handles POST /users/resend.
func (h *UsersHandler) Resend(c *fiber.Ctx) error {
	var req dto.EmailRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return apperrors.NewMissingParameters()
	}

	if err := h.sessions.ResendConfirmation(c.UserContext(), req.Email); err != nil {
		return err
	}
	return okResponse(c)
}

// Login handles POST /users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMissingParameters()
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewMissingParameters()
	}

	token, expiresAt, err := h.sessions.Login(c.UserContext(), req.Email, req.Password, req.Remember)
	if err != nil {
		return err
	}
	return dataResponse(c, dto.AuthResponse{Token: token, ExpiresAt: expiresAt})
}

// Logout handles POST /users/logout. The gate guarantees a valid token here.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	if err := h.sessions.Logout(c.UserContext(), identity.UserID); err != nil {
		return err
	}
	return okResponse(c)
}

// Refresh handles POST /users/refresh. The route is logged-out class so the
// gate waves through expired tokens; the session service re-checks the token
// itself.
func (h *UsersHandler) Refresh(c *fiber.Ctx) error {
	token, present := auth.BearerToken(c.Get(fiber.HeaderAuthorization))

	fresh, expiresAt, err := h.sessions.Refresh(c.UserContext(), token, present)
	if err != nil {
		return err
	}
	return dataResponse(c, dto.AuthResponse{Token: fresh, ExpiresAt: expiresAt})
}

// Reset handles POST /users/reset.
func (h *UsersHandler) Reset(c *fiber.Ctx) error {
	var req dto.EmailRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return apperrors.NewMissingParameters()
	}

	if err := h.sessions.RequestReset(c.UserContext(), req.Email); err != nil {
		return err
	}
	return okResponse(c)
}

// Change handles POST /users/change, completing a password reset.
func (h *UsersHandler) Change(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil || req.Token == "" || req.Password == "" {
		return apperrors.NewMissingParameters()
	}

	if err := h.sessions.ChangePassword(c.UserContext(), req.Token, req.Password); err != nil {
		return err
	}
	return okResponse(c)
}

// Update handles POST /users/update, a logged-in password change.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	if _, err := requireIdentity(c); err != nil {
		return err
	}

	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMissingParameters()
	}
	if req.Email == "" || req.OldPassword == "" || req.Password == "" {
		return apperrors.NewMissingParameters()
	}

	if err := h.sessions.UpdatePassword(c.UserContext(), req.Email, req.OldPassword, req.Password); err != nil {
		return err
	}
	return okResponse(c)
}

// Browse handles GET /users.
func (h *UsersHandler) Browse(c *fiber.Ctx) error {
	if _, err := requireIdentity(c); err != nil {
		return err
	}

	users, err := h.admin.Browse(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return dataResponse(c, out)
}

// Read handles GET /users/:id.
func (h *UsersHandler) Read(c *fiber.Ctx) error {
	if _, err := requireIdentity(c); err != nil {
		return err
	}

	user, err := h.admin.Read(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return dataResponse(c, dto.NewUserResponse(user))
}

// Add handles POST /users.
func (h *UsersHandler) Add(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMissingParameters()
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewMissingParameters()
	}

	params := service.UserParams{RoleID: req.RoleID, WipLimit: req.WipLimit}
	if req.Name != "" {
		params.Name = &req.Name
	}

	user, err := h.admin.Add(c.UserContext(), identity, req.Email, req.Password, params)
	if err != nil {
		return err
	}
	return createdResponse(c, dto.NewUserResponse(user))
}

// Edit handles PUT /users/:id.
func (h *UsersHandler) Edit(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMissingParameters()
	}

	params := service.UserParams{RoleID: req.RoleID, Name: req.Name, WipLimit: req.WipLimit}
	if err := h.admin.Edit(c.UserContext(), identity, c.Params("id"), params); err != nil {
		return err
	}
	return okResponse(c)
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	if err := h.admin.Delete(c.UserContext(), identity, c.Params("id")); err != nil {
		return err
	}
	return okResponse(c)
}
