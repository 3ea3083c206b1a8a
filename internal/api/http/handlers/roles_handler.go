package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/kanban-service/internal/api/dto"
	"github.com/spec-kit/kanban-service/internal/service"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

// RolesHandler exposes role administration.
type RolesHandler struct {
	roles *service.RoleService
}

// NewRolesHandler constructs handler.
func NewRolesHandler(roles *service.RoleService) *RolesHandler {
	return &RolesHandler{roles: roles}
}

// Browse handles GET /roles.
func (h *RolesHandler) Browse(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	roles, err := h.roles.Browse(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return dataResponse(c, roles)
}

// Read handles GET /roles/:id.
func (h *RolesHandler) Read(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	role, err := h.roles.Read(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return dataResponse(c, role)
}

// Add handles POST /roles.
func (h *RolesHandler) Add(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req dto.RoleRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return apperrors.NewMissingParameters()
	}

	role, err := h.roles.Add(c.UserContext(), identity, req.Name)
	if err != nil {
		return err
	}
	return createdResponse(c, role)
}

// Edit handles PUT /roles/:id.
func (h *RolesHandler) Edit(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req dto.RoleRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return apperrors.NewMissingParameters()
	}

	if err := h.roles.Edit(c.UserContext(), identity, c.Params("id"), req.Name); err != nil {
		return err
	}
	return okResponse(c)
}

// Delete handles DELETE /roles/:id.
func (h *RolesHandler) Delete(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	if err := h.roles.Delete(c.UserContext(), identity, c.Params("id")); err != nil {
		return err
	}
	return okResponse(c)
}
