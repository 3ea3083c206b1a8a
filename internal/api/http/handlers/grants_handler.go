package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/kanban-service/internal/api/dto"
	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/service"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

// GrantsHandler exposes privilege grant administration.
type GrantsHandler struct {
	grants *service.GrantService
}

// NewGrantsHandler constructs handler.
func NewGrantsHandler(grants *service.GrantService) *GrantsHandler {
	return &GrantsHandler{grants: grants}
}

// Browse handles GET /privilege-links. An optional role_id query narrows the
// listing to one role.
func (h *GrantsHandler) Browse(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	grants, err := h.grants.Browse(c.UserContext(), identity, c.Query("role_id"))
	if err != nil {
		return err
	}
	return dataResponse(c, grants)
}

// Read handles GET /privilege-links/:id.
func (h *GrantsHandler) Read(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	grant, err := h.grants.Read(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return dataResponse(c, grant)
}

// Add handles POST /privilege-links.
func (h *GrantsHandler) Add(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req dto.CreateGrantRequest
	if err := c.BodyParser(&req); err != nil || req.RoleID == "" || req.Privilege == "" {
		return apperrors.NewMissingParameters()
	}

	grant, err := h.grants.Add(c.UserContext(), identity, req.RoleID, domain.Privilege(req.Privilege))
	if err != nil {
		return err
	}
	return createdResponse(c, grant)
}

// Delete handles DELETE /privilege-links/:id.
func (h *GrantsHandler) Delete(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	if err := h.grants.Delete(c.UserContext(), identity, c.Params("id")); err != nil {
		return err
	}
	return okResponse(c)
}
