package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/kanban-service/internal/api/dto"
	"github.com/spec-kit/kanban-service/internal/service"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

// LinksHandler exposes resource link administration.
type LinksHandler struct {
	links *service.LinkService
}

// NewLinksHandler constructs handler.
func NewLinksHandler(links *service.LinkService) *LinksHandler {
	return &LinksHandler{links: links}
}

// Browse handles GET /user-links with optional resource_id and user_id
// query filters.
func (h *LinksHandler) Browse(c *fiber.Ctx) error {
	if _, err := requireIdentity(c); err != nil {
		return err
	}

	links, err := h.links.Browse(c.UserContext(), c.Query("resource_id"), c.Query("user_id"))
	if err != nil {
		return err
	}
	return dataResponse(c, links)
}

// Read handles GET /user-links/:id.
func (h *LinksHandler) Read(c *fiber.Ctx) error {
	if _, err := requireIdentity(c); err != nil {
		return err
	}

	link, err := h.links.Read(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return dataResponse(c, link)
}

// Add handles POST /user-links.
func (h *LinksHandler) Add(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req dto.CreateLinkRequest
	if err := c.BodyParser(&req); err != nil || req.ResourceID == "" || req.UserID == "" {
		return apperrors.NewMissingParameters()
	}

	link, err := h.links.Add(c.UserContext(), identity, req.ResourceID, req.UserID)
	if err != nil {
		return err
	}
	return createdResponse(c, link)
}

// Delete handles DELETE /user-links/:id.
func (h *LinksHandler) Delete(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	if err := h.links.Delete(c.UserContext(), identity, c.Params("id")); err != nil {
		return err
	}
	return okResponse(c)
}
