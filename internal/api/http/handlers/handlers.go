package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/kanban-service/internal/auth"
	"github.com/spec-kit/kanban-service/internal/domain"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

// requireIdentity returns the caller the gate admitted. Protected routes
// always carry one; a missing identity means the route was wired outside the
// gate and the request must not proceed.
func requireIdentity(c *fiber.Ctx) (domain.Identity, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok || identity == nil {
		return domain.Identity{}, apperrors.NewActionNotAllowed()
	}
	return *identity, nil
}

func dataResponse(c *fiber.Ctx, payload any) error {
	return c.JSON(fiber.Map{"data": payload})
}

func createdResponse(c *fiber.Ctx, payload any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": payload})
}

func okResponse(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"ok": true}})
}
