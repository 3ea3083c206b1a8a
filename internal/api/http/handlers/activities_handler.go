package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/kanban-service/internal/repository"
	"github.com/spec-kit/kanban-service/internal/service"
)

// ActivitiesHandler exposes the read side of the activity feed.
type ActivitiesHandler struct {
	activities *service.ActivityService
}

// NewActivitiesHandler constructs handler.
func NewActivitiesHandler(activities *service.ActivityService) *ActivitiesHandler {
	return &ActivitiesHandler{activities: activities}
}

// Browse handles GET /activities with optional resource_id, actor_id and
// activity query filters.
func (h *ActivitiesHandler) Browse(c *fiber.Ctx) error {
	if _, err := requireIdentity(c); err != nil {
		return err
	}

	filter := repository.ActivityFilter{
		ResourceID: c.Query("resource_id"),
		ActorID:    c.Query("actor_id"),
		Activity:   c.Query("activity"),
	}
	entries, err := h.activities.Browse(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return dataResponse(c, entries)
}

// Read handles GET /activities/:id.
func (h *ActivitiesHandler) Read(c *fiber.Ctx) error {
	if _, err := requireIdentity(c); err != nil {
		return err
	}

	entry, err := h.activities.Read(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return dataResponse(c, entry)
}
