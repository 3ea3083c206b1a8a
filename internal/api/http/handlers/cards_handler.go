package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/kanban-service/internal/api/dto"
	"github.com/spec-kit/kanban-service/internal/domain"
	"github.com/spec-kit/kanban-service/internal/repository"
	"github.com/spec-kit/kanban-service/internal/service"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

// CardsHandler exposes card endpoints.
type CardsHandler struct {
	cards *service.CardService
}

// NewCardsHandler constructs handler.
func NewCardsHandler(cards *service.CardService) *CardsHandler {
	return &CardsHandler{cards: cards}
}

// Browse handles GET /cards with optional column_id and swimlane_id filters.
func (h *CardsHandler) Browse(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	filter := repository.CardFilter{
		ColumnID:   c.Query("column_id"),
		SwimlaneID: c.Query("swimlane_id"),
	}
	cards, err := h.cards.Browse(c.UserContext(), identity, filter)
	if err != nil {
		return err
	}
	return dataResponse(c, cards)
}

// Read handles GET /cards/:id.
func (h *CardsHandler) Read(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	card, err := h.cards.Read(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return dataResponse(c, card)
}

// Add handles POST /cards.
func (h *CardsHandler) Add(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req dto.CreateCardRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMissingParameters()
	}
	if req.SwimlaneID == "" || req.ColumnID == "" || req.Name == "" {
		return apperrors.NewMissingParameters()
	}

	card := &domain.Card{
		SwimlaneID:  req.SwimlaneID,
		ColumnID:    req.ColumnID,
		PriorityID:  req.PriorityID,
		StatusID:    req.StatusID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.cards.Add(c.UserContext(), identity, card); err != nil {
		return err
	}
	return createdResponse(c, card)
}

// Edit handles PUT /cards/:id.
func (h *CardsHandler) Edit(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req dto.UpdateCardRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMissingParameters()
	}

	params := service.CardParams{
		SwimlaneID:  req.SwimlaneID,
		ColumnID:    req.ColumnID,
		PriorityID:  req.PriorityID,
		StatusID:    req.StatusID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.cards.Edit(c.UserContext(), identity, c.Params("id"), params); err != nil {
		return err
	}
	return okResponse(c)
}

// Delete handles DELETE /cards/:id.
func (h *CardsHandler) Delete(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	if err := h.cards.Delete(c.UserContext(), identity, c.Params("id")); err != nil {
		return err
	}
	return okResponse(c)
}
