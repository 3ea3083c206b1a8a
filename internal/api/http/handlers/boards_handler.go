package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/kanban-service/internal/api/dto"
	"github.com/spec-kit/kanban-service/internal/service"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

// BoardsHandler exposes board endpoints.
type BoardsHandler struct {
	boards *service.BoardService
}

// NewBoardsHandler constructs handler.
func NewBoardsHandler(boards *service.BoardService) *BoardsHandler {
	return &BoardsHandler{boards: boards}
}

// Browse handles GET /boards with an optional project_id filter.
func (h *BoardsHandler) Browse(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	boards, err := h.boards.Browse(c.UserContext(), identity, c.Query("project_id"))
	if err != nil {
		return err
	}
	return dataResponse(c, boards)
}

// Read handles GET /boards/:id.
func (h *BoardsHandler) Read(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	board, err := h.boards.Read(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return dataResponse(c, board)
}

// Add handles POST /boards.
func (h *BoardsHandler) Add(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req dto.CreateBoardRequest
	if err := c.BodyParser(&req); err != nil || req.ProjectID == "" || req.Name == "" {
		return apperrors.NewMissingParameters()
	}

	board, err := h.boards.Add(c.UserContext(), identity, req.ProjectID, req.Name)
	if err != nil {
		return err
	}
	return createdResponse(c, board)
}

// Edit handles PUT /boards/:id.
func (h *BoardsHandler) Edit(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req dto.UpdateBoardRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMissingParameters()
	}

	params := service.BoardParams{ProjectID: req.ProjectID, Name: req.Name}
	if err := h.boards.Edit(c.UserContext(), identity, c.Params("id"), params); err != nil {
		return err
	}
	return okResponse(c)
}

// Delete handles DELETE /boards/:id.
func (h *BoardsHandler) Delete(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	if err := h.boards.Delete(c.UserContext(), identity, c.Params("id")); err != nil {
		return err
	}
	return okResponse(c)
}
