// handlers/matches.go - Match and lineup HTTP Handlers
package handlers

import (
	"fmt"

	"clubhouse/middleware"
	"clubhouse/services"
	"clubhouse/utils"

	"github.com/gofiber/fiber/v2"
)

type MatchHandler struct {
	matches *services.MatchService
}

func NewMatchHandler(matches *services.MatchService) *MatchHandler {
	return &MatchHandler{matches: matches}
}

func (h *MatchHandler) Register(r fiber.Router) {
	g := r.Group("/matches")
	g.Get("/", h.GetAll)
	g.Get("/:id", h.GetByID)
	g.Get("/:id/players", h.Players)
	g.Post("/add", h.Add)
	g.Post("/:id/players", h.AddPlayers)
	g.Put("/update/:id", h.Update)
	g.Delete("/delete/:id", h.Delete)
}

// GET /api/matches
func (h *MatchHandler) GetAll(c *fiber.Ctx) error {
	matches, err := h.matches.GetAll(c.UserContext(), middleware.IdentityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(matches)
}

// GET /api/matches/:id
func (h *MatchHandler) GetByID(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}
	match, err := h.matches.GetByID(c.UserContext(), middleware.IdentityFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(match)
}

// GET /api/matches/:id/players
func (h *MatchHandler) Players(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}
	players, err := h.matches.Players(c.UserContext(), middleware.IdentityFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(players)
}

// POST /api/matches/add
func (h *MatchHandler) Add(c *fiber.Ctx) error {
	var req services.MatchInput
	if err := utils.ParseJSON(c, &req); err != nil {
		return err
	}
	match, err := h.matches.Add(c.UserContext(), middleware.IdentityFrom(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(match)
}

// POST /api/matches/:id/players {"player_ids": [1, 2]}
func (h *MatchHandler) AddPlayers(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req services.LineupInput
	if err := utils.ParseJSON(c, &req); err != nil {
		return err
	}
	match, err := h.matches.AddPlayers(c.UserContext(), middleware.IdentityFrom(c), id, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(match)
}

// PUT /api/matches/update/:id
func (h *MatchHandler) Update(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req services.MatchUpdate
	if err := utils.ParseJSON(c, &req); err != nil {
		return err
	}
	match, err := h.matches.Update(c.UserContext(), middleware.IdentityFrom(c), id, req)
	if err != nil {
		return err
	}
	return c.JSON(match)
}

// DELETE /api/matches/delete/:id
func (h *MatchHandler) Delete(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.matches.Delete(c.UserContext(), middleware.IdentityFrom(c), id); err != nil {
		return err
	}
	return utils.JSONMessage(c, fiber.StatusOK, fmt.Sprintf("Match with id %d deleted", id))
}
