// handlers/players.go - Player HTTP Handlers
package handlers

import (
	"fmt"

	"clubhouse/middleware"
	"clubhouse/services"
	"clubhouse/utils"

	"github.com/gofiber/fiber/v2"
)

type PlayerHandler struct {
	players *services.PlayerService
}

func NewPlayerHandler(players *services.PlayerService) *PlayerHandler {
	return &PlayerHandler{players: players}
}

func (h *PlayerHandler) Register(r fiber.Router) {
	g := r.Group("/players")
	g.Get("/", h.GetAll)
	g.Get("/:id", h.GetByID)
	g.Post("/add", h.Add)
	g.Put("/update/:id", h.Update)
	g.Delete("/delete/:id", h.Remove)
}

// GET /api/players
func (h *PlayerHandler) GetAll(c *fiber.Ctx) error {
	players, err := h.players.GetAll(c.UserContext(), middleware.IdentityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(players)
}

// GET /api/players/:id
func (h *PlayerHandler) GetByID(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}
	player, err := h.players.GetByID(c.UserContext(), middleware.IdentityFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(player)
}

// POST /api/players/add
func (h *PlayerHandler) Add(c *fiber.Ctx) error {
	var req services.PlayerInput
	if err := utils.ParseJSON(c, &req); err != nil {
		return err
	}
	player, err := h.players.Add(c.UserContext(), middleware.IdentityFrom(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(player)
}

// PUT /api/players/update/:id
// A body "stat" object with an id also updates that stats line.
func (h *PlayerHandler) Update(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req services.PlayerUpdate
	if err := utils.ParseJSON(c, &req); err != nil {
		return err
	}
	player, err := h.players.Update(c.UserContext(), middleware.IdentityFrom(c), id, req)
	if err != nil {
		return err
	}
	return c.JSON(player)
}

// DELETE /api/players/delete/:id
func (h *PlayerHandler) Remove(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.players.Remove(c.UserContext(), middleware.IdentityFrom(c), id); err != nil {
		return err
	}
	return utils.JSONMessage(c, fiber.StatusOK, fmt.Sprintf("Player with id %d deleted", id))
}
