// handlers/stats.go - Player statistics HTTP Handlers
package handlers

import (
	"fmt"

	"clubhouse/middleware"
	"clubhouse/services"
	"clubhouse/utils"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	stats *services.StatsService
}

func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) Register(r fiber.Router) {
	g := r.Group("/stats")
	g.Get("/", h.GetAll)
	g.Post("/add/:playerId", h.AddToPlayer)
	g.Put("/update/:id", h.Update)
	g.Delete("/delete/:id", h.Remove)
}

func (h *StatsHandler) GetAll(c *fiber.Ctx) error {
	stats, err := h.stats.GetAll(c.UserContext(), middleware.IdentityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// POST /api/stats/add/:playerId
func (h *StatsHandler) AddToPlayer(c *fiber.Ctx) error {
	playerID, err := utils.ParamID(c, "playerId")
	if err != nil {
		return err
	}
	var req services.StatsInput
	if err := utils.ParseJSON(c, &req); err != nil {
		return err
	}
	stats, err := h.stats.AddToPlayer(c.UserContext(), middleware.IdentityFrom(c), playerID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(stats)
}

func (h *StatsHandler) Update(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req services.StatsUpdate
	if err := utils.ParseJSON(c, &req); err != nil {
		return err
	}
	stats, err := h.stats.Update(c.UserContext(), middleware.IdentityFrom(c), id, req)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func (h *StatsHandler) Remove(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.stats.Remove(c.UserContext(), middleware.IdentityFrom(c), id); err != nil {
		return err
	}
	return utils.JSONMessage(c, fiber.StatusOK, fmt.Sprintf("Stats with id %d deleted", id))
}
