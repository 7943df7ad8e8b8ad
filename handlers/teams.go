// handlers/teams.go - Team and league table HTTP Handlers
package handlers

import (
	"fmt"

	"clubhouse/middleware"
	"clubhouse/services"
	"clubhouse/utils"

	"github.com/gofiber/fiber/v2"
)

type TeamHandler struct {
	teams *services.TeamService
}

func NewTeamHandler(teams *services.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

func (h *TeamHandler) Register(r fiber.Router) {
	g := r.Group("/teams")
	g.Get("/", h.GetAll)
	g.Get("/standings", h.Standings)
	g.Post("/add", h.Add)
	g.Put("/update/:id", h.Update)
	g.Delete("/delete/:id", h.Delete)
}

// GET /api/teams
func (h *TeamHandler) GetAll(c *fiber.Ctx) error {
	teams, err := h.teams.GetAll(c.UserContext(), middleware.IdentityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(teams)
}

// GET /api/teams/standings
func (h *TeamHandler) Standings(c *fiber.Ctx) error {
	table, err := h.teams.Standings(c.UserContext(), middleware.IdentityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(table)
}

// POST /api/teams/add
func (h *TeamHandler) Add(c *fiber.Ctx) error {
	var req services.TeamInput
	if err := utils.ParseJSON(c, &req); err != nil {
		return err
	}
	team, err := h.teams.Add(c.UserContext(), middleware.IdentityFrom(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(team)
}

// PUT /api/teams/update/:id
func (h *TeamHandler) Update(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req services.TeamUpdate
	if err := utils.ParseJSON(c, &req); err != nil {
		return err
	}
	team, err := h.teams.Update(c.UserContext(), middleware.IdentityFrom(c), id, req)
	if err != nil {
		return err
	}
	return c.JSON(team)
}

// DELETE /api/teams/delete/:id
func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.teams.Delete(c.UserContext(), middleware.IdentityFrom(c), id); err != nil {
		return err
	}
	return utils.JSONMessage(c, fiber.StatusOK, fmt.Sprintf("Team with id %d deleted", id))
}
