// handlers/coaches.go
package handlers

import (
	"fmt"

	"clubhouse/middleware"
	"clubhouse/services"
	"clubhouse/utils"

	"github.com/gofiber/fiber/v2"
)

type CoachHandler struct {
	coaches *services.CoachService
}

func NewCoachHandler(coaches *services.CoachService) *CoachHandler {
	return &CoachHandler{coaches: coaches}
}

func (h *CoachHandler) Register(r fiber.Router) {
	g := r.Group("/coaches")
	g.Get("/", h.GetAll)
	g.Post("/add", h.Add)
	g.Put("/update/:id", h.Update)
	g.Delete("/delete/:id", h.Remove)
}

func (h *CoachHandler) GetAll(c *fiber.Ctx) error {
	coaches, err := h.coaches.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(coaches)
}

func (h *CoachHandler) Add(c *fiber.Ctx) error {
	var req services.CoachInput
	if err := utils.ParseJSON(c, &req); err != nil {
		return err
	}
	coach, err := h.coaches.Add(c.UserContext(), middleware.IdentityFrom(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(coach)
}

func (h *CoachHandler) Update(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req services.CoachUpdate
	if err := utils.ParseJSON(c, &req); err != nil {
		return err
	}
	coach, err := h.coaches.Update(c.UserContext(), middleware.IdentityFrom(c), id, req)
	if err != nil {
		return err
	}
	return c.JSON(coach)
}

func (h *CoachHandler) Remove(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.coaches.Remove(c.UserContext(), middleware.IdentityFrom(c), id); err != nil {
		return err
	}
	return utils.JSONMessage(c, fiber.StatusOK, fmt.Sprintf("Coach with id %d deleted", id))
}
