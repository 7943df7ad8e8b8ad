// handlers/users.go - Account HTTP Handlers
package handlers

import (
	"clubhouse/middleware"
	"clubhouse/services"
	"clubhouse/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register mounts the account routes. authLimit guards signup and login.
func (h *UserHandler) Register(r fiber.Router, authLimit fiber.Handler) {
	g := r.Group("/users")
	g.Get("/", h.GetAll)
	g.Post("/signup", authLimit, h.Signup)
	g.Post("/login", authLimit, h.Login)
}

// GET /api/users
func (h *UserHandler) GetAll(c *fiber.Ctx) error {
	users, err := h.users.GetAll(c.UserContext(), middleware.IdentityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// POST /api/users/signup
func (h *UserHandler) Signup(c *fiber.Ctx) error {
	var req services.SignupInput
	if err := utils.ParseJSON(c, &req); err != nil {
		return err
	}
	user, err := h.users.Signup(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// POST /api/users/login
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := utils.ParseJSON(c, &req); err != nil {
		return err
	}
	res, err := h.users.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(res)
}
