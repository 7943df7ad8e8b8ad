// handlers/routes.go - Route registration
package handlers

import (
	"clubhouse/middleware"
	"clubhouse/services"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	DB      *gorm.DB
	Clock   clockwork.Clock
	Tokens  middleware.TokenVerifier
	Players *services.PlayerService
	Coaches *services.CoachService
	Teams   *services.TeamService
	Matches *services.MatchService
	Stats   *services.StatsService
	Users   *services.UserService
	Live    *LiveHub
	// AuthLimit guards signup and login. Nil disables it.
	AuthLimit fiber.Handler
}

// Register mounts /health, the live feed and the /api routes on app.
func Register(app *fiber.App, d Deps) {
	app.Get("/health", Health(d.DB, d.Clock))

	if d.Live != nil {
		app.Get("/ws/matches", d.Live.Upgrade, d.Live.Handler())
	}

	authLimit := d.AuthLimit
	if authLimit == nil {
		authLimit = func(c *fiber.Ctx) error { return c.Next() }
	}

	api := app.Group("/api", middleware.Authenticate(d.Tokens))
	NewPlayerHandler(d.Players).Register(api)
	NewCoachHandler(d.Coaches).Register(api)
	NewTeamHandler(d.Teams).Register(api)
	NewMatchHandler(d.Matches).Register(api)
	NewStatsHandler(d.Stats).Register(api)
	NewUserHandler(d.Users).Register(api, authLimit)
}
