// handlers/health.go
package handlers

import (
	"context"
	"time"

	"clubhouse/database"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

const Version = "1.0.0"

// Health reports whether the database answers a ping within two seconds.
func Health(db *gorm.DB, clock clockwork.Clock) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":    "unhealthy",
				"error":     "database unavailable",
				"timestamp": clock.Now().Unix(),
			})
		}
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": clock.Now().Unix(),
			"version":   Version,
		})
	}
}
