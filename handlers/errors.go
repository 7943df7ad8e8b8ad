// handlers/errors.go - maps service errors onto HTTP responses
package handlers

import (
	"errors"

	"clubhouse/middleware"
	"clubhouse/services"
	"clubhouse/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// StatusFor returns the HTTP status for an error returned by a service.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, services.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalid), errors.Is(err, services.ErrConflict):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler renders every error that reaches Fiber as
// {"success": false, "error": msg}. Internal failures are logged and, in
// production, replaced with a generic message.
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := StatusFor(err)
		message := err.Error()

		if code == fiber.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("request_id", middleware.RequestIDFrom(c)).
				Str("path", c.Path()).
				Msg("request failed")
			if production {
				message = "An error occurred. Please try again later."
			}
		}

		return utils.JSONError(c, code, message)
	}
}
