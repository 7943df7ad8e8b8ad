// middleware/auth.go
package middleware

import (
	"strings"

	"clubhouse/auth"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// TokenVerifier decodes a bearer token into the caller's identity.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Authenticate decodes the bearer token when one is sent. Requests without
// an Authorization header continue as anonymous and each service decides
// whether that is enough. A header that is malformed or carries a bad token
// is rejected here.
func Authenticate(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			c.Locals(identityKey, auth.Identity{})
			return c.Next()
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid authorization header format",
			})
		}

		id, err := tokens.Verify(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid or expired token",
			})
		}

		c.Locals(identityKey, id)
		return c.Next()
	}
}

// IdentityFrom returns the caller decoded by Authenticate, or the anonymous
// identity.
func IdentityFrom(c *fiber.Ctx) auth.Identity {
	if id, ok := c.Locals(identityKey).(auth.Identity); ok {
		return id
	}
	return auth.Identity{}
}
