package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware extracts the user identity set by the auth
// layer in front of this service. Sessions and login live outside this
// service; we only trust the propagated X-User-ID header.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			log.Printf("❌ [USER_CTX] X-User-ID missing on secured route: %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"ok":    false,
				"error": "missing X-User-ID: request must come through the auth gateway",
			})
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}
