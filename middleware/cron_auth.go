package middleware

import (
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CronAuthMiddleware guards the manual pipeline-trigger routes. The
// secret may arrive as an X-Cron-Secret header, a Bearer token, or a
// ?secret= query parameter; an unset CRON_SECRET rejects everything.
func CronAuthMiddleware() fiber.Handler {
	expected := strings.TrimSpace(os.Getenv("CRON_SECRET"))
	if expected == "" {
		log.Println("⚠️  CRON_SECRET is not set, cron trigger routes will reject all requests")
	}

	return func(c *fiber.Ctx) error {
		if expected == "" || providedSecret(c) != expected {
			log.Printf("🚫 [CRON_AUTH] Rejected trigger request for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"ok": false, "error": "Unauthorized."})
		}
		return c.Next()
	}
}

func providedSecret(c *fiber.Ctx) string {
	if explicit := strings.TrimSpace(c.Get("X-Cron-Secret")); explicit != "" {
		return explicit
	}

	auth := strings.TrimSpace(c.Get("Authorization"))
	if token := strings.TrimPrefix(auth, "Bearer "); token != auth {
		return strings.TrimSpace(token)
	}

	return strings.TrimSpace(c.Query("secret"))
}
