// Package middleware gates routes on session presence and on the admin role.
package middleware

import (
	"github.com/gofiber/fiber/v2"

	"groovy/session"
)

// IdentityKey is the fiber.Ctx local under which AuthRequired stores the
// authenticated email for downstream handlers.
const IdentityKey = "identity"

// AuthRequired only lets requests with a bound session identity through.
// Everything else is rejected before any handler state changes.
func AuthRequired(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := sessions.Identity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Please log in first.", "redirect": "/login"})
		}
		c.Locals(IdentityKey, email)
		return c.Next()
	}
}
