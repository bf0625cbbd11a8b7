package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"groovy/errs"
	"groovy/models"
	"groovy/repository"
	"groovy/session"
)

// AdminRequired resolves the session identity's role from the database and
// only lets admins through. Admin-ness is a row attribute, not a reserved
// email.
func AdminRequired(sessions *session.Manager, users *repository.UserRepo, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := sessions.Identity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Please log in as admin first.", "redirect": "/admin/login"})
		}

		user, err := users.GetByEmail(c.Context(), email)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin access required.", "redirect": "/admin/login"})
			}
			log.Error("admin gate: role lookup failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not verify permissions."})
		}

		if user.Role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin access required.", "redirect": "/admin/login"})
		}

		c.Locals(IdentityKey, email)
		return c.Next()
	}
}
