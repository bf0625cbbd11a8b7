package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminListUsers returns every registered user. The admin middleware has
// already verified the caller's role; password hashes are excluded from the
// serialized form.
func (h *Handler) AdminListUsers(c *fiber.Ctx) error {
	users, err := h.Users.List(c.Context())
	if err != nil {
		h.Log.Error("admin: user listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not list users."})
	}
	return c.JSON(fiber.Map{"users": users})
}
