// Package handlers implements the HTTP surface: registration, login/logout,
// the session-gated catalog lifecycle, and the admin user listing. Responses
// are JSON payloads a rendering collaborator turns into pages.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"groovy/errs"
	"groovy/middleware"
	"groovy/models"
	"groovy/repository"
	"groovy/session"
	"groovy/uploads"
)

// Handler carries the injected collaborators, replacing the ambient
// package-level state this service grew out of.
type Handler struct {
	Users    *repository.UserRepo
	Songs    *repository.SongRepo
	Files    *uploads.Store
	Sessions *session.Manager
	Log      *zap.Logger
}

// New constructs the handler set.
func New(users *repository.UserRepo, songs *repository.SongRepo, files *uploads.Store, sessions *session.Manager, log *zap.Logger) *Handler {
	return &Handler{Users: users, Songs: songs, Files: files, Sessions: sessions, Log: log}
}

// Index is a liveness/landing endpoint.
func (h *Handler) Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// currentUser resolves the gated request's identity to its user row. The
// auth middleware guarantees the local is set; a missing row means the
// account vanished mid-session.
func (h *Handler) currentUser(c *fiber.Ctx) (*models.User, error) {
	email, _ := c.Locals(middleware.IdentityKey).(string)
	if email == "" {
		return nil, errs.ErrUnauthenticated
	}
	user, err := h.Users.GetByEmail(c.Context(), email)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.ErrUnauthenticated
	}
	return user, err
}
