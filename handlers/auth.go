package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"groovy/auth"
	"groovy/errs"
	"groovy/models"
)

type registerRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Register creates a new user account. The plaintext password is hashed once
// here and never logged or stored.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body."})
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name, email and password are required."})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.Log.Error("register: hashing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not register user."})
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := h.Users.Create(c.Context(), user); err != nil {
		if errors.Is(err, errs.ErrDuplicateIdentity) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email is already registered."})
		}
		h.Log.Error("register: insert failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not register user."})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Successfully registered.", "user_id": user.ID})
}

// Login verifies credentials and binds the session to the identity. Unknown
// email and wrong password produce the same response.
func (h *Handler) Login(c *fiber.Ctx) error {
	return h.login(c, "")
}

// AdminLogin is the admin-facing login. It runs the same credential
// verification as Login and additionally requires the admin role.
func (h *Handler) AdminLogin(c *fiber.Ctx) error {
	return h.login(c, models.RoleAdmin)
}

func (h *Handler) login(c *fiber.Ctx, requireRole string) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body."})
	}

	user, err := h.Users.GetByEmail(c.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			h.Log.Error("login: lookup failed", zap.Error(err))
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password."})
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password."})
	}
	if requireRole != "" && user.Role != requireRole {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin access required.", "redirect": "/admin/login"})
	}

	if err := h.Sessions.Start(c, user.Email); err != nil {
		h.Log.Error("login: session start failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not start session."})
	}

	return c.JSON(fiber.Map{"message": "Login successful."})
}

// Logout clears the session binding. Subsequent gated requests fail until the
// client logs in again.
func (h *Handler) Logout(c *fiber.Ctx) error {
	if err := h.Sessions.End(c); err != nil {
		h.Log.Error("logout: session end failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not end session."})
	}
	return c.JSON(fiber.Map{"message": "Logout successful."})
}
