// Package session binds a client cookie to an authenticated identity. The
// manager is injected into handlers and middleware instead of being read from
// package state, so gating is testable without a live transport.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// The session holds exactly one field: the authenticated user's email.
const identityKey = "email"

// Manager wraps a fiber session store.
type Manager struct {
	store *session.Store
}

// New creates a manager. With a nil storage fiber keeps sessions in memory,
// which is what the tests use; production passes the redis storage. ttl is
// the storage expiry, not an application-level contract: a session lives
// until logout.
func New(storage fiber.Storage, ttl time.Duration) *Manager {
	cfg := session.Config{Expiration: ttl}
	if storage != nil {
		cfg.Storage = storage
	}
	return &Manager{store: session.New(cfg)}
}

// Start binds the current client's session to email. Re-login overwrites the
// previous binding.
func (m *Manager) Start(c *fiber.Ctx, email string) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(identityKey, email)
	return sess.Save()
}

// Identity returns the email bound to the current session, if any.
func (m *Manager) Identity(c *fiber.Ctx) (string, bool) {
	sess, err := m.store.Get(c)
	if err != nil {
		return "", false
	}
	email, ok := sess.Get(identityKey).(string)
	return email, ok && email != ""
}

// End clears the binding. Subsequent Identity calls report no identity.
func (m *Manager) End(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}
