package session

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) (*fiber.App, *Manager) {
	t.Helper()

	m := New(nil, time.Hour)
	app := fiber.New()
	app.Post("/start", func(c *fiber.Ctx) error {
		return m.Start(c, c.Query("email"))
	})
	app.Get("/who", func(c *fiber.Ctx) error {
		email, ok := m.Identity(c)
		if !ok {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(email)
	})
	app.Post("/end", func(c *fiber.Ctx) error {
		return m.End(c)
	})
	return app, m
}

func do(t *testing.T, app *fiber.App, method, target, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func cookieOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("no session cookie")
	return ""
}

func TestStartIdentityEnd(t *testing.T) {
	app, _ := newApp(t)

	// No identity without a session.
	resp := do(t, app, fiber.MethodGet, "/who", "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = do(t, app, fiber.MethodPost, "/start?email=alice@x.com", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := cookieOf(t, resp)

	resp = do(t, app, fiber.MethodGet, "/who", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, "alice@x.com", string(body))

	// Re-login overwrites the binding.
	resp = do(t, app, fiber.MethodPost, "/start?email=bob@x.com", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = do(t, app, fiber.MethodGet, "/who", cookie)
	body, _ = io.ReadAll(resp.Body)
	require.Equal(t, "bob@x.com", string(body))

	resp = do(t, app, fiber.MethodPost, "/end", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = do(t, app, fiber.MethodGet, "/who", cookie)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
