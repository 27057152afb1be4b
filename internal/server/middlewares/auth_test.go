package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"virtboard/internal/auth"
	"virtboard/internal/config"
	"virtboard/internal/server/handlers/httperr"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticAuth map[string]string

func (s staticAuth) Authenticate(username, password string) error {
	if s[username] == password {
		return nil
	}
	return auth.ErrBadCredentials
}

func newAuthApp(t *testing.T, cfg config.Config) *fiber.App {
	t.Helper()

	prev := auth.SetProvider(staticAuth{"admin": "letmein!"})
	t.Cleanup(func() { auth.SetProvider(prev) })

	app := fiber.New(fiber.Config{ErrorHandler: httperr.Handler})
	app.Get("/protected", Auth(cfg), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("username").(string))
	})
	return app
}

func signToken(t *testing.T, secret, sub string, expiresIn time.Duration) string {
	t.Helper()

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"iat": now.Unix(),
		"exp": now.Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	cfg := config.Config{JWTSecret: "middleware-test-secret-with-32-plus-chars"}
	app := newAuthApp(t, cfg)

	do := func(authorize func(*http.Request)) *http.Response {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if authorize != nil {
			authorize(req)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("no header challenges with basic", func(t *testing.T) {
		resp := do(nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("WWW-Authenticate"), "Basic")
	})

	t.Run("valid basic credentials", func(t *testing.T) {
		resp := do(func(r *http.Request) { r.SetBasicAuth("admin", "letmein!") })
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("wrong basic credentials", func(t *testing.T) {
		resp := do(func(r *http.Request) { r.SetBasicAuth("admin", "wrong") })
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed basic payload", func(t *testing.T) {
		resp := do(func(r *http.Request) { r.Header.Set("Authorization", "Basic not-base64!") })
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid bearer token", func(t *testing.T) {
		token := signToken(t, cfg.JWTSecret, "admin", time.Hour)
		resp := do(func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) })
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("expired bearer token", func(t *testing.T) {
		token := signToken(t, cfg.JWTSecret, "admin", -time.Hour)
		resp := do(func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) })
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token signed with wrong secret", func(t *testing.T) {
		token := signToken(t, "another-secret-that-is-also-32-plus-chars", "admin", time.Hour)
		resp := do(func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) })
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
