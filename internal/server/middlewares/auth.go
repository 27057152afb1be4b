package middlewares

import (
	"encoding/base64"
	"strings"

	"virtboard/internal/auth"
	"virtboard/internal/config"
	"virtboard/internal/logger"
	"virtboard/internal/server/handlers/httperr"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Auth guards the API with either HTTP Basic credentials (checked against
// the authentication subsystem on every request) or a Bearer session token
// issued by the login endpoint. The authenticated username is stored in
// c.Locals("username").
func Auth(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		switch {
		case strings.HasPrefix(header, "Basic "):
			return basicAuth(c, strings.TrimPrefix(header, "Basic "))
		case strings.HasPrefix(header, "Bearer "):
			return bearerAuth(c, cfg, strings.TrimPrefix(header, "Bearer "))
		}

		c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="virtboard"`)
		return httperr.Fail(httperr.ErrUnauthorized)
	}
}

func basicAuth(c *fiber.Ctx, encoded string) error {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return httperr.Fail(httperr.ErrUnauthorized)
	}

	username, password, ok := strings.Cut(string(raw), ":")
	if !ok {
		return httperr.Fail(httperr.ErrUnauthorized)
	}

	if err := auth.Authenticate(username, password); err != nil {
		logger.L().Info("basic auth rejected", "user", username, "path", c.Path())
		return httperr.Fail(httperr.ErrUnauthorized)
	}

	c.Locals("username", username)
	return c.Next()
}

func bearerAuth(c *fiber.Ctx, cfg config.Config, tokenStr string) error {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		logger.L().Info("bearer auth rejected", "path", c.Path(), "error", err)
		return httperr.Fail(httperr.ErrUnauthorized)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return httperr.Fail(httperr.ErrUnauthorized)
	}

	c.Locals("username", sub)
	return c.Next()
}
