// Package session issues short-lived bearer tokens to callers who present
// valid credentials, so web clients authenticate once instead of sending
// Basic auth on every request.
package session

import (
	"time"

	"virtboard/internal/auth"
	"virtboard/internal/config"
	"virtboard/internal/logger"
	"virtboard/internal/server/handlers/handlerutil"
	"virtboard/internal/server/handlers/httperr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Handlers holds the login endpoint dependencies.
type Handlers struct {
	cfg      config.Config
	validate *validator.Validate
}

// NewHandlers creates session handlers.
func NewHandlers(cfg config.Config, v *validator.Validate) *Handlers {
	return &Handlers{cfg: cfg, validate: v}
}

// LoginRequest carries the credentials for a login attempt.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued session token.
type LoginResponse struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login verifies credentials against the authentication subsystem and
// issues an HS256 session token.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validate, "session.Login"); err != nil {
		return err
	}

	if err := auth.Authenticate(req.Username, req.Password); err != nil {
		logger.L().Info("login rejected", "user", req.Username, "error", err)
		return httperr.Fail(httperr.ErrUnauthorized)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(time.Duration(h.cfg.SessionMinutes) * time.Minute)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": req.Username,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	})

	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		logger.L().Error("failed to sign session token", "user", req.Username, "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	return c.JSON(LoginResponse{
		Username:  req.Username,
		Token:     signed,
		ExpiresAt: expiresAt,
	})
}
