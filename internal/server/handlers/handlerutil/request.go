package handlerutil

import (
	"errors"

	"virtboard/internal/logger"
	"virtboard/internal/server/handlers/httperr"
	"virtboard/internal/services/guests"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Username extracts the authenticated username the auth middleware stored
// in the request context.
func Username(c *fiber.Ctx) string {
	if u, ok := c.Locals("username").(string); ok {
		return u
	}
	return ""
}

// ParseAndValidateBody parses request body and validates it
func ParseAndValidateBody(c *fiber.Ctx, req any, v *validator.Validate, handlerName string) error {
	if err := c.BodyParser(req); err != nil {
		logger.L().Warn("failed to parse request body", "handler", handlerName, "user", Username(c), "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	if err := v.Struct(req); err != nil {
		logger.L().Warn("request validation failed", "handler", handlerName, "user", Username(c), "error", err)
		return httperr.InvalidInput(err)
	}

	return nil
}

// HandleServiceError maps guests service errors to HTTP responses.
func HandleServiceError(c *fiber.Ctx, err error, handlerName string) error {
	logFields := []any{"handler", handlerName, "user", Username(c), "error", err}

	switch {
	case errors.Is(err, guests.ErrNotFound):
		logger.L().Info("guest not found", logFields...)
		return httperr.NotFound(err)
	case errors.Is(err, guests.ErrDuplicateName),
		errors.Is(err, guests.ErrAlreadyRunning),
		errors.Is(err, guests.ErrNotRunning),
		errors.Is(err, guests.ErrGuestRunning):
		logger.L().Info("guest state conflict", logFields...)
		return httperr.Conflict(err)
	}

	logger.L().Error("service operation failed", logFields...)
	return httperr.Fail(httperr.ErrInternal)
}
