package handlers

import (
	"virtboard/internal/server/handlers/handlerutil"

	"github.com/gofiber/fiber/v2"
)

// Me returns the authenticated caller's identity.
func Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"username": handlerutil.Username(c),
	})
}
