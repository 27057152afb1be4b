package guests

import (
	"virtboard/internal/server/handlers/handlerutil"
	guestsServices "virtboard/internal/services/guests"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the guests service over HTTP.
type Handlers struct {
	svc      *guestsServices.Service
	validate *validator.Validate
}

// NewHandlers creates guest handlers.
func NewHandlers(svc *guestsServices.Service, v *validator.Validate) *Handlers {
	return &Handlers{svc: svc, validate: v}
}

// Create registers a new guest.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req guestsServices.CreateGuestRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validate, "guests.Create"); err != nil {
		return err
	}

	g, err := h.svc.Create(c.UserContext(), req)
	if err != nil {
		return handlerutil.HandleServiceError(c, err, "guests.Create")
	}
	return c.Status(fiber.StatusCreated).JSON(g)
}

// List returns all guests.
func (h *Handlers) List(c *fiber.Ctx) error {
	all, err := h.svc.List(c.UserContext())
	if err != nil {
		return handlerutil.HandleServiceError(c, err, "guests.List")
	}
	return c.JSON(guestsServices.ListGuestsResponse{Guests: all})
}

// Get returns a single guest by name.
func (h *Handlers) Get(c *fiber.Ctx) error {
	g, err := h.svc.Get(c.UserContext(), c.Params("name"))
	if err != nil {
		return handlerutil.HandleServiceError(c, err, "guests.Get")
	}
	return c.JSON(g)
}

// Update patches a guest.
func (h *Handlers) Update(c *fiber.Ctx) error {
	var req guestsServices.UpdateGuestRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validate, "guests.Update"); err != nil {
		return err
	}

	g, err := h.svc.Update(c.UserContext(), c.Params("name"), req)
	if err != nil {
		return handlerutil.HandleServiceError(c, err, "guests.Update")
	}
	return c.JSON(g)
}

// Delete removes a stopped guest.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("name")); err != nil {
		return handlerutil.HandleServiceError(c, err, "guests.Delete")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Start transitions a guest to running.
func (h *Handlers) Start(c *fiber.Ctx) error {
	g, err := h.svc.Start(c.UserContext(), c.Params("name"))
	if err != nil {
		return handlerutil.HandleServiceError(c, err, "guests.Start")
	}
	return c.JSON(g)
}

// Stop transitions a guest to stopped.
func (h *Handlers) Stop(c *fiber.Ctx) error {
	g, err := h.svc.Stop(c.UserContext(), c.Params("name"))
	if err != nil {
		return handlerutil.HandleServiceError(c, err, "guests.Stop")
	}
	return c.JSON(g)
}
