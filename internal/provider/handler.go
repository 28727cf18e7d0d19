package provider

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes network selection over HTTP.
type Handler struct {
	registry *Registry
}

// NewHandler builds a provider HTTP handler.
func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// Active returns the currently selected network.
func (h *Handler) Active(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.registry.Active())
}

// Get returns one network configuration by id.
func (h *Handler) Get(c *fiber.Ctx) error {
	p, ok := h.registry.Get(c.Params("id"))
	if !ok {
		return fiber.NewError(http.StatusNotFound, "unknown provider")
	}
	return c.Status(http.StatusOK).JSON(p)
}

type switchRequest struct {
	ID string `json:"id"`
}

// Switch selects a different network. Unknown ids are rejected and leave
// the active network untouched.
func (h *Handler) Switch(c *fiber.Ctx) error {
	var req switchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.registry.Switch(req.ID); err != nil {
		return fiber.NewError(http.StatusNotFound, err.Error())
	}
	return c.Status(http.StatusOK).JSON(h.registry.Active())
}
