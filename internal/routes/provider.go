package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/varawallet/varad/internal/provider"
)

// RegisterProviderRoutes wires network selection endpoints.
func RegisterProviderRoutes(router fiber.Router, h *provider.Handler) {
	group := router.Group("/providers")
	group.Get("/active", h.Active)
	group.Post("/switch", h.Switch)
	group.Get("/:id", h.Get)
}
