package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/varawallet/varad/internal/app"
)

// RegisterLifecycleRoutes wires foreground/background reporting.
func RegisterLifecycleRoutes(router fiber.Router, h *app.Handler) {
	group := router.Group("/app")
	group.Post("/status", h.SetStatus)
	group.Post("/check-balance", h.CheckBalance)
}
