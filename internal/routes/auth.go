package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/varawallet/varad/internal/auth"
)

// RegisterAuthRoutes wires the authentication input surface.
func RegisterAuthRoutes(router fiber.Router, h *auth.Handler) {
	group := router.Group("/auth")
	group.Post("/pin", h.SubmitPin)
	group.Put("/pin", h.ChangePin)
	group.Get("/session", h.Session)
}
