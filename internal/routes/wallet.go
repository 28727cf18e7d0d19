package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/varawallet/varad/internal/wallet"
)

// RegisterWalletRoutes wires account CRUD endpoints.
func RegisterWalletRoutes(router fiber.Router, h *wallet.Handler) {
	group := router.Group("/wallets")
	group.Post("/", h.Create)
	group.Get("/", h.List)
	group.Get("/:address", h.Get)
	group.Patch("/:address", h.Update)
	group.Delete("/:address", h.Remove)
	group.Post("/:address/toggle-hidden", h.ToggleHidden)
	group.Get("/:address/children", h.Children)
}
