package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/varawallet/varad/internal/balance"
)

// RegisterBalanceRoutes wires the fetcher callback and balance reads.
func RegisterBalanceRoutes(router fiber.Router, h *balance.Handler) {
	group := router.Group("/balances")
	group.Post("/", h.Ingest)
	group.Post("/staking", h.IngestStaking)
	group.Post("/vesting", h.IngestVesting)
	group.Get("/:address", h.Get)
}
