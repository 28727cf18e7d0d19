package balance

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/varawallet/varad/internal/amount"
)

// Handler exposes the fetcher callback and balance reads over HTTP.
type Handler struct {
	engine *Engine
}

// NewHandler builds a balance HTTP handler.
func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

type snapshotFields struct {
	Available         string `json:"available"`
	Staked            string `json:"staked"`
	Vested            string `json:"vested"`
	Locked            string `json:"locked"`
	AvailableForStake string `json:"available_for_stake"`
}

func parseAmount(hex string) (amount.Amount, error) {
	if hex == "" {
		return amount.Zero, nil
	}
	return amount.FromHex(hex)
}

// Ingest receives a complete per-address snapshot map from the external
// fetcher. Amounts travel as 0x-prefixed hex; absent fields mean zero.
func (h *Handler) Ingest(c *fiber.Ctx) error {
	var req map[string]snapshotFields
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	snapshots := make(map[string]Snapshot, len(req))
	for addr, fields := range req {
		var snapshot Snapshot
		var err error
		if snapshot.Available, err = parseAmount(fields.Available); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if snapshot.Staked, err = parseAmount(fields.Staked); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if snapshot.Vested, err = parseAmount(fields.Vested); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if snapshot.Locked, err = parseAmount(fields.Locked); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if snapshot.AvailableForStake, err = parseAmount(fields.AvailableForStake); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		snapshots[addr] = snapshot
	}

	h.engine.OnBalancesReceived(snapshots)
	return c.SendStatus(http.StatusAccepted)
}

// IngestStaking receives per-address staked amounts.
func (h *Handler) IngestStaking(c *fiber.Ctx) error {
	var req map[string]string
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	balances := make(map[string]amount.Amount, len(req))
	for addr, hex := range req {
		staked, err := parseAmount(hex)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		balances[addr] = staked
	}

	h.engine.OnStakingBalancesReceived(balances)
	return c.SendStatus(http.StatusAccepted)
}

type vestingFields struct {
	Vested string `json:"vested"`
	Locked string `json:"locked"`
}

// IngestVesting receives per-address vesting breakdowns.
func (h *Handler) IngestVesting(c *fiber.Ctx) error {
	var req map[string]vestingFields
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	balances := make(map[string]VestingBalance, len(req))
	for addr, fields := range req {
		var vesting VestingBalance
		var err error
		if vesting.Vested, err = parseAmount(fields.Vested); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if vesting.Locked, err = parseAmount(fields.Locked); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		balances[addr] = vesting
	}

	h.engine.OnVestingBalancesReceived(balances)
	return c.SendStatus(http.StatusAccepted)
}

// Get returns every cached balance field for an address. Unknown addresses
// read as all zeroes.
func (h *Handler) Get(c *fiber.Ctx) error {
	address := c.Params("address")
	snapshot := h.engine.Snapshot(address)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"address":             address,
		"available":           snapshot.Available.Hex(),
		"staked":              snapshot.Staked.Hex(),
		"vested":              snapshot.Vested.Hex(),
		"locked":              snapshot.Locked.Hex(),
		"available_for_stake": snapshot.AvailableForStake.Hex(),
		"total":               snapshot.Total().Hex(),
		"display":             snapshot.Total().String(),
	})
}
