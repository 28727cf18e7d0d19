package wallet

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
)

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	store *Store
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

type createRequest struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	Type         string `json:"type"`
	Path         string `json:"path"`
	AccountID    string `json:"account_id"`
	RootAddress  string `json:"root_address"`
	CardStyle    string `json:"card_style"`
	Pattern      string `json:"pattern"`
	ColorFrom    string `json:"color_from"`
	ColorTo      string `json:"color_to"`
	ColorPattern string `json:"color_pattern"`
}

// Create registers an account. Re-posting an existing address merges the
// supplied fields instead of duplicating the record.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if !common.IsHexAddress(req.Address) {
		return fiber.NewError(http.StatusBadRequest, "invalid address")
	}

	wallet, err := h.store.Create(c.UserContext(), req.Name, CreateParams{
		Address:      req.Address,
		Type:         Type(req.Type),
		Path:         req.Path,
		AccountID:    req.AccountID,
		RootAddress:  req.RootAddress,
		CardStyle:    CardStyle(req.CardStyle),
		Pattern:      req.Pattern,
		ColorFrom:    req.ColorFrom,
		ColorTo:      req.ColorTo,
		ColorPattern: req.ColorPattern,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(wallet)
}

// List returns all accounts; ?visible=true filters hidden ones.
func (h *Handler) List(c *fiber.Ctx) error {
	if c.QueryBool("visible") {
		return c.Status(http.StatusOK).JSON(h.store.GetAllVisible())
	}
	return c.Status(http.StatusOK).JSON(h.store.GetAll())
}

// Get returns one account by address.
func (h *Handler) Get(c *fiber.Ctx) error {
	wallet, ok := h.store.GetByID(c.Params("address"))
	if !ok {
		return fiber.NewError(http.StatusNotFound, "wallet not found")
	}
	return c.Status(http.StatusOK).JSON(wallet)
}

type updateRequest struct {
	Name          *string `json:"name"`
	MnemonicSaved *bool   `json:"mnemonic_saved"`
	IsHidden      *bool   `json:"is_hidden"`
	IsMain        *bool   `json:"is_main"`
	Subscription  *string `json:"subscription"`
	CardStyle     *string `json:"card_style"`
	Pattern       *string `json:"pattern"`
	ColorFrom     *string `json:"color_from"`
	ColorTo       *string `json:"color_to"`
	ColorPattern  *string `json:"color_pattern"`
	Position      *int    `json:"position"`
}

// Update applies a partial update to one account.
func (h *Handler) Update(c *fiber.Ctx) error {
	address := c.Params("address")
	if _, ok := h.store.GetByID(address); !ok {
		return fiber.NewError(http.StatusNotFound, "wallet not found")
	}

	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	patch := UpdateParams{
		Name:          req.Name,
		MnemonicSaved: req.MnemonicSaved,
		IsHidden:      req.IsHidden,
		IsMain:        req.IsMain,
		Subscription:  req.Subscription,
		Pattern:       req.Pattern,
		ColorFrom:     req.ColorFrom,
		ColorTo:       req.ColorTo,
		ColorPattern:  req.ColorPattern,
		Position:      req.Position,
	}
	if req.CardStyle != nil {
		style := CardStyle(*req.CardStyle)
		patch.CardStyle = &style
	}
	h.store.Update(c.UserContext(), address, patch)

	wallet, _ := h.store.GetByID(address)
	return c.Status(http.StatusOK).JSON(wallet)
}

// Remove deletes an account. The response is sent only after dependent
// cleanup listeners have run.
func (h *Handler) Remove(c *fiber.Ctx) error {
	h.store.Remove(c.UserContext(), c.Params("address"))
	return c.SendStatus(http.StatusNoContent)
}

// ToggleHidden flips an account's visibility.
func (h *Handler) ToggleHidden(c *fiber.Ctx) error {
	address := c.Params("address")
	if _, ok := h.store.GetByID(address); !ok {
		return fiber.NewError(http.StatusNotFound, "wallet not found")
	}
	h.store.ToggleHidden(c.UserContext(), address)
	wallet, _ := h.store.GetByID(address)
	return c.Status(http.StatusOK).JSON(wallet)
}

// Children returns the sub-accounts rooted at a parent address.
func (h *Handler) Children(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.store.GetForAccount(c.Params("address")))
}
