package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the authentication input surface over HTTP.
type Handler struct {
	service *Service
}

// NewHandler builds an auth HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type pinRequest struct {
	Pin string `json:"pin"`
}

// SubmitPin feeds a PIN entry into the state machine. The outcome is
// observable via the session endpoint and the errorPin event; the request
// itself only acknowledges receipt.
func (h *Handler) SubmitPin(c *fiber.Ctx) error {
	var req pinRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Pin == "" {
		return fiber.NewError(http.StatusBadRequest, "pin is required")
	}
	h.service.SubmitPin(req.Pin)
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"accepted": true})
}

// Session reports the current authentication state.
func (h *Handler) Session(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"state":        h.service.State().String(),
		"unlocked":     h.service.IsUnlocked(),
		"pin_attempts": h.service.PinAttempts(),
		"pin_banned":   h.service.PinBanned(),
	})
}

// ChangePin replaces the stored credential. Only an unlocked session may
// change its PIN.
func (h *Handler) ChangePin(c *fiber.Ctx) error {
	if !h.service.IsUnlocked() {
		return fiber.NewError(http.StatusForbidden, "session is locked")
	}
	var req pinRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if len(req.Pin) != pinLength {
		return fiber.NewError(http.StatusBadRequest, "pin must be 6 digits")
	}
	if _, err := h.service.SetPin(c.UserContext(), req.Pin); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(http.StatusNoContent)
}
