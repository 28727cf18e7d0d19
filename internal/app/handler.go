package app

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/varawallet/varad/internal/session"
)

// Handler exposes lifecycle HTTP endpoints.
type Handler struct {
	app *App
}

// NewHandler builds a lifecycle HTTP handler.
func NewHandler(app *App) *Handler {
	return &Handler{app: app}
}

type statusRequest struct {
	Status string `json:"status"`
}

// SetStatus reports a foreground/background transition. Coming back to the
// foreground after the idle threshold blocks until the unlock race settles.
func (h *Handler) SetStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	var status session.Status
	switch req.Status {
	case "active":
		status = session.StatusActive
	case "inactive":
		status = session.StatusInactive
	default:
		return fiber.NewError(http.StatusBadRequest, "status must be active or inactive")
	}

	if err := h.app.OnAppStatusChanged(c.UserContext(), status); err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}
	return c.SendStatus(http.StatusNoContent)
}

// CheckBalance triggers one immediate balance poll.
func (h *Handler) CheckBalance(c *fiber.Ctx) error {
	h.app.CheckBalance()
	return c.SendStatus(http.StatusAccepted)
}
