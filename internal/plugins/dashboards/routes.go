package dashboards

import (
	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/fitcoach/internal/plugins/auth"
)

// RegisterRoutes mounts the owner-gated dashboards.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	owner := auth.RequireOwner("user_id")

	e.GET("/client/:user_id", h.Client, owner)
	e.GET("/trainer/:user_id", h.Trainer, owner)
}
