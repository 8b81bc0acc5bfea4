package dashboards

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/fitcoach/internal/apperror"
	"github.com/keyxmakerx/fitcoach/internal/middleware"
)

// Handler renders the dashboards. Ownership is checked by
// auth.RequireOwner before these handlers run.
type Handler struct {
	profiles ProfileRepository
}

// NewHandler creates a dashboard handler.
func NewHandler(profiles ProfileRepository) *Handler {
	return &Handler{profiles: profiles}
}

// Client renders the client dashboard (GET /client/:user_id).
func (h *Handler) Client(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	profile, err := h.profiles.FindClient(c.Request().Context(), userID)
	if err != nil {
		return h.notFoundOrError(c, err)
	}
	return middleware.Render(c, http.StatusOK, ClientPage(profile))
}

// Trainer renders the trainer dashboard (GET /trainer/:user_id).
func (h *Handler) Trainer(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	profile, err := h.profiles.FindTrainer(c.Request().Context(), userID)
	if err != nil {
		return h.notFoundOrError(c, err)
	}
	return middleware.Render(c, http.StatusOK, TrainerPage(profile))
}

// notFoundOrError sends users without the requested role home and passes
// every other failure to the error handler.
func (h *Handler) notFoundOrError(c echo.Context, err error) error {
	if apperror.IsNotFound(err) {
		slog.Debug("dashboard role missing",
			slog.String("path", c.Request().URL.Path),
		)
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return apperror.NewInternal(err)
}

func userIDParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("user_id"), 10, 64)
}
