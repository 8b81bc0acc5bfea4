package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/fitcoach/internal/database"
	"github.com/keyxmakerx/fitcoach/internal/middleware"
	"github.com/keyxmakerx/fitcoach/internal/plugins/auth"
	"github.com/keyxmakerx/fitcoach/internal/plugins/dashboards"
	"github.com/keyxmakerx/fitcoach/internal/templates/layouts"
	"github.com/keyxmakerx/fitcoach/internal/templates/pages"
)

// RegisterRoutes builds the plugins from the shared infrastructure and
// registers every route. This is the single place where routes are
// aggregated.
func (a *App) RegisterRoutes() error {
	e := a.Echo
	cfg := a.Config.Auth

	// --- Auth plugin ---
	hasher, err := auth.NewHasher(cfg.ScryptN, cfg.ScryptR, cfg.ScryptP)
	if err != nil {
		return fmt.Errorf("configuring password hasher: %w", err)
	}
	accounts := auth.NewAccountRepository(a.DB)
	sessions := auth.NewSessionRepository(a.DB)
	authService := auth.NewAuthService(accounts, sessions, auth.NewRedisSessionCache(a.Redis), hasher, cfg.SessionTTL)

	a.sweeper, err = auth.NewSessionSweeper(sessions, cfg.SweepSchedule)
	if err != nil {
		return err
	}

	cookies := auth.CookieConfig{Domain: cfg.CookieDomain, TTL: cfg.SessionTTL}

	// Every request carries an Identity; pages read it for the nav bar.
	e.Use(auth.LoadIdentity(authService, cookies))
	middleware.LayoutInjector = func(c echo.Context, ctx context.Context) context.Context {
		userID, ok := auth.GetIdentity(c).UserID()
		ctx = layouts.SetIsAuthenticated(ctx, ok)
		if ok {
			ctx = layouts.SetUserID(ctx, userID)
		}
		return ctx
	}

	// --- Public Routes ---

	e.GET("/", func(c echo.Context) error {
		return middleware.Render(c, http.StatusOK, pages.Landing())
	})

	health := database.NewHealth(a.DB, a.Redis)
	e.GET("/healthz", func(c echo.Context) error {
		status, ok := health.Check(c.Request().Context())
		if !ok {
			return c.JSON(http.StatusServiceUnavailable, status)
		}
		return c.JSON(http.StatusOK, status)
	})

	auth.RegisterRoutes(e, auth.NewHandler(authService, cookies))

	// --- Owner-gated Routes ---
	dashboards.RegisterRoutes(e, dashboards.NewHandler(dashboards.NewProfileRepository(a.DB)))

	return nil
}
