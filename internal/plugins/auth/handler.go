package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/fitcoach/internal/apperror"
	"github.com/keyxmakerx/fitcoach/internal/middleware"
)

// cookieName is the HTTP cookie that carries the session token.
const cookieName = "token"

// CookieConfig controls the attributes of the session cookie.
type CookieConfig struct {
	// Domain is sent as the cookie Domain attribute. Empty means host-only.
	Domain string

	// TTL becomes the cookie Max-Age. It matches the server-side session TTL.
	TTL time.Duration
}

// Handler handles HTTP requests for signup, login and logout. Handlers are
// thin: they bind the request, call the service, and render the response.
type Handler struct {
	service AuthService
	cookies CookieConfig
}

// NewHandler creates a new auth handler with the given service.
func NewHandler(service AuthService, cookies CookieConfig) *Handler {
	return &Handler{service: service, cookies: cookies}
}

// SignupForm renders the signup page (GET /signup).
func (h *Handler) SignupForm(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, SignupPage("", ""))
}

// Signup processes the signup form submission (POST /signup). Validation
// failures and taken usernames re-render the form with the reason.
func (h *Handler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	_, err := h.service.Signup(c.Request().Context(), SignupInput{
		Username: req.Username,
		Password: req.Password,
		Confirm:  req.Confirm,
	})
	if err != nil {
		if isFormError(err) {
			return middleware.Render(c, http.StatusOK, SignupPage(req.Username, apperror.SafeMessage(err)))
		}
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/login")
}

// LoginForm renders the login page (GET /login). A visitor who is already
// signed in is sent home.
func (h *Handler) LoginForm(c echo.Context) error {
	if !GetIdentity(c).IsAnonymous() {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return middleware.Render(c, http.StatusOK, LoginPage("", ""))
}

// Login processes the login form submission (POST /login). On success the
// session token is set as the "token" cookie.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	token, err := h.service.Login(c.Request().Context(), LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return middleware.Render(c, http.StatusOK, LoginPage(req.Username, apperror.SafeMessage(err)))
		}
		return err
	}

	h.setSessionCookie(c, token)
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout ends the current session, if any, and expires the cookie
// (GET /logout). It always redirects home.
func (h *Handler) Logout(c echo.Context) error {
	if !GetIdentity(c).IsAnonymous() {
		sc := SessionContext{Token: sessionToken(c)}
		if err := h.service.Logout(c.Request().Context(), sc); err != nil {
			return err
		}
		h.clearSessionCookie(c)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// isFormError reports whether err is a user mistake the signup form can
// explain, as opposed to an infrastructure failure.
func isFormError(err error) bool {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Type == apperror.TypeValidation || appErr.Type == apperror.TypeConflict
}

// --- Cookie helpers ---

// sessionToken reads the session token from the cookie.
func sessionToken(c echo.Context) string {
	cookie, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setSessionCookie sets the session cookie on the response. The cookie is
// HttpOnly, Secure if behind TLS, and SameSite=Lax.
func (h *Handler) setSessionCookie(c echo.Context, token string) {
	req := c.Request()
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.cookies.Domain,
		MaxAge:   int(h.cookies.TTL / time.Second),
		HttpOnly: true,
		Secure:   req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie removes the session cookie by setting MaxAge to -1.
// Domain and Path must match the original cookie for browsers to drop it.
func (h *Handler) clearSessionCookie(c echo.Context) {
	clearCookie(c, h.cookies.Domain)
}

func clearCookie(c echo.Context, domain string) {
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
