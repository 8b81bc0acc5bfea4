package auth

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// contextKeyIdentity stores the request's Identity in the Echo context.
// Other plugins read it through GetIdentity.
const contextKeyIdentity = "auth_identity"

// LoadIdentity returns middleware that authenticates the "token" cookie and
// stores the resulting Identity on every request. A cookie that no longer
// resolves to a session is cleared. Requests are never rejected here;
// protected routes add RequireOwner.
func LoadIdentity(service AuthService, cookies CookieConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := Anonymous

			if token := sessionToken(c); token != "" {
				id, err := service.Authenticate(c.Request().Context(), SessionContext{Token: token})
				if err != nil {
					return err
				}
				if id.IsAnonymous() {
					clearCookie(c, cookies.Domain)
				}
				identity = id
			}

			c.Set(contextKeyIdentity, identity)
			return next(c)
		}
	}
}

// GetIdentity returns the identity stored by LoadIdentity, or Anonymous if
// the middleware did not run.
func GetIdentity(c echo.Context) Identity {
	identity, ok := c.Get(contextKeyIdentity).(Identity)
	if !ok {
		return Anonymous
	}
	return identity
}

// RequireOwner returns middleware that only lets the request through when
// the current identity owns the resource named by the path parameter
// param. Everyone else, including requests with a non-numeric id, is
// redirected home.
func RequireOwner(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			owner, err := strconv.ParseInt(c.Param(param), 10, 64)
			if err != nil || !Authorize(GetIdentity(c), owner) {
				return c.Redirect(http.StatusSeeOther, "/")
			}
			return next(c)
		}
	}
}
