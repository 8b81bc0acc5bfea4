package auth

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the signup, login and logout routes. They are
// public; LoadIdentity must already be installed globally so the handlers
// can see who is signed in.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/signup", h.SignupForm)
	e.POST("/signup", h.Signup)
	e.GET("/login", h.LoginForm)
	e.POST("/login", h.Login)
	e.GET("/logout", h.Logout)
}
