package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// contextKeyRequestID is the Echo context key holding the request id.
const contextKeyRequestID = "request_id"

// maxInboundRequestIDLen caps ids accepted from upstream proxies.
const maxInboundRequestIDLen = 64

// RequestID returns middleware that tags each request with an id. An
// X-Request-ID set by a reverse proxy is reused; otherwise a UUIDv4 is
// generated. The id is echoed in the response header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" || len(id) > maxInboundRequestIDLen {
				id = uuid.NewString()
			}

			c.Set(contextKeyRequestID, id)
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	}
}

// GetRequestID returns the id assigned by RequestID, or "".
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(contextKeyRequestID).(string)
	return id
}
