// data.go provides typed context helpers for passing layout data from
// middleware to templates. Only simple types are stored so the layouts
// package never imports plugin types.
//
// Data flow: Middleware -> Echo Context -> LayoutInjector -> Go Context -> template
package layouts

import "context"

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey string

const (
	keyIsAuthenticated ctxKey = "layout_is_authenticated"
	keyUserID          ctxKey = "layout_user_id"
)

// SetIsAuthenticated stores whether the request carries a valid session.
func SetIsAuthenticated(ctx context.Context, v bool) context.Context {
	return context.WithValue(ctx, keyIsAuthenticated, v)
}

// IsAuthenticated returns true if the current request has a valid session.
func IsAuthenticated(ctx context.Context) bool {
	v, _ := ctx.Value(keyIsAuthenticated).(bool)
	return v
}

// SetUserID stores the authenticated user's id.
func SetUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, keyUserID, id)
}

// GetUserID returns the authenticated user's id, or 0.
func GetUserID(ctx context.Context) int64 {
	v, _ := ctx.Value(keyUserID).(int64)
	return v
}
