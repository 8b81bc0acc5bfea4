package auth

// Authorize reports whether identity may access a resource owned by owner.
// Only an authenticated identity whose user id equals owner is allowed.
func Authorize(identity Identity, owner int64) bool {
	id, ok := identity.UserID()
	return ok && id == owner
}
