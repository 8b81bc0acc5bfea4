// Package auth handles account signup, password verification, session token
// lifecycle and ownership checks for FitCoach. Sessions are opaque bearer
// tokens stored in MySQL, optionally fronted by a Redis cache.
//
// This is a CORE plugin -- always enabled, cannot be disabled.
package auth

import (
	"time"
)

// Account is a registered FitCoach user. PasswordHash and PasswordSalt hold
// raw bytes; the repository converts them to and from base64 text.
type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"-"`
	PasswordSalt []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session binds a token to a user until ExpiresAt.
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionContext is everything the core needs from an inbound request: the
// bearer token, if the client sent one. The HTTP layer builds it from the
// "token" cookie.
type SessionContext struct {
	Token string
}

// Identity is the result of authenticating a request. The zero value is
// Anonymous.
type Identity struct {
	userID        int64
	authenticated bool
}

// Anonymous is the identity of a request without a valid session.
var Anonymous = Identity{}

// Authenticated returns the identity for userID.
func Authenticated(userID int64) Identity {
	return Identity{userID: userID, authenticated: true}
}

// IsAnonymous reports whether no user is bound to the identity.
func (i Identity) IsAnonymous() bool {
	return !i.authenticated
}

// UserID returns the bound user id and true, or 0 and false for Anonymous.
func (i Identity) UserID() (int64, bool) {
	return i.userID, i.authenticated
}

// --- Request DTOs (bound from HTTP requests) ---

// SignupRequest holds the data submitted by the signup form.
type SignupRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Confirm  string `form:"confirm"`
}

// LoginRequest holds the data submitted by the login form.
type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// --- Service Input DTOs (passed from handler to service) ---

// maxUsernameLen is the username limit in runes, matching
// users.username VARCHAR(30). Keep in sync with the max tag below.
const maxUsernameLen = 30

// SignupInput is the input for creating a new account. Field order is
// the order rules are reported in.
type SignupInput struct {
	Username string `validate:"notblank,max=30,plaintext"`
	Password string `validate:"required"`
	Confirm  string `validate:"required,eqfield=Password"`
}

// LoginInput is the input for authenticating an account. A blank field or
// a username over maxUsernameLen fails like a wrong password.
type LoginInput struct {
	Username string
	Password string
}
