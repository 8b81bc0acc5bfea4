package auth

import (
	"errors"

	"github.com/keyxmakerx/fitcoach/internal/apperror"
)

// Sentinel error kinds. Compare with errors.Is; AppError matches on Type.
var (
	// ErrDuplicateUsername is returned by signup when the username is taken.
	ErrDuplicateUsername = apperror.NewConflict("that username is already taken")

	// ErrInvalidCredentials is returned by login for an unknown username and
	// for a wrong password alike.
	ErrInvalidCredentials = apperror.NewUnauthorized("invalid username or password")

	// errTokenCollision is returned by the session repository when a freshly
	// minted token already exists.
	errTokenCollision = errors.New("session token collision")
)
