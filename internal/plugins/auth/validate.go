package auth

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/keyxmakerx/fitcoach/internal/apperror"
	"github.com/keyxmakerx/fitcoach/internal/sanitize"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator returns the singleton validator with the auth-specific
// "notblank" and "plaintext" tags registered.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = validate.RegisterValidation("plaintext", func(fl validator.FieldLevel) bool {
			return sanitize.IsPlainText(fl.Field().String())
		})
	})
	return validate
}

// signupMessages maps a failed field/tag pair to the message shown on the
// signup form.
var signupMessages = map[string]string{
	"Username.notblank":  "username is required",
	"Username.max":       "username must be at most 30 characters",
	"Username.plaintext": "username must not contain HTML markup",
	"Password.required":  "password is required",
	"Confirm.required":   "please confirm your password",
	"Confirm.eqfield":    "passwords do not match",
}

// validateSignup checks the signup form rules and returns an
// apperror validation error describing the first failure.
func validateSignup(in SignupInput) error {
	err := getValidator().Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.NewValidation("invalid signup form")
	}
	first := fieldErrs[0]
	if msg, ok := signupMessages[first.Field()+"."+first.Tag()]; ok {
		return apperror.NewValidation(msg)
	}
	return apperror.NewValidation(strings.ToLower(first.Field()) + " is invalid")
}
