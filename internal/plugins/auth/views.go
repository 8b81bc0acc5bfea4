package auth

import (
	_ "embed"

	"github.com/a-h/templ"

	"github.com/keyxmakerx/fitcoach/internal/templates/layouts"
)

//go:embed login.html
var loginHTML string

//go:embed signup.html
var signupHTML string

var (
	loginTemplate  = layouts.Extend(loginHTML)
	signupTemplate = layouts.Extend(signupHTML)
)

// formView is the data both auth forms render. Passwords are never echoed.
type formView struct {
	Username string
	Error    string
}

// LoginPage renders the login form, optionally pre-filled and with an error.
func LoginPage(username, errMsg string) templ.Component {
	return layouts.Page(loginTemplate, formView{Username: username, Error: errMsg})
}

// SignupPage renders the signup form, optionally pre-filled and with an error.
func SignupPage(username, errMsg string) templ.Component {
	return layouts.Page(signupTemplate, formView{Username: username, Error: errMsg})
}
