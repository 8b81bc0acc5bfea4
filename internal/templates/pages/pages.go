// Package pages holds the site-wide pages that do not belong to a plugin.
package pages

import (
	_ "embed"

	"github.com/a-h/templ"

	"github.com/keyxmakerx/fitcoach/internal/templates/layouts"
)

//go:embed landing.html
var landingHTML string

//go:embed error.html
var errorHTML string

var (
	landingPage = layouts.Extend(landingHTML)
	errorPage   = layouts.Extend(errorHTML)
)

// Landing renders the public start page.
func Landing() templ.Component {
	return layouts.Page(landingPage, nil)
}

// ErrorPage renders a status code and a client-safe message.
func ErrorPage(code int, message string) templ.Component {
	return layouts.Page(errorPage, struct {
		Code    int
		Message string
	}{code, message})
}
