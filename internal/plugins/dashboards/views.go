package dashboards

import (
	_ "embed"

	"github.com/a-h/templ"

	"github.com/keyxmakerx/fitcoach/internal/templates/layouts"
)

//go:embed client.html
var clientHTML string

//go:embed trainer.html
var trainerHTML string

var (
	clientTemplate  = layouts.Extend(clientHTML)
	trainerTemplate = layouts.Extend(trainerHTML)
)

// ClientPage renders the client dashboard for p.
func ClientPage(p *Profile) templ.Component {
	return layouts.Page(clientTemplate, p)
}

// TrainerPage renders the trainer dashboard for p.
func TrainerPage(p *Profile) templ.Component {
	return layouts.Page(trainerTemplate, p)
}
