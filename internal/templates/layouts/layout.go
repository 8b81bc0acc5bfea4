package layouts

import (
	"context"
	_ "embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

//go:embed base.html
var baseHTML string

var base = template.Must(template.New("layout").Parse(baseHTML))

// Nav is the per-request navigation state every page receives.
type Nav struct {
	IsAuthenticated bool
	UserID          int64
}

// View is the value a page template executes against. Page-specific data
// lives in Data.
type View struct {
	Nav  Nav
	Data any
}

// Extend parses a page's "title" and "content" blocks on top of a fresh copy
// of the base layout. Call it once per page at package init.
func Extend(pageHTML string) *template.Template {
	return template.Must(template.Must(base.Clone()).Parse(pageHTML))
}

// Page returns a templ component that renders t with data inside the base
// layout. Navigation state is read from ctx at render time.
func Page(t *template.Template, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, "base", View{Nav: navFromContext(ctx), Data: data})
	})
}

func navFromContext(ctx context.Context) Nav {
	return Nav{
		IsAuthenticated: IsAuthenticated(ctx),
		UserID:          GetUserID(ctx),
	}
}
