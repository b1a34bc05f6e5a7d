// Package layout renders the document shell shared by every page.
package layout

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"folio/internal/notify"
	"folio/internal/views/components"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.gohtml"))

// Page carries the per-page metadata of the shell.
type Page struct {
	Title       string
	Description string
	Brand       string
	Section     string
	Toasts      []notify.Notification
}

type shellView struct {
	Page
	Theme   ThemeState
	Nav     template.HTML
	Toggle  template.HTML
	Notices template.HTML
	Content template.HTML
}

// DefaultNav is the navigation shown in the header.
var DefaultNav = []components.NavLink{
	{Label: "About", Href: "/#about", Section: "about"},
	{Label: "Projects", Href: "/#projects", Section: "projects"},
	{Label: "Experience", Href: "/#experience", Section: "experience"},
	{Label: "Contact", Href: "/#contact", Section: "contact"},
}

// Layout wraps content in the document shell. The root element carries the
// resolved theme class and the meta theme-color follows the palette.
func Layout(page Page, theme ThemeState, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		view := shellView{Page: page, Theme: theme}
		var err error
		if view.Nav, err = templ.ToGoHTML(ctx, components.Nav(components.NavData{
			Brand:  page.Brand,
			Active: page.Section,
			Links:  DefaultNav,
		})); err != nil {
			return err
		}
		if view.Toggle, err = templ.ToGoHTML(ctx, components.ThemeToggle(theme.Toggle())); err != nil {
			return err
		}
		if view.Notices, err = templ.ToGoHTML(ctx, components.Toasts(page.Toasts)); err != nil {
			return err
		}
		if content != nil {
			if view.Content, err = templ.ToGoHTML(ctx, content); err != nil {
				return err
			}
		}
		return templates.ExecuteTemplate(w, "layout", view)
	})
}
