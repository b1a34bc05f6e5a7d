// Package components holds the small reusable pieces shared by pages and the
// layout shell.
package components

import (
	"embed"
	"html/template"
	"strings"

	"github.com/a-h/templ"

	"folio/internal/notify"
	viewtheme "folio/internal/views/theme"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var templates = template.Must(template.New("components").Funcs(template.FuncMap{
	"toastClass":  toastClass,
	"toastRole":   toastRole,
	"statusClass": statusClass,
	"statusLabel": StatusLabel,
}).ParseFS(templateFS, "templates/*.gohtml"))

// NavLink is an entry of the site navigation.
type NavLink struct {
	Label   string
	Href    string
	Section string
}

// NavData drives the header navigation.
type NavData struct {
	Brand  string
	Active string
	Links  []NavLink
}

// ThemeToggleData drives the theme switcher.
type ThemeToggleData struct {
	Preference string
	Resolved   string
	Options    []ThemeToggleOption
}

// ThemeToggleOption is one selectable preference.
type ThemeToggleOption struct {
	viewtheme.Option
	Active bool
}

type navView struct {
	NavData
	Items []navItem
}

type navItem struct {
	NavLink
	State string
}

// Nav renders the header navigation.
func Nav(data NavData) templ.Component {
	view := navView{NavData: data, Items: make([]navItem, 0, len(data.Links))}
	for _, link := range data.Links {
		view.Items = append(view.Items, navItem{NavLink: link, State: linkState(link.Section, data.Active)})
	}
	return templ.FromGoHTML(templates.Lookup("nav"), view)
}

// ThemeToggle renders the light/dark/system switcher.
func ThemeToggle(data ThemeToggleData) templ.Component {
	return templ.FromGoHTML(templates.Lookup("theme_toggle"), data)
}

// Toasts renders the active notifications. The container is always rendered
// so HTMX swaps have a stable target.
func Toasts(items []notify.Notification) templ.Component {
	return templ.FromGoHTML(templates.Lookup("toasts"), items)
}

// StatusBadge renders a project status pill.
func StatusBadge(status string) templ.Component {
	return templ.FromGoHTML(templates.Lookup("status_badge"), status)
}

// StatusLabel turns a status slug into display text.
func StatusLabel(status string) string {
	status = strings.TrimSpace(status)
	if status == "" {
		return ""
	}
	words := strings.Split(strings.ReplaceAll(status, "_", "-"), "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func linkState(section, active string) string {
	if section == active {
		return "active"
	}
	return "inactive"
}

func toastClass(variant string) string {
	switch variant {
	case notify.VariantSuccess:
		return "border-emerald-500/40 bg-emerald-500/10 text-emerald-200"
	case notify.VariantDestructive:
		return "border-rose-500/40 bg-rose-500/10 text-rose-200"
	default:
		return "border-slate-700 bg-slate-900/90 text-slate-100"
	}
}

func toastRole(variant string) string {
	if variant == notify.VariantDestructive {
		return "alert"
	}
	return "status"
}

func statusClass(status string) string {
	switch status {
	case "in-progress":
		return "bg-amber-500/15 text-amber-300"
	case "completed", "accepted":
		return "bg-emerald-500/15 text-emerald-300"
	case "under-review", "submitted", "preprint":
		return "bg-violet-500/15 text-violet-300"
	case "planned":
		return "bg-sky-500/15 text-sky-300"
	default:
		return "bg-slate-500/15 text-slate-300"
	}
}
