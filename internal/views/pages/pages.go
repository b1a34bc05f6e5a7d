// Package pages renders the portfolio views and their HTMX partials.
package pages

import (
	"context"
	"embed"
	"html/template"
	"strings"

	"github.com/a-h/templ"

	"folio/internal/catalog"
	"folio/internal/contact"
	"folio/internal/views/components"
	"folio/models"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var templates = template.Must(template.New("pages").Funcs(template.FuncMap{
	"statusBadge": statusBadge,
	"dateRange":   models.FormatDateRange,
	"initials":    models.Initials,
	"stars":       RatingStars,
	"period":      ProjectPeriod,
	"levelLabel":  SkillLevelLabel,
	"typeLabel":   ExperienceTypeLabel,
	"byline":      TestimonialByline,
	"dash":        DefaultDash,
	"socialLabel": func(s models.Social) string { return s.DisplayLabel() },
	"join":        strings.Join,
	"field":       newInputField,
}).ParseFS(templateFS, "templates/*.gohtml"))

// CatalogData drives the project grid.
type CatalogData struct {
	View         catalog.View
	Tags         []TagLink
	EmptyMessage string
}

// NewCatalogData prepares the grid for view using the filter bar tags.
func NewCatalogData(view catalog.View, tags []string) CatalogData {
	return CatalogData{
		View:         view,
		Tags:         TagLinks(tags, view.Selected),
		EmptyMessage: EmptyStateMessage(view.Selected),
	}
}

// ContactFormData drives the contact form.
type ContactFormData struct {
	Values    contact.Payload
	Errors    map[string]string
	Budgets   []contact.Choice
	Timelines []contact.Choice
	Location  string
}

// NewContactFormData returns form data for values with errs shown inline.
func NewContactFormData(values contact.Payload, errs contact.FieldErrors) ContactFormData {
	return ContactFormData{
		Values:    values,
		Errors:    errs.Map(),
		Budgets:   contact.Budgets,
		Timelines: contact.Timelines,
	}
}

// HomeData is everything shown on the landing page.
type HomeData struct {
	Profile      models.Profile
	Catalog      CatalogData
	Experiences  []models.Experience
	Skills       []models.Skill
	Testimonials []models.Testimonial
	Contact      ContactFormData
}

// Home renders the landing page content.
func Home(data HomeData) templ.Component {
	if data.Contact.Location == "" {
		data.Contact.Location = data.Profile.Location
	}
	return templ.FromGoHTML(templates.Lookup("home"), data)
}

// ProjectGrid renders the filter bar and gallery; it is also the partial
// returned to HTMX filter requests.
func ProjectGrid(data CatalogData) templ.Component {
	return templ.FromGoHTML(templates.Lookup("project_grid"), data)
}

// ContactForm renders the contact form; it is also the partial returned to
// HTMX submissions.
func ContactForm(data ContactFormData) templ.Component {
	return templ.FromGoHTML(templates.Lookup("contact_form"), data)
}

// ProjectDetail renders a single project.
func ProjectDetail(project models.Project) templ.Component {
	return templ.FromGoHTML(templates.Lookup("project_detail"), project)
}

// NotFound renders the missing project view.
func NotFound(slug string) templ.Component {
	return templ.FromGoHTML(templates.Lookup("not_found"), slug)
}

type inputField struct {
	Name  string
	Label string
	Type  string
	Value string
	Error string
}

func newInputField(name, label, kind, value string, errs map[string]string) inputField {
	return inputField{Name: name, Label: label, Type: kind, Value: value, Error: errs[name]}
}

func statusBadge(status string) (template.HTML, error) {
	return templ.ToGoHTML(context.Background(), components.StatusBadge(status))
}
