package handlers

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"

	"folio/internal/catalog"
	"folio/internal/contact"
	applog "folio/internal/log"
	"folio/internal/theme"
	"folio/internal/views/layout"
	"folio/internal/views/pages"
	"folio/internal/visitor"
	"folio/models"
)

// Home renders the portfolio landing page. HTMX filter requests receive only
// the project grid.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	filters := pages.CatalogFiltersFromRequest(r)
	view := catalogView(filters.Tag)
	recorder.CatalogView(filters.Tag)
	applog.Debug(r.Context(), "rendering catalog", "tag", filters.Tag, "matches", len(view.Filtered), "htmx", isHTMX(r))

	if isHTMX(r) && r.URL.Query().Has("tag") {
		renderComponent(w, r, pages.ProjectGrid(pages.NewCatalogData(view, catalogTags())))
		return
	}

	state, release := visitorState(r)
	defer release()
	machine, _ := requestTheme(r, state)
	defer machine.Close()

	renderHome(w, r, http.StatusOK, state, machine, view, pages.NewContactFormData(contact.Payload{}, nil))
}

// Project renders the detail view for the slug in the path, or the not-found
// view when no project matches.
func Project(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	slug := r.PathValue("slug")
	project, err := catalog.FindProjectBySlug(allProjects(), slug)

	state, release := visitorState(r)
	defer release()
	machine, _ := requestTheme(r, state)
	defer machine.Close()
	advertiseClientHints(w)

	if errors.Is(err, catalog.ErrNotFound) {
		applog.Debug(r.Context(), "project not found", "slug", slug)
		renderPage(w, r, http.StatusNotFound, state, machine, layout.Page{Title: "Project not found", Section: "projects"}, pages.NotFound(slug))
		return
	}

	renderPage(w, r, http.StatusOK, state, machine, layout.Page{
		Title:       project.Title + " | " + brand(),
		Description: project.Summary,
		Section:     "projects",
	}, pages.ProjectDetail(project))
}

// NotFound renders the not-found view for unknown paths.
func NotFound(w http.ResponseWriter, r *http.Request) {
	state, release := visitorState(r)
	defer release()
	machine, _ := requestTheme(r, state)
	defer machine.Close()

	renderPage(w, r, http.StatusNotFound, state, machine, layout.Page{Title: "Not found"}, pages.NotFound(""))
}

func renderHome(w http.ResponseWriter, r *http.Request, status int, state *visitor.State, machine *theme.Machine, view catalog.View, form pages.ContactFormData) {
	advertiseClientHints(w)

	data := pages.HomeData{
		Catalog: pages.NewCatalogData(view, catalogTags()),
		Contact: form,
	}
	page := layout.Page{Title: brand(), Section: "about"}
	if repository != nil {
		profile := repository.Profile()
		data.Profile = profile
		data.Experiences = repository.Experiences()
		data.Skills = repository.Skills()
		data.Testimonials = repository.Testimonials()
		page.Title = profile.Name + " | " + profile.Role
		page.Description = profile.Headline
	}
	renderPage(w, r, status, state, machine, page, pages.Home(data))
}

func renderPage(w http.ResponseWriter, r *http.Request, status int, state *visitor.State, machine *theme.Machine, page layout.Page, content templ.Component) {
	if page.Brand == "" {
		page.Brand = brand()
	}
	page.Toasts = state.Queue.Active()
	renderComponentStatus(w, r, status, layout.Layout(page, themeState(machine), content))
}

func allProjects() []models.Project {
	if repository == nil {
		return nil
	}
	return repository.Projects()
}

func catalogView(tag string) catalog.View {
	if catalogCache != nil {
		return catalogCache.View(tag)
	}
	return catalog.BuildCatalogView(allProjects(), tag)
}

func catalogTags() []string {
	if catalogCache != nil {
		return catalogCache.Engine().Tags()
	}
	return catalog.DefaultRules().Tags
}
