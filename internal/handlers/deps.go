package handlers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"

	"folio/internal/catalog"
	"folio/internal/content"
	applog "folio/internal/log"
	"folio/internal/metrics"
	"folio/internal/theme"
	"folio/internal/views/layout"
	viewtheme "folio/internal/views/theme"
	"folio/internal/visitor"
)

// Dependencies are the shared collaborators used by the HTTP handlers.
type Dependencies struct {
	Sessions *scs.SessionManager
	Content  *content.Repository
	Catalog  *catalog.Cache
	Visitors *visitor.Registry
	Metrics  *metrics.Recorder
}

var (
	sessionManager *scs.SessionManager
	repository     *content.Repository
	catalogCache   *catalog.Cache
	visitors       *visitor.Registry
	recorder       *metrics.Recorder
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(deps Dependencies) {
	sessionManager = deps.Sessions
	repository = deps.Content
	catalogCache = deps.Catalog
	visitors = deps.Visitors
	recorder = deps.Metrics
}

// visitorState returns the state of the visitor behind r. Without a session
// an untracked state is returned together with a release func that frees it.
func visitorState(r *http.Request) (*visitor.State, func()) {
	if visitors == nil {
		state := visitor.NewState("", visitor.Options{})
		return state, state.Queue.Close
	}
	state, err := visitors.FromSession(r.Context(), sessionManager)
	if err != nil {
		applog.Debug(r.Context(), "no visitor session, using ephemeral state", "error", err)
		state = visitors.Ephemeral()
		return state, state.Queue.Close
	}
	return state, func() {}
}

// requestTheme builds the theme machine for r. The color scheme client hint,
// when present, updates the visitor's signal before the machine reads it.
// The caller must Close the machine.
func requestTheme(r *http.Request, state *visitor.State) (*theme.Machine, *viewtheme.Appearance) {
	if dark, ok := theme.ClientHint(r); ok {
		state.Signal.Set(dark)
	}
	appearance := &viewtheme.Appearance{}
	machine := theme.New(r.Context(), theme.SessionStore{Sessions: sessionManager}, state.Signal, appearance)
	return machine, appearance
}

func themeState(machine *theme.Machine) layout.ThemeState {
	return layout.NewThemeState(machine.Preference(), machine.Resolved())
}

func advertiseClientHints(w http.ResponseWriter) {
	w.Header().Set("Accept-CH", theme.ClientHintHeader)
	w.Header().Add("Vary", theme.ClientHintHeader)
}

func renderComponent(w http.ResponseWriter, r *http.Request, component templ.Component) {
	renderComponentStatus(w, r, http.StatusOK, component)
}

func renderComponentStatus(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render component", "error", err)
	}
}

func brand() string {
	if repository == nil {
		return "Portfolio"
	}
	return repository.Profile().Name
}
