package handlers

import (
	"net/http"
	"strconv"
	"strings"

	applog "folio/internal/log"
	"folio/internal/theme"
	"folio/internal/visitor"
	"folio/models"
)

type themeResponse struct {
	Theme    string `json:"theme"`
	Resolved string `json:"resolved"`
}

// SetTheme stores the posted preference ("light", "dark" or "system").
func SetTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		applog.Debug(r.Context(), "theme update with unsupported method", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse theme form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	value := strings.ToLower(strings.TrimSpace(r.FormValue("theme")))
	if !models.ValidTheme(value) {
		applog.Debug(r.Context(), "received invalid theme selection", "value", value)
		http.Error(w, "invalid theme selection", http.StatusBadRequest)
		return
	}

	withThemeMachine(w, r, func(machine *theme.Machine, _ *visitor.State) {
		machine.SetTheme(value)
		recorder.ThemeChange(machine.Preference())
		applog.Debug(r.Context(), "theme preference updated", "theme", machine.Preference(), "resolved", machine.Resolved())
	})
}

// CycleTheme advances the preference light -> dark -> system -> light.
func CycleTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	withThemeMachine(w, r, func(machine *theme.Machine, _ *visitor.State) {
		next := machine.Cycle()
		recorder.ThemeChange(next)
		applog.Debug(r.Context(), "theme preference cycled", "theme", next, "resolved", machine.Resolved())
	})
}

// ReportSystemTheme records a change of the visitor's operating system color
// scheme, posted by the page script when the media query flips.
func ReportSystemTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	dark, err := strconv.ParseBool(strings.TrimSpace(r.FormValue("dark")))
	if err != nil {
		applog.Debug(r.Context(), "received invalid system scheme report", "value", r.FormValue("dark"))
		http.Error(w, "invalid dark value", http.StatusBadRequest)
		return
	}

	withThemeMachine(w, r, func(machine *theme.Machine, state *visitor.State) {
		state.Signal.Set(dark)
		applog.Debug(r.Context(), "system color scheme reported", "dark", dark, "resolved", machine.Resolved())
	})
}

// withThemeMachine runs fn against the visitor's theme machine and writes the
// resulting preference.
func withThemeMachine(w http.ResponseWriter, r *http.Request, fn func(*theme.Machine, *visitor.State)) {
	state, release := visitorState(r)
	defer release()
	machine, _ := requestTheme(r, state)
	defer machine.Close()

	fn(machine, state)

	if !wantsJSON(r) {
		redirectBack(w, r, "/")
		return
	}
	writeJSON(w, r, http.StatusOK, themeResponse{
		Theme:    machine.Preference(),
		Resolved: machine.Resolved(),
	})
}
