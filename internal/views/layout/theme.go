package layout

import (
	"folio/internal/views/components"
	viewtheme "folio/internal/views/theme"
	"folio/models"
)

// ThemeState is the theme information the shell needs to render: the stored
// preference, what it resolved to and the matching palette.
type ThemeState struct {
	Preference string
	Resolved   string
	Palette    viewtheme.Palette
}

// NewThemeState builds a ThemeState, normalising unknown preferences to the
// default and unknown resolutions to light.
func NewThemeState(preference, resolved string) ThemeState {
	palette := viewtheme.Resolve(resolved)
	return ThemeState{
		Preference: models.NormalizeTheme(preference),
		Resolved:   palette.Key,
		Palette:    palette,
	}
}

// ThemeOptions exposes the toggle options in display order with the current
// preference marked.
func ThemeOptions(preference string) []components.ThemeToggleOption {
	preference = models.NormalizeTheme(preference)
	base := viewtheme.Options()
	options := make([]components.ThemeToggleOption, 0, len(base))
	for _, option := range base {
		options = append(options, components.ThemeToggleOption{
			Option: option,
			Active: option.Value == preference,
		})
	}
	return options
}

// Toggle returns the data for the theme switcher.
func (s ThemeState) Toggle() components.ThemeToggleData {
	return components.ThemeToggleData{
		Preference: s.Preference,
		Resolved:   s.Resolved,
		Options:    ThemeOptions(s.Preference),
	}
}
