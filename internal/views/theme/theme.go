package theme

import (
	"strings"

	"folio/models"
)

// Option represents a selectable preference exposed to the theme toggle.
type Option struct {
	Value string
	Label string
	Icon  string
}

// Palette contains resolved styling primitives for the page shell.
type Palette struct {
	Key         string
	RootClass   string
	BodyClass   string
	MetaColor   string
	SurfaceCSS  string
	MutedCSS    string
	AccentCSS   string
	ColorScheme string
}

var palettes = map[string]Palette{
	models.ResolvedDark: {
		Key:         models.ResolvedDark,
		RootClass:   "dark",
		BodyClass:   "min-h-screen bg-slate-950 text-slate-100",
		MetaColor:   "#0f172a",
		SurfaceCSS:  "bg-slate-900/60 border border-slate-800",
		MutedCSS:    "text-slate-400",
		AccentCSS:   "text-cyan-400",
		ColorScheme: "dark",
	},
	models.ResolvedLight: {
		Key:         models.ResolvedLight,
		RootClass:   "light",
		BodyClass:   "min-h-screen bg-white text-slate-900",
		MetaColor:   "#ffffff",
		SurfaceCSS:  "bg-slate-50 border border-slate-200",
		MutedCSS:    "text-slate-600",
		AccentCSS:   "text-cyan-700",
		ColorScheme: "light",
	},
}

var options = []Option{
	{Value: models.ThemeLight, Label: "Light", Icon: "sun"},
	{Value: models.ThemeDark, Label: "Dark", Icon: "moon"},
	{Value: models.ThemeSystem, Label: "System", Icon: "monitor"},
}

// Resolve returns the palette for a resolved theme, falling back to light.
func Resolve(resolved string) Palette {
	normalized := strings.ToLower(strings.TrimSpace(resolved))
	if value, ok := palettes[normalized]; ok {
		return value
	}
	return palettes[models.ResolvedLight]
}

// Options exposes the preference choices in toggle order.
func Options() []Option {
	return append([]Option(nil), options...)
}

// OptionFor returns the option describing preference, falling back to system.
func OptionFor(preference string) Option {
	for _, option := range options {
		if option.Value == preference {
			return option
		}
	}
	return options[len(options)-1]
}

// Appearance is the applier target for the theme machine: it remembers the
// last palette applied so the page can render it.
type Appearance struct {
	Palette Palette
}

// Apply records the palette for resolved.
func (a *Appearance) Apply(resolved string) {
	a.Palette = Resolve(resolved)
}
