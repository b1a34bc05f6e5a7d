package models

import "strings"

// Theme preferences a visitor can select.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"

	// DefaultTheme is used when no valid preference has been stored.
	DefaultTheme = ThemeSystem
)

// Resolved themes actually applied to the page.
const (
	ResolvedLight = "light"
	ResolvedDark  = "dark"
)

// ValidTheme reports whether value is a recognised theme preference.
func ValidTheme(value string) bool {
	switch value {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}

// NormalizeTheme trims and lowercases value, falling back to DefaultTheme when unknown.
func NormalizeTheme(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if ValidTheme(normalized) {
		return normalized
	}
	return DefaultTheme
}
