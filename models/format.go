package models

import (
	"strings"
	"time"
	"unicode"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01"}

// ParseDate parses the date formats accepted in content documents.
func ParseDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// FormatMonth renders a content date as "January 2024", returning the raw value when it cannot be parsed.
func FormatMonth(value string) string {
	parsed, ok := ParseDate(value)
	if !ok {
		return value
	}
	return parsed.Format("January 2006")
}

// FormatDateRange renders "<start> - <end>", using "Present" for an open range.
func FormatDateRange(start, end string) string {
	if strings.TrimSpace(end) == "" {
		return FormatMonth(start) + " - Present"
	}
	return FormatMonth(start) + " - " + FormatMonth(end)
}

// Initials returns up to two upper-case initials for name.
func Initials(name string) string {
	initials := make([]rune, 0, 2)
	for _, part := range strings.Fields(name) {
		initials = append(initials, unicode.ToUpper([]rune(part)[0]))
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}
