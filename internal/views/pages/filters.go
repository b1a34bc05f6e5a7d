package pages

import (
	"net/http"
	"net/url"
	"strings"

	"folio/internal/catalog"
)

// CatalogFilters capture the client-driven state for the project gallery.
type CatalogFilters struct {
	Tag string
}

// CatalogFiltersFromRequest extracts filter inputs from an HTTP request.
func CatalogFiltersFromRequest(r *http.Request) CatalogFilters {
	filters := CatalogFilters{}
	if err := r.ParseForm(); err != nil {
		return filters
	}
	filters.Tag = strings.TrimSpace(r.FormValue("tag"))
	return filters
}

// IsAll reports whether the filter selects every project.
func (f CatalogFilters) IsAll() bool {
	return f.Tag == "" || strings.EqualFold(f.Tag, catalog.AllTag)
}

// TagLink is one entry of the filter bar.
type TagLink struct {
	Label  string
	Href   string
	Active bool
}

// TagLinks builds the filter bar for tags with selected highlighted. An empty
// selection highlights the "All" entry.
func TagLinks(tags []string, selected string) []TagLink {
	selected = strings.TrimSpace(selected)
	if selected == "" {
		selected = catalog.AllTag
	}
	links := make([]TagLink, 0, len(tags))
	for _, tag := range tags {
		links = append(links, TagLink{
			Label:  tag,
			Href:   TagHref(tag),
			Active: strings.EqualFold(tag, selected),
		})
	}
	return links
}

// TagHref returns the gallery URL filtered by tag.
func TagHref(tag string) string {
	if tag == "" || strings.EqualFold(tag, catalog.AllTag) {
		return "/"
	}
	return "/?" + url.Values{"tag": {tag}}.Encode()
}

// EmptyStateMessage is shown when a filter matches nothing.
func EmptyStateMessage(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" || strings.EqualFold(tag, catalog.AllTag) {
		return "No projects yet."
	}
	return "No projects found for " + tag
}
