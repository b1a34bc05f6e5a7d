package handlers

import (
	"net/http"
	"strings"
)

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" || r.Header.Get("HX-Boosted") == "true"
}

// wantsJSON reports whether the client asked for JSON rather than a page.
func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") || !strings.Contains(accept, "text/html")
}

// redirectBack sends the browser back to the page it came from.
func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := fallback
	if ref := r.Referer(); ref != "" {
		if u, err := r.URL.Parse(ref); err == nil && (u.Host == "" || u.Host == r.Host) {
			target = u.RequestURI()
			if u.Fragment != "" {
				target += "#" + u.Fragment
			}
		}
	}
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
