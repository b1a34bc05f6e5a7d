package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/prometheus/client_golang/prometheus"

	"folio/internal/catalog"
	"folio/internal/contact"
	"folio/internal/content"
	"folio/internal/metrics"
	"folio/internal/notify"
	"folio/internal/visitor"
)

type testEnv struct {
	sessions *scs.SessionManager
	registry *visitor.Registry
	handler  http.Handler
	cookies  []*http.Cookie
}

func newTestEnv(t *testing.T, deliverer contact.Deliverer) *testEnv {
	t.Helper()

	repo, err := content.Default(context.Background())
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	registry, err := visitor.NewRegistry(visitor.Options{
		Deliverer:    deliverer,
		QueueOptions: []notify.Option{notify.WithTimeout(time.Hour)},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	recorder, err := metrics.NewRecorder("test", prometheus.NewRegistry(), catalog.DefaultRules().Tags)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}

	sessions := scs.New()
	Configure(Dependencies{
		Sessions: sessions,
		Content:  repo,
		Catalog:  catalog.NewCache(catalog.Default(), repo.Projects(), 8),
		Visitors: registry,
		Metrics:  recorder,
	})
	t.Cleanup(func() {
		registry.Close()
		Configure(Dependencies{})
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", Home)
	mux.HandleFunc("GET /projects/{slug}", Project)
	mux.HandleFunc("POST /theme", SetTheme)
	mux.HandleFunc("POST /theme/cycle", CycleTheme)
	mux.HandleFunc("POST /theme/system", ReportSystemTheme)
	mux.HandleFunc("POST /contact", Contact)
	mux.HandleFunc("GET /notifications", Notifications)
	mux.HandleFunc("POST /notifications/{id}/dismiss", DismissNotification)
	mux.HandleFunc("/", NotFound)

	return &testEnv{sessions: sessions, registry: registry, handler: sessions.LoadAndSave(mux)}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	if cookies := rr.Result().Cookies(); len(cookies) > 0 {
		e.cookies = cookies
	}
	return rr
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestIsHTMX(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if isHTMX(req) {
		t.Fatal("expected false when no HTMX headers present")
	}
	req.Header.Set("HX-Request", "true")
	if !isHTMX(req) {
		t.Fatal("expected true when HX-Request header present")
	}
}

func TestWantsJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		accept string
		want   bool
	}{
		{"", true},
		{"application/json", true},
		{"text/html,application/xhtml+xml,*/*;q=0.8", false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/theme", nil)
		if tt.accept != "" {
			req.Header.Set("Accept", tt.accept)
		}
		if got := wantsJSON(req); got != tt.want {
			t.Errorf("wantsJSON(%q) = %v, want %v", tt.accept, got, tt.want)
		}
	}
}

func TestHomeRendersCatalog(t *testing.T) {
	env := newTestEnv(t, contact.Simulated{})

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, token := range []string{"<!DOCTYPE html>", "Alex Rivera", `data-project-slug="neural-search"`, `id="contact-form"`, `id="toasts"`} {
		if !strings.Contains(body, token) {
			t.Fatalf("expected %q in home page", token)
		}
	}
	if got := rr.Header().Get("Accept-CH"); got != "Sec-CH-Prefers-Color-Scheme" {
		t.Fatalf("expected client hint advertisement, got %q", got)
	}
}

func TestHomeHTMXFilterReturnsGridPartial(t *testing.T) {
	env := newTestEnv(t, contact.Simulated{})

	req := httptest.NewRequest(http.MethodGet, "/?tag=tailwind", nil)
	req.Header.Set("HX-Request", "true")
	rr := env.do(t, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, "<html") {
		t.Fatal("expected partial without document shell")
	}
	if !strings.Contains(body, `data-project-slug="portfolio"`) {
		t.Fatalf("expected tailwind alias to match the portfolio project: %s", body)
	}
	if strings.Contains(body, `data-project-slug="neural-search"`) {
		t.Fatal("unexpected non-matching project in filtered grid")
	}
}

func TestHomeFilterEmptyState(t *testing.T) {
	env := newTestEnv(t, contact.Simulated{})

	req := httptest.NewRequest(http.MethodGet, "/?tag=COBOL", nil)
	req.Header.Set("HX-Request", "true")
	rr := env.do(t, req)
	if !strings.Contains(rr.Body.String(), "No projects found for COBOL") {
		t.Fatalf("expected empty state, got %s", rr.Body.String())
	}
}

func TestProjectDetailAndNotFound(t *testing.T) {
	env := newTestEnv(t, contact.Simulated{})

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/projects/sparse-attention", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Sparse Attention Kernels") {
		t.Fatal("expected project title in detail view")
	}

	rr = env.do(t, httptest.NewRequest(http.MethodGet, "/projects/does-not-exist", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Project not found") || !strings.Contains(body, `href="/#projects"`) {
		t.Fatalf("expected not found view with link back: %s", body)
	}

	rr = env.do(t, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %d", rr.Code)
	}
}

func decodeTheme(t *testing.T, rr *httptest.ResponseRecorder) themeResponse {
	t.Helper()
	var resp themeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode theme response: %v (%s)", err, rr.Body.String())
	}
	return resp
}

func TestThemeLifecycle(t *testing.T) {
	env := newTestEnv(t, contact.Simulated{})

	rr := env.do(t, postForm("/theme", url.Values{"theme": {"dark"}}))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := decodeTheme(t, rr); got != (themeResponse{Theme: "dark", Resolved: "dark"}) {
		t.Fatalf("unexpected response %+v", got)
	}

	rr = env.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(rr.Body.String(), `<html lang="en" class="dark"`) {
		t.Fatal("expected stored preference to survive across requests")
	}

	rr = env.do(t, postForm("/theme/cycle", nil))
	if got := decodeTheme(t, rr); got.Theme != "system" || got.Resolved != "light" {
		t.Fatalf("expected system resolving to light without a signal, got %+v", got)
	}

	rr = env.do(t, postForm("/theme/system", url.Values{"dark": {"true"}}))
	if got := decodeTheme(t, rr); got.Theme != "system" || got.Resolved != "dark" {
		t.Fatalf("expected live system change to apply, got %+v", got)
	}

	rr = env.do(t, postForm("/theme", url.Values{"theme": {"light"}}))
	if got := decodeTheme(t, rr); got.Resolved != "light" {
		t.Fatalf("expected explicit light, got %+v", got)
	}
	rr = env.do(t, postForm("/theme/system", url.Values{"dark": {"false"}}))
	rr = env.do(t, postForm("/theme/system", url.Values{"dark": {"true"}}))
	if got := decodeTheme(t, rr); got.Theme != "light" || got.Resolved != "light" {
		t.Fatalf("system changes must be ignored for explicit preferences, got %+v", got)
	}
}

func TestThemeRejectsInvalidValues(t *testing.T) {
	env := newTestEnv(t, contact.Simulated{})

	if rr := env.do(t, postForm("/theme", url.Values{"theme": {"sepia"}})); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid theme, got %d", rr.Code)
	}
	if rr := env.do(t, postForm("/theme/system", url.Values{"dark": {"maybe"}})); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid dark flag, got %d", rr.Code)
	}
}

func TestThemeClientHintResolvesSystem(t *testing.T) {
	env := newTestEnv(t, contact.Simulated{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Sec-CH-Prefers-Color-Scheme", "dark")
	rr := env.do(t, req)
	if !strings.Contains(rr.Body.String(), `content="#0f172a"`) {
		t.Fatal("expected dark meta color from client hint with system preference")
	}
}

func TestThemeFormPostRedirects(t *testing.T) {
	env := newTestEnv(t, contact.Simulated{})

	req := postForm("/theme", url.Values{"theme": {"dark"}})
	req.Header.Set("Accept", "text/html")
	req.Header.Set("Referer", "http://example.com/projects/portfolio")
	req.Host = "example.com"
	rr := env.do(t, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect for browser form post, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/projects/portfolio" {
		t.Fatalf("expected redirect back to referer, got %q", loc)
	}
}

func validContactForm() url.Values {
	return url.Values{
		"name":    {"Jo"},
		"email":   {"jo@example.com"},
		"subject": {"Hello there"},
		"message": {"I would like to chat about a role."},
	}
}

func TestContactInvalidReturnsFieldErrors(t *testing.T) {
	called := false
	env := newTestEnv(t, contact.DelivererFunc(func(context.Context, contact.Payload) error {
		called = true
		return nil
	}))

	req := postForm("/contact", url.Values{"name": {"Jo"}, "email": {"bad"}, "subject": {"four"}, "message": {"hi"}})
	req.Header.Set("HX-Request", "true")
	rr := env.do(t, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, msg := range []string{"Invalid email address", "Subject must be at least 5 characters", "Message must be at least 10 characters"} {
		if !strings.Contains(body, msg) {
			t.Fatalf("expected %q in response", msg)
		}
	}
	if called {
		t.Fatal("deliverer must not run for invalid submissions")
	}

	rr = env.do(t, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	if strings.Contains(rr.Body.String(), "data-toast-id") {
		t.Fatal("no notification expected after validation failure")
	}
}

func TestContactInvalidWithoutHTMXRendersPage(t *testing.T) {
	env := newTestEnv(t, contact.Simulated{})

	rr := env.do(t, postForm("/contact", url.Values{"name": {"J"}}))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "<!DOCTYPE html>") || !strings.Contains(rr.Body.String(), "Name must be at least 2 characters") {
		t.Fatal("expected full page with inline errors")
	}
}

func TestContactSuccessPushesNotification(t *testing.T) {
	env := newTestEnv(t, contact.Simulated{})

	req := postForm("/contact", validContactForm())
	req.Header.Set("HX-Request", "true")
	rr := env.do(t, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Header().Get("HX-Trigger") != notificationsEvent {
		t.Fatal("expected notifications refresh trigger")
	}
	if strings.Contains(rr.Body.String(), `value="Jo"`) {
		t.Fatal("expected form to be cleared after success")
	}

	notes := env.do(t, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	var resp notificationsResponse
	if err := json.Unmarshal(notes.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode notifications: %v", err)
	}
	if len(resp.Notifications) != 1 || resp.Notifications[0].Variant != notify.VariantSuccess {
		t.Fatalf("unexpected notifications %+v", resp.Notifications)
	}
	if resp.Notifications[0].Title != contact.SuccessTitle {
		t.Fatalf("unexpected title %q", resp.Notifications[0].Title)
	}

	dismiss := postForm("/notifications/"+resp.Notifications[0].ID+"/dismiss", nil)
	dismiss.Header.Set("HX-Request", "true")
	rr = env.do(t, dismiss)
	if rr.Code != http.StatusOK || strings.Contains(rr.Body.String(), "data-toast-id") {
		t.Fatalf("expected empty toast container after dismiss: %d %s", rr.Code, rr.Body.String())
	}
}

func TestContactFailurePreservesValues(t *testing.T) {
	env := newTestEnv(t, contact.Simulated{Err: errors.New("mail relay down")})

	req := postForm("/contact", validContactForm())
	req.Header.Set("HX-Request", "true")
	rr := env.do(t, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `value="Jo"`) {
		t.Fatal("expected submitted values to be preserved after failure")
	}

	rr = env.do(t, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	var resp notificationsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode notifications: %v", err)
	}
	if len(resp.Notifications) != 1 || resp.Notifications[0].Variant != notify.VariantDestructive {
		t.Fatalf("expected destructive notification, got %+v", resp.Notifications)
	}
}

func TestContactWithoutHTMXRedirects(t *testing.T) {
	env := newTestEnv(t, contact.Simulated{})

	rr := env.do(t, postForm("/contact", validContactForm()))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/#contact" {
		t.Fatalf("unexpected redirect %q", loc)
	}

	rr = env.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(rr.Body.String(), contact.SuccessTitle) {
		t.Fatal("expected success toast on the next page render")
	}
}

func TestHandlersWithoutDependencies(t *testing.T) {
	Configure(Dependencies{})

	rr := httptest.NewRecorder()
	Home(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected home to render without dependencies, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	SetTheme(rr, postForm("/theme", url.Values{"theme": {"dark"}}))
	if got := decodeTheme(t, rr); got.Resolved != "dark" {
		t.Fatalf("expected theme to apply for the request even without a session, got %+v", got)
	}
}
