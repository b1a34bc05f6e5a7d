package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"folio/internal/handlers"
	applog "folio/internal/log"
	"folio/internal/metrics"
)

type routerConfig struct {
	staticDir string
	gatherer  prometheus.Gatherer
	recorder  *metrics.Recorder
}

func newRouter(cfg routerConfig) http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	route := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, instrument(cfg.recorder, pattern, h))
		applog.Debug(context.Background(), "route registered", "pattern", pattern)
	}

	route("GET /healthz", handlers.Health)
	route("GET /{$}", handlers.Home)
	route("GET /projects/{slug}", handlers.Project)
	route("POST /theme", handlers.SetTheme)
	route("POST /theme/cycle", handlers.CycleTheme)
	route("POST /theme/system", handlers.ReportSystemTheme)
	route("POST /contact", handlers.Contact)
	route("GET /notifications", handlers.Notifications)
	route("POST /notifications/{id}/dismiss", handlers.DismissNotification)
	route("/", handlers.NotFound)

	if cfg.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))
		applog.Debug(context.Background(), "route registered", "pattern", "GET /metrics")
	}
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(cfg.staticDir))))
	applog.Debug(context.Background(), "route registered", "pattern", "/assets/", "static", true)
	return mux
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func instrument(recorder *metrics.Recorder, pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		if sw.status == 0 {
			sw.status = http.StatusOK
		}
		recorder.HTTPRequest(pattern, sw.status, time.Since(started))
	})
}
