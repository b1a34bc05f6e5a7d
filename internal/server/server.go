package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"folio/internal/catalog"
	"folio/internal/config"
	"folio/internal/contact"
	"folio/internal/content"
	"folio/internal/handlers"
	"folio/internal/inbox"
	applog "folio/internal/log"
	"folio/internal/metrics"
	"folio/internal/notify"
	"folio/internal/visitor"
)

const (
	defaultSessionLifetime = 365 * 24 * time.Hour
	defaultCookieName      = "folio_session"
	defaultShutdownTimeout = 5 * time.Second
	defaultStaticDir       = "web/static"
	catalogCacheSize       = 64
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr            string
	StaticDir       string
	ShutdownTimeout time.Duration
	Session         config.SessionConfig
	Contact         config.ContactConfig
	Notifications   config.NotificationConfig
	// Database is required when Contact.Delivery is inbox.
	Database *gorm.DB
	// Content defaults to the embedded sample content.
	Content *content.Repository
	// Metrics defaults to a fresh registry with the Go and process collectors.
	Metrics *prometheus.Registry
}

// Server wraps an http.Server and exposes helpers for bootstrapping a
// production-ready web service.
type Server struct {
	config     Config
	httpServer *http.Server
	visitors   *visitor.Registry
}

// New builds a new Server using the provided configuration.
func New(cfg Config) (*Server, error) {
	ctx := context.Background()
	applog.Debug(ctx, "initializing server",
		"addr", cfg.Addr,
		"sessionLifetime", cfg.Session.Lifetime.String(),
		"sessionCookie", cfg.Session.CookieName,
		"delivery", cfg.Contact.Delivery,
	)

	sessionManager := newSessionManager(cfg.Session)

	repo := cfg.Content
	if repo == nil {
		applog.Debug(ctx, "content repository not provided, using embedded content")
		var err error
		if repo, err = content.Default(ctx); err != nil {
			return nil, fmt.Errorf("load content: %w", err)
		}
	}

	deliverer, err := newDeliverer(cfg.Contact, cfg.Database)
	if err != nil {
		return nil, err
	}

	registry := cfg.Metrics
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	engine := catalog.Default()
	recorder, err := metrics.NewRecorder(metrics.DefaultNamespace, registry, engine.Tags())
	if err != nil {
		return nil, err
	}

	visitors, err := visitor.NewRegistry(visitor.Options{
		Capacity:     cfg.Notifications.VisitorCapacity,
		Deliverer:    deliverer,
		QueueOptions: []notify.Option{notify.WithTimeout(cfg.Notifications.Timeout)},
		Observers:    []contact.Observer{logTransition},
	})
	if err != nil {
		return nil, fmt.Errorf("create visitor registry: %w", err)
	}

	handlers.Configure(handlers.Dependencies{
		Sessions: sessionManager,
		Content:  repo,
		Catalog:  catalog.NewCache(engine, repo.Projects(), catalogCacheSize),
		Visitors: visitors,
		Metrics:  recorder,
	})

	applog.Debug(ctx, "handler dependencies configured", "projects", len(repo.Projects()))

	staticDir := cfg.StaticDir
	if strings.TrimSpace(staticDir) == "" {
		staticDir = defaultStaticDir
	}
	handler := sessionManager.LoadAndSave(newRouter(routerConfig{
		staticDir: staticDir,
		gatherer:  registry,
		recorder:  recorder,
	}))

	applog.Debug(ctx, "http handler chain prepared")

	return &Server{
		config:   cfg,
		visitors: visitors,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

func newSessionManager(cfg config.SessionConfig) *scs.SessionManager {
	if cfg.Lifetime <= 0 {
		applog.Debug(context.Background(), "session lifetime not provided, using default")
		cfg.Lifetime = defaultSessionLifetime
	}
	if strings.TrimSpace(cfg.CookieName) == "" {
		applog.Debug(context.Background(), "session cookie name not provided, using default")
		cfg.CookieName = defaultCookieName
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Lifetime
	sessionManager.Cookie.Name = cfg.CookieName
	sessionManager.Cookie.Domain = cfg.CookieDomain
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.CookieSecure

	applog.Debug(context.Background(), "session manager configured",
		"cookieName", cfg.CookieName,
		"cookieDomain", cfg.CookieDomain,
		"cookieSecure", cfg.CookieSecure,
	)
	return sessionManager
}

func newDeliverer(cfg config.ContactConfig, database *gorm.DB) (contact.Deliverer, error) {
	switch cfg.Delivery {
	case config.DeliveryInbox:
		box, err := inbox.New(database)
		if err != nil {
			return nil, fmt.Errorf("contact delivery %q: %w", cfg.Delivery, err)
		}
		return box, nil
	case config.DeliverySimulate, "":
		return contact.Simulated{Delay: cfg.SimulatedDelay}, nil
	default:
		return nil, fmt.Errorf("unknown contact delivery: %s", cfg.Delivery)
	}
}

func logTransition(from, to contact.State) {
	applog.Debug(context.Background(), "contact flow transition", "from", string(from), "to", string(to))
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Debug(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server and releases visitor state.
func (s *Server) Stop() error {
	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	err := s.httpServer.Shutdown(ctx)
	s.visitors.Close()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	applog.Debug(context.Background(), "server handler requested")
	return s.httpServer.Handler
}
