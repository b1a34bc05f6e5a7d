package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Logging       LoggingConfig
	Session       SessionConfig
	Content       ContentConfig
	Contact       ContactConfig
	Notifications NotificationConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr            string
	StaticDir       string
	ShutdownTimeout time.Duration
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string
	UseMock         bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Enabled reports whether a database backend has been configured.
func (c DatabaseConfig) Enabled() bool {
	return c.UseMock || strings.TrimSpace(c.URL) != ""
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level  string
	Format string
}

// SessionConfig controls the visitor session cookie that carries the theme preference.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// ContentConfig points at the portfolio content documents. An empty Dir
// selects the content embedded in the binary.
type ContentConfig struct {
	Dir string
}

// Contact delivery modes.
const (
	DeliverySimulate = "simulate"
	DeliveryInbox    = "inbox"
)

// ContactConfig selects how contact submissions are delivered.
type ContactConfig struct {
	Delivery       string
	SimulatedDelay time.Duration
}

// NotificationConfig tunes the per-visitor notification queues.
type NotificationConfig struct {
	Timeout         time.Duration
	VisitorCapacity int
}

// Load inspects the environment and builds a Config value.
func Load() (Config, error) {
	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			":8080",
		),
		StaticDir:       firstNonEmpty(os.Getenv("STATIC_DIR"), "web/static"),
		ShutdownTimeout: parseDurationWithDefault(os.Getenv("SERVER_SHUTDOWN_TIMEOUT"), 5*time.Second),
	}

	cfg.Database = DatabaseConfig{
		URL: firstNonEmpty(
			os.Getenv("DATABASE_URL"),
			os.Getenv("DB_URL"),
			"",
		),
		UseMock:         parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), false),
		MaxIdleConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), 0),
		MaxOpenConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), 0),
		ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), 0),
		ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), 0),
	}

	cfg.Logging = LoggingConfig{
		Level:  firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
		Format: firstNonEmpty(os.Getenv("LOG_FORMAT"), "text"),
	}

	cfg.Session = SessionConfig{
		Lifetime:     parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), 365*24*time.Hour),
		CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), "folio_session"),
		CookieDomain: strings.TrimSpace(os.Getenv("SESSION_COOKIE_DOMAIN")),
		CookieSecure: parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), true),
	}

	cfg.Content = ContentConfig{Dir: strings.TrimSpace(os.Getenv("CONTENT_DIR"))}

	defaultDelivery := DeliverySimulate
	if cfg.Database.Enabled() {
		defaultDelivery = DeliveryInbox
	}
	cfg.Contact = ContactConfig{
		Delivery:       strings.ToLower(firstNonEmpty(os.Getenv("CONTACT_DELIVERY"), defaultDelivery)),
		SimulatedDelay: parseDurationWithDefault(os.Getenv("CONTACT_SIMULATED_DELAY"), 2*time.Second),
	}

	cfg.Notifications = NotificationConfig{
		Timeout:         parseDurationWithDefault(os.Getenv("NOTIFICATION_TIMEOUT"), 5*time.Second),
		VisitorCapacity: parseIntWithDefault(os.Getenv("VISITOR_CAPACITY"), 4096),
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	switch cfg.Contact.Delivery {
	case DeliverySimulate:
	case DeliveryInbox:
		if !cfg.Database.Enabled() {
			return Config{}, fmt.Errorf("contact delivery %q requires DATABASE_URL or DATABASE_USE_MOCK", DeliveryInbox)
		}
	default:
		return Config{}, fmt.Errorf("unknown contact delivery: %s", cfg.Contact.Delivery)
	}
	if cfg.Notifications.VisitorCapacity <= 0 {
		return Config{}, fmt.Errorf("visitor capacity must be positive")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}
