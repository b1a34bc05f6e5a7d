// Package metrics exports site counters to Prometheus.
package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "folio"

// Contact outcomes.
const (
	OutcomeDelivered = "delivered"
	OutcomeFailed    = "failed"
	OutcomeInvalid   = "invalid"
	OutcomeBusy      = "busy"
	OutcomeAbandoned = "abandoned"
)

// OtherLabel replaces label values outside the known set.
const OtherLabel = "other"

// Recorder holds the registered collectors. A nil *Recorder ignores every
// call.
type Recorder struct {
	catalogViews       *prometheus.CounterVec
	themeChanges       *prometheus.CounterVec
	contactSubmissions *prometheus.CounterVec
	contactDuration    prometheus.Histogram
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	knownTags          map[string]string
}

// NewRecorder registers the site metrics on reg. Tags outside knownTags are
// recorded as OtherLabel.
func NewRecorder(namespace string, reg prometheus.Registerer, knownTags []string) (*Recorder, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Recorder{
		catalogViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_views_total",
			Help:      "Catalog views rendered, by selected tag.",
		}, []string{"tag"}),
		themeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "theme_changes_total",
			Help:      "Theme preference changes, by new preference.",
		}, []string{"preference"}),
		contactSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions, by outcome.",
		}, []string{"outcome"}),
		contactDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "contact_delivery_duration_seconds",
			Help:      "Time spent delivering valid contact submissions.",
			Buckets:   prometheus.DefBuckets,
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		knownTags: make(map[string]string, len(knownTags)),
	}
	for _, tag := range knownTags {
		r.knownTags[strings.ToLower(tag)] = tag
	}

	if err := register(reg, &r.catalogViews); err != nil {
		return nil, err
	}
	if err := register(reg, &r.themeChanges); err != nil {
		return nil, err
	}
	if err := register(reg, &r.contactSubmissions); err != nil {
		return nil, err
	}
	if err := register(reg, &r.contactDuration); err != nil {
		return nil, err
	}
	if err := register(reg, &r.httpRequests); err != nil {
		return nil, err
	}
	if err := register(reg, &r.httpDuration); err != nil {
		return nil, err
	}
	return r, nil
}

// register adds *c to reg, swapping in the existing collector when an
// identical one is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c *C) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				*c = existing
				return nil
			}
		}
		return fmt.Errorf("register metric: %w", err)
	}
	return nil
}

// CatalogView counts a rendered catalog view under the canonical spelling of
// tag. The empty tag counts as "All".
func (r *Recorder) CatalogView(tag string) {
	if r == nil {
		return
	}
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		tag = "all"
	}
	label, ok := r.knownTags[tag]
	if !ok {
		label = OtherLabel
	}
	r.catalogViews.WithLabelValues(label).Inc()
}

// ThemeChange counts a preference change.
func (r *Recorder) ThemeChange(preference string) {
	if r == nil {
		return
	}
	r.themeChanges.WithLabelValues(preference).Inc()
}

// ContactSubmission counts a submission outcome. A positive duration is
// observed as delivery latency.
func (r *Recorder) ContactSubmission(outcome string, duration time.Duration) {
	if r == nil {
		return
	}
	r.contactSubmissions.WithLabelValues(outcome).Inc()
	if duration > 0 {
		r.contactDuration.Observe(duration.Seconds())
	}
}

// HTTPRequest records a served request.
func (r *Recorder) HTTPRequest(route string, code int, duration time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = OtherLabel
	}
	r.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	r.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}
