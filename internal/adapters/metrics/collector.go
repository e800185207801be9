package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fairway"

// EntryKind distinguishes request vs query entries.
type EntryKind uint8

const (
	KindRequest EntryKind = iota
	KindQuery
)

// Entry is a single timing observation.
type Entry struct {
	Kind       EntryKind
	Method     string // HTTP method (requests only)
	Path       string // route label (see RouteLabel) or SQL operation
	StatusCode int    // HTTP status (0 for queries)
	DurationMs float64
}

// Collector records request, query and domain counters into a Prometheus registry.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	queryDuration   *prometheus.HistogramVec
	shotsRecorded   *prometheus.CounterVec
	logins          *prometheus.CounterVec

	count int64
}

// NewCollector creates a collector with its own registry, including Go runtime and process collectors.
// PRE: none
// POST: Returns a ready-to-use collector; Handler serves its registry
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "path"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Duration of database operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"op"}),
		shotsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "practice",
			Name:      "shots_recorded_total",
			Help:      "Shots recorded, by club category.",
		}, []string{"category"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts, by outcome.",
		}, []string{"outcome"}),
	}
	c.registry.MustRegister(
		c.requests,
		c.requestDuration,
		c.queryDuration,
		c.shotsRecorded,
		c.logins,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return c
}

// Record observes a timing entry.
// PRE: e is a valid Entry
// POST: the matching histogram (and request counter) is updated
func (c *Collector) Record(e Entry) {
	if c == nil {
		return
	}
	seconds := e.DurationMs / 1000
	switch e.Kind {
	case KindRequest:
		path := e.Path
		if path == "" {
			path = UnmatchedRoute
		}
		c.requests.WithLabelValues(e.Method, path, strconv.Itoa(e.StatusCode)).Inc()
		c.requestDuration.WithLabelValues(e.Method, path).Observe(seconds)
	case KindQuery:
		c.queryDuration.WithLabelValues(e.Path).Observe(seconds)
	}
	atomic.AddInt64(&c.count, 1)
}

// ShotRecorded counts a stored shot for the given category.
func (c *Collector) ShotRecorded(category string) {
	if c == nil {
		return
	}
	c.shotsRecorded.WithLabelValues(category).Inc()
}

// LoginOutcome counts a login attempt ("success", "failed", "locked").
func (c *Collector) LoginOutcome(outcome string) {
	if c == nil {
		return
	}
	c.logins.WithLabelValues(outcome).Inc()
}

// TotalRecorded returns the total number of timing entries ever recorded.
// PRE: none
// POST: returns count >= 0
func (c *Collector) TotalRecorded() int64 {
	if c == nil {
		return 0
	}
	return atomic.LoadInt64(&c.count)
}

// Registry exposes the underlying registry for tests and extra collectors.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler exposing the collector's metrics.
// POST: a nil collector serves 404
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// UnmatchedRoute labels requests no route pattern matched (404s and 405s).
const UnmatchedRoute = "unmatched"

// RouteLabel turns a ServeMux pattern such as "DELETE /api/driver/{id}" into the path label
// "/api/driver/{id}". Labels come from registered patterns only, so their number is bounded.
func RouteLabel(pattern string) string {
	if pattern == "" {
		return UnmatchedRoute
	}
	if _, path, ok := strings.Cut(pattern, " "); ok {
		return path
	}
	return pattern
}
