package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mentesana",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentesana",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mentesana",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	dbQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentesana",
			Subsystem: "db",
			Name:      "statements_total",
			Help:      "Statements sent to the database by operation and outcome.",
		},
		[]string{"engine", "op", "outcome"},
	)

	dbDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mentesana",
			Subsystem: "db",
			Name:      "statement_duration_seconds",
			Help:      "Duration of database statements.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
		[]string{"engine", "op"},
	)

	atomicUnits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentesana",
			Subsystem: "db",
			Name:      "atomic_units_total",
			Help:      "Atomic units of work by mode and outcome.",
		},
		[]string{"engine", "mode", "outcome"},
	)

	compensations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentesana",
			Subsystem: "db",
			Name:      "compensations_total",
			Help:      "Compensating statements replayed after a failed unit of work.",
		},
		[]string{"outcome"},
	)

	wsConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mentesana",
			Subsystem: "ws",
			Name:      "connections",
			Help:      "Open websocket connections.",
		},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentesana",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Catalog cache lookups by catalog and result.",
		},
		[]string{"catalog", "result"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		dbQueries,
		dbDuration,
		atomicUnits,
		compensations,
		wsConnections,
		cacheLookups,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RequestStarted tracks an in-flight request; call the returned func when done.
func RequestStarted() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// RecordHTTP records a finished request. route is the matched route pattern,
// never the raw path, to keep label cardinality bounded.
func RecordHTTP(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	method = strings.ToUpper(method)
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordStatement records one database statement.
func RecordStatement(engine, op string, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	dbQueries.WithLabelValues(engine, op, outcome).Inc()
	dbDuration.WithLabelValues(engine, op).Observe(duration.Seconds())
}

// RecordAtomic records the outcome of one unit of work.
func RecordAtomic(engine, mode string, err error) {
	outcome := "committed"
	if err != nil {
		outcome = "rolled_back"
	}
	atomicUnits.WithLabelValues(engine, mode, outcome).Inc()
}

// RecordCompensation records one replayed compensating statement.
func RecordCompensation(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	compensations.WithLabelValues(outcome).Inc()
}

func WSConnected()    { wsConnections.Inc() }
func WSDisconnected() { wsConnections.Dec() }

// RecordCacheLookup records a catalog cache hit or miss.
func RecordCacheLookup(catalog string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(catalog, result).Inc()
}
