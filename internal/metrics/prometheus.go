// Package metrics declares the Prometheus collectors exported by the journal.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "journal_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// Entry metrics
	EntryOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_entry_operations_total",
			Help: "Total number of entry mutations",
		},
		[]string{"operation", "status"}, // operation: create|update|delete
	)

	// Auth metrics
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_auth_attempts_total",
			Help: "Total number of register and login attempts",
		},
		[]string{"action", "status"}, // status: success|failure
	)

	AuthRateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "journal_auth_rate_limited_total",
			Help: "Total number of auth requests rejected by the rate limiter",
		},
	)

	// Stats cache metrics
	StatsCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_stats_cache_requests_total",
			Help: "Total number of stats cache lookups",
		},
		[]string{"result"}, // result: hit|miss|error
	)

	// Database metrics
	DBQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "journal_db_query_duration_seconds",
			Help:    "Store call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Collectors returns every journal collector.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		HTTPRequests,
		HTTPDuration,
		EntryOperations,
		AuthAttempts,
		AuthRateLimited,
		StatsCache,
		DBQueryDuration,
	}
}

// Init registers all metrics with the default Prometheus registry
func Init() {
	Register(prometheus.DefaultRegisterer)
}

// Register registers all metrics with reg. Collectors already registered are
// left in place so Register can be called more than once.
func Register(reg prometheus.Registerer) {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			panic(err)
		}
	}
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records one served request
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordEntryOperation records an entry mutation
func RecordEntryOperation(operation string, err error) {
	EntryOperations.WithLabelValues(operation, statusLabel(err)).Inc()
}

// RecordAuthAttempt records a register or login attempt
func RecordAuthAttempt(action string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	AuthAttempts.WithLabelValues(action, status).Inc()
}

// RecordStatsCache records a cache lookup result: hit, miss or error
func RecordStatsCache(result string) {
	StatsCache.WithLabelValues(result).Inc()
}

// RecordDBQuery records the latency of a store call
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
