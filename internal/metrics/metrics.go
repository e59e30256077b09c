package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobwise",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jobwise",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "route"},
	)

	storeMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobwise",
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Store mutations by store, operation and result.",
		},
		[]string{"store", "op", "result"},
	)

	analyticsCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobwise",
			Subsystem: "analytics",
			Name:      "cache_lookups_total",
			Help:      "Derived statistics cache lookups by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	authAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobwise",
			Subsystem: "auth",
			Name:      "attempts_total",
			Help:      "Authentication and registration attempts by result.",
		},
		[]string{"op", "result"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequests,
		httpDuration,
		storeMutations,
		analyticsCache,
		authAttempts,
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordHTTPRequest(method, route string, status int, dur time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(dur.Seconds())
}

// RecordMutation counts one store operation; err decides the result label.
func RecordMutation(store, op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	storeMutations.WithLabelValues(store, op, result).Inc()
}

func RecordCacheLookup(kind string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	analyticsCache.WithLabelValues(kind, outcome).Inc()
}

func RecordAuthAttempt(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	authAttempts.WithLabelValues(op, result).Inc()
}
