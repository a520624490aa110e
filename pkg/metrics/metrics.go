// Package metrics exposes Prometheus counters for the HTTP surface and the reservation rules.
package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "periodic_tables"

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ruleRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_rejections_total",
			Help:      "Mutations rejected by a business rule, by pipeline and business code.",
		},
		[]string{"pipeline", "code"},
	)

	reservationOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_operations_total",
			Help:      "Successful reservation mutations by operation.",
		},
		[]string{"operation"},
	)
)

// Register registers the collectors with the default registry. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, ruleRejections, reservationOps)
	})
}

// ObserveHTTP records one finished request.
func ObserveHTTP(method, route string, status int, seconds float64) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

// IncRejection counts a business rule failure.
func IncRejection(pipeline string, code int) {
	ruleRejections.WithLabelValues(pipeline, strconv.Itoa(code)).Inc()
}

// IncOperation counts a successful mutation.
func IncOperation(operation string) {
	reservationOps.WithLabelValues(operation).Inc()
}
