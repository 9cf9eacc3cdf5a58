package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the catalog-svc collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "catalog",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "catalog",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	lifecycleTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: "restaurants",
			Name:      "lifecycle_transitions_total",
			Help:      "Committed restaurant lifecycle transitions by event type.",
		},
		[]string{"type"},
	)

	authDenials = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: "auth",
			Name:      "denials_total",
			Help:      "Requests rejected by the authorization gate.",
		},
		[]string{"operation", "reason"},
	)
)

func init() {
	Registry.MustRegister(httpInFlight, httpRequests, httpDuration, lifecycleTransitions, authDenials)
}

func IncrementInFlight() { httpInFlight.Inc() }
func DecrementInFlight() { httpInFlight.Dec() }

func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordLifecycleTransition(eventType string, count int) {
	lifecycleTransitions.WithLabelValues(eventType).Add(float64(count))
}

func RecordAuthDenial(operation, reason string) {
	authDenials.WithLabelValues(operation, reason).Inc()
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
