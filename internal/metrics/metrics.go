// Package metrics exposes Prometheus metrics for the ContactDeck backend.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Mutation pipeline metrics
	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contactdeck_mutations_total",
			Help: "Total number of successful contact mutations by operation",
		},
		[]string{"operation"},
	)

	MutationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contactdeck_mutation_failures_total",
			Help: "Total number of rejected contact mutations by error code",
		},
		[]string{"code"},
	)

	// Broadcast metrics
	EventsPublishedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contactdeck_events_published_total",
			Help: "Total number of change events published to the broker",
		},
	)

	SubscribersConnected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "contactdeck_subscribers_connected",
			Help: "Number of websocket subscribers currently connected",
		},
	)

	// API metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contactdeck_api_requests_total",
			Help: "Total number of API requests by method and status",
		},
		[]string{"method", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contactdeck_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

var registered bool

// Register registers all metrics with the default registry. Safe to call
// once per process; tests that never scrape can skip it entirely.
func Register() {
	if registered {
		return
	}
	registered = true

	prometheus.MustRegister(
		MutationsTotal,
		MutationFailuresTotal,
		EventsPublishedTotal,
		SubscribersConnected,
		APIRequestsTotal,
		APIRequestDuration,
	)
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
