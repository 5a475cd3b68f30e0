// Package metrics exposes Prometheus collectors for the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carttally_http_requests_total",
		Help: "HTTP requests by method and status code.",
	}, []string{"method", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "carttally_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	WebsocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "carttally_websocket_clients",
		Help: "Connected live-sync clients.",
	})

	SummariesComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carttally_summaries_computed_total",
		Help: "Order summaries computed.",
	})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
