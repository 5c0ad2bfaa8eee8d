// Package metrics defines the Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quoteflow"

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

// NewServerMetrics creates and registers the HTTP collectors. Requests are labelled by
// route template, not by raw path, to keep label cardinality bounded.
func NewServerMetrics(registerer prometheus.Registerer) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"route", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route", "method"})

	registerer.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

type RelayMetrics struct {
	Published prometheus.Counter
	Failed    prometheus.Counter
}

// NewRelayMetrics creates and registers the outbox relay counters.
func NewRelayMetrics(registerer prometheus.Registerer) *RelayMetrics {
	published := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "outbox",
		Name:      "published_total",
		Help:      "Outbox messages delivered to the broker.",
	})
	failed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "outbox",
		Name:      "publish_failures_total",
		Help:      "Outbox messages the broker rejected.",
	})

	registerer.MustRegister(published, failed)
	return &RelayMetrics{Published: published, Failed: failed}
}

type PricingMetrics struct {
	Outcomes *prometheus.CounterVec
}

// NewPricingMetrics creates and registers the pricing job counters, labelled by outcome.
func NewPricingMetrics(registerer prometheus.Registerer) *PricingMetrics {
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pricing_job",
		Name:      "orders_total",
		Help:      "Orders processed by the pricing job.",
	}, []string{"action", "outcome"})

	registerer.MustRegister(outcomes)
	return &PricingMetrics{Outcomes: outcomes}
}

func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
