// Package metrics holds the Prometheus collectors of the order ledger.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orderledger"

// Metrics holds the collectors of one process. It implements
// commands.AddressUpdateObserver.
type Metrics struct {
	Requests       *prometheus.CounterVec
	LatencyMS      *prometheus.HistogramVec
	AddressUpdates *prometheus.CounterVec
	gatherer       prometheus.Gatherer
}

// New creates the collectors and registers them with reg. A nil reg gets a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	addressUpdates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "address_updates_total",
		Help:      "Shipping address updates by outcome.",
	}, []string{"outcome"})

	reg.MustRegister(requests, latency, addressUpdates)

	return &Metrics{
		Requests:       requests,
		LatencyMS:      latency,
		AddressUpdates: addressUpdates,
		gatherer:       reg,
	}
}

// ObserveRequest records one finished HTTP request under its route template.
func (m *Metrics) ObserveRequest(handler string, status int, elapsed time.Duration) {
	m.Requests.WithLabelValues(handler, strconv.Itoa(status)).Inc()
	m.LatencyMS.WithLabelValues(handler).Observe(float64(elapsed.Milliseconds()))
}

// ObserveAddressUpdate counts one finished address update.
func (m *Metrics) ObserveAddressUpdate(outcome string) {
	m.AddressUpdates.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
