// Package metrics provides Prometheus metrics for outbound service calls and
// service-name resolution.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for outbound calls.
const (
	OutcomeSuccess = "success"
)

// Metrics holds the outbound call metrics shared by the downstream clients.
type Metrics struct {
	OutboundRequestsTotal   *prometheus.CounterVec   // by service and outcome (success or error category)
	OutboundRequestDuration *prometheus.HistogramVec // by service
	ResolutionsTotal        *prometheus.CounterVec   // by service and result (resolved, empty, error)
	ResolvedInstances       *prometheus.GaugeVec     // instances returned by the last resolution, by service
}

// New creates a Metrics instance registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OutboundRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "accounts_outbound_requests_total",
			Help: "Total outbound requests to downstream services by outcome",
		}, []string{"service", "outcome"}),

		OutboundRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "accounts_outbound_request_duration_seconds",
			Help:    "Duration of outbound requests to downstream services",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"service"}),

		ResolutionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "accounts_discovery_resolutions_total",
			Help: "Total service-name resolutions by result",
		}, []string{"service", "result"}),

		ResolvedInstances: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "accounts_discovery_resolved_instances",
			Help: "Number of live instances returned by the last resolution",
		}, []string{"service"}),
	}
}

// ObserveOutbound records one finished outbound call.
func (m *Metrics) ObserveOutbound(service, outcome string, durationSeconds float64) {
	m.OutboundRequestsTotal.WithLabelValues(service, outcome).Inc()
	m.OutboundRequestDuration.WithLabelValues(service).Observe(durationSeconds)
}

// ObserveResolution records the result of resolving a logical service name.
func (m *Metrics) ObserveResolution(service, result string, instances int) {
	m.ResolutionsTotal.WithLabelValues(service, result).Inc()
	m.ResolvedInstances.WithLabelValues(service).Set(float64(instances))
}
