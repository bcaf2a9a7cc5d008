// Package metrics exposes Prometheus instruments for the lead pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LeadMetrics counts submissions and webhook deliveries.
type LeadMetrics struct {
	submissions     *prometheus.CounterVec
	deliveries      *prometheus.CounterVec
	deliveryLatency prometheus.Histogram
	gatherer        prometheus.Gatherer
}

// New registers the lead instruments on reg. A nil reg uses a fresh registry.
func New(reg *prometheus.Registry) *LeadMetrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &LeadMetrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rootwave",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Lead submissions by variant and final status",
		}, []string{"variant", "status"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rootwave",
			Subsystem: "leads",
			Name:      "webhook_deliveries_total",
			Help:      "Webhook delivery attempts by outcome",
		}, []string{"outcome"}),
		deliveryLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rootwave",
			Subsystem: "leads",
			Name:      "webhook_latency_seconds",
			Help:      "Latency of webhook deliveries",
			Buckets:   prometheus.DefBuckets,
		}),
		gatherer: reg,
	}
	reg.MustRegister(m.submissions, m.deliveries, m.deliveryLatency)
	return m
}

// ObserveSubmission records the final status of a submission.
func (m *LeadMetrics) ObserveSubmission(variant, status string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(variant, status).Inc()
}

// ObserveDelivery records one webhook attempt. Outcome is "ok", "rejected"
// or "failed".
func (m *LeadMetrics) ObserveDelivery(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.deliveries.WithLabelValues(outcome).Inc()
	m.deliveryLatency.Observe(seconds)
}

// Handler serves the registry in the Prometheus text format.
func (m *LeadMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
