// Package metrics exposes store and upstream-fetch instrumentation. A nil *Metrics is
// valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

type Metrics struct {
	actions       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	discarded     *prometheus.CounterVec
}

// New registers the collectors on reg. Pass a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_dispatched_total",
			Help:      "Actions applied to the store, by action type.",
		}, []string{"type"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Upstream fetch latency by operation and outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
		discarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_settlements_total",
			Help:      "Fetch settlements dropped because a newer request superseded them.",
		}, []string{"type"}),
	}
	reg.MustRegister(m.actions, m.fetchDuration, m.discarded)
	return m
}

func (m *Metrics) ActionDispatched(actionType string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(actionType).Inc()
}

func (m *Metrics) StaleSettlement(actionType string) {
	if m == nil {
		return
	}
	m.discarded.WithLabelValues(actionType).Inc()
}

// ObserveFetch records the latency of one upstream operation started at start.
func (m *Metrics) ObserveFetch(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.fetchDuration.WithLabelValues(operation, outcome).Observe(time.Since(start).Seconds())
}
