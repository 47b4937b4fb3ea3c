package binder

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ankurkotwal/bindchain/binder/chain"
)

// metrics are registered on a registry owned by one server so several
// servers can live in one process
type metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	mappings    *prometheus.CounterVec
	parseErrors prometheus.Counter
	duration    prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bindchain_requests_total",
			Help: "API requests by route and status code.",
		}, []string{"route", "code"}),
		mappings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bindchain_mappings_total",
			Help: "Resolved mappings by source.",
		}, []string{"source"}),
		parseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bindchain_parse_errors_total",
			Help: "Errors reported while parsing uploaded files.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bindchain_resolve_duration_seconds",
			Help:    "Time to parse and resolve one request.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.requests, m.mappings, m.parseErrors, m.duration)
	return m
}

func (m *metrics) observeResolution(result chain.Result, start time.Time) {
	m.duration.Observe(time.Since(start).Seconds())
	m.parseErrors.Add(float64(len(result.Errors)))
	for _, mapping := range result.Mappings {
		m.mappings.WithLabelValues(string(mapping.Source)).Inc()
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
