// Package metrics exposes engine and journal activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/token-guard/internal/engine"
)

const namespace = "token_guard"

// Metrics implements engine.Recorder on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	fetchesTotal    *prometheus.CounterVec
	fetchDuration   *prometheus.HistogramVec
	mutationsTotal  *prometheus.CounterVec
	entries         *prometheus.GaugeVec
	journalFailures prometheus.Counter
}

// New registers the console metrics plus the Go runtime and process
// collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetches_total",
				Help:      "Collection fetches by engine, kind and outcome",
			},
			[]string{"engine", "foreground", "outcome"},
		),
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_duration_seconds",
				Help:      "Collection fetch latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"engine"},
		),
		mutationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mutations_total",
				Help:      "Operator mutations by engine and outcome",
			},
			[]string{"engine", "outcome"},
		),
		entries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "collection_entries",
				Help:      "Entries in the authoritative collection",
			},
			[]string{"engine"},
		),
		journalFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "journal_failures_total",
				Help:      "Journal entries that could not be stored",
			},
		),
	}

	m.registry.MustRegister(
		m.fetchesTotal,
		m.fetchDuration,
		m.mutationsTotal,
		m.entries,
		m.journalFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) FetchObserved(name string, foreground bool, outcome engine.Outcome, elapsed time.Duration) {
	m.fetchesTotal.WithLabelValues(name, strconv.FormatBool(foreground), string(outcome)).Inc()
	if outcome != engine.OutcomeAborted {
		m.fetchDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	}
}

func (m *Metrics) MutationObserved(name string, outcome engine.Outcome) {
	m.mutationsTotal.WithLabelValues(name, string(outcome)).Inc()
}

func (m *Metrics) EntriesObserved(name string, n int) {
	m.entries.WithLabelValues(name).Set(float64(n))
}

// JournalFailed counts a journal write that was dropped.
func (m *Metrics) JournalFailed() {
	m.journalFailures.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

var _ engine.Recorder = (*Metrics)(nil)
