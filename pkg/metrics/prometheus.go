// Package metrics provides Prometheus metrics for rota assignment runs.
//
// rota is a batch CLI, so nothing is scraped: the registry is written out in
// the node-exporter textfile format at the end of a run when a path is
// configured.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Slot outcomes used as the "outcome" label.
const (
	OutcomeCommitted = "committed"
	OutcomeSkipped   = "skipped"
	OutcomeEmpty     = "empty"
	OutcomeAborted   = "aborted"
)

// Manager manages all Prometheus metrics for an assignment run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Assignment outcomes
	slotsResolved  *prometheus.CounterVec
	invalidAnswers prometheus.Counter
	datesProcessed prometheus.Counter
	ledgerAppends  prometheus.Counter

	// Ranking
	candidatesRanked *prometheus.HistogramVec

	// Persistence
	checkpointDuration prometheus.Histogram
	checkpointErrors   prometheus.Counter

	// State sizes
	rosterSize    prometheus.Gauge
	ledgerRecords prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Init replaces the global manager with one built from opts on a fresh
// registry, dropping anything recorded so far. Call it before a run starts.
func Init(opts ...Option) *Manager {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(customRegistry))...)
	return globalManager
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rota",
		subsystem:        "assignment",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		enabled:          true,
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.slotsResolved = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "slots_resolved_total",
		Help:        "Slots resolved, by outcome (committed, skipped, empty, aborted)",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.invalidAnswers = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "invalid_answers_total",
		Help:        "Operator answers rejected and re-prompted",
		ConstLabels: m.constLabels,
	})

	m.datesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dates_processed_total",
		Help:        "Meeting dates fully resolved and checkpointed",
		ConstLabels: m.constLabels,
	})

	m.ledgerAppends = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ledger_appends_total",
		Help:        "History records appended to the ledger",
		ConstLabels: m.constLabels,
	})

	m.candidatesRanked = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "candidates_ranked",
		Help:        "Number of candidates returned by a ranking, by fairness group",
		Buckets:     []float64{0, 1, 2, 3, 4, 6, 8, 12},
		ConstLabels: m.constLabels,
	}, []string{"group"})

	m.checkpointDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "checkpoint_duration_milliseconds",
		Help:        "Time spent persisting the ledger after each date",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.checkpointErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "checkpoint_errors_total",
		Help:        "Failed ledger checkpoints",
		ConstLabels: m.constLabels,
	})

	m.rosterSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "roster_size",
		Help:        "People loaded from the roster",
		ConstLabels: m.constLabels,
	})

	m.ledgerRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ledger_records",
		Help:        "Records currently held by the ledger",
		ConstLabels: m.constLabels,
	})
}

// RecordSlot counts a resolved slot under the given outcome.
func (m *Manager) RecordSlot(outcome string) {
	if !m.enabled {
		return
	}
	m.slotsResolved.WithLabelValues(outcome).Inc()
}

// RecordInvalidAnswer counts a rejected operator answer.
func (m *Manager) RecordInvalidAnswer() {
	if !m.enabled {
		return
	}
	m.invalidAnswers.Inc()
}

// RecordDateProcessed counts a checkpointed date.
func (m *Manager) RecordDateProcessed() {
	if !m.enabled {
		return
	}
	m.datesProcessed.Inc()
}

// RecordLedgerAppend counts an appended history record and updates the size gauge.
func (m *Manager) RecordLedgerAppend(total int) {
	if !m.enabled {
		return
	}
	m.ledgerAppends.Inc()
	m.ledgerRecords.Set(float64(total))
}

// RecordCandidatesRanked observes the size of a ranking for a fairness group.
func (m *Manager) RecordCandidatesRanked(group string, n int) {
	if !m.enabled {
		return
	}
	m.candidatesRanked.WithLabelValues(group).Observe(float64(n))
}

// RecordCheckpoint observes a checkpoint duration and its failure, if any.
func (m *Manager) RecordCheckpoint(durationMs float64, err error) {
	if !m.enabled {
		return
	}
	m.checkpointDuration.Observe(durationMs)
	if err != nil {
		m.checkpointErrors.Inc()
	}
}

// UpdateRosterSize sets the roster size gauge.
func (m *Manager) UpdateRosterSize(n int) {
	if !m.enabled {
		return
	}
	m.rosterSize.Set(float64(n))
}

// UpdateLedgerRecords sets the ledger size gauge.
func (m *Manager) UpdateLedgerRecords(n int) {
	if !m.enabled {
		return
	}
	m.ledgerRecords.Set(float64(n))
}

// Global returns the process-wide manager backed by the custom registry.
func Global() *Manager {
	return globalManager
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the custom registry to path in the textfile
// collector format.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, GetRegistry()); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
