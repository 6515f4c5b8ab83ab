// Package metrics provides Prometheus metrics for the fplpulse report pipeline.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes used as the status label of runs_total.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Run outcome
	runs             *prometheus.CounterVec
	lastSuccessUnix  prometheus.Gauge
	runDuration      prometheus.Histogram
	stageDuration    *prometheus.HistogramVec
	errorsByStage    *prometheus.CounterVec
	fetchStatusCodes *prometheus.CounterVec

	// Data volume
	playersFetched  prometheus.Gauge
	teamsFetched    prometheus.Gauge
	playersEnriched *prometheus.GaugeVec
	rankedEntries   *prometheus.GaugeVec

	// Output
	reportsWritten *prometheus.CounterVec
	bytesWritten   *prometheus.CounterVec
	historySize    *prometheus.GaugeVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fplpulse",
		subsystem:        "pipeline",
		histogramBuckets: []float64{5, 25, 100, 250, 1000, 2500, 10000, 30000},
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	return m.metricPrefix + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of metric definitions
	reg := m.registry
	if !m.enabled {
		// Disabled managers still hand out working collectors; they are just never exported.
		reg = prometheus.NewRegistry()
	}
	auto := promauto.With(reg)
	labels := prometheus.Labels(m.customLabels)

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("runs_total"),
		Help:        "Total number of report runs by outcome",
		ConstLabels: labels,
	}, []string{"status"})

	m.lastSuccessUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("last_success_unixtime"),
		Help:        "Unix time of the last successful run",
		ConstLabels: labels,
	})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("run_duration_milliseconds"),
		Help:        "Wall time of a whole run in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("stage_duration_milliseconds"),
		Help:        "Duration of each pipeline stage in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"stage"})

	m.errorsByStage = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_total"),
		Help:        "Run-aborting errors by stage and kind",
		ConstLabels: labels,
	}, []string{"stage", "kind"})

	m.fetchStatusCodes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("fetch_responses_total"),
		Help:        "Upstream snapshot responses by HTTP status code",
		ConstLabels: labels,
	}, []string{"status_code"})

	m.playersFetched = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("players_fetched"),
		Help:        "Number of player records in the last snapshot",
		ConstLabels: labels,
	})

	m.teamsFetched = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("teams_fetched"),
		Help:        "Number of team records in the last snapshot",
		ConstLabels: labels,
	})

	m.playersEnriched = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("players_enriched"),
		Help:        "Players that passed the variant inclusion rule",
		ConstLabels: labels,
	}, []string{"variant"})

	m.rankedEntries = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("ranked_entries"),
		Help:        "Entries in each ranked set of the last run",
		ConstLabels: labels,
	}, []string{"variant", "set"})

	m.reportsWritten = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("reports_written_total"),
		Help:        "Report files persisted by format",
		ConstLabels: labels,
	}, []string{"format"})

	m.bytesWritten = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("bytes_written_total"),
		Help:        "Bytes persisted by format",
		ConstLabels: labels,
	}, []string{"format"})

	m.historySize = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("history_entries"),
		Help:        "Entries listed in the history index by extension",
		ConstLabels: labels,
	}, []string{"ext"})
}

// RecordRun increments the run counter for status and, on success, stamps the last success gauge.
func RecordRun(status string, unix int64) {
	globalManager.runs.WithLabelValues(status).Inc()
	if status == StatusSuccess {
		globalManager.lastSuccessUnix.Set(float64(unix))
	}
}

// RecordRunDuration records the total run duration.
func RecordRunDuration(durationMs float64) {
	globalManager.runDuration.Observe(durationMs)
}

// RecordStageDuration records how long a pipeline stage took.
func RecordStageDuration(stage string, durationMs float64) {
	globalManager.stageDuration.WithLabelValues(stage).Observe(durationMs)
}

// RecordError counts a run-aborting error.
func RecordError(stage, kind string) {
	globalManager.errorsByStage.WithLabelValues(stage, kind).Inc()
}

// RecordFetchStatus counts an upstream response status code.
func RecordFetchStatus(statusCode string) {
	globalManager.fetchStatusCodes.WithLabelValues(statusCode).Inc()
}

// UpdateSnapshotSize sets the record counts of the last snapshot.
func UpdateSnapshotSize(players, teams int) {
	globalManager.playersFetched.Set(float64(players))
	globalManager.teamsFetched.Set(float64(teams))
}

// UpdatePlayersEnriched sets the enriched player count for a variant.
func UpdatePlayersEnriched(variant string, count int) {
	globalManager.playersEnriched.WithLabelValues(variant).Set(float64(count))
}

// UpdateRankedEntries sets the size of one ranked set.
func UpdateRankedEntries(variant, set string, count int) {
	globalManager.rankedEntries.WithLabelValues(variant, set).Set(float64(count))
}

// RecordReportWritten counts a persisted report file.
func RecordReportWritten(format string, size int) {
	globalManager.reportsWritten.WithLabelValues(format).Inc()
	globalManager.bytesWritten.WithLabelValues(format).Add(float64(size))
}

// UpdateHistorySize sets the number of entries in an index.
func UpdateHistorySize(ext string, count int) {
	globalManager.historySize.WithLabelValues(ext).Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile exports the registry in the text exposition format to path,
// for the node_exporter textfile collector. The parent directory is created.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}
