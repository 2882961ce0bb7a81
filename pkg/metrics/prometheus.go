// Package metrics provides Prometheus metrics for the points engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Scoring
	computations      *prometheus.CounterVec
	computationErrors *prometheus.CounterVec
	computeLatency    prometheus.Histogram
	seasonSummaries   *prometheus.CounterVec
	duplicatesSkipped prometheus.Counter

	// Batches
	batchJobsProcessed prometheus.Counter
	batchSize          prometheus.Histogram
	inlineFallbacks    prometheus.Counter

	// Queue
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	queueEnqueued prometheus.Counter
	queueRejected *prometheus.CounterVec

	// Workers
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
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
		namespace:        "skipoints",
		subsystem:        "engine",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: buckets}
}

// initializeMetrics creates all the Prometheus metrics on the configured registry.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.computations = auto.NewCounterVec(
		m.counterOpts("computations_total", "Performances scored, by scoring system"),
		[]string{"system"},
	)
	m.computationErrors = auto.NewCounterVec(
		m.counterOpts("computation_errors_total", "Performances rejected, by error kind"),
		[]string{"kind"},
	)
	m.computeLatency = auto.NewHistogram(
		m.histogramOpts("compute_latency_milliseconds", "Latency of a single computation in milliseconds", m.histogramBuckets),
	)
	m.seasonSummaries = auto.NewCounterVec(
		m.counterOpts("season_summaries_total", "Season summaries produced, by scoring system"),
		[]string{"system"},
	)
	m.duplicatesSkipped = auto.NewCounter(
		m.counterOpts("duplicate_competitions_total", "Repeated competitions skipped during season aggregation"),
	)

	m.batchJobsProcessed = auto.NewCounter(
		m.counterOpts("batch_jobs_processed_total", "Batch items computed by the worker pool"),
	)
	m.batchSize = auto.NewHistogram(
		m.histogramOpts("batch_size", "Number of performances per batch", prometheus.ExponentialBuckets(1, 4, 8)),
	)
	m.inlineFallbacks = auto.NewCounter(
		m.counterOpts("inline_fallbacks_total", "Batch items computed inline because the queue was full"),
	)

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Current number of queued batch jobs"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Maximum number of queued batch jobs"))
	m.queueEnqueued = auto.NewCounter(m.counterOpts("queue_enqueued_total", "Batch jobs accepted by the queue"))
	m.queueRejected = auto.NewCounterVec(
		m.counterOpts("queue_rejected_total", "Batch jobs refused by the queue, by reason"),
		[]string{"reason"},
	)

	m.workerCount = auto.NewGauge(m.gaugeOpts("worker_count", "Number of running workers"))
	m.workerProcessingLatency = auto.NewHistogram(
		m.histogramOpts("worker_processing_latency_milliseconds", "Time a worker spends on one job in milliseconds", m.histogramBuckets),
	)
}

// RecordComputation counts a successful computation for a system.
func RecordComputation(system string) {
	globalManager.computations.WithLabelValues(system).Inc()
}

// RecordComputationError counts a rejected computation by error kind.
func RecordComputationError(kind string) {
	globalManager.computationErrors.WithLabelValues(kind).Inc()
}

// RecordComputeLatency records the latency of one computation.
func RecordComputeLatency(latencyMs float64) {
	globalManager.computeLatency.Observe(latencyMs)
}

// RecordSeasonSummary counts a produced season summary.
func RecordSeasonSummary(system string) {
	globalManager.seasonSummaries.WithLabelValues(system).Inc()
}

// RecordDuplicatesSkipped adds skipped repeated competitions.
func RecordDuplicatesSkipped(n int) {
	if n > 0 {
		globalManager.duplicatesSkipped.Add(float64(n))
	}
}

// RecordBatchJobProcessed counts a batch item computed by a worker.
func RecordBatchJobProcessed() {
	globalManager.batchJobsProcessed.Inc()
}

// RecordBatchSize records the size of a batch.
func RecordBatchSize(n int) {
	globalManager.batchSize.Observe(float64(n))
}

// RecordInlineFallback counts a batch item computed on the caller's goroutine.
func RecordInlineFallback() {
	globalManager.inlineFallbacks.Inc()
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue counts an accepted job.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueRejected counts a refused job.
func RecordQueueRejected(reason string) {
	globalManager.queueRejected.WithLabelValues(reason).Inc()
}

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records the time a worker spent on one job.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
