package worker

import (
	"deadline-digest/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics provides Prometheus metrics for the digest worker component.
// It embeds the standard ConfigMetrics for configuration monitoring and adds
// worker-specific metrics for scheduled digest run tracking.
//
// Embedded metrics (from ConfigMetrics):
//   - worker_config_load_timestamp: Unix timestamp of last configuration load
//   - worker_config_validation_errors_total: Total validation errors by field
//   - worker_config_fallbacks_total: Total fallback operations by field
//   - worker_config_fallback_active: 1 if any fallback active, 0 otherwise
//
// Worker-specific metrics:
//   - worker_digest_runs_total: Total digest runs by status (success/failure)
//   - worker_digest_run_duration_seconds: Duration histogram of digest runs
//   - worker_digest_conferences_total: Total conferences included across runs
//   - worker_digest_last_success_timestamp: Unix timestamp of last successful run
//
// Example usage:
//
//	metrics := NewWorkerMetrics()
//	metrics.MustRegister()
//
//	start := time.Now()
//	defer func() {
//	    duration := time.Since(start).Seconds()
//	    metrics.RecordJobRun("success")
//	    metrics.RecordJobDuration(duration)
//	    metrics.RecordConferencesProcessed(12)
//	    metrics.RecordLastSuccess()
//	}()
type WorkerMetrics struct {
	// Embedded configuration metrics
	*config.ConfigMetrics

	// DigestRunsTotal counts the total number of digest runs.
	// Type: Counter
	// Labels: status (success, failure)
	// Usage: Increment after each run based on success/failure
	DigestRunsTotal *prometheus.CounterVec

	// DigestRunDurationSeconds measures the duration of a digest run.
	// Type: Histogram
	// Labels: none
	// Buckets: 0.1s, 0.5s, 1s, 5s, 15s, 60s, 300s (digest runs are short)
	// Usage: Observe duration at the end of each run
	DigestRunDurationSeconds prometheus.Histogram

	// DigestConferencesTotal counts the conferences included in digests.
	// Type: Counter
	// Labels: none
	// Usage: Add the number of upcoming conferences after each successful run
	DigestConferencesTotal prometheus.Counter

	// DigestLastSuccessTimestamp records the Unix timestamp of the last successful run.
	// Type: Gauge
	// Labels: none
	// Usage: Set to current time when a run completes successfully
	DigestLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates a new WorkerMetrics instance with all metrics initialized.
// Metrics are created but not registered with Prometheus. Call MustRegister() to register.
//
// Returns:
//   - *WorkerMetrics: Initialized metrics ready for registration
//
// Example:
//
//	metrics := NewWorkerMetrics()
//	metrics.MustRegister()  // Register with Prometheus
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		DigestRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_digest_runs_total",
			Help: "Total number of digest runs by status (success/failure)",
		}, []string{"status"}),

		DigestRunDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_digest_run_duration_seconds",
			Help:    "Duration of digest run execution in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300},
		}),

		DigestConferencesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_digest_conferences_total",
			Help: "Total number of conferences included across all digest runs",
		}),

		DigestLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_digest_last_success_timestamp",
			Help: "Unix timestamp of the last successful digest run",
		}),
	}
}

// MustRegister is a no-op method for API compatibility.
// Metrics are automatically registered via promauto when created in NewWorkerMetrics.
//
// This method exists to maintain consistency with the expected metrics initialization pattern:
//
//	metrics := NewWorkerMetrics()
//	metrics.MustRegister()
//
// Even though registration happens automatically, this explicit call makes the
// initialization intent clear and maintains compatibility with future changes.
func (m *WorkerMetrics) MustRegister() {
	// No-op: metrics are auto-registered via promauto
}

// RecordJobRun increments the digest run counter for the given status.
// Status should be either "success" or "failure".
//
// Parameters:
//   - status: Run status ("success" or "failure")
//
// Example:
//
//	if err := runDigest(); err != nil {
//	    metrics.RecordJobRun("failure")
//	} else {
//	    metrics.RecordJobRun("success")
//	}
func (m *WorkerMetrics) RecordJobRun(status string) {
	m.DigestRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes the duration of a digest run.
// Duration should be in seconds.
//
// Parameters:
//   - seconds: Run duration in seconds
func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.DigestRunDurationSeconds.Observe(seconds)
}

// RecordConferencesProcessed adds the number of upcoming conferences included
// in a digest to the total counter.
//
// Parameters:
//   - count: Number of conferences in this digest run
func (m *WorkerMetrics) RecordConferencesProcessed(count int) {
	m.DigestConferencesTotal.Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful run completion.
//
// Example:
//
//	if err := runDigest(); err == nil {
//	    metrics.RecordLastSuccess()
//	}
func (m *WorkerMetrics) RecordLastSuccess() {
	m.DigestLastSuccessTimestamp.SetToCurrentTime()
}
