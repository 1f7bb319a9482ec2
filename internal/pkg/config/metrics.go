package config

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ConfigMetrics provides parameterized Prometheus metrics for configuration
// management. The factory creates one standard metric set per component
// (notifier, updater, worker) so that fallback behavior is observable.
//
// Example usage:
//
//	var Metrics = config.NewConfigMetrics("worker")
//
//	result := config.LoadEnvWithFallback("CRON_SCHEDULE", "0 9 * * 1", config.ValidateCronSchedule)
//	if result.FallbackApplied {
//	    Metrics.RecordFallback("cron_schedule")
//	}
//	Metrics.RecordLoadTimestamp()
type ConfigMetrics struct {
	// LoadTimestamp records the Unix timestamp of the last configuration load.
	LoadTimestamp prometheus.Gauge

	// ValidationErrorsTotal counts validation failures by field.
	ValidationErrorsTotal *prometheus.CounterVec

	// FallbacksTotal counts fallback-to-default operations by field.
	FallbacksTotal *prometheus.CounterVec

	// FallbackActive reports per field whether a fallback is currently active.
	FallbackActive *prometheus.GaugeVec
}

// NewConfigMetrics creates the standard configuration metric set for one
// component. Component names must be unique per process; registering the
// same component twice panics via promauto.
func NewConfigMetrics(componentName string) *ConfigMetrics {
	return &ConfigMetrics{
		LoadTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: componentName + "_config_load_timestamp",
			Help: "Unix timestamp of the last configuration load",
		}),
		ValidationErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: componentName + "_config_validation_errors_total",
			Help: "Total configuration validation failures",
		}, []string{"field"}),
		FallbacksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: componentName + "_config_fallbacks_total",
			Help: "Total configuration fallback operations",
		}, []string{"field"}),
		FallbackActive: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: componentName + "_config_fallback_active",
			Help: "Whether a configuration fallback is active (1) or not (0)",
		}, []string{"field"}),
	}
}

// RecordLoadTimestamp marks the current time as the last configuration load.
func (m *ConfigMetrics) RecordLoadTimestamp() {
	m.LoadTimestamp.Set(float64(time.Now().Unix()))
}

// RecordValidationError counts one validation failure for a field.
func (m *ConfigMetrics) RecordValidationError(field string) {
	m.ValidationErrorsTotal.WithLabelValues(field).Inc()
}

// RecordFallback counts one fallback-to-default operation for a field and
// marks the fallback as active.
func (m *ConfigMetrics) RecordFallback(field string) {
	m.FallbacksTotal.WithLabelValues(field).Inc()
	m.FallbackActive.WithLabelValues(field).Set(1)
}

// SetFallbackActive sets the per-field fallback gauge.
func (m *ConfigMetrics) SetFallbackActive(field string, active bool) {
	v := 0.0
	if active {
		v = 1.0
	}
	m.FallbackActive.WithLabelValues(field).Set(v)
}
