package worker

import (
	"fmt"
	"log/slog"
	"time"

	"deadline-digest/internal/pkg/config"
)

// WorkerConfig holds the configuration for the digest worker component.
// This configuration controls the cron schedule, timezone, lookahead window,
// and other operational parameters for the scheduled digest service.
//
// Configuration sources:
//   - Environment variables (loaded via LoadConfigFromEnv)
//   - Default values (provided by DefaultConfig)
//
// All fields have sensible defaults and validation rules so the worker can
// operate safely even with invalid or missing configuration.
//
// Example usage:
//
//	// Use defaults
//	config := DefaultConfig()
//
//	// Load from environment with fallback
//	config, err := LoadConfigFromEnv(logger, metrics)
//	if err != nil {
//	    // This should never happen with fail-open strategy
//	    log.Fatal("Unexpected configuration error: %v", err)
//	}
type WorkerConfig struct {
	// CronSchedule is the cron expression for digest scheduling.
	// Format: "minute hour day month weekday"
	// Example: "0 9 * * 1" (every Monday at 9:00)
	// Validation: Must be a valid cron expression (5 fields)
	// Default: "0 9 * * 1"
	CronSchedule string

	// Timezone is the IANA timezone name for cron scheduling.
	// Example: "UTC", "Asia/Tokyo", "America/New_York"
	// Validation: Must be a valid IANA timezone name
	// Default: "UTC"
	Timezone string

	// DaysAhead is the lookahead window in days. Deadlines falling within
	// this many days of the run are included in the digest.
	// Range: 1-365
	// Default: 30
	DaysAhead int

	// RunTimeout is the maximum duration for a single digest run.
	// After this timeout, the run is cancelled.
	// Must be positive (> 0)
	// Default: 10 minutes
	RunTimeout time.Duration

	// HealthPort is the port number for the health check HTTP server.
	// Range: 1024-65535 (avoid privileged ports)
	// Default: 9091
	HealthPort int
}

// DefaultConfig returns a WorkerConfig with sensible default values.
// These defaults are optimized for:
//   - Typical usage: Weekly digest on Monday morning
//   - Safety: 10-minute timeout prevents stuck runs
//   - Standard ports: 9091 for health checks (common Prometheus exporter port)
//
// Returns:
//   - WorkerConfig with production-ready default values
//
// Example:
//
//	config := DefaultConfig()
//	config.CronSchedule = "0 9 * * *"  // Customize to run daily
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule: "0 9 * * 1",      // Every Monday at 9:00
		Timezone:     "UTC",            // Deadlines are compared in UTC
		DaysAhead:    30,               // 30-day lookahead window
		RunTimeout:   10 * time.Minute, // 10 minutes
		HealthPort:   9091,             // Standard Prometheus exporter port
	}
}

// Validate checks if the configuration values are valid.
// This method validates each field using the reusable validators from
// internal/pkg/config. If multiple fields are invalid, all errors are
// collected and returned together.
//
// Validation rules:
//   - CronSchedule: Must be a valid cron expression (validated by robfig/cron parser)
//   - Timezone: Must be a valid IANA timezone name (validated by time.LoadLocation)
//   - DaysAhead: Must be between 1 and 365 (inclusive)
//   - RunTimeout: Must be positive (> 0)
//   - HealthPort: Must be between 1024 and 65535 (avoid privileged ports)
//
// Returns:
//   - error: nil if configuration is valid, aggregated error if any validation fails
func (c *WorkerConfig) Validate() error {
	var errors []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errors = append(errors, fmt.Errorf("cron schedule: %w", err))
	}

	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errors = append(errors, fmt.Errorf("timezone: %w", err))
	}

	if err := config.ValidateIntRange(c.DaysAhead, 1, 365); err != nil {
		errors = append(errors, fmt.Errorf("days ahead: %w", err))
	}

	if err := config.ValidatePositiveDuration(c.RunTimeout); err != nil {
		errors = append(errors, fmt.Errorf("run timeout: %w", err))
	}

	if err := config.ValidatePort(c.HealthPort); err != nil {
		errors = append(errors, fmt.Errorf("health port: %w", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation failed: %v", errors)
	}

	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables
// with validation and automatic fallback to default values on failure.
//
// This function implements the fail-open strategy:
//  1. Start with DefaultConfig() as base
//  2. Load each field from environment variables
//  3. Validate each loaded value
//  4. If validation fails: use default value, log warning, increment metrics
//  5. Never return error - always return a valid configuration
//
// Environment variables:
//   - CRON_SCHEDULE: Cron expression (default: "0 9 * * 1")
//   - WORKER_TIMEZONE: IANA timezone name (default: "UTC")
//   - DAYS_AHEAD: Integer 1-365 (default: 30)
//   - RUN_TIMEOUT: Duration string, e.g., "10m" (default: 10 minutes)
//   - WORKER_HEALTH_PORT: Integer 1024-65535 (default: 9091)
//
// Metrics updated:
//   - ValidationErrorsTotal: Incremented for each validation failure
//   - FallbacksTotal: Incremented for each fallback applied
//   - FallbackActive: Set to 1 if any fallback is active, 0 otherwise
//   - LoadTimestamp: Set to current time after successful load
//
// Parameters:
//   - logger: Structured logger for warnings
//   - metrics: Metrics instance for tracking fallbacks
//
// Returns:
//   - *WorkerConfig: Valid configuration (never nil)
//   - error: Always nil (fail-open strategy)
//
// Example:
//
//	logger := slog.Default()
//	metrics := NewWorkerMetrics()
//	config, _ := LoadConfigFromEnv(logger, metrics)
//	// config is always valid and ready to use
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	result := config.LoadEnvWithFallback("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("cron_schedule")
		metrics.RecordFallback("cron_schedule")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "CronSchedule"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("timezone")
		metrics.RecordFallback("timezone")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "Timezone"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvInt("DAYS_AHEAD", cfg.DaysAhead, func(v int) error {
		return config.ValidateIntRange(v, 1, 365)
	})
	cfg.DaysAhead = result.Value.(int)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("days_ahead")
		metrics.RecordFallback("days_ahead")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "DaysAhead"),
				slog.String("warning", warning))
		}
	}

	// Run timeout is bounded to keep a wedged run from blocking the schedule.
	result = config.LoadEnvDuration("RUN_TIMEOUT", cfg.RunTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 1*time.Hour)
	})
	cfg.RunTimeout = result.Value.(time.Duration)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("run_timeout")
		metrics.RecordFallback("run_timeout")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "RunTimeout"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, config.ValidatePort)
	cfg.HealthPort = result.Value.(int)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("health_port")
		metrics.RecordFallback("health_port")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "HealthPort"),
				slog.String("warning", warning))
		}
	}

	metrics.SetFallbackActive("", fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
