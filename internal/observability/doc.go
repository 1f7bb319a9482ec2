// Package observability provides observability infrastructure for the
// deadline digest, including structured logging and Prometheus metrics.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//
// Example usage:
//
//	import (
//	    "deadline-digest/internal/observability/logging"
//	    "deadline-digest/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordConferencesLoaded("ai", 54)
//	}
package observability
