// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - Ingestion metrics (records loaded/skipped, deadlines extracted/dropped)
//   - Digest metrics (run outcomes, durations, notification attempts)
//   - Updater metrics (upstream fetches, data-file persistence)
//
// All metrics are automatically registered with the Prometheus default
// registry and exposed via the /metrics endpoint of the cron-mode worker.
//
// Example usage:
//
//	import "deadline-digest/internal/observability/metrics"
//
//	func loadSource(tag string) {
//	    // ... decode records ...
//	    metrics.RecordConferencesLoaded(tag, loaded)
//	    metrics.RecordDeadlinesDropped(tag, dropped)
//	}
package metrics
