// Package resilience groups the fault tolerance helpers shared by the
// updater's upstream fetches and the notifier's delivery clients.
//
// Two subpackages cover the two failure modes these clients see:
//
//   - retry wraps a single call with exponential backoff and jitter for
//     transient errors (timeouts, connection resets, HTTP 5xx and 429).
//   - circuitbreaker stops a run from hammering a host that keeps
//     failing; once tripped, remaining calls fail fast until the host
//     recovers.
//
// Both carry presets tuned per caller: UpstreamFetchConfig for the data
// file refresh, NotificationConfig for email and Slack delivery.
//
//	cfg := retry.UpstreamFetchConfig()
//	err := retry.WithBackoff(ctx, cfg, func() error {
//	    return fetchDataFile(ctx, name)
//	})
package resilience
