// Package circuitbreaker guards calls to external services with
// github.com/sony/gobreaker. A tripped circuit fails fast instead of
// queueing more work behind an unresponsive host.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds the trip thresholds and recovery timing for one circuit.
type Config struct {
	// Name identifies the circuit in logs and state-change events.
	Name string

	// MaxRequests is how many probe requests the half-open state admits.
	MaxRequests uint32

	// Interval is the closed-state window after which counts reset.
	Interval time.Duration

	// Timeout is how long an open circuit stays open before probing.
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the circuit,
	// e.g. 0.6 trips at a 60% failure rate.
	FailureThreshold float64

	// MinRequests is the sample size required before the ratio is applied.
	MinRequests uint32
}

// DefaultConfig is the general-purpose preset for the given circuit name.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// UpstreamFetchConfig returns configuration optimized for fetching conference
// data files from the upstream repository. The updater hits the same host for
// every file, so a tripped circuit skips the remaining files until the host
// recovers instead of hammering it.
func UpstreamFetchConfig() Config {
	return Config{
		Name:             "upstream-fetch",
		MaxRequests:      5,
		Interval:         60 * time.Second,
		Timeout:          120 * time.Second,
		FailureThreshold: 0.7,
		MinRequests:      10,
	}
}

// NotificationConfig returns configuration optimized for notification
// delivery APIs (Resend, Slack).
func NotificationConfig() Config {
	return Config{
		Name:             "notification",
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// CircuitBreaker wraps gobreaker with ratio-based tripping and state
// transition logging.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New builds a circuit breaker from the given configuration.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
		name:    cfg.Name,
	}
}

// Execute runs fn through the circuit. An open circuit rejects the call
// with gobreaker.ErrOpenState without invoking fn.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

// State reports the circuit's current gobreaker state.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Name returns the circuit name.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// IsOpen reports whether the circuit currently rejects calls.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}
