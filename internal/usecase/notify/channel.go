// Package notify provides the use case for dispatching a rendered deadline
// digest across multiple delivery channels. It implements fan-out with
// per-channel isolation: one failing channel never blocks or fails the others.
package notify

import (
	"context"

	"deadline-digest/internal/infra/notifier"
)

// Channel represents a digest delivery channel (email, Slack, etc.).
// Each channel implementation handles its own rate limiting, retries, and
// error handling.
//
// Thread Safety:
//   - All methods must be safe for concurrent use by multiple goroutines
//
// Context Handling:
//   - Implementations must respect context cancellation and timeout
type Channel interface {
	// Name returns the human-readable name of the channel (e.g., "email", "slack").
	// This is used for logging and metrics labels.
	//
	// Returns:
	//   - string: Channel identifier (lowercase, alphanumeric)
	Name() string

	// IsEnabled returns true if this channel is enabled via configuration.
	// Disabled channels will be skipped during dispatching.
	//
	// Returns:
	//   - bool: true if channel is enabled and should receive the digest
	IsEnabled() bool

	// Send delivers the digest to this channel.
	//
	// Implementations must:
	//   - Respect context cancellation/timeout
	//   - Apply rate limiting
	//   - Sanitize sensitive data (webhook URLs, API keys) in error messages
	//
	// Parameters:
	//   - ctx: Context with timeout
	//   - digest: The rendered digest (must not be nil)
	//
	// Returns:
	//   - error: Non-nil if delivery failed
	//     - ErrChannelDisabled: If Send() called on disabled channel
	//     - ErrInvalidDigest: If digest is nil
	//     - Network/API errors: Wrapped with context
	Send(ctx context.Context, digest *notifier.Digest) error
}
