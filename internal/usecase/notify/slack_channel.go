package notify

import (
	"context"

	"deadline-digest/internal/infra/notifier"
)

// SlackChannel implements the Channel interface for Slack delivery.
// It wraps the SlackNotifier from the infrastructure layer to provide
// the Channel abstraction for the dispatch use case.
type SlackChannel struct {
	notifier notifier.Notifier
	enabled  bool
}

// NewSlackChannel creates a new Slack channel with the specified configuration.
//
// If Slack delivery is disabled (config.Enabled = false), a NoOpNotifier
// is used instead to avoid null checks and ensure the Channel interface
// contract is always satisfied.
//
// Parameters:
//   - config: Slack configuration (webhook URL, timeout, enabled state)
//
// Returns:
//   - *SlackChannel: Configured Slack channel instance
func NewSlackChannel(config notifier.SlackConfig) *SlackChannel {
	var n notifier.Notifier
	if config.Enabled {
		n = notifier.NewSlackNotifier(config)
	} else {
		n = notifier.NewNoOpNotifier()
	}

	return &SlackChannel{
		notifier: n,
		enabled:  config.Enabled,
	}
}

// Name returns the channel identifier "slack".
func (c *SlackChannel) Name() string {
	return "slack"
}

// IsEnabled returns whether Slack delivery is enabled via configuration.
func (c *SlackChannel) IsEnabled() bool {
	return c.enabled
}

// Send posts the digest to Slack.
//
// This method performs input validation and delegates to the underlying
// SlackNotifier for the actual webhook request. The notifier handles:
//   - Rate limiting (1 req/s with burst of 1)
//   - Retry logic (max 2 attempts with exponential backoff)
//   - Context timeout and cancellation
//   - Request ID generation and logging
func (c *SlackChannel) Send(ctx context.Context, digest *notifier.Digest) error {
	// Validate that channel is enabled
	if !c.enabled {
		return ErrChannelDisabled
	}

	// Validate digest
	if digest == nil {
		return ErrInvalidDigest
	}

	// Delegate to underlying notifier
	return c.notifier.NotifyDigest(ctx, digest)
}
