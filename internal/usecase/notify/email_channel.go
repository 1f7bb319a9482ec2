package notify

import (
	"context"

	"deadline-digest/internal/infra/notifier"
)

// EmailChannel implements the Channel interface for email delivery.
// It wraps the ResendNotifier from the infrastructure layer to provide
// the Channel abstraction for the dispatch use case.
type EmailChannel struct {
	notifier notifier.Notifier
	enabled  bool
}

// NewEmailChannel creates a new email channel with the specified configuration.
//
// If email delivery is disabled (config.Enabled = false), a NoOpNotifier
// is used instead to avoid null checks and ensure the Channel interface
// contract is always satisfied.
//
// Parameters:
//   - config: Resend configuration (API key, addresses, timeout, enabled state)
//
// Returns:
//   - *EmailChannel: Configured email channel instance
func NewEmailChannel(config notifier.ResendConfig) *EmailChannel {
	var n notifier.Notifier
	if config.Enabled {
		n = notifier.NewResendNotifier(config)
	} else {
		n = notifier.NewNoOpNotifier()
	}

	return &EmailChannel{
		notifier: n,
		enabled:  config.Enabled,
	}
}

// Name returns the channel identifier "email".
func (c *EmailChannel) Name() string {
	return "email"
}

// IsEnabled returns whether email delivery is enabled via configuration.
func (c *EmailChannel) IsEnabled() bool {
	return c.enabled
}

// Send delivers the digest email.
//
// This method performs input validation and delegates to the underlying
// ResendNotifier for the actual API request. The notifier handles rate
// limiting (2 req/s), context timeout, and request ID logging.
func (c *EmailChannel) Send(ctx context.Context, digest *notifier.Digest) error {
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
