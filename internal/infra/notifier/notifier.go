// Package notifier provides abstraction for delivering deadline digests.
// It defines the Notifier interface which allows different delivery mechanisms
// (Resend email, Slack, etc.) to be used interchangeably through dependency injection.
//
// The package includes implementations for the Resend email API and Slack
// Incoming Webhooks, plus a no-op notifier for when a channel is disabled.
package notifier

import (
	"context"
)

// Digest is a fully rendered deadline digest ready for delivery.
// RenderDigest produces one from filtered results; every Notifier
// implementation consumes the same rendered digest.
type Digest struct {
	// Subject is the email subject / message headline
	Subject string

	// HTML is the rich email body
	HTML string

	// Text is the plain-text body, also used by chat channels
	Text string

	// Entries are the structured per-conference lines, nearest deadline first
	Entries []DigestEntry

	// WindowDays is the lookahead window the digest covers
	WindowDays int
}

// DigestEntry is one conference in a rendered digest.
type DigestEntry struct {
	// Name is the conference display name (with year when known)
	Name string

	// Link is the conference homepage URL, may be empty
	Link string

	// Place is the event location, may be empty
	Place string

	// Deadlines are the formatted deadline lines for this conference
	Deadlines []DigestDeadline
}

// DigestDeadline is one formatted deadline row.
type DigestDeadline struct {
	// Label is the humanized deadline kind ("Submission", "Camera Ready")
	Label string

	// Instant is the deadline formatted in UTC
	Instant string

	// Countdown is the relative phrasing ("TODAY", "in 12 days")
	Countdown string
}

// Notifier is an interface for delivering a rendered digest.
// Implementations should handle rate limiting and error logging internally.
type Notifier interface {
	// NotifyDigest delivers one digest.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - digest: The rendered digest to deliver (must not be nil)
	//
	// Returns:
	//   - error: Non-nil if delivery failed
	//
	// Implementations should:
	//   - Generate a unique request ID for tracing
	//   - Apply rate limiting to prevent API abuse
	//   - Log all attempts with the request ID for debugging
	//   - Respect context cancellation
	NotifyDigest(ctx context.Context, digest *Digest) error
}
