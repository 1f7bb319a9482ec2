package notifier

import (
	"context"
)

// NoOpNotifier is a no-operation implementation of the Notifier interface.
// It is used when a delivery channel is disabled to avoid null checks in the code.
// This follows the Null Object pattern.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier instance.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// NotifyDigest does nothing and returns nil immediately.
// This allows a delivery channel to be disabled without changing the code flow.
func (n *NoOpNotifier) NotifyDigest(ctx context.Context, digest *Digest) error {
	// No-op: intentionally does nothing
	return nil
}
