package notify

import "errors"

var (
	// ErrChannelDisabled indicates that Send() was called on a disabled channel.
	ErrChannelDisabled = errors.New("channel is disabled")

	// ErrInvalidDigest indicates that the digest is nil.
	ErrInvalidDigest = errors.New("invalid digest")

	// ErrNoEnabledChannels indicates that a digest had nowhere to go:
	// every configured channel was disabled.
	ErrNoEnabledChannels = errors.New("no delivery channels enabled")
)
