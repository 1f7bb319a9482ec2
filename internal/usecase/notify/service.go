package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"deadline-digest/internal/infra/notifier"
	"deadline-digest/internal/observability/logging"
	"deadline-digest/internal/observability/metrics"
)

// sendTimeout bounds one channel delivery, including its internal retries.
const sendTimeout = 60 * time.Second

// Service dispatches a rendered digest to all enabled delivery channels.
type Service interface {
	// Dispatch delivers the digest to every enabled channel concurrently.
	//
	// Channel failures are isolated: each is logged and counted, and the
	// remaining channels still receive the digest. The run only fails when
	// no enabled channel accepted the digest.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - digest: The rendered digest (must not be nil)
	//
	// Returns:
	//   - error: Non-nil when the digest is nil, when zero channels are
	//     enabled (ErrNoEnabledChannels), or when every enabled channel
	//     failed. A rendered digest is never silently dropped.
	Dispatch(ctx context.Context, digest *notifier.Digest) error
}

// service is the concrete implementation of the Service interface.
type service struct {
	channels []Channel
	logger   *slog.Logger
}

// NewService creates a new dispatch service with the given channels.
func NewService(channels []Channel, logger *slog.Logger) Service {
	return &service{
		channels: channels,
		logger:   logger,
	}
}

// Dispatch implements Service.Dispatch.
func (s *service) Dispatch(ctx context.Context, digest *notifier.Digest) error {
	if digest == nil {
		return ErrInvalidDigest
	}

	// Every log entry for this run carries the same run ID.
	logger := logging.WithRunID(s.logger, uuid.New().String())

	enabled := make([]Channel, 0, len(s.channels))
	for _, ch := range s.channels {
		if ch.IsEnabled() {
			enabled = append(enabled, ch)
		}
	}

	if len(enabled) == 0 {
		logger.Error("no delivery channels enabled",
			slog.Int("conferences", len(digest.Entries)))
		return ErrNoEnabledChannels
	}

	logger.Info("dispatching digest",
		slog.Int("conferences", len(digest.Entries)),
		slog.Int("enabled_channels", len(enabled)))

	var delivered atomic.Int64
	g, gctx := errgroup.WithContext(ctx)

	for _, ch := range enabled {
		channel := ch
		g.Go(func() error {
			sendCtx, cancel := context.WithTimeout(gctx, sendTimeout)
			defer cancel()

			start := time.Now()
			err := channel.Send(sendCtx, digest)
			duration := time.Since(start)

			if err != nil {
				metrics.RecordNotificationSent(channel.Name(), false)
				logger.Warn("channel delivery failed",
					slog.String("channel", channel.Name()),
					slog.Duration("send_duration", duration),
					slog.Any("error", err))
				// Failure stays local to this channel
				return nil
			}

			metrics.RecordNotificationSent(channel.Name(), true)
			delivered.Add(1)
			logger.Info("channel delivery succeeded",
				slog.String("channel", channel.Name()),
				slog.Duration("send_duration", duration))
			return nil
		})
	}

	// Goroutines never return errors; Wait only propagates context failure.
	if err := g.Wait(); err != nil {
		return fmt.Errorf("dispatch digest: %w", err)
	}

	if delivered.Load() == 0 {
		return fmt.Errorf("all %d enabled channels failed to deliver digest", len(enabled))
	}
	return nil
}
