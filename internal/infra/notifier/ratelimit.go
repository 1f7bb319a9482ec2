package notifier

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimiter paces outbound delivery requests with a token bucket so the
// digest sender stays under each provider's published limits (Resend allows
// 2 req/s, Slack webhooks roughly 1 msg/s).
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter returns a limiter admitting requestsPerSecond sustained
// requests with the given burst capacity.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait blocks until a token is available or ctx is done. A context error is
// wrapped so callers can distinguish cancellation from provider errors.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}
