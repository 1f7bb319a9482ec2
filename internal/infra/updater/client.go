package updater

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"deadline-digest/internal/observability/metrics"
	"deadline-digest/internal/resilience/circuitbreaker"
	"deadline-digest/internal/resilience/retry"
)

// maxResponseBytes caps one upstream response. The full security list is
// well under 1 MB; anything bigger is not conference data.
const maxResponseBytes = 8 << 20

// Client fetches raw YAML documents from the upstream repositories.
// Every request goes through a shared rate limiter, a circuit breaker and
// retry with exponential backoff; all upstream files sit on the same host,
// so one set of protections covers both sources.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *circuitbreaker.CircuitBreaker
	retryCfg   retry.Config
	logger     *slog.Logger
}

// NewClient creates an upstream fetch client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		breaker:  circuitbreaker.New(circuitbreaker.UpstreamFetchConfig()),
		retryCfg: retry.UpstreamFetchConfig(),
		logger:   logger,
	}
}

// Fetch downloads one URL and returns the raw body.
//
// The request is paced by the rate limiter, guarded by the circuit breaker
// and retried on transient failures. A tripped breaker fails fast without
// touching the network.
func (c *Client) Fetch(ctx context.Context, source, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	var body []byte

	err := retry.WithBackoff(ctx, c.retryCfg, func() error {
		result, execErr := c.breaker.Execute(func() (interface{}, error) {
			return c.doRequest(ctx, url)
		})
		if execErr != nil {
			return execErr
		}
		body = result.([]byte)
		return nil
	})

	duration := time.Since(start)
	if err != nil {
		metrics.RecordUpstreamFetch(source, duration, false)
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	metrics.RecordUpstreamFetch(source, duration, true)
	c.logger.Debug("fetched upstream file",
		slog.String("source", source),
		slog.String("url", url),
		slog.Int("bytes", len(body)),
		slog.Duration("duration", duration))
	return body, nil
}

// doRequest performs one HTTP GET. Non-2xx statuses become retry.HTTPError
// so the retry layer can distinguish transient from permanent failures.
func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("GET %s", url),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
