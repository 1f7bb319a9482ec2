package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SlackConfig contains configuration for Slack webhook notifications.
type SlackConfig struct {
	// Enabled indicates whether Slack notifications are enabled
	Enabled bool

	// WebhookURL is the Slack Incoming Webhook URL (includes authentication token)
	WebhookURL string

	// Timeout is the HTTP request timeout for Slack API calls
	Timeout time.Duration
}

// SlackNotifier posts the deadline digest to Slack via Incoming Webhook.
type SlackNotifier struct {
	config      SlackConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewSlackNotifier creates a new SlackNotifier with the specified configuration.
//
// The notifier is initialized with:
//   - HTTP client with configured timeout
//   - Rate limiter set to 1 request/second with burst of 1
//     (Slack Webhook limit: 1 message per second)
//
// Parameters:
//   - config: Slack configuration including webhook URL and timeout
//
// Returns:
//   - *SlackNotifier: Configured Slack notifier instance
func NewSlackNotifier(config SlackConfig) *SlackNotifier {
	return &SlackNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(1.0, 1), // 1 req/s, burst of 1
	}
}

// SlackWebhookPayload represents the JSON payload sent to Slack webhook using Block Kit.
type SlackWebhookPayload struct {
	Text   string       `json:"text"`   // Fallback text (required)
	Blocks []SlackBlock `json:"blocks"` // Rich formatting blocks
}

// SlackBlock represents a Slack Block Kit block.
type SlackBlock struct {
	Type     string            `json:"type"`               // "header", "section", "context", "divider"
	Text     *SlackTextObject  `json:"text,omitempty"`     // Text content (for header/section)
	Elements []SlackTextObject `json:"elements,omitempty"` // Elements (for context)
}

// SlackTextObject represents a text object in Slack Block Kit.
type SlackTextObject struct {
	Type string `json:"type"` // "mrkdwn" or "plain_text"
	Text string `json:"text"` // Actual text content
}

const (
	// Slack Block Kit limits
	maxSectionTextLength = 3000
	maxFallbackLength    = 150
	maxDigestBlocks      = 48 // 50 block hard limit, minus header and context

	// Truncation suffix
	slackTruncationSuffix = "..."
)

// buildBlockKitPayload creates a Slack webhook payload from a rendered digest.
//
// The payload includes:
//   - Text: Fallback text for notifications (the digest subject)
//   - Header block: "Upcoming Conference Deadlines"
//   - One section block per conference: linked name + deadline lines
//   - Context block: lookahead window
//
// Conferences beyond the Block Kit block limit are folded into the context
// line rather than dropped silently.
func (s *SlackNotifier) buildBlockKitPayload(digest *Digest) SlackWebhookPayload {
	fallbackText := truncateText(digest.Subject, maxFallbackLength, slackTruncationSuffix)

	blocks := []SlackBlock{{
		Type: "header",
		Text: &SlackTextObject{
			Type: "plain_text",
			Text: "Upcoming Conference Deadlines",
		},
	}}

	shown := len(digest.Entries)
	if shown > maxDigestBlocks {
		shown = maxDigestBlocks
	}

	for _, entry := range digest.Entries[:shown] {
		name := entry.Name
		if entry.Link != "" {
			name = fmt.Sprintf("<%s|%s>", entry.Link, entry.Name)
		}

		sectionText := fmt.Sprintf("*%s*", name)
		if entry.Place != "" {
			sectionText += fmt.Sprintf("  _%s_", entry.Place)
		}
		for _, dl := range entry.Deadlines {
			sectionText += fmt.Sprintf("\n• %s: %s (%s)", dl.Label, dl.Instant, dl.Countdown)
		}
		sectionText = truncateText(sectionText, maxSectionTextLength, slackTruncationSuffix)

		blocks = append(blocks, SlackBlock{
			Type: "section",
			Text: &SlackTextObject{
				Type: "mrkdwn",
				Text: sectionText,
			},
		})
	}

	contextText := fmt.Sprintf("Next %d days • times in UTC", digest.WindowDays)
	if hidden := len(digest.Entries) - shown; hidden > 0 {
		contextText += fmt.Sprintf(" • %d more not shown", hidden)
	}

	blocks = append(blocks, SlackBlock{
		Type: "context",
		Elements: []SlackTextObject{
			{
				Type: "mrkdwn",
				Text: contextText,
			},
		},
	})

	return SlackWebhookPayload{
		Text:   fallbackText,
		Blocks: blocks,
	}
}

// sendWebhookRequest sends a Slack webhook request carrying the digest.
//
// Returns:
//   - nil: Request succeeded (200 OK with "ok" response)
//   - error: Request failed (non-2xx status or network error)
//
// Error types:
//   - 429: Rate limit error (retryable, contains retry_after duration)
//   - 4xx (non-429): Client error (non-retryable)
//   - 5xx: Server error (retryable)
//   - Network error: Connection/timeout error (retryable)
func (s *SlackNotifier) sendWebhookRequest(ctx context.Context, digest *Digest) error {
	payload := s.buildBlockKitPayload(digest)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.WebhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Read response body for error messages
	body, _ := io.ReadAll(resp.Body)

	// Success (Slack returns "ok" as plain text on success)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// Rate limit error (429)
	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := extractRetryAfter(resp, body)
		return &RateLimitError{
			Message:    "Slack rate limit exceeded",
			RetryAfter: retryAfter,
		}
	}

	// Client error (4xx, non-retryable)
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Slack API client error: %s", string(body)),
		}
	}

	// Server error (5xx, retryable)
	if resp.StatusCode >= 500 {
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Slack API server error: %s", string(body)),
		}
	}

	return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}

// sendWebhookRequestWithRetry sends a Slack webhook request with retry logic.
//
// Retry strategy:
//   - Max attempts: 2
//   - Base delay: 5 seconds
//   - 429 errors: Use retry_after from Slack response (or Retry-After header)
//   - Server errors (5xx): Exponential backoff (5s, 10s)
//   - Client errors (4xx): No retry, fail immediately
//
// All attempts are logged with request_id for tracing.
func (s *SlackNotifier) sendWebhookRequestWithRetry(ctx context.Context, digest *Digest) error {
	const (
		maxAttempts = 2
		baseDelay   = 5 * time.Second
	)

	requestID, _ := ctx.Value(requestIDKey).(string)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := s.sendWebhookRequest(ctx, digest)

		// Success
		if err == nil {
			slog.Info("Slack digest delivered",
				slog.String("request_id", requestID),
				slog.Int("conferences", len(digest.Entries)),
				slog.Int("attempt", attempt))
			return nil
		}

		lastErr = err

		// Handle rate limit error (429)
		if rateLimitErr, ok := is429Error(err); ok {
			slog.Warn("Slack rate limit hit, backing off",
				slog.String("request_id", requestID),
				slog.Duration("retry_after", rateLimitErr.RetryAfter),
				slog.Int("attempt", attempt))

			// Sleep for retry_after duration
			select {
			case <-time.After(rateLimitErr.RetryAfter):
				continue
			case <-ctx.Done():
				return fmt.Errorf("context canceled during rate limit backoff: %w", ctx.Err())
			}
		}

		// Handle non-retryable errors (4xx client errors)
		if !isRetryableError(err) {
			slog.Error("Slack digest delivery failed with non-retryable error",
				slog.String("request_id", requestID),
				slog.Any("error", err),
				slog.Int("attempt", attempt))
			return err
		}

		// Retry on retryable errors (5xx server errors, network errors)
		if attempt < maxAttempts {
			delay := baseDelay * time.Duration(attempt)
			slog.Warn("Slack API request failed, retrying",
				slog.String("request_id", requestID),
				slog.Any("error", err),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay))

			select {
			case <-time.After(delay):
				continue
			case <-ctx.Done():
				return fmt.Errorf("context canceled during retry backoff: %w", ctx.Err())
			}
		}
	}

	// All retries exhausted
	slog.Error("Slack digest delivery failed after all retries",
		slog.String("request_id", requestID),
		slog.Any("error", lastErr),
		slog.Int("max_attempts", maxAttempts))

	return fmt.Errorf("slack notification failed after %d attempts: %w", maxAttempts, lastErr)
}

// NotifyDigest posts the digest to Slack.
// This method implements the Notifier interface.
//
// It performs the following steps:
//  1. Generate unique request_id for tracing
//  2. Add request_id to context
//  3. Apply rate limiting to prevent API abuse (1 req/s, burst of 1)
//  4. Send webhook request with retry logic
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - digest: The rendered digest to deliver (must not be nil)
//
// Returns:
//   - error: Non-nil if delivery failed after all retry attempts or rate limiting failed
func (s *SlackNotifier) NotifyDigest(ctx context.Context, digest *Digest) error {
	// Generate unique request ID for tracing
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	slog.Info("Starting Slack digest delivery",
		slog.String("request_id", requestID),
		slog.Int("conferences", len(digest.Entries)))

	// Apply rate limiting
	if err := s.rateLimiter.Wait(ctx); err != nil {
		slog.Error("Rate limiter error",
			slog.String("request_id", requestID),
			slog.Any("error", err))
		return fmt.Errorf("rate limiter error: %w", err)
	}

	// Send webhook request with retry logic
	return s.sendWebhookRequestWithRetry(ctx, digest)
}
