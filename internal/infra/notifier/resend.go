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

// resendDefaultBaseURL is the production Resend API endpoint.
const resendDefaultBaseURL = "https://api.resend.com"

// ResendConfig contains configuration for email delivery via the Resend API.
type ResendConfig struct {
	// Enabled indicates whether email delivery is enabled
	Enabled bool

	// APIKey is the Resend API key (bearer token)
	APIKey string

	// FromName is the display name on the From header
	FromName string

	// FromEmail is the sender address (must belong to a verified domain)
	FromEmail string

	// ToEmail is the recipient address
	ToEmail string

	// BaseURL overrides the API endpoint, used in tests. Empty means production.
	BaseURL string

	// Timeout is the HTTP request timeout for Resend API calls
	Timeout time.Duration
}

// ResendNotifier sends the digest as a transactional email via the Resend API.
type ResendNotifier struct {
	config      ResendConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewResendNotifier creates a new ResendNotifier with the specified configuration.
//
// The notifier is initialized with:
//   - HTTP client with configured timeout
//   - Rate limiter set to 2 requests/second with burst of 2
//     (Resend API limit: 2 requests per second)
//
// Parameters:
//   - config: Resend configuration including API key and addresses
//
// Returns:
//   - *ResendNotifier: Configured Resend notifier instance
func NewResendNotifier(config ResendConfig) *ResendNotifier {
	if config.BaseURL == "" {
		config.BaseURL = resendDefaultBaseURL
	}
	return &ResendNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(2.0, 2), // 2 req/s, burst of 2
	}
}

// resendEmailRequest is the JSON payload for POST /emails.
type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

// resendEmailResponse is the success response from POST /emails.
type resendEmailResponse struct {
	ID string `json:"id"`
}

// sendEmailRequest sends one email through the Resend API.
//
// Returns:
//   - nil: Request succeeded (2xx with email id)
//   - error: Request failed (non-2xx status or network error)
//
// Error types:
//   - 429: Rate limit error (contains retry_after duration)
//   - 4xx (non-429): Client error (bad API key, unverified domain, bad address)
//   - 5xx: Server error
//   - Network error: Connection/timeout error
func (r *ResendNotifier) sendEmailRequest(ctx context.Context, digest *Digest) (string, error) {
	payload := resendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", r.config.FromName, r.config.FromEmail),
		To:      []string{r.config.ToEmail},
		Subject: digest.Subject,
		HTML:    digest.HTML,
		Text:    digest.Text,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.config.BaseURL+"/emails", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.config.APIKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var result resendEmailResponse
		_ = json.Unmarshal(body, &result)
		return result.ID, nil
	}

	// Rate limit error (429)
	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := extractRetryAfter(resp, body)
		return "", &RateLimitError{
			Message:    "Resend rate limit exceeded",
			RetryAfter: retryAfter,
		}
	}

	// Client error (4xx): bad key, unverified sender domain, invalid address.
	// The body is not logged verbatim upstream; keep it here where the API
	// key never appears.
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return "", &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Resend API client error: %s", truncateText(string(body), 500, "...")),
		}
	}

	// Server error (5xx)
	if resp.StatusCode >= 500 {
		return "", &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Resend API server error: %s", truncateText(string(body), 500, "...")),
		}
	}

	return "", fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}

// NotifyDigest sends the digest email.
// This method implements the Notifier interface.
//
// Delivery is a single synchronous attempt: the digest is regenerated on the
// next scheduled run anyway, so a failed send is logged and surfaced rather
// than retried against a possibly rate-limited API.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - digest: The rendered digest to deliver (must not be nil)
//
// Returns:
//   - error: Non-nil if the send failed
func (r *ResendNotifier) NotifyDigest(ctx context.Context, digest *Digest) error {
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	slog.Info("Starting email digest delivery",
		slog.String("request_id", requestID),
		slog.String("to", r.config.ToEmail),
		slog.Int("conferences", len(digest.Entries)))

	// Apply rate limiting
	if err := r.rateLimiter.Wait(ctx); err != nil {
		slog.Error("Rate limiter error",
			slog.String("request_id", requestID),
			slog.Any("error", err))
		return fmt.Errorf("rate limiter error: %w", err)
	}

	emailID, err := r.sendEmailRequest(ctx, digest)
	if err != nil {
		slog.Error("Email digest delivery failed",
			slog.String("request_id", requestID),
			slog.String("to", r.config.ToEmail),
			slog.Any("error", err))
		return fmt.Errorf("send digest email: %w", err)
	}

	slog.Info("Email digest delivered",
		slog.String("request_id", requestID),
		slog.String("email_id", emailID),
		slog.String("to", r.config.ToEmail))
	return nil
}
