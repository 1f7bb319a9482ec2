package notifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// contextKey keeps request-scoped values from colliding with other packages.
type contextKey string

const requestIDKey contextKey = "request_id"

// Error types shared by the Resend and Slack clients. The retry loops in
// both clients classify delivery failures through them.

// RateLimitError is a 429 from a delivery API, with the wait the API asked for.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string // Optional custom message
}

func (e *RateLimitError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (retry after %v)", e.Message, e.RetryAfter)
	}
	return fmt.Sprintf("rate limit exceeded (retry after %v)", e.RetryAfter)
}

// ClientError is a 4xx from a delivery API other than 429; retrying the
// same payload cannot succeed.
type ClientError struct {
	StatusCode int
	Message    string
}

func (e *ClientError) Error() string {
	return e.Message
}

// ServerError is a 5xx from a delivery API.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// is429Error extracts the RateLimitError from err, when there is one.
func is429Error(err error) (*RateLimitError, bool) {
	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return rateLimitErr, true
	}
	return nil, false
}

// isRetryableError reports whether a delivery failure is worth another
// attempt: server errors and anything unclassified (network trouble) are,
// client errors are not. Rate limits take the is429Error path instead.
func isRetryableError(err error) bool {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return true
	}

	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return false
	}

	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return false
	}

	return true
}

// retryAfterBody is the subset of a 429 response body carrying a retry hint.
type retryAfterBody struct {
	RetryAfter float64 `json:"retry_after"`
}

// extractRetryAfter extracts the retry delay from a 429 response.
// It prefers a retry_after field in the JSON body, then the Retry-After
// header (in seconds), and defaults to 5 seconds.
func extractRetryAfter(resp *http.Response, body []byte) time.Duration {
	var hint retryAfterBody
	if err := json.Unmarshal(body, &hint); err == nil && hint.RetryAfter > 0 {
		return time.Duration(hint.RetryAfter * float64(time.Second))
	}

	if retryAfterHeader := resp.Header.Get("Retry-After"); retryAfterHeader != "" {
		if seconds, err := strconv.Atoi(retryAfterHeader); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}

	return 5 * time.Second
}

// truncateText caps text at maxLength bytes, ending with suffix when cut.
// Slack rejects blocks over its per-field limits, and error logs do not
// need whole response bodies.
func truncateText(text string, maxLength int, suffix string) string {
	if len(text) <= maxLength {
		return text
	}

	truncateAt := maxLength - len(suffix)
	if truncateAt < 0 {
		truncateAt = 0
	}

	return text[:truncateAt] + suffix
}
