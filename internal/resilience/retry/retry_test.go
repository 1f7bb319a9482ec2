package retry

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"
)

// fastConfig keeps test backoff delays in the millisecond range.
func fastConfig(maxAttempts int) Config {
	return Config{
		MaxAttempts:    maxAttempts,
		InitialDelay:   10 * time.Millisecond,
		MaxDelay:       100 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

func serverErr() error {
	return &HTTPError{StatusCode: 500, Message: "Server Error"}
}

func TestWithBackoff(t *testing.T) {
	t.Run("immediate success makes one attempt", func(t *testing.T) {
		attempts := 0
		err := WithBackoff(context.Background(), fastConfig(3), func() error {
			attempts++
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if attempts != 1 {
			t.Errorf("attempts = %d, want 1", attempts)
		}
	})

	t.Run("transient failures are retried until success", func(t *testing.T) {
		attempts := 0
		err := WithBackoff(context.Background(), fastConfig(3), func() error {
			attempts++
			if attempts < 3 {
				return serverErr()
			}
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if attempts != 3 {
			t.Errorf("attempts = %d, want 3", attempts)
		}
	})

	t.Run("persistent failure exhausts attempts and wraps last error", func(t *testing.T) {
		attempts := 0
		last := serverErr()
		err := WithBackoff(context.Background(), fastConfig(3), func() error {
			attempts++
			return last
		})
		if err == nil {
			t.Fatal("expected error after exhausted attempts")
		}
		if attempts != 3 {
			t.Errorf("attempts = %d, want 3", attempts)
		}
		if !errors.Is(err, last) {
			t.Errorf("returned error %v does not wrap the last attempt error", err)
		}
	})

	t.Run("non-retryable error aborts after one attempt", func(t *testing.T) {
		attempts := 0
		badRequest := &HTTPError{StatusCode: 400, Message: "Bad Request"}
		err := WithBackoff(context.Background(), fastConfig(3), func() error {
			attempts++
			return badRequest
		})
		if attempts != 1 {
			t.Errorf("attempts = %d, want 1", attempts)
		}
		if !errors.Is(err, badRequest) {
			t.Errorf("err = %v, want the original non-retryable error", err)
		}
	})

	t.Run("cancellation stops waiting between attempts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		attempts := 0
		err := WithBackoff(ctx, fastConfig(5), func() error {
			attempts++
			if attempts == 2 {
				cancel()
			}
			return serverErr()
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
		if attempts != 2 {
			t.Errorf("attempts = %d, want 2", attempts)
		}
	})
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"context canceled", context.Canceled, false},
		{"context deadline exceeded", context.DeadlineExceeded, false},
		{"HTTP 500", &HTTPError{StatusCode: 500, Message: "Internal Server Error"}, true},
		{"HTTP 502", &HTTPError{StatusCode: 502, Message: "Bad Gateway"}, true},
		{"HTTP 503", &HTTPError{StatusCode: 503, Message: "Service Unavailable"}, true},
		{"HTTP 429", &HTTPError{StatusCode: 429, Message: "Too Many Requests"}, true},
		{"HTTP 408", &HTTPError{StatusCode: 408, Message: "Request Timeout"}, true},
		{"HTTP 400", &HTTPError{StatusCode: 400, Message: "Bad Request"}, false},
		{"HTTP 404", &HTTPError{StatusCode: 404, Message: "Not Found"}, false},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"connection reset", syscall.ECONNRESET, true},
		{"connect timeout", syscall.ETIMEDOUT, true},
		{"network unreachable", syscall.ENETUNREACH, true},
		{"generic error", errors.New("some error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestPresetConfigs(t *testing.T) {
	tests := []struct {
		name             string
		cfg              Config
		wantAttempts     int
		wantInitialDelay time.Duration
	}{
		{"default", DefaultConfig(), 3, 1 * time.Second},
		{"upstream fetch", UpstreamFetchConfig(), 5, 1 * time.Second},
		{"notification", NotificationConfig(), 3, 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cfg.MaxAttempts != tt.wantAttempts {
				t.Errorf("MaxAttempts = %d, want %d", tt.cfg.MaxAttempts, tt.wantAttempts)
			}
			if tt.cfg.InitialDelay != tt.wantInitialDelay {
				t.Errorf("InitialDelay = %v, want %v", tt.cfg.InitialDelay, tt.wantInitialDelay)
			}
			if tt.cfg.Multiplier != 2.0 {
				t.Errorf("Multiplier = %f, want 2.0", tt.cfg.Multiplier)
			}
			if tt.cfg.JitterFraction != 0.1 {
				t.Errorf("JitterFraction = %f, want 0.1", tt.cfg.JitterFraction)
			}
		})
	}
}

func TestHTTPErrorMessage(t *testing.T) {
	err := &HTTPError{StatusCode: 500, Message: "Internal Server Error"}
	if got, want := err.Error(), "HTTP 500: Internal Server Error"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestAddJitter(t *testing.T) {
	t.Run("stays within the jitter window and varies", func(t *testing.T) {
		base := 100 * time.Millisecond
		upper := time.Duration(float64(base) * 1.2)

		seen := make(map[time.Duration]bool)
		for i := 0; i < 10; i++ {
			got := addJitter(base, 0.2)
			if got < base || got > upper {
				t.Errorf("addJitter = %v, want within [%v, %v]", got, base, upper)
			}
			seen[got] = true
		}
		if len(seen) < 2 {
			t.Error("expected jitter to vary across calls")
		}
	})

	t.Run("zero fraction leaves the delay unchanged", func(t *testing.T) {
		base := 100 * time.Millisecond
		if got := addJitter(base, 0); got != base {
			t.Errorf("addJitter = %v, want %v", got, base)
		}
	})
}
