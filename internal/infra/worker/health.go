package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

const (
	probeTimeout    = 5 * time.Second
	shutdownTimeout = 5 * time.Second
)

// HealthServer exposes the digest worker's probe endpoints:
//   - /health: liveness, always 200 while the process serves requests
//   - /health/ready: readiness, 200 once the cron schedule is installed,
//     503 before that and after shutdown begins
//
// The server shuts down gracefully when the passed context is cancelled.
//
// Example usage:
//
//	healthServer := NewHealthServer(":9091", logger)
//	go func() {
//	    if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
//	        logger.Error("health server failed", slog.Any("error", err))
//	    }
//	}()
//	healthServer.SetReady(true)
type HealthServer struct {
	addr   string
	logger *slog.Logger
	ready  atomic.Bool
	server *http.Server
}

// healthResponse is the JSON body of both probe endpoints.
type healthResponse struct {
	Status string `json:"status"`
}

// NewHealthServer creates a health server listening on addr once started.
// The server reports not-ready until SetReady(true) is called.
func NewHealthServer(addr string, logger *slog.Logger) *HealthServer {
	return &HealthServer{
		addr:   addr,
		logger: logger,
	}
}

// Start serves the probe endpoints until ctx is cancelled, then shuts down
// gracefully. It blocks and returns http.ErrServerClosed on a clean
// shutdown, any other error on failure.
func (h *HealthServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.probeHandler(func() bool { return true }, "ok"))
	mux.HandleFunc("/health/ready", h.probeHandler(h.ready.Load, "not ready"))

	h.server = &http.Server{
		Addr:         h.addr,
		Handler:      mux,
		ReadTimeout:  probeTimeout,
		WriteTimeout: probeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		h.logger.Info("health server starting", slog.String("addr", h.addr))
		if err := h.server.ListenAndServe(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		h.logger.Info("health server shutting down")
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			h.logger.Error("health server shutdown failed", slog.Any("error", err))
			return err
		}
		h.logger.Info("health server stopped")
		return http.ErrServerClosed

	case err := <-errChan:
		if err != http.ErrServerClosed {
			h.logger.Error("health server failed", slog.Any("error", err))
		}
		return err
	}
}

// SetReady flips the readiness state reported by /health/ready.
func (h *HealthServer) SetReady(ready bool) {
	h.ready.Store(ready)
	h.logger.Info("health server readiness changed", slog.Bool("ready", ready))
}

// probeHandler builds a probe endpoint from a readiness predicate. A true
// predicate yields 200 {"status":"ok"}, false yields 503 with failStatus.
func (h *HealthServer) probeHandler(ok func() bool, failStatus string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		status := healthResponse{Status: "ok"}
		code := http.StatusOK
		if !ok() {
			status = healthResponse{Status: failStatus}
			code = http.StatusServiceUnavailable
		}

		w.WriteHeader(code)
		if err := json.NewEncoder(w).Encode(status); err != nil {
			h.logger.Error("failed to encode probe response", slog.Any("error", err))
		}
	}
}
