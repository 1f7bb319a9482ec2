// Command updater refreshes the local conference data files from their
// upstream repositories. It fetches the security conference list and the
// per-conference AI deadline files, validates each payload, and replaces
// the data files atomically with backup-and-restore on failure.
//
// The command exits non-zero only when every source failed to update; a
// partial refresh keeps the stale file for the failed source and succeeds.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deadline-digest/internal/infra/updater"
	"deadline-digest/internal/observability/logging"
	"deadline-digest/internal/pkg/config"
)

func main() {
	logger := initLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	timeout := config.LoadEnvDuration("UPDATE_TIMEOUT", 10*time.Minute, config.ValidatePositiveDuration)
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout.Value.(time.Duration))
	defer cancelTimeout()

	dataDir := config.LoadEnvString("DATA_DIR", "data")
	service, err := updater.NewService(updater.DefaultConfig(dataDir), logger)
	if err != nil {
		logger.Error("failed to initialize updater", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("conference data update started", slog.String("data_dir", dataDir))
	start := time.Now()

	succeeded := 0
	if err := service.UpdateAI(ctx); err != nil {
		logger.Error("AI conference update failed", slog.Any("error", err))
	} else {
		succeeded++
	}

	if err := service.UpdateSecurity(ctx); err != nil {
		logger.Error("security conference update failed", slog.Any("error", err))
	} else {
		succeeded++
	}

	logger.Info("conference data update finished",
		slog.Int("sources_updated", succeeded),
		slog.Duration("duration", time.Since(start)))

	// A partial refresh is acceptable: the stale file for the failed
	// source stays in place. Only a total failure is fatal.
	if succeeded == 0 {
		os.Exit(1)
	}
}

// initLogger initializes the process-wide structured logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}
