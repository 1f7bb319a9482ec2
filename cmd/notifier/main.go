package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"deadline-digest/internal/infra/notifier"
	"deadline-digest/internal/infra/source"
	workerPkg "deadline-digest/internal/infra/worker"
	"deadline-digest/internal/observability/logging"
	"deadline-digest/internal/observability/metrics"
	"deadline-digest/internal/pkg/config"
	"deadline-digest/internal/usecase/digest"
	"deadline-digest/internal/usecase/ingest"
	"deadline-digest/internal/usecase/notify"
)

func main() {
	logger := initLogger()

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Int("days_ahead", workerConfig.DaysAhead),
		slog.Duration("run_timeout", workerConfig.RunTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	dataDir := config.LoadEnvString("DATA_DIR", "data")

	// Initialize email notification channel
	resendConfig := loadResendConfig(logger)
	if resendConfig.Enabled {
		logger.Info("email channel initialized", slog.String("status", "enabled"))
	} else {
		logger.Info("email channel disabled")
	}

	// Initialize Slack notification channel
	slackConfig := loadSlackConfig(logger)
	if slackConfig.Enabled {
		logger.Info("Slack channel initialized", slog.String("status", "enabled"))
	} else {
		logger.Info("Slack channel disabled")
	}

	channels := []notify.Channel{
		notify.NewEmailChannel(resendConfig),
		notify.NewSlackChannel(slackConfig),
	}

	// Delivery is the whole point of a run; refuse to start without it.
	if !anyChannelEnabled(channels) {
		logger.Error("no delivery channels configured; set RESEND_API_KEY or SLACK_ENABLED")
		os.Exit(1)
	}

	notifyService := notify.NewService(channels, logger)
	logger.Info("notification service initialized", slog.Int("channels", len(channels)))

	// One-shot mode (the default): run a single digest and exit
	if config.LoadEnvString("RUN_MODE", "once") != "cron" {
		if err := runDigestJob(logger, workerConfig, workerMetrics, notifyService, dataDir); err != nil {
			os.Exit(1)
		}
		return
	}

	// Start metrics HTTP server
	startMetricsServer(ctx, logger)

	// Start health check server
	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	startCronWorker(ctx, logger, workerConfig, workerMetrics, notifyService, healthServer, dataDir)
}

// initLogger initializes the process-wide structured logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// loadResendConfig loads Resend email configuration from environment variables.
//
// Environment variables:
//   - RESEND_API_KEY: Resend API key; email delivery is disabled when unset
//   - FROM_EMAIL: Sender address (required if API key is set)
//   - TO_EMAIL: Recipient address (required if API key is set)
//   - FROM_NAME: Sender display name (default: "Conference Deadline Bot")
//
// Addresses are validated up front: an invalid address with the API key set
// is a configuration error and terminates the process.
func loadResendConfig(logger *slog.Logger) notifier.ResendConfig {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		return notifier.ResendConfig{Enabled: false}
	}

	fromEmail := os.Getenv("FROM_EMAIL")
	if err := config.ValidateEmail(fromEmail); err != nil {
		logger.Error("invalid FROM_EMAIL", slog.Any("error", err))
		os.Exit(1)
	}

	toEmail := os.Getenv("TO_EMAIL")
	if err := config.ValidateEmail(toEmail); err != nil {
		logger.Error("invalid TO_EMAIL", slog.Any("error", err))
		os.Exit(1)
	}

	return notifier.ResendConfig{
		Enabled:   true,
		APIKey:    apiKey,
		FromName:  config.LoadEnvString("FROM_NAME", "Conference Deadline Bot"),
		FromEmail: fromEmail,
		ToEmail:   toEmail,
		Timeout:   30 * time.Second,
	}
}

// loadSlackConfig loads Slack configuration from environment variables.
//
// Environment variables:
//   - SLACK_ENABLED: Boolean flag to enable Slack notifications (default: false)
//   - SLACK_WEBHOOK_URL: Slack webhook URL (required if enabled)
func loadSlackConfig(logger *slog.Logger) notifier.SlackConfig {
	enabled := os.Getenv("SLACK_ENABLED") == "true"
	webhookURL := os.Getenv("SLACK_WEBHOOK_URL")

	if !enabled {
		return notifier.SlackConfig{Enabled: false}
	}

	if webhookURL == "" {
		logger.Warn("Slack webhook URL is empty, disabling notifications")
		return notifier.SlackConfig{Enabled: false}
	}

	u, err := url.Parse(webhookURL)
	if err != nil {
		logger.Warn("invalid Slack webhook URL format, disabling notifications", slog.Any("error", err))
		return notifier.SlackConfig{Enabled: false}
	}

	if u.Scheme != "https" {
		logger.Warn("Slack webhook URL must use HTTPS, disabling notifications")
		return notifier.SlackConfig{Enabled: false}
	}

	if u.Host != "hooks.slack.com" {
		logger.Warn("invalid Slack webhook host, disabling notifications", slog.String("host", u.Host))
		return notifier.SlackConfig{Enabled: false}
	}

	if !strings.HasPrefix(u.Path, "/services/") {
		logger.Warn("invalid Slack webhook path, disabling notifications", slog.String("path", u.Path))
		return notifier.SlackConfig{Enabled: false}
	}

	return notifier.SlackConfig{
		Enabled:    true,
		WebhookURL: webhookURL,
		Timeout:    30 * time.Second,
	}
}

// startCronWorker starts the cron scheduler and runs the digest job periodically.
func startCronWorker(ctx context.Context, logger *slog.Logger, cfg *workerPkg.WorkerConfig, workerMetrics *workerPkg.WorkerMetrics, notifyService notify.Service, healthServer *workerPkg.HealthServer, dataDir string) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		_ = runDigestJob(logger, cfg, workerMetrics, notifyService, dataDir)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	// Mark as ready after cron is set up
	healthServer.SetReady(true)
	logger.Info("worker marked as ready")

	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	logger.Info("shutdown signal received")

	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		logger.Warn("cron jobs did not finish before shutdown timeout")
	}
}

// anyChannelEnabled reports whether at least one delivery channel is live.
func anyChannelEnabled(channels []notify.Channel) bool {
	for _, ch := range channels {
		if ch.IsEnabled() {
			return true
		}
	}
	return false
}

// runDigestJob executes a single digest run with timeout and error handling.
// A run with no upcoming deadlines is a success: nothing is sent and the
// run is recorded with status "empty".
func runDigestJob(logger *slog.Logger, cfg *workerPkg.WorkerConfig, workerMetrics *workerPkg.WorkerMetrics, notifyService notify.Service, dataDir string) error {
	startTime := time.Now()
	logger.Info("digest run started", slog.Int("days_ahead", cfg.DaysAhead))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()

	loader := source.NewLoader(dataDir, logger)
	ingestService := ingest.NewService(logger)

	collections := loader.LoadCollections()
	if len(collections) == 0 {
		return failDigestRun(logger, workerMetrics, startTime, "no conference data files could be loaded",
			fmt.Errorf("no readable data files in %s", dataDir))
	}

	confs, stats := ingestService.LoadAll(ctx, collections)
	logger.Info("conference data aggregated",
		slog.Int("records", stats.RecordsLoaded),
		slog.Int("records_skipped", stats.RecordsSkipped),
		slog.Int("deadlines", stats.DeadlinesKept),
		slog.Int("deadlines_dropped", stats.DeadlinesDropped))

	upcoming := digest.FilterUpcoming(confs, cfg.DaysAhead, time.Now())
	metrics.UpdateUpcomingDeadlines(digest.TotalDeadlines(upcoming))

	if len(upcoming) == 0 {
		duration := time.Since(startTime)
		logger.Info("no upcoming deadlines, skipping delivery",
			slog.Int("days_ahead", cfg.DaysAhead),
			slog.Duration("duration", duration))
		metrics.RecordDigestRun("empty", duration)
		workerMetrics.RecordJobRun("success")
		workerMetrics.RecordJobDuration(duration.Seconds())
		workerMetrics.RecordLastSuccess()
		return nil
	}

	rendered, err := notifier.RenderDigest(upcoming, cfg.DaysAhead)
	if err != nil {
		return failDigestRun(logger, workerMetrics, startTime, "failed to render digest", err)
	}

	if err := notifyService.Dispatch(ctx, rendered); err != nil {
		return failDigestRun(logger, workerMetrics, startTime, "failed to deliver digest", err)
	}

	duration := time.Since(startTime)
	metrics.RecordDigestRun("success", duration)
	workerMetrics.RecordJobRun("success")
	workerMetrics.RecordJobDuration(duration.Seconds())
	workerMetrics.RecordConferencesProcessed(len(upcoming))
	workerMetrics.RecordLastSuccess()

	logger.Info("digest run completed",
		slog.Int("conferences", len(upcoming)),
		slog.Int("deadlines", digest.TotalDeadlines(upcoming)),
		slog.Duration("duration", duration))
	return nil
}

// failDigestRun records a failed run in logs and metrics and returns the error.
func failDigestRun(logger *slog.Logger, workerMetrics *workerPkg.WorkerMetrics, startTime time.Time, msg string, err error) error {
	duration := time.Since(startTime)
	logger.Error(msg, slog.Any("error", err), slog.Duration("duration", duration))
	metrics.RecordDigestRun("failure", duration)
	workerMetrics.RecordJobRun("failure")
	workerMetrics.RecordJobDuration(duration.Seconds())
	return err
}
