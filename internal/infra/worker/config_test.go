package worker

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	// Verify all fields have expected default values
	if config.CronSchedule != "0 9 * * 1" {
		t.Errorf("Expected CronSchedule '0 9 * * 1', got '%s'", config.CronSchedule)
	}

	if config.Timezone != "UTC" {
		t.Errorf("Expected Timezone 'UTC', got '%s'", config.Timezone)
	}

	if config.DaysAhead != 30 {
		t.Errorf("Expected DaysAhead 30, got %d", config.DaysAhead)
	}

	if config.RunTimeout != 10*time.Minute {
		t.Errorf("Expected RunTimeout 10m, got %v", config.RunTimeout)
	}

	if config.HealthPort != 9091 {
		t.Errorf("Expected HealthPort 9091, got %d", config.HealthPort)
	}
}

func TestDefaultConfig_Immutability(t *testing.T) {
	// Each call to DefaultConfig should return a new instance
	config1 := DefaultConfig()
	config2 := DefaultConfig()

	// Modify config1
	config1.CronSchedule = "0 6 * * *"
	config1.DaysAhead = 60

	// config2 should still have default values
	if config2.CronSchedule != "0 9 * * 1" {
		t.Error("DefaultConfig returned a shared instance instead of a new one")
	}

	if config2.DaysAhead != 30 {
		t.Error("DefaultConfig returned a shared instance instead of a new one")
	}
}

func TestWorkerConfig_Validate_ValidConfig(t *testing.T) {
	// Default config should be valid
	config := DefaultConfig()

	err := config.Validate()
	if err != nil {
		t.Errorf("DefaultConfig should be valid, got error: %v", err)
	}
}

func TestWorkerConfig_Validate_InvalidCronSchedule(t *testing.T) {
	config := DefaultConfig()
	config.CronSchedule = "invalid cron"

	err := config.Validate()
	if err == nil {
		t.Error("Expected validation error for invalid cron schedule")
	}
}

func TestWorkerConfig_Validate_EmptyCronSchedule(t *testing.T) {
	config := DefaultConfig()
	config.CronSchedule = ""

	err := config.Validate()
	if err == nil {
		t.Error("Expected validation error for empty cron schedule")
	}
}

func TestWorkerConfig_Validate_InvalidTimezone(t *testing.T) {
	config := DefaultConfig()
	config.Timezone = "Invalid/Timezone"

	err := config.Validate()
	if err == nil {
		t.Error("Expected validation error for invalid timezone")
	}
}

func TestWorkerConfig_Validate_DaysAheadBoundary(t *testing.T) {
	tests := []struct {
		name  string
		value int
		valid bool
	}{
		{"Min valid (1)", 1, true},
		{"Max valid (365)", 365, true},
		{"Below min (0)", 0, false},
		{"Negative", -1, false},
		{"Above max (366)", 366, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.DaysAhead = tt.value

			err := config.Validate()
			if tt.valid && err != nil {
				t.Errorf("Expected valid config, got error: %v", err)
			}
			if !tt.valid && err == nil {
				t.Errorf("Expected validation error for value %d", tt.value)
			}
		})
	}
}

func TestWorkerConfig_Validate_RunTimeoutZero(t *testing.T) {
	config := DefaultConfig()
	config.RunTimeout = 0

	err := config.Validate()
	if err == nil {
		t.Error("Expected validation error for RunTimeout = 0")
	}
}

func TestWorkerConfig_Validate_RunTimeoutNegative(t *testing.T) {
	config := DefaultConfig()
	config.RunTimeout = -1 * time.Minute

	err := config.Validate()
	if err == nil {
		t.Error("Expected validation error for negative RunTimeout")
	}
}

func TestWorkerConfig_Validate_HealthPortBoundary(t *testing.T) {
	tests := []struct {
		name  string
		value int
		valid bool
	}{
		{"Min valid (1024)", 1024, true},
		{"Max valid (65535)", 65535, true},
		{"Privileged port (80)", 80, false},
		{"Above max (65536)", 65536, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.HealthPort = tt.value

			err := config.Validate()
			if tt.valid && err != nil {
				t.Errorf("Expected valid config, got error: %v", err)
			}
			if !tt.valid && err == nil {
				t.Errorf("Expected validation error for port %d", tt.value)
			}
		})
	}
}

func TestWorkerConfig_Validate_MultipleErrors(t *testing.T) {
	config := DefaultConfig()
	config.CronSchedule = "bad"
	config.Timezone = "Invalid/Zone"
	config.DaysAhead = 0

	err := config.Validate()
	if err == nil {
		t.Fatal("Expected validation error for multiple invalid fields")
	}

	// Aggregated error should mention each field
	msg := err.Error()
	for _, field := range []string{"cron schedule", "timezone", "days ahead"} {
		if !strings.Contains(msg, field) {
			t.Errorf("Expected error to mention %q, got: %s", field, msg)
		}
	}
}

// globalTestMetrics is a shared metrics instance for tests to avoid
// duplicate Prometheus registration errors. In production, metrics are
// created once at startup, so this simulates that behavior.
var globalTestMetrics = NewWorkerMetrics()

// setEnv is a test helper that sets an environment variable and fails the test if it errors
func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("Failed to set %s: %v", key, err)
	}
}

// unsetEnv is a test helper that unsets an environment variable and fails the test if it errors
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("Failed to unset %s: %v", key, err)
	}
}

func TestLoadConfigFromEnv_AllEnvVarsValid(t *testing.T) {
	// Set up environment variables
	setEnv(t, "CRON_SCHEDULE", "0 6 * * *")
	setEnv(t, "WORKER_TIMEZONE", "Asia/Tokyo")
	setEnv(t, "DAYS_AHEAD", "60")
	setEnv(t, "RUN_TIMEOUT", "30m")
	setEnv(t, "WORKER_HEALTH_PORT", "8080")
	defer func() {
		unsetEnv(t, "CRON_SCHEDULE")
		unsetEnv(t, "WORKER_TIMEZONE")
		unsetEnv(t, "DAYS_AHEAD")
		unsetEnv(t, "RUN_TIMEOUT")
		unsetEnv(t, "WORKER_HEALTH_PORT")
	}()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	config, err := LoadConfigFromEnv(logger, globalTestMetrics)

	// Should not return error (fail-open strategy)
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}

	// Should load all values from environment
	if config.CronSchedule != "0 6 * * *" {
		t.Errorf("Expected CronSchedule '0 6 * * *', got '%s'", config.CronSchedule)
	}
	if config.Timezone != "Asia/Tokyo" {
		t.Errorf("Expected Timezone 'Asia/Tokyo', got '%s'", config.Timezone)
	}
	if config.DaysAhead != 60 {
		t.Errorf("Expected DaysAhead 60, got %d", config.DaysAhead)
	}
	if config.RunTimeout != 30*time.Minute {
		t.Errorf("Expected RunTimeout 30m, got %v", config.RunTimeout)
	}
	if config.HealthPort != 8080 {
		t.Errorf("Expected HealthPort 8080, got %d", config.HealthPort)
	}

	// No warnings should be logged
	if buf.Len() > 0 {
		t.Errorf("Expected no warnings, got: %s", buf.String())
	}
}

func TestLoadConfigFromEnv_MissingEnvVars(t *testing.T) {
	// Clear all environment variables
	unsetEnv(t, "CRON_SCHEDULE")
	unsetEnv(t, "WORKER_TIMEZONE")
	unsetEnv(t, "DAYS_AHEAD")
	unsetEnv(t, "RUN_TIMEOUT")
	unsetEnv(t, "WORKER_HEALTH_PORT")

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	config, err := LoadConfigFromEnv(logger, globalTestMetrics)

	// Should not return error (fail-open strategy)
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}

	// Should use default values
	defaults := DefaultConfig()
	if config.CronSchedule != defaults.CronSchedule {
		t.Errorf("Expected default CronSchedule, got '%s'", config.CronSchedule)
	}
	if config.Timezone != defaults.Timezone {
		t.Errorf("Expected default Timezone, got '%s'", config.Timezone)
	}
	if config.DaysAhead != defaults.DaysAhead {
		t.Errorf("Expected default DaysAhead, got %d", config.DaysAhead)
	}
	if config.RunTimeout != defaults.RunTimeout {
		t.Errorf("Expected default RunTimeout, got %v", config.RunTimeout)
	}
	if config.HealthPort != defaults.HealthPort {
		t.Errorf("Expected default HealthPort, got %d", config.HealthPort)
	}

	// No warnings should be logged (missing env vars don't trigger fallback)
	if buf.Len() > 0 {
		t.Errorf("Expected no warnings, got: %s", buf.String())
	}
}

func TestLoadConfigFromEnv_InvalidFieldFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		value  string
	}{
		{"Invalid cron schedule", "CRON_SCHEDULE", "not a cron"},
		{"Invalid timezone", "WORKER_TIMEZONE", "Invalid/Zone"},
		{"Days ahead out of range", "DAYS_AHEAD", "0"},
		{"Days ahead not a number", "DAYS_AHEAD", "abc"},
		{"Run timeout unparseable", "RUN_TIMEOUT", "soon"},
		{"Run timeout below minimum", "RUN_TIMEOUT", "5s"},
		{"Health port privileged", "WORKER_HEALTH_PORT", "80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.envKey, tt.value)
			defer unsetEnv(t, tt.envKey)

			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			config, err := LoadConfigFromEnv(logger, globalTestMetrics)

			// Should not return error (fail-open strategy)
			if err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}

			// Resulting config should still validate
			if err := config.Validate(); err != nil {
				t.Errorf("Fallback config should be valid, got: %v", err)
			}

			logOutput := buf.String()
			if !strings.Contains(logOutput, "Configuration fallback applied") {
				t.Error("Expected fallback warning in logs")
			}
		})
	}
}

func TestLoadConfigFromEnv_MultipleInvalidFields(t *testing.T) {
	// Set multiple invalid environment variables
	setEnv(t, "CRON_SCHEDULE", "invalid")
	setEnv(t, "WORKER_TIMEZONE", "Invalid/Zone")
	setEnv(t, "DAYS_AHEAD", "0")
	setEnv(t, "RUN_TIMEOUT", "invalid")
	setEnv(t, "WORKER_HEALTH_PORT", "100")
	defer func() {
		unsetEnv(t, "CRON_SCHEDULE")
		unsetEnv(t, "WORKER_TIMEZONE")
		unsetEnv(t, "DAYS_AHEAD")
		unsetEnv(t, "RUN_TIMEOUT")
		unsetEnv(t, "WORKER_HEALTH_PORT")
	}()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	config, err := LoadConfigFromEnv(logger, globalTestMetrics)

	// Should not return error (fail-open strategy)
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}

	// All fields should use default values
	defaults := DefaultConfig()
	if config.CronSchedule != defaults.CronSchedule {
		t.Errorf("Expected default CronSchedule, got '%s'", config.CronSchedule)
	}
	if config.Timezone != defaults.Timezone {
		t.Errorf("Expected default Timezone, got '%s'", config.Timezone)
	}
	if config.DaysAhead != defaults.DaysAhead {
		t.Errorf("Expected default DaysAhead, got %d", config.DaysAhead)
	}
	if config.RunTimeout != defaults.RunTimeout {
		t.Errorf("Expected default RunTimeout, got %v", config.RunTimeout)
	}
	if config.HealthPort != defaults.HealthPort {
		t.Errorf("Expected default HealthPort, got %d", config.HealthPort)
	}

	// Multiple warnings should be logged
	logOutput := buf.String()
	warningCount := strings.Count(logOutput, "Configuration fallback applied")
	if warningCount != 5 {
		t.Errorf("Expected 5 warnings, got %d", warningCount)
	}
}

func TestLoadConfigFromEnv_PartiallyValid(t *testing.T) {
	// Set some valid and some invalid values
	setEnv(t, "CRON_SCHEDULE", "0 6 * * *")      // Valid
	setEnv(t, "WORKER_TIMEZONE", "Invalid/Zone") // Invalid
	setEnv(t, "DAYS_AHEAD", "14")                // Valid
	setEnv(t, "RUN_TIMEOUT", "invalid")          // Invalid
	setEnv(t, "WORKER_HEALTH_PORT", "8080")      // Valid
	defer func() {
		unsetEnv(t, "CRON_SCHEDULE")
		unsetEnv(t, "WORKER_TIMEZONE")
		unsetEnv(t, "DAYS_AHEAD")
		unsetEnv(t, "RUN_TIMEOUT")
		unsetEnv(t, "WORKER_HEALTH_PORT")
	}()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	config, err := LoadConfigFromEnv(logger, globalTestMetrics)

	// Should not return error (fail-open strategy)
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}

	// Valid fields should use environment values
	if config.CronSchedule != "0 6 * * *" {
		t.Errorf("Expected CronSchedule '0 6 * * *', got '%s'", config.CronSchedule)
	}
	if config.DaysAhead != 14 {
		t.Errorf("Expected DaysAhead 14, got %d", config.DaysAhead)
	}
	if config.HealthPort != 8080 {
		t.Errorf("Expected HealthPort 8080, got %d", config.HealthPort)
	}

	// Invalid fields should use defaults
	if config.Timezone != DefaultConfig().Timezone {
		t.Errorf("Expected default Timezone, got '%s'", config.Timezone)
	}
	if config.RunTimeout != DefaultConfig().RunTimeout {
		t.Errorf("Expected default RunTimeout, got %v", config.RunTimeout)
	}

	// Only 2 warnings should be logged (for Timezone and RunTimeout)
	logOutput := buf.String()
	warningCount := strings.Count(logOutput, "Configuration fallback applied")
	if warningCount != 2 {
		t.Errorf("Expected 2 warnings, got %d", warningCount)
	}
}
