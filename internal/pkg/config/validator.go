package config

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/robfig/cron/v3"
)

// ValidateCronSchedule validates a cron expression using the robfig/cron/v3
// parser, the same parser the scheduler runs with, so anything accepted here
// is guaranteed to schedule.
//
// The expression must follow the standard five-field format:
//   - "0 9 * * 1" (Mondays at 9:00)
//   - "30 5 * * *" (every day at 5:30)
//
// Validation tool: https://crontab.guru/
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("invalid cron schedule: cannot be empty")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}

// ValidateTimezone validates an IANA timezone name by attempting to load it
// with time.LoadLocation ("UTC", "Europe/London", "Asia/Tokyo", ...).
func ValidateTimezone(timezone string) error {
	if timezone == "" {
		return fmt.Errorf("invalid timezone: cannot be empty")
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", timezone, err)
	}
	return nil
}

// ValidateEmail validates an email address using RFC 5322 parsing.
// Display-name forms ("Bot <bot@example.com>") are accepted.
func ValidateEmail(address string) error {
	if address == "" {
		return fmt.Errorf("invalid email: cannot be empty")
	}
	if _, err := mail.ParseAddress(address); err != nil {
		return fmt.Errorf("invalid email '%s': %w", address, err)
	}
	return nil
}

// ValidateIntRange checks that value lies within [min, max] inclusive.
func ValidateIntRange(value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("value %d out of range [%d, %d]", value, min, max)
	}
	return nil
}

// ValidatePort checks that value is a usable unprivileged TCP port.
func ValidatePort(value int) error {
	if err := ValidateIntRange(value, 1024, 65535); err != nil {
		return fmt.Errorf("invalid port: %w", err)
	}
	return nil
}

// ValidateDuration checks that duration lies within [min, max] inclusive.
func ValidateDuration(duration, min, max time.Duration) error {
	if duration < min || duration > max {
		return fmt.Errorf("duration %v out of range [%v, %v]", duration, min, max)
	}
	return nil
}

// ValidatePositiveDuration checks that duration is strictly positive.
func ValidatePositiveDuration(duration time.Duration) error {
	if duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", duration)
	}
	return nil
}
