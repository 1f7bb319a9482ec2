// Package config provides reusable environment-variable loading and
// validation helpers shared by the notifier and updater binaries.
//
// Loading follows a fail-open strategy: an invalid value falls back to the
// default and produces a warning, never an error. Required values (API keys,
// delivery targets) are the caller's responsibility to check up front.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ConfigLoadResult represents the result of loading one configuration value.
//
// Fields:
//   - Value: the loaded value (the default when validation failed)
//   - Warnings: one message per fallback applied
//   - FallbackApplied: true if the default was used due to validation failure
//
// Example:
//
//	result := LoadEnvInt("DAYS_AHEAD", 30, func(v int) error {
//	    return ValidateIntRange(v, 1, 36500)
//	})
//	days := result.Value.(int)
type ConfigLoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

// LoadEnvString loads a string value from an environment variable, returning
// the default when the variable is unset or empty. No validation is applied;
// use LoadEnvWithFallback when validation is needed.
func LoadEnvString(envKey, defaultValue string) string {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadEnvWithFallback loads a string value with validation and automatic
// fallback to the default on validation failure.
//
// Behavior:
//  1. unset or empty: default, no warning
//  2. set and valid: the value
//  3. set and invalid: default plus a warning (never an error)
//
// Example:
//
//	result := LoadEnvWithFallback("CRON_SCHEDULE", "0 9 * * 1", ValidateCronSchedule)
//	schedule := result.Value.(string)
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return ConfigLoadResult{
				Value: defaultValue,
				Warnings: []string{
					fmt.Sprintf("%s=%q is invalid (%v), using default %q", envKey, value, err, defaultValue),
				},
				FallbackApplied: true,
			}
		}
	}
	return ConfigLoadResult{Value: value}
}

// LoadEnvInt loads an integer value with validation and fallback.
// Unparseable values fall back to the default with a warning.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return ConfigLoadResult{
			Value: defaultValue,
			Warnings: []string{
				fmt.Sprintf("%s=%q is not an integer, using default %d", envKey, raw, defaultValue),
			},
			FallbackApplied: true,
		}
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return ConfigLoadResult{
				Value: defaultValue,
				Warnings: []string{
					fmt.Sprintf("%s=%d is invalid (%v), using default %d", envKey, value, err, defaultValue),
				},
				FallbackApplied: true,
			}
		}
	}
	return ConfigLoadResult{Value: value}
}

// LoadEnvDuration loads a time.Duration value (Go duration syntax, e.g.
// "30s", "5m") with validation and fallback.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		return ConfigLoadResult{
			Value: defaultValue,
			Warnings: []string{
				fmt.Sprintf("%s=%q is not a duration, using default %v", envKey, raw, defaultValue),
			},
			FallbackApplied: true,
		}
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return ConfigLoadResult{
				Value: defaultValue,
				Warnings: []string{
					fmt.Sprintf("%s=%v is invalid (%v), using default %v", envKey, value, err, defaultValue),
				},
				FallbackApplied: true,
			}
		}
	}
	return ConfigLoadResult{Value: value}
}

// LoadEnvBool loads a boolean value. Only "true" and "false" (and their
// strconv.ParseBool variants) are accepted; anything else falls back.
func LoadEnvBool(envKey string, defaultValue bool) ConfigLoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return ConfigLoadResult{
			Value: defaultValue,
			Warnings: []string{
				fmt.Sprintf("%s=%q is not a boolean, using default %v", envKey, raw, defaultValue),
			},
			FallbackApplied: true,
		}
	}
	return ConfigLoadResult{Value: value}
}
