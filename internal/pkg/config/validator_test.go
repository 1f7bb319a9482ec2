package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{name: "weekly monday morning", schedule: "0 9 * * 1", wantErr: false},
		{name: "daily", schedule: "30 5 * * *", wantErr: false},
		{name: "every minute", schedule: "* * * * *", wantErr: false},
		{name: "empty", schedule: "", wantErr: true},
		{name: "too few fields", schedule: "0 9 *", wantErr: true},
		{name: "out of range minute", schedule: "61 9 * * 1", wantErr: true},
		{name: "not a cron expression", schedule: "every monday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	assert.NoError(t, ValidateTimezone("UTC"))
	assert.NoError(t, ValidateTimezone("Europe/London"))
	assert.NoError(t, ValidateTimezone("Asia/Tokyo"))
	assert.Error(t, ValidateTimezone(""))
	assert.Error(t, ValidateTimezone("Mars/Olympus"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("digest@example.com"))
	assert.NoError(t, ValidateEmail("Deadline Bot <bot@example.com>"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-address"))
	assert.Error(t, ValidateEmail("@example.com"))
}

func TestValidateIntRange(t *testing.T) {
	assert.NoError(t, ValidateIntRange(30, 1, 365))
	assert.NoError(t, ValidateIntRange(1, 1, 365))
	assert.NoError(t, ValidateIntRange(365, 1, 365))
	assert.Error(t, ValidateIntRange(0, 1, 365))
	assert.Error(t, ValidateIntRange(366, 1, 365))
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort(8080))
	assert.NoError(t, ValidatePort(1024))
	assert.NoError(t, ValidatePort(65535))
	assert.Error(t, ValidatePort(80))
	assert.Error(t, ValidatePort(0))
	assert.Error(t, ValidatePort(70000))
}

func TestValidateDuration(t *testing.T) {
	assert.NoError(t, ValidateDuration(30*time.Second, time.Second, time.Minute))
	assert.Error(t, ValidateDuration(2*time.Minute, time.Second, time.Minute))
	assert.Error(t, ValidateDuration(0, time.Second, time.Minute))
}

func TestValidatePositiveDuration(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Second))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.Error(t, ValidatePositiveDuration(-time.Second))
}
