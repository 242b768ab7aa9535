//go:build !integration

package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"daily", "daily", "0 0 * * *"},
		{"hourly", "hourly", "0 * * * *"},
		{"weekly", "weekly", "0 0 * * 0"},
		{"daily at clock time", "daily at 07:30", "30 7 * * *"},
		{"daily at noon", "daily at noon", "0 12 * * *"},
		{"daily at midnight", "daily at midnight", "0 0 * * *"},
		{"daily at pm time", "daily at 9:15 pm", "15 21 * * *"},
		{"daily at 12am", "daily at 12am", "0 0 * * *"},
		{"daily at 12pm", "daily at 12pm", "0 12 * * *"},
		{"daily with implicit at", "daily 07:30", "30 7 * * *"},
		{"weekly on weekday", "weekly on monday", "0 0 * * 1"},
		{"weekly on short weekday", "weekly on sat", "0 0 * * 6"},
		{"weekly on weekday at time", "weekly on fri at 06:00", "0 6 * * 5"},
		{"every minutes short", "every 30m", "*/30 * * * *"},
		{"every hours short", "every 2h", "0 */2 * * *"},
		{"every minutes spelled out", "every 30 minutes", "*/30 * * * *"},
		{"every single hour spelled out", "every 1 hour", "0 */1 * * *"},
		{"cron passthrough", "*/5 * * * *", "*/5 * * * *"},
		{"cron with fields", "30 7 * * 1", "30 7 * * 1"},
		{"descriptor passthrough", "@daily", "@daily"},
		{"mixed case", "Daily At 07:30", "30 7 * * *"},
		{"surrounding whitespace", "  hourly  ", "0 * * * *"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeRejectsInvalidExpressions(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "cannot be empty"},
		{"unknown type", "fortnightly", "unsupported schedule type"},
		{"bare every", "every", "invalid interval format"},
		{"zero interval", "every 0m", "minute intervals must be 1-59"},
		{"minute interval too large", "every 90m", "minute intervals must be 1-59"},
		{"hour interval too large", "every 25h", "hour intervals must be 1-23"},
		{"unsupported unit", "every 2 days", "unsupported interval unit"},
		{"non-numeric interval", "every lots minutes", "must be a positive integer"},
		{"trailing token after interval", "every 2h at 07:00", "unexpected token"},
		{"weekly without on", "weekly monday", "requires 'on <weekday>'"},
		{"invalid weekday", "weekly on caturday", "invalid weekday"},
		{"hourly with time", "hourly at 05:00", "use 'hourly' alone"},
		{"out of range clock", "daily at 25:00", "invalid time"},
		{"out of range minutes", "daily at 10:75", "invalid time"},
		{"bare hour without colon", "daily at 7", "expected HH:MM"},
		{"missing time after at", "daily at", "expected time after 'at'"},
		{"trailing token after time", "daily at 07:30 utc", "unexpected token"},
		{"bad descriptor", "@fortnightly", "invalid cron descriptor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsCronExpression(t *testing.T) {
	assert.True(t, IsCronExpression("*/5 * * * *"))
	assert.True(t, IsCronExpression("30 7 * * 1"))
	assert.False(t, IsCronExpression("daily"))
	assert.False(t, IsCronExpression("30 7 * *"), "four fields is not a standard cron expression")
	assert.False(t, IsCronExpression("weekly on fri at 06:00"), "five tokens alone do not make a cron expression")
}

func TestParse(t *testing.T) {
	sched, expr, err := Parse("every 15m")
	require.NoError(t, err)
	assert.Equal(t, "*/15 * * * *", expr)

	at := time.Date(2026, 5, 4, 10, 7, 0, 0, time.Local)
	assert.Equal(t, time.Date(2026, 5, 4, 10, 15, 0, 0, time.Local), sched.Next(at))
}

func TestParseRejectsInvalid(t *testing.T) {
	_, _, err := Parse("every 3 fortnights")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported interval unit")
}
