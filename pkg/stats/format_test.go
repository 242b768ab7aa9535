//go:build !integration

package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommaFormat(t *testing.T) {
	assert.Equal(t, "0", CommaFormat(0))
	assert.Equal(t, "999", CommaFormat(999))
	assert.Equal(t, "1,000", CommaFormat(1000))
	assert.Equal(t, "1,234,567", CommaFormat(1234567))
	assert.Equal(t, "-12,345", CommaFormat(-12345))
}

func TestDateFormats(t *testing.T) {
	d := time.Date(2021, 3, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar 03, 2021", FormatDate(d))
	assert.Equal(t, "Mar 03", FormatMonthDay(d))
}

func TestFormatAverage(t *testing.T) {
	assert.Equal(t, "~4.20", FormatAverage(4.2))
	assert.Equal(t, "~0.00", FormatAverage(0))
	assert.Equal(t, "~3.14", FormatAverage(3.14159))
}

func TestYearsAgo(t *testing.T) {
	now := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "6 years ago", YearsAgo(now, time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "5 years ago", YearsAgo(now, time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC)), "anniversary not reached yet")
	assert.Equal(t, "1 year ago", YearsAgo(now, time.Date(2025, 8, 23, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "this year", YearsAgo(now, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
}
