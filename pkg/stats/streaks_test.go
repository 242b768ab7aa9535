//go:build !integration

package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmih06/profilegen/pkg/github"
)

func day(t *testing.T, date string, count int) github.ContributionDay {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return github.ContributionDay{Date: d, Count: count}
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func TestCalculateStreaks(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("active streak through today", func(t *testing.T) {
		days := []github.ContributionDay{
			day(t, "2024-03-05", 0),
			day(t, "2024-03-06", 2),
			day(t, "2024-03-07", 3),
			day(t, "2024-03-08", 1),
			day(t, "2024-03-09", 4),
			day(t, "2024-03-10", 5),
		}
		s := CalculateStreaks(days, now)

		assert.Equal(t, 5, s.Longest)
		assert.Equal(t, date(t, "2024-03-06"), s.LongestStart)
		assert.Equal(t, date(t, "2024-03-10"), s.LongestEnd)
		assert.Equal(t, 5, s.Current)
		assert.Equal(t, date(t, "2024-03-06"), s.CurrentStart)
		assert.Equal(t, 5, s.BestCount)
		assert.Equal(t, date(t, "2024-03-10"), s.BestDay)
		assert.InDelta(t, 2.5, s.Average, 0.0001)
	})

	t.Run("empty today anchors at yesterday", func(t *testing.T) {
		days := []github.ContributionDay{
			day(t, "2024-03-07", 1),
			day(t, "2024-03-08", 2),
			day(t, "2024-03-09", 3),
			day(t, "2024-03-10", 0),
		}
		s := CalculateStreaks(days, now)

		assert.Equal(t, 3, s.Current, "a streak should survive an empty today")
		assert.Equal(t, date(t, "2024-03-07"), s.CurrentStart)
		assert.Equal(t, 3, s.Longest)
	})

	t.Run("a gap before today kills the current streak", func(t *testing.T) {
		days := []github.ContributionDay{
			day(t, "2024-03-06", 2),
			day(t, "2024-03-07", 4),
			day(t, "2024-03-08", 4),
			day(t, "2024-03-09", 0),
			day(t, "2024-03-10", 0),
		}
		s := CalculateStreaks(days, now)

		assert.Zero(t, s.Current)
		assert.Equal(t, 3, s.Longest)
		assert.Equal(t, date(t, "2024-03-06"), s.LongestStart)
		assert.Equal(t, date(t, "2024-03-08"), s.LongestEnd)
	})

	t.Run("longest streak may be in the past", func(t *testing.T) {
		days := []github.ContributionDay{
			day(t, "2024-02-01", 1),
			day(t, "2024-02-02", 1),
			day(t, "2024-02-03", 1),
			day(t, "2024-02-04", 1),
			day(t, "2024-02-05", 0),
			day(t, "2024-03-09", 2),
			day(t, "2024-03-10", 2),
		}
		s := CalculateStreaks(days, now)

		assert.Equal(t, 4, s.Longest)
		assert.Equal(t, date(t, "2024-02-01"), s.LongestStart)
		assert.Equal(t, date(t, "2024-02-04"), s.LongestEnd)
		assert.Equal(t, 2, s.Current)
		assert.Equal(t, date(t, "2024-03-09"), s.CurrentStart)
	})

	t.Run("best day ties keep the first date", func(t *testing.T) {
		days := []github.ContributionDay{
			day(t, "2024-03-08", 7),
			day(t, "2024-03-09", 7),
			day(t, "2024-03-10", 1),
		}
		s := CalculateStreaks(days, now)

		assert.Equal(t, 7, s.BestCount)
		assert.Equal(t, date(t, "2024-03-08"), s.BestDay)
	})

	t.Run("unsorted input is sorted first", func(t *testing.T) {
		days := []github.ContributionDay{
			day(t, "2024-03-10", 1),
			day(t, "2024-03-08", 1),
			day(t, "2024-03-09", 1),
		}
		s := CalculateStreaks(days, now)

		assert.Equal(t, 3, s.Longest)
		assert.Equal(t, 3, s.Current)
		assert.Equal(t, date(t, "2024-03-08"), s.CurrentStart)
	})

	t.Run("stale data cannot anchor a current streak", func(t *testing.T) {
		days := []github.ContributionDay{
			day(t, "2024-03-01", 3),
			day(t, "2024-03-02", 3),
		}
		s := CalculateStreaks(days, now)

		assert.Equal(t, 2, s.Longest)
		assert.Zero(t, s.Current, "a streak ending a week ago is not current")
	})

	t.Run("no days", func(t *testing.T) {
		s := CalculateStreaks(nil, now)
		assert.Zero(t, s.Longest)
		assert.Zero(t, s.Current)
		assert.Zero(t, s.Average)
	})
}
