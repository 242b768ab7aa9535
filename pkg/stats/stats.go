// Package stats turns raw GitHub contribution data into the numbers shown on
// the profile cards: lifetime contribution totals, commit/issue/PR breakdowns,
// streaks, and the profile "uptime" derived from a birthday.
package stats

import (
	"context"
	"time"

	"github.com/tmih06/profilegen/pkg/github"
	"github.com/tmih06/profilegen/pkg/logger"
)

var statsLog = logger.New("stats:collect")

// ContributionSource is the slice of the GitHub client the collector needs.
type ContributionSource interface {
	ContributionYears(ctx context.Context, login string) ([]int, error)
	ContributionCalendar(ctx context.Context, login string, from, to time.Time) (*github.ContributionRange, error)
}

// ContributionSummary accumulates every contribution year of a user.
type ContributionSummary struct {
	Years        []int
	Total        int
	Commits      int
	Issues       int
	PullRequests int
	Reviews      int
	Days         []github.ContributionDay
}

// Summary walks login's contribution years in ascending order and merges the
// per-year calendars. The current year's range ends at now's date (23:59:59
// UTC) so the averages are not diluted by days that have not happened yet.
func Summary(ctx context.Context, src ContributionSource, login string, now time.Time) (*ContributionSummary, error) {
	years, err := src.ContributionYears(ctx, login)
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	summary := &ContributionSummary{Years: years}
	for _, year := range years {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
		if year == now.Year() {
			to = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
		}

		r, err := src.ContributionCalendar(ctx, login, from, to)
		if err != nil {
			return nil, err
		}
		summary.Total += r.Total
		summary.Commits += r.Commits
		summary.Issues += r.Issues
		summary.PullRequests += r.PullRequests
		summary.Reviews += r.Reviews
		summary.Days = append(summary.Days, r.Days...)
		statsLog.Printf("Year %d: %d contributions over %d days", year, r.Total, len(r.Days))
	}
	return summary, nil
}
