package stats

import (
	"sort"
	"time"

	"github.com/tmih06/profilegen/pkg/github"
)

// Streaks summarizes the contribution day series.
type Streaks struct {
	// Longest is the longest run of consecutive days with contributions.
	Longest      int
	LongestStart time.Time
	LongestEnd   time.Time

	// Current is the run ending today (or yesterday, when today has no
	// contributions yet).
	Current      int
	CurrentStart time.Time

	// BestDay is the first day reaching the maximum daily count.
	BestDay   time.Time
	BestCount int

	// Average is contributions per day across all days up to today.
	Average float64
}

// CalculateStreaks walks the day series relative to now's date. The input
// does not need to be sorted.
func CalculateStreaks(days []github.ContributionDay, now time.Time) Streaks {
	sorted := make([]github.ContributionDay, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	var s Streaks
	if len(sorted) == 0 {
		return s
	}

	today := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)

	// Longest run, and the best single day along the way.
	run := 0
	var runStart time.Time
	endRun := func(last time.Time) {
		if run > s.Longest {
			s.Longest = run
			s.LongestStart = runStart
			s.LongestEnd = last
		}
		run = 0
	}
	total := 0
	counted := 0
	for i, day := range sorted {
		if !day.Date.After(today) {
			total += day.Count
			counted++
		}
		if day.Count > 0 {
			if run == 0 {
				runStart = day.Date
			}
			run++
		} else {
			if i > 0 {
				endRun(sorted[i-1].Date)
			}
			run = 0
		}
		if day.Count > s.BestCount {
			s.BestCount = day.Count
			s.BestDay = day.Date
		}
	}
	endRun(sorted[len(sorted)-1].Date)

	if counted > 0 {
		s.Average = float64(total) / float64(counted)
	}

	// Current streak: anchor at today, or yesterday when today is still
	// empty, then walk backwards.
	anchor := -1
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].Date.After(today) {
			continue
		}
		if sorted[i].Date.Equal(today) && sorted[i].Count == 0 {
			continue
		}
		if sorted[i].Count > 0 {
			anchor = i
		}
		break
	}
	if anchor >= 0 {
		// Only today or yesterday may anchor a live streak.
		yesterday := today.AddDate(0, 0, -1)
		anchorDate := sorted[anchor].Date
		if anchorDate.Equal(today) || anchorDate.Equal(yesterday) {
			for i := anchor; i >= 0; i-- {
				if sorted[i].Count == 0 {
					break
				}
				s.Current++
				s.CurrentStart = sorted[i].Date
			}
		}
	}
	return s
}
