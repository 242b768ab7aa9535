package stats

import (
	"fmt"
	"time"
)

// FormatPlural returns "s" for counts other than one.
func FormatPlural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Age renders the calendar time between birthday and now as
// "X years, Y months, Z days", with a cake on the exact birthday.
func Age(now, birthday time.Time) string {
	now = now.UTC()
	birthday = birthday.UTC()

	months := (now.Year()-birthday.Year())*12 + int(now.Month()) - int(birthday.Month())
	anchor := addMonthsClamped(birthday, months)
	if anchor.After(now) {
		months--
		anchor = addMonthsClamped(birthday, months)
	}
	years := months / 12
	months -= years * 12
	days := int(now.Sub(anchor).Hours() / 24)

	cake := ""
	if months == 0 && days == 0 {
		cake = " 🎂"
	}
	return fmt.Sprintf("%d year%s, %d month%s, %d day%s%s",
		years, FormatPlural(years),
		months, FormatPlural(months),
		days, FormatPlural(days),
		cake)
}

// addMonthsClamped adds months to t, clamping the day to the target month's
// last day instead of overflowing (Jan 31 + 1 month is Feb 28/29, not Mar 3).
func addMonthsClamped(t time.Time, months int) time.Time {
	year := t.Year()
	month := int(t.Month()) - 1 + months
	year += month / 12
	month %= 12
	if month < 0 {
		month += 12
		year--
	}

	day := t.Day()
	if last := daysInMonth(year, time.Month(month+1)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month+1), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
