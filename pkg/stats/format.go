package stats

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// CommaFormat renders n with thousands separators ("1,234,567").
func CommaFormat(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

// FormatDate renders a full date like "Mar 03, 2021".
func FormatDate(t time.Time) string {
	return t.Format("Jan 02, 2006")
}

// FormatMonthDay renders a short date like "Mar 03".
func FormatMonthDay(t time.Time) string {
	return t.Format("Jan 02")
}

// FormatAverage renders a per-day average like "~4.20".
func FormatAverage(avg float64) string {
	return fmt.Sprintf("~%.2f", avg)
}

// YearsAgo renders how many whole years ago t was, for join dates.
func YearsAgo(now, t time.Time) string {
	years := now.Year() - t.Year()
	anniversary := addMonthsClamped(t, years*12)
	if anniversary.After(now) {
		years--
	}
	if years <= 0 {
		return "this year"
	}
	return fmt.Sprintf("%d year%s ago", years, FormatPlural(years))
}
