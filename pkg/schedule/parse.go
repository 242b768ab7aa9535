// Package schedule turns human-friendly schedule expressions into standard
// five-field cron expressions and runs jobs on them. Both the cron daemon
// and the file watcher stop cleanly on SIGINT/SIGTERM.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/tmih06/profilegen/pkg/logger"
)

var parseLog = logger.New("schedule:parse")

var durationPattern = regexp.MustCompile(`^(\d+)([hm])$`)

// IsCronExpression reports whether input already is a standard five-field
// cron expression.
func IsCronExpression(input string) bool {
	if len(strings.Fields(input)) != 5 {
		return false
	}
	_, err := cron.ParseStandard(input)
	return err == nil
}

// Normalize converts a human-friendly schedule expression into a five-field
// cron expression. Valid cron input (including @descriptors) is returned
// unchanged. Supported forms:
//
//	daily                 0 0 * * *
//	daily at 07:30        30 7 * * *
//	hourly                0 * * * *
//	weekly                0 0 * * 0
//	weekly on monday      0 0 * * 1
//	every 30m             */30 * * * *
//	every 2h              0 */2 * * *
//
// Clock times accept HH:MM, midnight, noon, and 12-hour forms like 9:15pm.
func Normalize(input string) (string, error) {
	parseLog.Printf("Parsing schedule expression: %s", input)
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("schedule expression cannot be empty")
	}

	if IsCronExpression(input) {
		parseLog.Printf("Input is already a valid cron expression: %s", input)
		return input, nil
	}
	if strings.HasPrefix(input, "@") {
		if _, err := cron.ParseStandard(input); err != nil {
			return "", fmt.Errorf("invalid cron descriptor %q: %w", input, err)
		}
		return input, nil
	}

	p := &exprParser{tokens: strings.Fields(strings.ToLower(input))}
	expr, err := p.parse()
	if err != nil {
		parseLog.Printf("Parsing failed: %s", err)
		return "", err
	}
	parseLog.Printf("Normalized %q to cron: %s", input, expr)
	return expr, nil
}

// Parse normalizes input and validates the result, returning the schedule
// used to compute fire times alongside the cron expression it mapped to.
func Parse(input string) (cron.Schedule, string, error) {
	expr, err := Normalize(input)
	if err != nil {
		return nil, "", err
	}
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse cron expression %q: %w", expr, err)
	}
	return sched, expr, nil
}

// exprParser consumes the lowercased tokens of one schedule expression.
type exprParser struct {
	tokens []string
}

func (p *exprParser) parse() (string, error) {
	if len(p.tokens) == 0 {
		return "", fmt.Errorf("empty schedule expression")
	}
	if p.tokens[0] == "every" {
		return p.parseInterval()
	}
	return p.parseBase()
}

// parseInterval handles "every Nm"/"every Nh" and the spelled-out
// "every N minutes"/"every N hours" forms.
func (p *exprParser) parseInterval() (string, error) {
	if len(p.tokens) < 2 {
		return "", fmt.Errorf("invalid interval format, expected 'every N unit' or 'every Nunit'")
	}

	if matches := durationPattern.FindStringSubmatch(p.tokens[1]); matches != nil {
		if len(p.tokens) > 2 {
			return "", fmt.Errorf("unexpected token '%s' after interval", p.tokens[2])
		}
		interval, _ := strconv.Atoi(matches[1])
		return intervalCron(interval, matches[2])
	}

	if len(p.tokens) < 3 {
		return "", fmt.Errorf("invalid interval format, expected 'every N unit' or 'every Nunit' (e.g., 'every 2h')")
	}
	if len(p.tokens) > 3 {
		return "", fmt.Errorf("unexpected token '%s' after interval unit", p.tokens[3])
	}
	interval, err := strconv.Atoi(p.tokens[1])
	if err != nil {
		return "", fmt.Errorf("invalid interval '%s', must be a positive integer", p.tokens[1])
	}
	unit := p.tokens[2]
	if !strings.HasSuffix(unit, "s") {
		unit += "s"
	}
	switch unit {
	case "minutes":
		return intervalCron(interval, "m")
	case "hours":
		return intervalCron(interval, "h")
	default:
		return "", fmt.Errorf("unsupported interval unit '%s', use 'minutes' or 'hours'", unit)
	}
}

// intervalCron renders an every-N interval as a cron expression. Intervals
// that do not divide into a single day would silently mean something else in
// cron step syntax, so they are rejected.
func intervalCron(interval int, unit string) (string, error) {
	switch unit {
	case "m":
		if interval < 1 || interval > 59 {
			return "", fmt.Errorf("invalid interval '%d', minute intervals must be 1-59", interval)
		}
		return fmt.Sprintf("*/%d * * * *", interval), nil
	case "h":
		if interval < 1 || interval > 23 {
			return "", fmt.Errorf("invalid interval '%d', hour intervals must be 1-23", interval)
		}
		return fmt.Sprintf("0 */%d * * *", interval), nil
	default:
		return "", fmt.Errorf("unsupported duration unit '%s'", unit)
	}
}

// parseBase handles daily/hourly/weekly schedules with an optional clock time.
func (p *exprParser) parseBase() (string, error) {
	switch p.tokens[0] {
	case "daily":
		if len(p.tokens) == 1 {
			return "0 0 * * *", nil
		}
		minute, hour, err := p.clockAt(1)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s * * *", minute, hour), nil

	case "hourly":
		if len(p.tokens) > 1 {
			return "", fmt.Errorf("hourly schedule does not support a time clause, use 'hourly' alone")
		}
		return "0 * * * *", nil

	case "weekly":
		if len(p.tokens) == 1 {
			return "0 0 * * 0", nil
		}
		if len(p.tokens) < 3 || p.tokens[1] != "on" {
			return "", fmt.Errorf("weekly schedule requires 'on <weekday>' or use 'weekly' alone")
		}
		weekday := mapWeekday(p.tokens[2])
		if weekday == "" {
			return "", fmt.Errorf("invalid weekday '%s'", p.tokens[2])
		}
		if len(p.tokens) == 3 {
			return fmt.Sprintf("0 0 * * %s", weekday), nil
		}
		minute, hour, err := p.clockAt(3)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s * * %s", minute, hour, weekday), nil

	default:
		return "", fmt.Errorf("unsupported schedule type '%s', use 'daily', 'weekly', 'hourly', or 'every N minutes/hours'", p.tokens[0])
	}
}

// clockAt reads a clock time starting at pos, skipping an optional "at"
// keyword and folding a trailing am/pm token into the time.
func (p *exprParser) clockAt(pos int) (minute, hour string, err error) {
	if p.tokens[pos] == "at" {
		pos++
		if pos >= len(p.tokens) {
			return "", "", fmt.Errorf("expected time after 'at'")
		}
	}
	timeStr := p.tokens[pos]
	if pos+1 < len(p.tokens) && isAMPMToken(p.tokens[pos+1]) {
		timeStr += p.tokens[pos+1]
		pos++
	}
	if pos+1 < len(p.tokens) {
		return "", "", fmt.Errorf("unexpected token '%s' after time", p.tokens[pos+1])
	}
	return parseClock(timeStr)
}

// parseClock converts a clock string to cron minute and hour fields.
func parseClock(timeStr string) (minute, hour string, err error) {
	switch timeStr {
	case "midnight":
		return "0", "0", nil
	case "noon":
		return "0", "12", nil
	}

	if strings.HasSuffix(timeStr, "am") || strings.HasSuffix(timeStr, "pm") {
		isPM := strings.HasSuffix(timeStr, "pm")
		timePart := strings.TrimSuffix(strings.TrimSuffix(timeStr, "am"), "pm")
		hourNum, minNum, ok := parseHourMinute(timePart)
		if !ok || hourNum < 1 || hourNum > 12 || minNum < 0 || minNum > 59 {
			return "", "", fmt.Errorf("invalid time '%s'", timeStr)
		}
		// Convert 12-hour to 24-hour format.
		if isPM {
			if hourNum != 12 {
				hourNum += 12
			}
		} else if hourNum == 12 {
			hourNum = 0
		}
		return strconv.Itoa(minNum), strconv.Itoa(hourNum), nil
	}

	if !strings.Contains(timeStr, ":") {
		return "", "", fmt.Errorf("invalid time '%s', expected HH:MM", timeStr)
	}
	hourNum, minNum, ok := parseHourMinute(timeStr)
	if !ok || hourNum < 0 || hourNum > 23 || minNum < 0 || minNum > 59 {
		return "", "", fmt.Errorf("invalid time '%s'", timeStr)
	}
	return strconv.Itoa(minNum), strconv.Itoa(hourNum), nil
}

// parseHourMinute parses HH:MM or bare HH into numeric parts.
func parseHourMinute(timePart string) (hourNum, minNum int, ok bool) {
	if strings.Contains(timePart, ":") {
		parts := strings.Split(timePart, ":")
		if len(parts) != 2 {
			return 0, 0, false
		}
		h, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, 0, false
		}
		m, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, false
		}
		return h, m, true
	}
	h, err := strconv.Atoi(timePart)
	if err != nil {
		return 0, 0, false
	}
	return h, 0, true
}

// isAMPMToken reports whether an already-lowercased token is an am/pm marker.
func isAMPMToken(token string) bool {
	return token == "am" || token == "pm"
}

// mapWeekday maps day names to cron day-of-week numbers (0=Sunday, 6=Saturday).
func mapWeekday(day string) string {
	weekdays := map[string]string{
		"sunday":    "0",
		"sun":       "0",
		"monday":    "1",
		"mon":       "1",
		"tuesday":   "2",
		"tue":       "2",
		"wednesday": "3",
		"wed":       "3",
		"thursday":  "4",
		"thu":       "4",
		"friday":    "5",
		"fri":       "5",
		"saturday":  "6",
		"sat":       "6",
	}
	return weekdays[day]
}
