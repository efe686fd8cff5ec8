// Package dates parses the date arguments accepted by history filters.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the YYYY-MM-DD layout.
const DateLayout = "2006-01-02"

var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// ParseDate parses a YYYY-MM-DD date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %q", s)
	}
	return t, nil
}

// ParseDatetime parses RFC3339, YYYY-MM-DDTHH:MM or YYYY-MM-DDTHH:MM:SS.
// Layouts without an offset are read in loc.
func ParseDatetime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("invalid datetime: empty")
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime: %q", s)
}

// ParseSince turns a CLI argument into a lower time bound:
//   - "today", "yesterday": start of that day
//   - YYYY-MM-DD: start of that day
//   - a datetime accepted by ParseDatetime
//   - a duration such as "90m" or "48h": that long before now
func ParseSince(arg string, now time.Time) (time.Time, error) {
	value := strings.ToLower(strings.TrimSpace(arg))
	loc := now.Location()

	switch value {
	case "today":
		return startOfDay(now), nil
	case "yesterday":
		return startOfDay(now).AddDate(0, 0, -1), nil
	}

	if t, err := ParseDate(value, loc); err == nil {
		return t, nil
	}
	if t, err := ParseDatetime(arg, loc); err == nil {
		return t, nil
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return now.Add(-d), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q, use YYYY-MM-DD, a datetime, a duration like 48h, or today/yesterday", arg)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
