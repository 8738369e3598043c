// Package dateparse turns human deadline input into the RFC 3339
// timestamps the server stores.
package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDeadline parses a deadline input string relative to the current
// time and returns an RFC 3339 timestamp.
//
// Supported formats:
//   - Full timestamps: "2026-09-15T17:00:00Z"
//   - Exact dates: "2026-09-15" (taken at local midnight)
//   - Keywords: "today", "tomorrow"
//   - Relative offsets: "+3d", "+2w"
//   - Day names: "monday" .. "sunday" (next occurrence)
func ParseDeadline(input string) (string, error) {
	return ParseDeadlineFrom(input, time.Now())
}

// ParseDeadlineFrom is ParseDeadline with an explicit reference time,
// for deterministic tests.
func ParseDeadlineFrom(input string, now time.Time) (string, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return "", fmt.Errorf("empty deadline input")
	}

	// Full timestamp passes through untouched.
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Format(time.RFC3339), nil
	}

	if t, err := time.ParseInLocation("2006-01-02", raw, now.Location()); err == nil {
		return t.Format(time.RFC3339), nil
	}

	input = strings.ToLower(raw)
	switch input {
	case "today":
		return atMidnight(now), nil
	case "tomorrow":
		return atMidnight(now.AddDate(0, 0, 1)), nil
	}

	// Relative offsets: +Nd, +Nw
	if strings.HasPrefix(input, "+") && len(input) >= 3 {
		suffix := input[len(input)-1]
		n, err := strconv.Atoi(input[1 : len(input)-1])
		if err == nil && n >= 0 {
			switch suffix {
			case 'd':
				return atMidnight(now.AddDate(0, 0, n)), nil
			case 'w':
				return atMidnight(now.AddDate(0, 0, n*7)), nil
			default:
				return "", fmt.Errorf("unknown relative unit %q in %q (use d or w)", string(suffix), raw)
			}
		}
	}

	// Day names: next occurrence of that weekday.
	dayMap := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}
	if target, ok := dayMap[input]; ok {
		daysAhead := (int(target) - int(now.Weekday()) + 7) % 7
		if daysAhead == 0 {
			daysAhead = 7 // always advance to next occurrence
		}
		return atMidnight(now.AddDate(0, 0, daysAhead)), nil
	}

	return "", fmt.Errorf("unrecognized deadline format: %q", raw)
}

func atMidnight(t time.Time) string {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).Format(time.RFC3339)
}
