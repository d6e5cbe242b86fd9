package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultLength is the event length used when the form's length field is
	// left empty.
	DefaultLength = "1h"
)

var (
	lengthPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	clockPattern  = regexp.MustCompile(`^(\d{1,2})(?::?(\d{2}))?\s*(am|pm)?$`)
	unitMap       = map[string]time.Duration{
		"m":       time.Minute,
		"min":     time.Minute,
		"mins":    time.Minute,
		"minute":  time.Minute,
		"minutes": time.Minute,
		"h":       time.Hour,
		"hr":      time.Hour,
		"hrs":     time.Hour,
		"hour":    time.Hour,
		"hours":   time.Hour,
		"d":       24 * time.Hour,
		"day":     24 * time.Hour,
		"days":    24 * time.Hour,
	}
)

// ParseLength parses a human-friendly event length (for example "45m", "2h",
// or "1h30m") and returns the duration along with its compact representation.
// An empty input yields DefaultLength.
func ParseLength(input string) (time.Duration, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		trimmed = DefaultLength
	}

	remaining := strings.ToLower(trimmed)
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := lengthPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid length segment %q", strings.TrimSpace(remaining))
		}
		valueStr := matches[1]
		unitStr := matches[2]

		value, err := strconv.ParseInt(valueStr, 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid length value %q: %w", valueStr, err)
		}
		base, ok := unitMap[unitStr]
		if !ok {
			return 0, "", fmt.Errorf("unsupported length unit %q", unitStr)
		}
		total += time.Duration(value) * base

		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("length must be greater than zero")
	}

	return total, FormatLength(total), nil
}

// FormatLength renders a duration using day/hour/minute tokens.
func FormatLength(d time.Duration) string {
	if d < time.Minute {
		return "0m"
	}

	type unit struct {
		label string
		value time.Duration
	}
	units := []unit{
		{"d", 24 * time.Hour},
		{"h", time.Hour},
		{"m", time.Minute},
	}

	var parts []string
	remaining := d
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	return strings.Join(parts, "")
}

// ParseClock reads a time of day such as "9", "930", "14:30" or "2:15pm" and
// returns it on day's date.
func ParseClock(day time.Time, input string) (time.Time, error) {
	raw := strings.ToLower(strings.TrimSpace(input))
	m := clockPattern.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, fmt.Errorf("invalid time %q", input)
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	switch m[3] {
	case "am":
		if hour < 1 || hour > 12 {
			return time.Time{}, fmt.Errorf("invalid time %q", input)
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return time.Time{}, fmt.Errorf("invalid time %q", input)
		}
		if hour != 12 {
			hour += 12
		}
	}
	if hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid time %q", input)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), nil
}

// FormatClock renders t as a 24-hour "15:04" clock.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}
