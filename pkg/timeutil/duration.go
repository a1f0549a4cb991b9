// Package timeutil parses and formats visit lengths such as "90m" or "1h30m".
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultLength is the visit length used when none is provided.
	DefaultLength = "1h"
	// MaxLength keeps a visit inside a single day.
	MaxLength = 24*time.Hour - time.Minute
)

var (
	lengthPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
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
	}
)

// ParseLength parses a visit length made of hour and minute segments, for
// example "45m", "2h" or "1h30m", and returns it with its canonical label.
// An empty input means DefaultLength.
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
			return 0, "", fmt.Errorf("timeutil: invalid length segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("timeutil: invalid length value %q: %w", matches[1], err)
		}
		unit, ok := unitMap[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("timeutil: unsupported length unit %q", matches[2])
		}
		total += time.Duration(value) * unit
		remaining = remaining[len(matches[0]):]
	}

	switch {
	case total <= 0:
		return 0, "", fmt.Errorf("timeutil: length must be greater than zero")
	case total > MaxLength:
		return 0, "", fmt.Errorf("timeutil: length %s does not fit in one day", FormatLength(total))
	}
	return total, FormatLength(total), nil
}

// FormatLength renders d as hours and minutes, dropping seconds.
func FormatLength(d time.Duration) string {
	d = d.Truncate(time.Minute)
	if d <= 0 {
		return "0m"
	}
	h := d / time.Hour
	m := (d - h*time.Hour) / time.Minute
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%dm", h, m)
}

// Minutes reports d in whole minutes.
func Minutes(d time.Duration) int {
	return int(d / time.Minute)
}
