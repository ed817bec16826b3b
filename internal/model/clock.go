package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ClockLayout   = "15:04"
	MidnightClock = "00:00"
)

var ErrInvalidClock = errors.New("model: invalid HH:MM time")

// ParseClock parses a 24-hour HH:MM value into minutes past midnight.
func ParseClock(raw string) (int, error) {
	tm, err := time.Parse(ClockLayout, strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, raw)
	}
	return tm.Hour()*60 + tm.Minute(), nil
}

// FormatClock renders minutes past midnight as HH:MM, wrapping at 24h.
func FormatClock(minutes int) string {
	minutes %= 24 * 60
	if minutes < 0 {
		minutes += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// SpanHours returns the hours between start and end. An end earlier than
// the start is read as crossing midnight; equal times give zero. Missing
// values are read as midnight.
func SpanHours(start, end string) (float64, error) {
	if strings.TrimSpace(start) == "" {
		start = MidnightClock
	}
	if strings.TrimSpace(end) == "" {
		end = MidnightClock
	}
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	d := e - s
	if d < 0 {
		d += 24 * 60
	}
	return float64(d) / 60, nil
}

// ClockOf returns the HH:MM wall clock of t in its own location.
func ClockOf(t time.Time) string {
	return t.Format(ClockLayout)
}
