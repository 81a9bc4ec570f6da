package allocator

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
	ShortClock  = "15:04"
)

// NormalizeClock turns HH:MM or HH:MM:SS into zero-padded HH:MM:SS.
func NormalizeClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	layout := ClockLayout
	if len(s) == len(ShortClock) {
		layout = ShortClock
	}
	t, err := time.Parse(layout, s)
	if err != nil || len(s) != len(layout) {
		return "", fmt.Errorf("invalid clock time %q", s)
	}
	return t.Format(ClockLayout), nil
}

// TrimClock drops the seconds from an HH:MM:SS value.
func TrimClock(s string) string {
	if len(s) > len(ShortClock) {
		return s[:len(ShortClock)]
	}
	return s
}

func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// Weekday returns 0 (Sunday) to 6 (Saturday) for a calendar date. The date is
// a civil date, so no time zone applies.
func Weekday(date string) (int, error) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

// At places clock on date in UTC. Only used to compare times on the same date,
// where the zone does not matter.
func At(date, clock string) (time.Time, error) {
	normalized, err := NormalizeClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(DateLayout+" "+ClockLayout, date+" "+normalized)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// RequestMoment is the instant advance notice is measured to: midnight of date
// in loc, or date at clock in loc when exact is set.
func RequestMoment(date, clock string, loc *time.Location, exact bool) (time.Time, error) {
	if !exact {
		t, err := time.ParseInLocation(DateLayout, date, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
		}
		return t, nil
	}

	normalized, err := NormalizeClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+normalized, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// Until reports how far target lies ahead of now in hours and days. Negative
// values mean target is in the past.
func Until(now, target time.Time) (hours, days float64) {
	d := target.Sub(now)
	return d.Hours(), d.Hours() / 24
}
