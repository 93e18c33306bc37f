// Package dateutil provides calendar-date and wall-clock string helpers.
//
// The scheduling domain stores dates as "YYYY-MM-DD" and times as "HH:MM"
// strings end to end; nothing is ever converted to or from UTC. All helpers
// therefore work on local calendar fields only, so a date survives a
// format/parse round trip on any host timezone.
package dateutil

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the calendar-date wire format
	DateLayout = "2006-01-02"
	// TimeLayout is the wall-clock wire format
	TimeLayout = "15:04"
)

// FormatDate renders the local calendar day of t as "YYYY-MM-DD"
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), t.Month(), t.Day())
}

// ParseDate parses a "YYYY-MM-DD" string into a local-midnight time.Time
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// IsValidDateString reports whether s is a valid "YYYY-MM-DD" date
func IsValidDateString(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// IsValidTimeString reports whether s is a valid "HH:MM" wall-clock time
func IsValidTimeString(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil && len(s) == 5
}

// AddDays returns the date n calendar days after s (n may be negative)
func AddDays(s string, n int) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// Compare orders two date strings, returning -1, 0 or 1. Zero-padded ISO
// ordering makes the lexicographic comparison equivalent to chronological.
func Compare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Today returns the current local calendar day
func Today() string {
	return FormatDate(time.Now())
}

// NowTime returns the current local wall-clock time as "HH:MM"
func NowTime() string {
	return time.Now().Format(TimeLayout)
}

// DayOfWeek returns the day of week of a date string, 0=Sunday..6=Saturday
func DayOfWeek(s string) (int, error) {
	t, err := ParseDate(s)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

// NextWeekday returns the first occurrence of wd strictly after the given
// date. A Tuesday input with wd=Tuesday yields the following Tuesday.
func NextWeekday(s string, wd time.Weekday) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	days := (int(wd) - int(t.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return FormatDate(t.AddDate(0, 0, days)), nil
}
