package availability

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date wire format used for every date this
// package accepts or returns.
const DateLayout = "2006-01-02"

// ParseDate reads a calendar date. Full RFC3339 timestamps are accepted and
// reduced to the calendar date in their own offset, so a stored
// "2024-03-10T00:00:00+07:00" stays on the 10th.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("parse date: empty value")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return Day(t), nil
}

// Day drops the clock part of t and pins it to UTC midnight of the same
// calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysInRange counts the calendar dates in the inclusive range [start, end].
// It returns 0 when end is before start.
func DaysInRange(start, end time.Time) int {
	s, e := Day(start), Day(end)
	if e.Before(s) {
		return 0
	}
	n := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n
}
