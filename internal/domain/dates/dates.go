// Package dates handles the calendar dates stored in the ledger and the
// program headers.
//
// Dates are civil days: they are normalized to midnight UTC so day
// arithmetic never crosses a DST boundary.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the single encoding used when writing dates.
const Layout = "02/01/2006"

// ErrInvalidDate is returned when no accepted layout matches.
var ErrInvalidDate = errors.New("invalid date")

// Accepted layouts, tried in order. Day-first wins over month-first for
// ambiguous values such as 03/04/2025.
var layouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2/1/2006",
	"1/2/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

// Sentinel stands in for "never assigned".
var Sentinel = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Parse reads a date in any accepted layout.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Day truncates t to its civil day at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Format writes a date in Layout.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// IsSentinel reports whether t is the "never assigned" date.
func IsSentinel(t time.Time) bool {
	return !t.After(Sentinel)
}

// Display formats t, or "none" for the sentinel.
func Display(t time.Time) string {
	if IsSentinel(t) {
		return "none"
	}
	return Format(t)
}

// WeeksBetween returns the fractional number of weeks from since to until.
func WeeksBetween(since, until time.Time) float64 {
	days := Day(until).Sub(Day(since)).Hours() / 24
	return days / 7
}
