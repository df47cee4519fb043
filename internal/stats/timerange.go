// Package stats provides calendar helpers shared by the ingestion pipeline
// and the deck filter engine.
package stats

import (
	"fmt"
	"strings"
	"time"
)

// TimeRange represents an inclusive date range at day granularity.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls inside the range. Both bounds are
// inclusive: a deck dated exactly on Start or End is in range.
func (tr TimeRange) Contains(d time.Time) bool {
	day := dateOnly(d)
	return !day.Before(dateOnly(tr.Start)) && !day.After(dateOnly(tr.End))
}

// FormatPeriod returns a human-readable description of the range.
func (tr TimeRange) FormatPeriod() string {
	return fmt.Sprintf("%s to %s", tr.Start.Format("2006-01-02"), tr.End.Format("2006-01-02"))
}

// ParseMonth parses a "YYYY/MM" or "YYYY-MM" month string to the first day
// of that month in UTC. A trailing day component is ignored.
func ParseMonth(s string) (time.Time, error) {
	sep := "/"
	if strings.Contains(s, "-") {
		sep = "-"
	}
	parts := strings.Split(s, sep)
	if len(parts) < 2 {
		return time.Time{}, fmt.Errorf("invalid month %q: want YYYY/MM", s)
	}

	var year, month int
	if _, err := fmt.Sscanf(parts[0], "%d", &year); err != nil {
		return time.Time{}, fmt.Errorf("invalid year in %q: %w", s, err)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &month); err != nil {
		return time.Time{}, fmt.Errorf("invalid month in %q: %w", s, err)
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("invalid month %d in %q", month, s)
	}

	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
}

// FormatMonth renders a month as "YYYY/MM", the form used in source listing
// URLs and ledger listing identifiers.
func FormatMonth(month time.Time) string {
	return month.Format("2006/01")
}

// MonthsBetween returns the first day of every calendar month from start to
// end, inclusive on both ends. Returns nil when end precedes start's month.
func MonthsBetween(start, end time.Time) []time.Time {
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	var months []time.Time
	for !cur.After(last) {
		months = append(months, cur)
		cur = cur.AddDate(0, 1, 0)
	}
	return months
}

// GraceStart returns the month containing now minus grace days. Used when no
// start month is given, so automated runs re-cover the tail of the previous
// month.
func GraceStart(now time.Time, graceDays int) time.Time {
	d := now.AddDate(0, 0, -graceDays)
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
