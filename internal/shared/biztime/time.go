// Package biztime provides time utilities for business date boundaries.
// All storage and transport use UTC. Quota windows (votes per day) and the
// monthly likes reset are computed from UTC day/month boundaries, matching
// the database's date_trunc behavior on a UTC-configured server.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns the start of day (00:00:00) in UTC for t.
// Used as the lower bound of the "votes today" quota window.
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// TruncateToMonthUTC returns the first instant of t's month in UTC.
// The monthly reset guard compares truncated months, never raw timestamps.
func TruncateToMonthUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}
