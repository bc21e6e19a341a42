package utils

import "time"

// Constants
const (
	DATE_LAYOUT = "2006-01-02"
)

// StartOfMonth returns midnight on the first day of t's month, in t's location
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// StartOfYear returns midnight on January 1st of t's year, in t's location
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// FromMillis converts milliseconds since epoch into a time in loc
func FromMillis(ms int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc)
}

// FormatDate renders milliseconds since epoch as a calendar date in loc
func FormatDate(ms int64, loc *time.Location) string {
	return FromMillis(ms, loc).Format(DATE_LAYOUT)
}
