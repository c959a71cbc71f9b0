// utils/dates.go
package utils

import "time"

// ISODate is the calendar-date layout used as the key for sales and
// daily summaries.
const ISODate = "2006-01-02"

// DisplayDate is the human-readable layout shown on reports.
const DisplayDate = "January 2, 2006"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// ParseISODate validates and parses a yyyy-mm-dd string.
func ParseISODate(s string) (time.Time, error) {
	return time.Parse(ISODate, s)
}
