package service

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var dateLayouts = []string{
	dateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// parseDate reads an ISO-8601 calendar date or date-time and truncates it to
// the calendar day in UTC.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return calendarDay(t), true
		}
	}
	return time.Time{}, false
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders the calendar day of t.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
