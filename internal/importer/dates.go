package importer

import (
	"time"
)

// Accepted date layouts, tried in order. Layouts without a zone are parsed in
// server-local time, matching how the host interprets operator-supplied dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822,
}

// ParseFlexibleDate attempts a permissive parse of an operator-supplied date
// string. Returns false when no known layout matches.
func ParseFlexibleDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
