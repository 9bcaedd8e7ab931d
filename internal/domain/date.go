package domain

import "time"

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
}

// DateString formats t as an ISO calendar date.
func DateString(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ParseDate accepts the calendar dates and timestamps the remote service
// emits. ok is false when s matches none of them.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
