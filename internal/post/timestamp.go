package post

import (
	"strings"
	"time"
)

// legacyLayout is the classic X API format, e.g. "Mon Jan 26 05:48:43 +0000 2026".
const legacyLayout = time.RubyDate

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts ISO-8601 (with or without zone, naive values are
// UTC) and the legacy textual format. The boolean is false when the value
// cannot be parsed.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), true
		}
	}
	if ts, err := time.Parse(legacyLayout, value); err == nil {
		return ts.UTC(), true
	}
	return time.Time{}, false
}
