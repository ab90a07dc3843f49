package journal

import "time"

// timeNow is a package-level variable for testability.
// Tests can replace this to control the timestamp given to undated entries.
var timeNow = time.Now

// timeLayouts are tried in order when reading the date column. RFC 3339
// covers what this package writes. The space-separated layouts, with or
// without an offset, cover rows written by other tools.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// storedLayout is RFC 3339 with a fixed-width fraction, so dates written
// in the same zone sort correctly as text.
const storedLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.Format(storedLayout)
}

func parseTime(v string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Local(), nil
		}
	}
	return time.Time{}, &time.ParseError{Layout: time.RFC3339Nano, Value: v}
}
