package utils

import "time"

// NowUTC returns the current time in UTC with millisecond precision, the
// resolution timestamps are stored with
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// FormatTimestamp renders t the way timestamps are stored and sorted
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a stored timestamp. Values without a zone offset
// are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}
	if local, lerr := time.ParseInLocation(zonelessLayout, s, time.UTC); lerr == nil {
		return local, nil
	}
	return time.Time{}, err
}

const zonelessLayout = "2006-01-02T15:04:05.999999999"

// TimestampLayout has fixed width so lexical order equals time order
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
