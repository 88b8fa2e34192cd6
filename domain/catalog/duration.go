package catalog

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Duration is a coarse play-time bucket.
type Duration string

const (
	DurationShort  Duration = "short"
	DurationMedium Duration = "medium"
	DurationLong   Duration = "long"
	DurationEpic   Duration = "epic"
)

// AllDurations lists the buckets from shortest to longest.
var AllDurations = []Duration{DurationShort, DurationMedium, DurationLong, DurationEpic}

var durationLabels = map[Duration]string{
	DurationShort:  "Short (Under 30 min)",
	DurationMedium: "Medium (30-60 min)",
	DurationLong:   "Long (61-120 min)",
	DurationEpic:   "Epic (2+ hours)",
}

// Label returns the human readable bucket name.
func (d Duration) Label() string {
	return durationLabels[d]
}

// Valid reports whether d is one of the known buckets.
func (d Duration) Valid() bool {
	_, ok := durationLabels[d]
	return ok
}

// ParseDuration accepts either the bucket value or its label.
func ParseDuration(s string) (Duration, bool) {
	s = strings.TrimSpace(s)
	for _, d := range AllDurations {
		if strings.EqualFold(string(d), s) || strings.EqualFold(d.Label(), s) {
			return d, true
		}
	}
	return "", false
}

var minutesPattern = regexp.MustCompile(`\d+`)

// ClassifyDuration buckets a free-text play time such as "40-70 min" by the
// largest number it contains. The boolean is false when the text has no digits.
//
//	short  < 30
//	medium 30..60
//	long   61..120
//	epic   > 120
func ClassifyDuration(playTime string) (Duration, bool) {
	matches := minutesPattern.FindAllString(playTime, -1)
	if len(matches) == 0 {
		return "", false
	}

	longest := 0
	for _, m := range matches {
		n, err := strconv.Atoi(m)
		if err != nil {
			// only overflow can fail here
			n = math.MaxInt
		}
		if n > longest {
			longest = n
		}
	}

	switch {
	case longest < 30:
		return DurationShort, true
	case longest <= 60:
		return DurationMedium, true
	case longest <= 120:
		return DurationLong, true
	default:
		return DurationEpic, true
	}
}

// Matches reports whether playTime falls into d. Text without digits
// matches no bucket.
func (d Duration) Matches(playTime string) bool {
	bucket, ok := ClassifyDuration(playTime)
	return ok && bucket == d
}
