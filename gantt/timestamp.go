package gantt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimestampMarker is the field-id substring that marks timestamp fields.
const TimestampMarker = "_TIMESTAMP"

// ParseTimestamp parses the fixed-width yyyymmddhhmmss layout in loc. The
// date must round-trip: month 13 or February 30 are rejected instead of
// being normalized into the following month.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) != 14 {
		return time.Time{}, fmt.Errorf("%w: %q is not yyyymmddhhmmss", ErrMalformedTimestamp, s)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return time.Time{}, fmt.Errorf("%w: %q has non-digit characters", ErrMalformedTimestamp, s)
		}
	}
	var parts [6]int
	bounds := [7]int{0, 4, 6, 8, 10, 12, 14}
	for i := range parts {
		parts[i], _ = strconv.Atoi(s[bounds[i]:bounds[i+1]])
	}
	if parts[3] > 23 || parts[4] > 59 || parts[5] > 59 {
		return time.Time{}, fmt.Errorf("%w: %q has an invalid time of day", ErrMalformedTimestamp, s)
	}
	if loc == nil {
		loc = time.Local
	}
	t := time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], 0, loc)
	// Wall-clock gaps (DST) may shift the hour; only the date must round-trip.
	if y, mo, d := t.Date(); y != parts[0] || int(mo) != parts[1] || d != parts[2] {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid date", ErrMalformedTimestamp, s)
	}
	return t, nil
}

// TruncateDay returns midnight of t's calendar day in t's location.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
