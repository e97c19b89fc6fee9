package gantt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// DefaultWeekendScanDays is how far around today weekends are generated.
const DefaultWeekendScanDays = 30

// Calendar is the list of non-working days used for duration correction.
// Each entry is midnight of a declared holiday or a weekend day. Entries are
// not de-duplicated: a declared holiday on a weekend counts twice.
type Calendar []time.Time

// Window is the full-day span of one calendar entry, for background shading.
type Window struct {
	From time.Time
	To   time.Time
}

// ParseHolidays parses a comma separated list of yyyymmdd dates. Blank
// entries are skipped; a list with no entries yields ErrMissingCalendarData.
func ParseHolidays(raw string, loc *time.Location) ([]time.Time, error) {
	var out []time.Time
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		t, err := ParseTimestamp(part+"000000", loc)
		if err != nil {
			return nil, fmt.Errorf("holiday %q: %w", part, err)
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, ErrMissingCalendarData
	}
	return out, nil
}

// Weekends returns, for every Saturday in [now-lookback, now+lookahead]
// days, that Saturday and the following Sunday at midnight.
func Weekends(now time.Time, lookback, lookahead int) []time.Time {
	var out []time.Time
	y, m, d := now.Date()
	for off := -lookback; off <= lookahead; off++ {
		day := time.Date(y, m, d+off, 0, 0, 0, 0, now.Location())
		if day.Weekday() == time.Saturday {
			out = append(out, day, time.Date(y, m, d+off+1, 0, 0, 0, 0, now.Location()))
		}
	}
	return out
}

// BuildCalendar concatenates the declared holidays of raw with the weekends
// around now. A missing holiday list is not an error; a malformed one is.
func BuildCalendar(raw string, lookback, lookahead int, now time.Time, loc *time.Location) (Calendar, error) {
	if loc == nil {
		loc = time.Local
	}
	holidays, err := ParseHolidays(raw, loc)
	if err != nil && !errors.Is(err, ErrMissingCalendarData) {
		return nil, err
	}
	return Calendar(append(holidays, Weekends(now.In(loc), lookback, lookahead)...)), nil
}

// CountBetween counts entries c with start <= c <= end. The bounds are not
// reordered: start after end yields 0.
func (c Calendar) CountBetween(start, end time.Time) int {
	return lo.CountBy(c, func(t time.Time) bool {
		return !t.Before(start) && !t.After(end)
	})
}

// Windows expands every entry into its 00:00:00 - 23:59:59 span.
func (c Calendar) Windows() []Window {
	return lo.Map(c, func(t time.Time, _ int) Window {
		y, m, d := t.Date()
		return Window{
			From: time.Date(y, m, d, 0, 0, 0, 0, t.Location()),
			To:   time.Date(y, m, d, 23, 59, 59, 0, t.Location()),
		}
	})
}
