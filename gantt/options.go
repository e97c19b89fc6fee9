package gantt

import "time"

// DefaultMaxValueSpan is the number of rows visible at once.
const DefaultMaxValueSpan = 15

// Options is everything a host needs besides the per-row callbacks: the
// time-axis range, the "now" mark line, shaded non-working days and the
// value-axis zoom window.
type Options struct {
	AxisMin     time.Time
	AxisMax     time.Time
	MarkLine    time.Time
	Highlights  []Window
	ValueMin    float64
	ValueMax    float64
	ZoomStart   int
	ZoomEnd     int
	SplitNumber int
}

// AxisRange returns the default time-axis range around now: five days back
// on Monday to Wednesday so the previous week stays visible, three days
// back otherwise, and always five days ahead.
func AxisRange(now time.Time) (from, to time.Time) {
	back := 3
	switch now.Weekday() {
	case time.Monday, time.Tuesday, time.Wednesday:
		back = 5
	}
	y, m, d := now.Date()
	return time.Date(y, m, d-back, 0, 0, 0, 0, now.Location()),
		time.Date(y, m, d+5, 0, 0, 0, 0, now.Location())
}

// MarkLine returns the business-adjusted "now" of the first row. When that
// instant is not on today's date the line moves to the end of the day
// before it.
func MarkLine(rows []Row, now time.Time) time.Time {
	if len(rows) == 0 {
		return time.Time{}
	}
	mark := rows[0].NowTimestamp
	if SameDay(mark, now) {
		return mark
	}
	y, m, d := mark.Date()
	return time.Date(y, m, d-1, 23, 59, 59, 0, mark.Location())
}

// ValueWindow returns the initial zoom window over n rows showing at most
// span of them, anchored at the top of the chart.
func ValueWindow(n, span int) (start, end int) {
	if n < span {
		return 0, span
	}
	return n - span, n
}

// NewOptions derives the chart options of one render.
func NewOptions(rows []Row, cal Calendar, now time.Time, span, splits int) Options {
	from, to := AxisRange(now)
	start, end := ValueWindow(len(rows), span)
	return Options{
		AxisMin:     from,
		AxisMax:     to,
		MarkLine:    MarkLine(rows, now),
		Highlights:  cal.Windows(),
		ValueMin:    0,
		ValueMax:    float64(len(rows)),
		ZoomStart:   start,
		ZoomEnd:     end,
		SplitNumber: splits,
	}
}

// DayTicks returns every midnight in [from, to].
func DayTicks(from, to time.Time) []time.Time {
	var ticks []time.Time
	day := TruncateDay(from)
	if day.Before(from) {
		day = day.AddDate(0, 0, 1)
	}
	for ; !day.After(to); day = day.AddDate(0, 0, 1) {
		ticks = append(ticks, day)
	}
	return ticks
}
