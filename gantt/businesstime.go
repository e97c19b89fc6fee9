package gantt

import (
	"math"
	"time"
)

const (
	// ShiftStartHour is the first on-shift hour. Earlier clock times collapse
	// to midnight.
	ShiftStartHour = 7

	// ShiftStretch maps the 9-hour shift onto the 24-hour display axis.
	ShiftStretch = 2.66666
)

// AdjustBusinessTime compresses t onto the business-day axis: clock time
// before ShiftStartHour becomes midnight, later time is stretched by
// ShiftStretch and rounded to whole hours. The result keeps t's calendar day
// and location; stretched values past 24h roll into the next day.
func AdjustBusinessTime(t time.Time) time.Time {
	shift := 0
	if h := t.Hour(); h >= ShiftStartHour {
		shift = h - ShiftStartHour
	}
	scaled := math.Round(ShiftStretch*float64(shift) + float64(t.Minute())/60)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, int(scaled)*3600, 0, t.Location())
}
