package gantt

// MinutesPerDay is subtracted or added once per non-working day.
const MinutesPerDay = 24 * 60

// AdjustDurations removes calendar dead time from the remaining duration and
// the buffer of r.
//
// The remaining-duration range of a not-started order (status 401) runs from
// its business start time to its end time; every other order counts from
// the day of its absolute progress time. The buffer range spans progress day
// and today in whichever order they fall. A late (RED) order gains the dead
// time back; any other order loses it. Before its start day an order has no
// buffer at all.
func AdjustDurations(r *Row, cal Calendar) {
	progressDay := TruncateDay(r.AbsoluteProgressTime)
	today := TruncateDay(r.NowTime)
	startDay := TruncateDay(r.StartTime)

	var count int
	if r.StatusCode == NotStartedCode {
		count = cal.CountBetween(r.StartTime, r.EndTime)
	} else {
		count = cal.CountBetween(progressDay, r.EndTime)
	}
	r.RemainingMinutes -= float64(count * MinutesPerDay)

	from, to := progressDay, today
	if to.Before(from) {
		from, to = to, from
	}
	count = cal.CountBetween(from, to)
	if r.StatusColor == Red {
		r.BufferMinutes += float64(count * MinutesPerDay)
	} else {
		r.BufferMinutes -= float64(count * MinutesPerDay)
	}

	if today.Before(startDay) {
		r.BufferMinutes = 0
	}
}

// AdjustAll applies AdjustDurations to every row in place.
func AdjustAll(rows []Row, cal Calendar) {
	for i := range rows {
		AdjustDurations(&rows[i], cal)
	}
}
