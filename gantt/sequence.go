package gantt

import "sort"

// Sequence orders rows by end time, then start time, both descending, and
// rewrites Position to the final index. Ties keep their input order.
//
// The plot's value axis grows upwards while rows are listed top-down, so a
// descending sort shows the earliest orders at the top of the chart.
func Sequence(rows []Row) []Row {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.EndTime.Equal(b.EndTime) {
			return a.EndTime.After(b.EndTime)
		}
		return a.StartTime.After(b.StartTime)
	})
	for i := range rows {
		rows[i].Position = i
	}
	return rows
}
