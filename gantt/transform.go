package gantt

import "time"

// LinearTransform maps the time axis linearly onto the width of Bounds and
// the value axis onto its height. Value ValueMin sits on the bottom edge,
// ValueMax on the top edge.
type LinearTransform struct {
	Bounds   Rect
	TimeMin  time.Time
	TimeMax  time.Time
	ValueMin float64
	ValueMax float64
}

func (l LinearTransform) Coord(t time.Time, position float64) Point {
	var x, y float64
	if span := l.TimeMax.Sub(l.TimeMin); span > 0 {
		x = float64(t.Sub(l.TimeMin)) / float64(span) * l.Bounds.Width
	}
	if span := l.ValueMax - l.ValueMin; span > 0 {
		y = (position - l.ValueMin) / span * l.Bounds.Height
	}
	return Point{X: l.Bounds.X + x, Y: l.Bounds.Y + l.Bounds.Height - y}
}
