package gantt

import (
	"math"
	"strconv"
	"time"

	"github.com/mattn/go-runewidth"
)

// Bar and label layout, in screen units.
const (
	BarHeight        = 30
	BarLabelMargin   = 30
	LabelBaseline    = -3
	LabelMinTop      = 5
	OrderColumnX     = 50
	RemainingColumnX = 250
	BufferColumnX    = 375
	LabelFontSize    = 14
)

// Point is a screen-space position; y grows downwards.
type Point struct {
	X, Y float64
}

// Rect is a screen-space rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// Clip intersects r with bounds. Like the host's clipRectByRect it keeps
// zero-sized intersections and reports ok=false only when nothing is left.
// Negative widths are clipped as-is and therefore come back empty.
func (r Rect) Clip(bounds Rect) (Rect, bool) {
	x := math.Max(r.X, bounds.X)
	x2 := math.Min(r.X+r.Width, bounds.X+bounds.Width)
	y := math.Max(r.Y, bounds.Y)
	y2 := math.Min(r.Y+r.Height, bounds.Y+bounds.Height)
	if x2 < x || y2 < y {
		return Rect{}, false
	}
	return Rect{X: x, Y: y, Width: x2 - x, Height: y2 - y}, true
}

// CoordTransform maps a (time, position) data point into screen space.
type CoordTransform interface {
	Coord(t time.Time, position float64) Point
}

// CoordFunc adapts a function to CoordTransform.
type CoordFunc func(t time.Time, position float64) Point

func (f CoordFunc) Coord(t time.Time, position float64) Point { return f(t, position) }

// TextMeasurer returns the rendered width of a label.
type TextMeasurer interface {
	Width(text string) float64
}

// RuneWidthMeasurer estimates label width from the display width of the
// text, counting wide runes twice.
type RuneWidthMeasurer struct {
	FontSize float64
}

func (m RuneWidthMeasurer) Width(text string) float64 {
	// average glyph is about 0.6 of the font size
	return float64(runewidth.StringWidth(text)) * m.FontSize * 0.6
}

// Kind is the primitive type.
type Kind int

const (
	KindRect Kind = iota
	KindText
)

// Style carries the drawing attributes of a primitive. Empty strings mean
// "host default"; "transparent" is drawn as nothing.
type Style struct {
	Fill       string
	Stroke     string
	TextFill   string
	FontFamily string
	FontWeight string
	FontSize   float64
}

// Primitive is one draw instruction. Rect primitives use X, Y, Width and
// Height and may carry an overlay Text; text primitives use X, Y, Text,
// Align and VerticalAlign. Ignore is set when clipping left nothing to draw.
type Primitive struct {
	Kind          Kind
	X, Y          float64
	Width, Height float64
	Text          string
	Align         string
	VerticalAlign string
	Style         Style
	Ignore        bool
}

func clippedRect(r Rect, bounds Rect, style Style) Primitive {
	p := Primitive{Kind: KindRect, Style: style}
	c, ok := r.Clip(bounds)
	if !ok {
		p.Ignore = true
		return p
	}
	p.X, p.Y, p.Width, p.Height = c.X, c.Y, c.Width, c.Height
	return p
}

// RenderBar returns the base bar, the progress bar and the work-center
// overlay of row, each clipped to bounds. Bars left of, right of, above or
// below the plot area come back with Ignore set so the host can skip them.
func RenderBar(row Row, coords CoordTransform, bounds Rect, m TextMeasurer) []Primitive {
	pos := float64(row.Position)
	start := coords.Coord(row.StartTime, pos)
	end := coords.Coord(row.EndTime, pos)
	progress := coords.Coord(row.ProgressTime, pos)

	length := end.X - start.X
	y := start.Y - BarHeight

	label := row.WorkCenter + " "
	text := ""
	if length > m.Width(label)+BarLabelMargin {
		text = label
	}

	bar := Rect{X: start.X, Y: y, Width: length, Height: BarHeight}
	overlay := clippedRect(bar, bounds, Style{
		Fill:       "transparent",
		Stroke:     "transparent",
		TextFill:   "#fff",
		FontFamily: "Helvetica",
		FontSize:   LabelFontSize,
	})
	overlay.Text = text
	overlay.Align = "center"
	overlay.VerticalAlign = "middle"

	return []Primitive{
		clippedRect(bar, bounds, Style{Fill: ColorGrey}),
		clippedRect(Rect{X: start.X, Y: y, Width: progress.X - start.X, Height: BarHeight}, bounds, Style{Fill: row.StatusColor.Fill()}),
		overlay,
	}
}

// RenderLabel returns the order number, remaining minutes and buffer texts
// of row, or nil when the row's baseline has scrolled above the plot area.
func RenderLabel(row Row, coords CoordTransform, bounds Rect) []Primitive {
	y := coords.Coord(time.Time{}, float64(row.Position)).Y
	if y < bounds.Y+LabelMinTop {
		return nil
	}
	bufferFill := "green"
	if row.BufferMinutes <= 0 {
		bufferFill = "red"
	}
	text := func(x float64, s, align string, style Style) Primitive {
		style.FontFamily = "Helvetica"
		style.FontSize = LabelFontSize
		return Primitive{Kind: KindText, X: x, Y: y + LabelBaseline, Text: s, Align: align, VerticalAlign: "bottom", Style: style}
	}
	return []Primitive{
		text(OrderColumnX, row.OrderNumber+" ", "left", Style{FontWeight: "bold"}),
		text(RemainingColumnX, formatMinutes(row.RemainingMinutes), "center", Style{FontWeight: "normal"}),
		text(BufferColumnX, formatMinutes(row.BufferMinutes), "center", Style{FontWeight: "normal", TextFill: bufferFill}),
	}
}

func formatMinutes(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " mins"
}

// HighlightRects returns the full-height bands of the given windows,
// clipped to bounds. Windows outside the plot area are dropped.
func HighlightRects(windows []Window, coords CoordTransform, bounds Rect) []Rect {
	var out []Rect
	for _, w := range windows {
		from := coords.Coord(w.From, 0).X
		to := coords.Coord(w.To, 0).X
		r, ok := Rect{X: from, Y: bounds.Y, Width: to - from, Height: bounds.Height}.Clip(bounds)
		if ok && r.Width > 0 {
			out = append(out, r)
		}
	}
	return out
}
