package main

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"strings"
	"time"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"gantt2svg/gantt"
)

// renderPNG rasterizes a frame with gonum/plot. The time axis and the day
// grid come from plot; bars, labels, highlights and the mark line are drawn
// by ganttPlotter through the same gantt primitives the SVG output uses.
func renderPNG(w io.Writer, frame *gantt.Frame, config Config) error {
	width := vg.Length(config.Layout.Width)
	height := vg.Length(config.Layout.Height)
	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(72))
	dc := draw.New(img)

	if bg, ok := gantt.ParseColor(config.Colors.Background); ok {
		fillScreenRect(dc, float64(height), gantt.Rect{Width: float64(width), Height: float64(height)}, bg)
	}

	p, err := newGanttPlot(frame, config)
	if err != nil {
		return err
	}
	p.Draw(draw.Crop(dc,
		vg.Length(config.Layout.MarginLeft), -vg.Length(config.Layout.MarginRight),
		vg.Length(config.Layout.MarginBottom), -vg.Length(config.Layout.MarginTop)))
	drawPNGHeadings(dc, float64(height), config)

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("error writing PNG: %w", err)
	}
	return nil
}

// newGanttPlot sets up the axes of one frame: unix seconds on x, row
// positions on y limited to the zoom window.
func newGanttPlot(frame *gantt.Frame, config Config) (*plot.Plot, error) {
	axisColor, ok := gantt.ParseColor(config.Colors.Axis)
	if !ok {
		return nil, fmt.Errorf("invalid axis color %q", config.Colors.Axis)
	}
	loc := frame.Options.AxisMin.Location()

	p := plot.New()
	if c, ok := gantt.ParseColor(config.Colors.Plot); ok {
		p.BackgroundColor = c
	}
	p.X.Min = float64(frame.Options.AxisMin.Unix())
	p.X.Max = float64(frame.Options.AxisMax.Unix())
	p.Y.Min = float64(frame.Options.ZoomStart)
	p.Y.Max = float64(frame.Options.ZoomEnd)
	p.X.Color = axisColor
	p.X.Tick.Color = axisColor
	p.X.Tick.Label.Color = axisColor
	p.X.Tick.Marker = plot.TimeTicks{
		Ticker: dailyTicker{loc: loc, format: config.Timeline.DateFormat},
		Format: config.Timeline.DateFormat,
		Time:   plot.UnixTimeIn(loc),
	}
	p.HideY()

	grid := plotter.NewGrid()
	grid.Horizontal.Width = 0
	if c, ok := gantt.ParseColor(config.Colors.Grid); ok {
		grid.Vertical.Color = c
	}
	p.Add(grid, &ganttPlotter{frame: frame, config: config, height: float64(config.Layout.Height)})
	return p, nil
}

// dailyTicker puts one major tick on every midnight of the axis range.
type dailyTicker struct {
	loc    *time.Location
	format string
}

func (d dailyTicker) Ticks(min, max float64) []plot.Tick {
	from := time.Unix(int64(min), 0).In(d.loc)
	to := time.Unix(int64(max), 0).In(d.loc)
	var ticks []plot.Tick
	for _, day := range gantt.DayTicks(from, to) {
		ticks = append(ticks, plot.Tick{Value: float64(day.Unix()), Label: day.Format(d.format)})
	}
	return ticks
}

// ganttPlotter draws the rows of a frame. gantt primitives use screen
// coordinates (y grows downward), vg uses y growing upward, so every y is
// flipped against the image height.
type ganttPlotter struct {
	frame  *gantt.Frame
	config Config
	height float64
}

var _ plot.Plotter = (*ganttPlotter)(nil)

func (g *ganttPlotter) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	coords := gantt.CoordFunc(func(t time.Time, position float64) gantt.Point {
		return gantt.Point{X: float64(trX(float64(t.Unix()))), Y: g.height - float64(trY(position))}
	})
	bounds := gantt.Rect{
		X:      float64(c.Min.X),
		Y:      g.height - float64(c.Max.Y),
		Width:  float64(c.Max.X - c.Min.X),
		Height: float64(c.Max.Y - c.Min.Y),
	}

	if hl, ok := gantt.ParseColor(g.config.Colors.Highlight); ok {
		for _, r := range gantt.HighlightRects(g.frame.Options.Highlights, coords, bounds) {
			fillScreenRect(c, g.height, r, hl)
		}
	}

	if mark := g.frame.Options.MarkLine; !mark.IsZero() {
		x := coords.Coord(mark, 0).X
		if clr, ok := gantt.ParseColor(g.config.Colors.MarkLine); ok && x >= bounds.X && x <= bounds.X+bounds.Width {
			c.StrokeLine2(draw.LineStyle{Color: clr, Width: vg.Points(2)},
				vg.Length(x), c.Min.Y, vg.Length(x), c.Max.Y)
		}
	}

	measurer := styleMeasurer{style: primitiveTextStyle(gantt.Style{FontSize: gantt.LabelFontSize}, "center", "middle")}
	for _, row := range g.frame.VisibleRows() {
		for _, p := range gantt.RenderBar(row, coords, bounds, measurer) {
			drawPNGPrimitive(c, g.height, p)
		}
		for _, p := range gantt.RenderLabel(row, coords, bounds) {
			drawPNGPrimitive(c, g.height, p)
		}
	}
}

func drawPNGPrimitive(c draw.Canvas, height float64, p gantt.Primitive) {
	if p.Ignore {
		return
	}
	switch p.Kind {
	case gantt.KindRect:
		if fill, ok := gantt.ParseColor(p.Style.Fill); ok {
			fillScreenRect(c, height, gantt.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}, fill)
		}
		if p.Text != "" && p.Width > 0 {
			pt := vg.Point{X: vg.Length(p.X + p.Width/2), Y: vg.Length(height - (p.Y + p.Height/2))}
			c.FillText(primitiveTextStyle(p.Style, p.Align, p.VerticalAlign), pt, p.Text)
		}
	case gantt.KindText:
		pt := vg.Point{X: vg.Length(p.X), Y: vg.Length(height - p.Y)}
		c.FillText(primitiveTextStyle(p.Style, p.Align, p.VerticalAlign), pt, p.Text)
	}
}

// fillScreenRect fills a rectangle given in screen coordinates.
func fillScreenRect(c draw.Canvas, height float64, r gantt.Rect, clr color.Color) {
	top := vg.Length(height - r.Y)
	bottom := vg.Length(height - r.Y - r.Height)
	left, right := vg.Length(r.X), vg.Length(r.X+r.Width)
	c.FillPolygon(clr, []vg.Point{
		{X: left, Y: bottom},
		{X: right, Y: bottom},
		{X: right, Y: top},
		{X: left, Y: top},
	})
}

func drawPNGHeadings(c draw.Canvas, height float64, config Config) {
	style := primitiveTextStyle(gantt.Style{FontSize: float64(config.Font.Size), TextFill: config.Colors.Header}, "center", "bottom")
	lineHeight := float64(config.Font.Size) * 1.2
	maxChars := int(100 / (float64(config.Font.Size) * 0.6))
	headings := []struct {
		x    float64
		text string
	}{
		{gantt.OrderColumnX, config.Headers.Order},
		{gantt.RemainingColumnX, config.Headers.Remaining},
		{gantt.BufferColumnX, config.Headers.Buffer},
	}
	for _, h := range headings {
		lines := wrapText(strings.Fields(h.text), maxChars)
		y := float64(config.Headers.Y) - float64(len(lines)-1)*lineHeight
		for i, line := range lines {
			c.FillText(style, vg.Point{X: vg.Length(h.x), Y: vg.Length(height - y - float64(i)*lineHeight)}, line)
		}
	}
	sep, ok := gantt.ParseColor(config.Colors.Separator)
	if !ok {
		return
	}
	for _, x := range config.Headers.Separators {
		c.StrokeLine2(draw.LineStyle{Color: sep, Width: vg.Points(1)},
			vg.Length(x), vg.Length(height-float64(config.Layout.MarginTop-10)), vg.Length(x), 0)
	}
}

// primitiveTextStyle converts a primitive style to a gonum text style.
func primitiveTextStyle(s gantt.Style, align, valign string) text.Style {
	fnt := plot.DefaultFont
	fnt.Variant = "Sans"
	fnt.Size = vg.Length(s.FontSize)
	if s.FontWeight == "bold" {
		fnt.Weight = xfont.WeightBold
	}
	clr := color.Color(color.Black)
	if c, ok := gantt.ParseColor(s.TextFill); ok {
		clr = c
	}
	style := text.Style{
		Color:   clr,
		Font:    fnt,
		XAlign:  draw.XLeft,
		YAlign:  draw.YBottom,
		Handler: plot.DefaultTextHandler,
	}
	switch align {
	case "center":
		style.XAlign = draw.XCenter
	case "right":
		style.XAlign = draw.XRight
	}
	switch valign {
	case "middle":
		style.YAlign = draw.YCenter
	case "top":
		style.YAlign = draw.YTop
	}
	return style
}

// styleMeasurer measures label widths with the real font metrics. At 72
// DPI one point is one pixel.
type styleMeasurer struct {
	style text.Style
}

func (m styleMeasurer) Width(s string) float64 {
	return float64(m.style.Width(s))
}

// warmFonts loads every face the PNG output uses. It runs behind the
// renderer gate so a broken font cache fails all renders up front.
func warmFonts(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("loading fonts: %v", r)
		}
	}()
	for _, weight := range []string{"normal", "bold"} {
		if err := ctx.Err(); err != nil {
			return err
		}
		style := primitiveTextStyle(gantt.Style{FontSize: gantt.LabelFontSize, FontWeight: weight}, "left", "bottom")
		if style.Width("0") <= 0 {
			return fmt.Errorf("font %s has no metrics", weight)
		}
	}
	return nil
}
