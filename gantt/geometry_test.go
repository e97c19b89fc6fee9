package gantt

import (
	"testing"
	"time"
)

var geoBase = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// hourly maps one hour to ten units and one row to fifty, row 0 at y=500.
var hourly = CoordFunc(func(t time.Time, pos float64) Point {
	return Point{X: t.Sub(geoBase).Hours() * 10, Y: 500 - pos*50}
})

type fixedWidth float64

func (w fixedWidth) Width(string) float64 { return float64(w) }

func geoRow(startH, endH, progressH int) Row {
	return Row{
		Position:     2,
		OrderNumber:  "4711",
		WorkCenter:   "WC01",
		StartTime:    geoBase.Add(time.Duration(startH) * time.Hour),
		EndTime:      geoBase.Add(time.Duration(endH) * time.Hour),
		ProgressTime: geoBase.Add(time.Duration(progressH) * time.Hour),
		StatusColor:  Green,
	}
}

func TestRenderBarInsideBounds(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1000, Height: 600}
	prims := RenderBar(geoRow(10, 30, 20), hourly, bounds, fixedWidth(40))
	if len(prims) != 3 {
		t.Fatalf("expected 3 primitives, got %d", len(prims))
	}
	bar, progress, overlay := prims[0], prims[1], prims[2]
	for i, p := range prims {
		if p.Ignore || p.Kind != KindRect {
			t.Fatalf("primitive %d should be a drawn rect: %+v", i, p)
		}
	}
	if bar.X != 100 || bar.Width != 200 || bar.Y != 370 || bar.Height != BarHeight {
		t.Fatalf("unexpected bar geometry %+v", bar)
	}
	if bar.Style.Fill != ColorGrey {
		t.Fatalf("base bar must be grey, got %s", bar.Style.Fill)
	}
	if progress.Width != 100 || progress.Style.Fill != ColorGreen {
		t.Fatalf("unexpected progress rect %+v", progress)
	}
	if overlay.Text != "WC01 " || overlay.Style.Fill != "transparent" {
		t.Fatalf("unexpected overlay %+v", overlay)
	}
}

func TestRenderBarHidesLabelOnShortBar(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1000, Height: 600}
	// 70 units of bar, 40 of label plus 30 of margin: not strictly longer
	prims := RenderBar(geoRow(10, 17, 12), hourly, bounds, fixedWidth(40))
	if prims[2].Text != "" {
		t.Fatalf("label should be dropped, got %q", prims[2].Text)
	}
	if prims[2].Ignore {
		t.Fatalf("overlay rect is still emitted")
	}
}

func TestRenderBarOutsideBoundsIsIgnored(t *testing.T) {
	tests := []struct {
		name   string
		bounds Rect
	}{
		{"right of bar", Rect{X: 400, Y: 0, Width: 500, Height: 600}},
		{"left of bar", Rect{X: 0, Y: 0, Width: 50, Height: 600}},
		{"below bar", Rect{X: 0, Y: 450, Width: 1000, Height: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prims := RenderBar(geoRow(10, 30, 20), hourly, tt.bounds, fixedWidth(10))
			for i, p := range prims {
				if !p.Ignore {
					t.Fatalf("primitive %d should be ignored: %+v", i, p)
				}
			}
		})
	}
}

func TestRenderBarClipsPartially(t *testing.T) {
	bounds := Rect{X: 150, Y: 0, Width: 1000, Height: 600}
	prims := RenderBar(geoRow(10, 30, 20), hourly, bounds, fixedWidth(10))
	if prims[0].X != 150 || prims[0].Width != 150 {
		t.Fatalf("bar should be clipped to the left edge: %+v", prims[0])
	}
	if prims[1].X != 150 || prims[1].Width != 50 {
		t.Fatalf("progress should be clipped to the left edge: %+v", prims[1])
	}
}

func TestRenderBarProgressBeforeStart(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1000, Height: 600}
	prims := RenderBar(geoRow(10, 30, 5), hourly, bounds, fixedWidth(10))
	if !prims[1].Ignore {
		t.Fatalf("negative progress width should clip to nothing: %+v", prims[1])
	}
}

func TestRenderBarStatusColors(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1000, Height: 600}
	for status, want := range map[StatusColor]string{Green: ColorGreen, Red: ColorRed, Grey: ColorGrey} {
		r := geoRow(10, 30, 20)
		r.StatusColor = status
		if got := RenderBar(r, hourly, bounds, fixedWidth(10))[1].Style.Fill; got != want {
			t.Fatalf("%v: expected %s, got %s", status, want, got)
		}
	}
}

func TestRectClipTouchingEdge(t *testing.T) {
	c, ok := Rect{X: 0, Y: 0, Width: 10, Height: 10}.Clip(Rect{X: 10, Y: 0, Width: 10, Height: 10})
	if !ok || c.Width != 0 {
		t.Fatalf("touching rects keep a zero-width intersection, got %+v %v", c, ok)
	}
}

func TestRenderLabel(t *testing.T) {
	r := geoRow(10, 30, 20)
	r.RemainingMinutes = 1440
	r.BufferMinutes = -15.5

	prims := RenderLabel(r, hourly, Rect{X: 0, Y: 0, Width: 1000, Height: 600})
	if len(prims) != 3 {
		t.Fatalf("expected 3 texts, got %d", len(prims))
	}
	want := []struct {
		x     float64
		text  string
		align string
	}{
		{OrderColumnX, "4711 ", "left"},
		{RemainingColumnX, "1440 mins", "center"},
		{BufferColumnX, "-15.5 mins", "center"},
	}
	for i, w := range want {
		p := prims[i]
		if p.Kind != KindText || p.X != w.x || p.Text != w.text || p.Align != w.align || p.Y != 397 {
			t.Fatalf("text %d: unexpected %+v", i, p)
		}
	}
	if prims[2].Style.TextFill != "red" {
		t.Fatalf("negative buffer should be red, got %s", prims[2].Style.TextFill)
	}

	r.BufferMinutes = 1
	if got := RenderLabel(r, hourly, Rect{Width: 1000, Height: 600})[2].Style.TextFill; got != "green" {
		t.Fatalf("positive buffer should be green, got %s", got)
	}
}

func TestRenderLabelScrolledOut(t *testing.T) {
	r := geoRow(10, 30, 20) // baseline y = 400
	if got := RenderLabel(r, hourly, Rect{X: 0, Y: 396, Width: 1000, Height: 600}); got != nil {
		t.Fatalf("row above the plot top should render nothing, got %+v", got)
	}
	if got := RenderLabel(r, hourly, Rect{X: 0, Y: 395, Width: 1000, Height: 600}); len(got) != 3 {
		t.Fatalf("row at the top edge should render, got %+v", got)
	}
}

func TestRuneWidthMeasurer(t *testing.T) {
	m := RuneWidthMeasurer{FontSize: 10}
	if got := m.Width("abcd"); got != 24 {
		t.Fatalf("expected 24, got %v", got)
	}
	if got := m.Width("日本"); got != 24 {
		t.Fatalf("wide runes count twice, expected 24, got %v", got)
	}
}

func TestHighlightRects(t *testing.T) {
	bounds := Rect{X: 100, Y: 0, Width: 1000, Height: 600}
	cal := Calendar{date(2024, 1, 1), date(2024, 1, 3), date(2024, 1, 10)}
	got := HighlightRects(cal.Windows(), hourly, bounds)
	if len(got) != 2 {
		t.Fatalf("expected 2 bands, got %+v", got)
	}
	if got[0].X != 100 || got[0].Width >= 140 || got[0].Width < 139 {
		t.Errorf("first band should be clipped at the left edge: %+v", got[0])
	}
	if got[1].X != 480 || got[1].Y != 0 || got[1].Height != 600 {
		t.Errorf("unexpected second band %+v", got[1])
	}
}
