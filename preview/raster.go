package preview

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"gantt2svg/gantt"
)

// One terminal cell stands for this many screen pixels.
const (
	cellWidth  = 8
	cellHeight = 16
)

type cell struct {
	ch   rune // 0 marks the second half of a wide rune
	fg   lipgloss.Color
	bg   lipgloss.Color
	bold bool
}

// raster is a character grid the gantt primitives are painted onto.
type raster struct {
	cols, rows int
	cells      []cell
}

func newRaster(cols, rows int) *raster {
	r := &raster{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
	for i := range r.cells {
		r.cells[i].ch = ' '
	}
	return r
}

func (r *raster) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= r.cols || row >= r.rows {
		return nil
	}
	return &r.cells[row*r.cols+col]
}

// fillRect paints every cell whose center lies inside rect.
func (r *raster) fillRect(rect gantt.Rect, bg lipgloss.Color) {
	c0 := int(math.Floor(rect.X / cellWidth))
	c1 := int(math.Ceil((rect.X + rect.Width) / cellWidth))
	r0 := int(math.Floor(rect.Y / cellHeight))
	r1 := int(math.Ceil((rect.Y + rect.Height) / cellHeight))
	for row := r0; row <= r1; row++ {
		cy := (float64(row) + 0.5) * cellHeight
		if cy < rect.Y || cy >= rect.Y+rect.Height {
			continue
		}
		for col := c0; col <= c1; col++ {
			cx := (float64(col) + 0.5) * cellWidth
			if cx < rect.X || cx >= rect.X+rect.Width {
				continue
			}
			if c := r.at(col, row); c != nil {
				c.ch, c.bg = ' ', bg
			}
		}
	}
}

// vline draws ch down the column of x between the pixel rows y0 and y1.
func (r *raster) vline(x, y0, y1 float64, ch rune, fg lipgloss.Color) {
	col := int(x / cellWidth)
	for row := int(y0 / cellHeight); row < int(math.Ceil(y1/cellHeight)); row++ {
		if c := r.at(col, row); c != nil {
			c.ch, c.fg = ch, fg
		}
	}
}

// text writes s anchored at the pixel point (x, y) the way an SVG text
// element with the given alignments would be.
func (r *raster) text(x, y float64, s, align, valign string, fg lipgloss.Color, bold bool) {
	row := int(y / cellHeight)
	if valign == "bottom" {
		row = int(math.Ceil(y/cellHeight)) - 1
	}
	col := int(math.Round(x / cellWidth))
	switch align {
	case "center":
		col -= runewidth.StringWidth(s) / 2
	case "right":
		col -= runewidth.StringWidth(s)
	}
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if c := r.at(col, row); c != nil {
			c.ch, c.fg, c.bold = ch, fg, bold
		}
		for i := 1; i < w; i++ {
			if c := r.at(col+i, row); c != nil {
				c.ch = 0
			}
		}
		col += w
	}
}

func (r *raster) String() string {
	var out strings.Builder
	for row := 0; row < r.rows; row++ {
		line := r.cells[row*r.cols : (row+1)*r.cols]
		for start := 0; start < len(line); {
			end := start
			var run strings.Builder
			for end < len(line) && sameStyle(line[end], line[start]) {
				if line[end].ch != 0 {
					run.WriteRune(line[end].ch)
				}
				end++
			}
			out.WriteString(cellStyle(line[start]).Render(run.String()))
			start = end
		}
		if row < r.rows-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func sameStyle(a, b cell) bool {
	return a.fg == b.fg && a.bg == b.bg && a.bold == b.bold
}

func cellStyle(c cell) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(c.bold)
	if c.fg != "" {
		style = style.Foreground(c.fg)
	}
	if c.bg != "" {
		style = style.Background(c.bg)
	}
	return style
}

// termColor converts a chart color to a terminal hex color. Translucent
// colors are blended over white like they are in the exported images.
func termColor(s string) (lipgloss.Color, bool) {
	c, ok := gantt.ParseColor(s)
	if !ok {
		return "", false
	}
	r, g, b, a := c.RGBA()
	white := float64(0xffff - a)
	blended := colorful.Color{
		R: (float64(r) + white) / 0xffff,
		G: (float64(g) + white) / 0xffff,
		B: (float64(b) + white) / 0xffff,
	}
	return lipgloss.Color(blended.Clamped().Hex()), true
}

// cellMeasurer measures labels in cells.
type cellMeasurer struct{}

func (cellMeasurer) Width(s string) float64 {
	return float64(runewidth.StringWidth(s) * cellWidth)
}
