// Package preview shows a built Gantt frame in the terminal. Rows can be
// scrolled through the zoom window and the time axis panned by whole days.
package preview

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"gantt2svg/gantt"
)

// labelWidth is the pixel width left of the plot holding the label columns.
const labelWidth = 470

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a0a0a0"))

// Appearance is the part of the chart configuration the preview shares with
// the image outputs. Colors use the chart notations (hex, names, rgba).
type Appearance struct {
	OrderHeading     string
	RemainingHeading string
	BufferHeading    string
	Axis             string
	MarkLine         string
	Highlight        string
}

// palette holds the terminal colors of an Appearance.
type palette struct {
	axis, markLine, highlight lipgloss.Color
}

func newPalette(a Appearance) palette {
	var p palette
	p.axis, _ = termColor(a.Axis)
	p.markLine, _ = termColor(a.MarkLine)
	p.highlight, _ = termColor(a.Highlight)
	return p
}

// Model is the bubbletea model of the preview.
type Model struct {
	frame      *gantt.Frame
	view       gantt.Options
	appearance Appearance
	colors     palette
	keys       KeyMap
	help       help.Model

	width, height int
}

// New returns a preview of frame starting at the frame's own options.
func New(frame *gantt.Frame, a Appearance) *Model {
	return &Model{
		frame:      frame,
		view:       frame.Options,
		appearance: a,
		colors:     newPalette(a),
		keys:       Keys,
		help:       help.New(),
	}
}

// Run shows frame until the user quits.
func Run(frame *gantt.Frame, a Appearance) error {
	_, err := tea.NewProgram(New(frame, a), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.RowUp):
		if m.view.ZoomEnd < len(m.frame.Rows) {
			m.view.ZoomStart++
			m.view.ZoomEnd++
		}
	case key.Matches(msg, m.keys.RowDown):
		if m.view.ZoomStart > 0 {
			m.view.ZoomStart--
			m.view.ZoomEnd--
		}
	case key.Matches(msg, m.keys.DayBack):
		m.view.AxisMin = m.view.AxisMin.AddDate(0, 0, -1)
		m.view.AxisMax = m.view.AxisMax.AddDate(0, 0, -1)
	case key.Matches(msg, m.keys.DayAhead):
		m.view.AxisMin = m.view.AxisMin.AddDate(0, 0, 1)
		m.view.AxisMax = m.view.AxisMax.AddDate(0, 0, 1)
	case key.Matches(msg, m.keys.ResetView):
		m.view = m.frame.Options
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	log.Debug().
		Int("zoom_start", m.view.ZoomStart).
		Int("zoom_end", m.view.ZoomEnd).
		Time("axis_min", m.view.AxisMin).
		Msg("preview view changed")
	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}
	helpView := m.help.View(m.keys)
	footer := lipgloss.JoinVertical(lipgloss.Left, m.statusLine(), helpView)
	rows := m.height - lipgloss.Height(footer)
	if m.width*cellWidth <= labelWidth+10*cellWidth || rows < 2 {
		return "terminal too small\n" + footer
	}
	return m.chart(m.width, rows) + "\n" + footer
}

func (m *Model) statusLine() string {
	return statusStyle.Render(fmt.Sprintf("rows %d-%d of %d   %s - %s",
		m.view.ZoomStart, m.view.ZoomEnd, len(m.frame.Rows),
		m.view.AxisMin.Format("02.01."), m.view.AxisMax.Format("02.01.")))
}

// chart paints the frame onto a cols x rows raster. The first raster row
// holds the headings and the day labels.
func (m *Model) chart(cols, rows int) string {
	frame := *m.frame
	frame.Options = m.view
	bounds := gantt.Rect{
		X:      labelWidth,
		Y:      cellHeight,
		Width:  float64(cols*cellWidth - labelWidth),
		Height: float64((rows - 1) * cellHeight),
	}
	coords := frame.Transform(bounds)
	r := newRaster(cols, rows)

	a := m.appearance
	r.text(gantt.OrderColumnX, cellHeight, a.OrderHeading, "left", "bottom", "", true)
	r.text(gantt.RemainingColumnX, cellHeight, a.RemainingHeading, "center", "bottom", "", true)
	r.text(gantt.BufferColumnX, cellHeight, a.BufferHeading, "center", "bottom", "", true)
	for _, day := range gantt.DayTicks(frame.Options.AxisMin, frame.Options.AxisMax) {
		x := coords.Coord(day, 0).X
		r.vline(x, bounds.Y, bounds.Y+bounds.Height, '┊', m.colors.axis)
		r.text(x, cellHeight, day.Format("02.01"), "center", "bottom", m.colors.axis, false)
	}

	if m.colors.highlight != "" {
		for _, rect := range gantt.HighlightRects(frame.Options.Highlights, coords, bounds) {
			r.fillRect(rect, m.colors.highlight)
		}
	}

	visible := frame.VisibleRows()
	for _, row := range visible {
		for _, p := range gantt.RenderBar(row, coords, bounds, cellMeasurer{}) {
			paint(r, p)
		}
	}
	if mark := frame.Options.MarkLine; !mark.IsZero() {
		if x := coords.Coord(mark, 0).X; x >= bounds.X && x < bounds.X+bounds.Width {
			r.vline(x, bounds.Y, bounds.Y+bounds.Height, '│', m.colors.markLine)
		}
	}
	for _, row := range visible {
		for _, p := range gantt.RenderLabel(row, coords, bounds) {
			paint(r, p)
		}
	}
	return r.String()
}

func paint(r *raster, p gantt.Primitive) {
	if p.Ignore {
		return
	}
	fg, _ := termColor(p.Style.TextFill)
	switch p.Kind {
	case gantt.KindRect:
		if bg, ok := termColor(p.Style.Fill); ok {
			r.fillRect(gantt.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}, bg)
		}
		if p.Text != "" {
			r.text(p.X+p.Width/2, p.Y+p.Height/2, p.Text, "center", "middle", fg, false)
		}
	case gantt.KindText:
		r.text(p.X, p.Y, p.Text, p.Align, p.VerticalAlign, fg, p.Style.FontWeight == "bold")
	}
}
