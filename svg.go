package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"gantt2svg/gantt"
)

// generateSVG creates an SVG Gantt chart from a built frame and the config.
// Only rows inside the frame's zoom window are drawn; everything a row
// produces is already clipped to the plot area by the gantt package.
func generateSVG(frame *gantt.Frame, config Config) string {
	bounds := config.plotBounds()
	coords := frame.Transform(bounds)
	measurer := gantt.RuneWidthMeasurer{FontSize: float64(config.Font.Size)}

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg" font-family="%s">
<rect width="100%%" height="100%%" fill="%s"/>
<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>
`, config.Layout.Width, config.Layout.Height, escapeXML(config.Font.Family), config.Colors.Background,
		bounds.X, bounds.Y, bounds.Width, bounds.Height, config.Colors.Plot))

	drawHeadings(&svg, config)
	drawTimeAxis(&svg, frame, coords, bounds, config)

	for _, r := range gantt.HighlightRects(frame.Options.Highlights, coords, bounds) {
		svg.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`,
			r.X, r.Y, r.Width, r.Height, config.Colors.Highlight))
	}

	if mark := frame.Options.MarkLine; !mark.IsZero() {
		x := coords.Coord(mark, 0).X
		if x >= bounds.X && x <= bounds.X+bounds.Width {
			svg.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="2"/>`,
				x, bounds.Y, x, bounds.Y+bounds.Height, config.Colors.MarkLine))
		}
	}

	rows := frame.VisibleRows()
	log.Debug().Int("rows", len(rows)).Msg("drawing SVG rows")
	for _, row := range rows {
		for _, p := range gantt.RenderBar(row, coords, bounds, measurer) {
			drawPrimitive(&svg, p)
		}
		for _, p := range gantt.RenderLabel(row, coords, bounds) {
			drawPrimitive(&svg, p)
		}
	}

	svg.WriteString("</svg>")
	return svg.String()
}

// drawHeadings draws the label column headings and their separators.
// Headings wrap the way the widget's 100px wide text boxes do.
func drawHeadings(svg *strings.Builder, config Config) {
	headings := []struct {
		x    int
		text string
	}{
		{gantt.OrderColumnX, config.Headers.Order},
		{gantt.RemainingColumnX, config.Headers.Remaining},
		{gantt.BufferColumnX, config.Headers.Buffer},
	}
	lineHeight := int(float64(config.Font.Size) * 1.2)
	maxChars := int(100 / (float64(config.Font.Size) * 0.6))
	for _, h := range headings {
		lines := wrapText(strings.Fields(h.text), maxChars)
		y := config.Headers.Y - (len(lines)-1)*lineHeight
		for i, line := range lines {
			svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" text-anchor="middle" font-size="%d" fill="%s">%s</text>`,
				h.x, y+i*lineHeight, config.Font.Size, config.Colors.Header, escapeXML(line)))
		}
	}
	for _, x := range config.Headers.Separators {
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`,
			x, config.Layout.MarginTop-10, x, config.Layout.Height, config.Colors.Separator))
	}
}

// drawTimeAxis draws the axis line on top of the plot, one split line per
// day and the day labels.
func drawTimeAxis(svg *strings.Builder, frame *gantt.Frame, coords gantt.CoordTransform, bounds gantt.Rect, config Config) {
	svg.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`,
		bounds.X, bounds.Y, bounds.X+bounds.Width, bounds.Y, config.Colors.Axis))
	for _, day := range gantt.DayTicks(frame.Options.AxisMin, frame.Options.AxisMax) {
		x := coords.Coord(day, 0).X
		svg.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`,
			x, bounds.Y, x, bounds.Y+bounds.Height, config.Colors.Grid))
		svg.WriteString(fmt.Sprintf(`<text x="%.2f" y="%.2f" text-anchor="middle" font-size="16" fill="%s">%s</text>`,
			x, bounds.Y-8, config.Colors.Axis, escapeXML(day.Format(config.Timeline.DateFormat))))
	}
}

// drawPrimitive writes one render primitive. Ignored primitives were
// clipped away entirely and produce nothing.
func drawPrimitive(svg *strings.Builder, p gantt.Primitive) {
	if p.Ignore {
		return
	}
	switch p.Kind {
	case gantt.KindRect:
		if p.Style.Fill != "" && p.Style.Fill != "transparent" {
			svg.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`,
				p.X, p.Y, p.Width, p.Height, p.Style.Fill))
		}
		if p.Text != "" && p.Width > 0 {
			svg.WriteString(fmt.Sprintf(`<text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-size="%g" fill="%s">%s</text>`,
				p.X+p.Width/2, p.Y+p.Height/2, p.Style.FontSize, p.Style.TextFill, escapeXML(p.Text)))
		}
	case gantt.KindText:
		fill := p.Style.TextFill
		if fill == "" {
			fill = "#000000"
		}
		svg.WriteString(fmt.Sprintf(`<text x="%.2f" y="%.2f" text-anchor="%s" font-size="%g" font-weight="%s" fill="%s">%s</text>`,
			p.X, p.Y, textAnchor(p.Align), p.Style.FontSize, p.Style.FontWeight, fill, escapeXML(p.Text)))
	}
}

func textAnchor(align string) string {
	switch align {
	case "center":
		return "middle"
	case "right":
		return "end"
	default:
		return "start"
	}
}

// wrapText wraps an array of words into lines that don't exceed maxWidth characters.
// Words are never broken - if a single word exceeds maxWidth, it will be placed
// on its own line regardless of the width constraint.
func wrapText(words []string, maxWidth int) []string {
	if len(words) == 0 {
		return []string{}
	}

	var lines []string
	var currentLine strings.Builder

	for _, word := range words {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= maxWidth {
			currentLine.WriteString(" " + word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}

	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return lines
}

// escapeXML escapes special XML characters in a string to ensure valid SVG output.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
