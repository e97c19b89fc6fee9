package gantt

import (
	"strings"

	"golang.org/x/text/cases"
)

// StatusColor is the traffic-light state of a work order.
type StatusColor int

const (
	Grey StatusColor = iota
	Green
	Red
)

// Fill colors of the progress bar per status.
const (
	ColorGreen = "#0e8f33"
	ColorRed   = "#941403"
	ColorGrey  = "#a3a3a3"
)

var statusNames = map[string]StatusColor{
	"green": Green,
	"red":   Red,
	"grey":  Grey,
	"gray":  Grey,
}

// ParseStatusColor canonicalizes a host status string. Matching is
// case-insensitive; ok is false for unknown values, which map to Grey.
func ParseStatusColor(s string) (c StatusColor, ok bool) {
	c, ok = statusNames[cases.Fold().String(strings.TrimSpace(s))]
	return c, ok
}

func (c StatusColor) String() string {
	switch c {
	case Green:
		return "GREEN"
	case Red:
		return "RED"
	default:
		return "GREY"
	}
}

// Fill returns the progress bar color for c.
func (c StatusColor) Fill() string {
	switch c {
	case Green:
		return ColorGreen
	case Red:
		return ColorRed
	default:
		return ColorGrey
	}
}
