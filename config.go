package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"gantt2svg/gantt"
	"gantt2svg/preview"
)

// Config represents the complete configuration of a Gantt rendering.
// It maps directly to a YAML file and controls:
//   - fonts, colors and the canvas layout
//   - the column headings left of the plot
//   - the time axis and the number of rows shown at once
//   - the holiday/weekend calendar
//   - which host field feeds which row slot
//
// Values missing from the YAML file keep their defaults.
type Config struct {
	Font struct {
		Family string `yaml:"family"` // Font family for all text (e.g., "Helvetica, Arial, sans-serif")
		Size   int    `yaml:"size"`   // Base font size in pixels
	} `yaml:"font"`
	Colors struct {
		Background string `yaml:"background"` // Canvas background
		Plot       string `yaml:"plot"`       // Plot area background
		Grid       string `yaml:"grid"`       // Vertical day split lines
		Axis       string `yaml:"axis"`       // Axis line and tick labels
		Header     string `yaml:"header"`     // Column headings
		Separator  string `yaml:"separator"`  // Vertical lines between label columns
		MarkLine   string `yaml:"mark_line"`  // "Now" line
		Highlight  string `yaml:"highlight"`  // Weekend and holiday shading
	} `yaml:"colors"`
	Layout struct {
		Width        int `yaml:"width"`         // Total canvas width in pixels
		Height       int `yaml:"height"`        // Total canvas height in pixels
		MarginTop    int `yaml:"margin_top"`    // Space above the plot area (time axis labels)
		MarginBottom int `yaml:"margin_bottom"` // Space below the plot area
		MarginLeft   int `yaml:"margin_left"`   // Space left of the plot area (label columns)
		MarginRight  int `yaml:"margin_right"`  // Space right of the plot area
	} `yaml:"layout"`
	Headers struct {
		Order      string `yaml:"order"`      // Heading of the order number column
		Remaining  string `yaml:"remaining"`  // Heading of the remaining duration column
		Buffer     string `yaml:"buffer"`     // Heading of the buffer column
		Y          int    `yaml:"y"`          // Baseline of the headings
		Separators []int  `yaml:"separators"` // x positions of the column separators
	} `yaml:"headers"`
	Timeline struct {
		MaxValueSpan int    `yaml:"max_value_span"` // Rows visible at once
		SplitNumber  int    `yaml:"split_number"`   // Hint for the number of axis splits
		DateFormat   string `yaml:"date_format"`    // Go layout of the day labels
	} `yaml:"timeline"`
	Calendar struct {
		Timezone      string `yaml:"timezone"`       // IANA zone of all timestamps; empty means local time
		LookbackDays  int    `yaml:"lookback_days"`  // Days before today scanned for weekends
		LookaheadDays int    `yaml:"lookahead_days"` // Days after today scanned for weekends
	} `yaml:"calendar"`
	Fields map[string]string `yaml:"fields"` // Row slot -> host field id overrides (e.g., order_number: AUFNR)
}

// getDefaultConfig returns the layout of the shipped dashboard widget.
func getDefaultConfig() Config {
	var c Config
	c.Font.Family = "Helvetica, Arial, sans-serif"
	c.Font.Size = 14

	c.Colors.Background = "#ffffff"
	c.Colors.Plot = "#ffffff"
	c.Colors.Grid = "#E9EDFF"
	c.Colors.Axis = "#929ABA"
	c.Colors.Header = "#696969"
	c.Colors.Separator = "#000000"
	c.Colors.MarkLine = "rgba(192, 39, 1, 0.8)"
	c.Colors.Highlight = "rgba(230, 230, 230, 0.8)"

	c.Layout.Width = 1400
	c.Layout.Height = 800
	c.Layout.MarginTop = 70
	c.Layout.MarginBottom = 70
	c.Layout.MarginLeft = 470
	c.Layout.MarginRight = 20

	c.Headers.Order = "Auftrag"
	c.Headers.Remaining = "Verbleibende Auftragsdauer"
	c.Headers.Buffer = "Puffer"
	c.Headers.Y = 50
	c.Headers.Separators = []int{205, 330}

	c.Timeline.MaxValueSpan = gantt.DefaultMaxValueSpan
	c.Timeline.SplitNumber = 8
	c.Timeline.DateFormat = "02-Jan"

	c.Calendar.LookbackDays = gantt.DefaultWeekendScanDays
	c.Calendar.LookaheadDays = gantt.DefaultWeekendScanDays

	c.Fields = map[string]string{}
	return c
}

// loadConfig loads configuration from a YAML file on top of the defaults,
// or returns the defaults if no file is specified.
func loadConfig(configPath string) (Config, error) {
	config := getDefaultConfig()
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}

	return config, nil
}

// location resolves the configured time zone.
func (c Config) location() (*time.Location, error) {
	if c.Calendar.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar.timezone: %w", err)
	}
	return loc, nil
}

// settings converts the configuration into pipeline settings. Field
// overrides replace the default binding of their slot.
func (c Config) settings() (gantt.Settings, error) {
	s := gantt.DefaultSettings()
	loc, err := c.location()
	if err != nil {
		return s, err
	}
	s.Location = loc
	s.LookbackDays = c.Calendar.LookbackDays
	s.LookaheadDays = c.Calendar.LookaheadDays
	s.MaxValueSpan = c.Timeline.MaxValueSpan
	s.SplitNumber = c.Timeline.SplitNumber

	known := gantt.DefaultBindings()
	for slot, id := range c.Fields {
		if _, ok := known[gantt.Slot(slot)]; !ok {
			return s, fmt.Errorf("unknown field slot %q in config", slot)
		}
		s.Bindings[gantt.Slot(slot)] = id
	}
	return s, nil
}

// plotBounds returns the plot area inside the margins.
func (c Config) plotBounds() gantt.Rect {
	return gantt.Rect{
		X:      float64(c.Layout.MarginLeft),
		Y:      float64(c.Layout.MarginTop),
		Width:  float64(c.Layout.Width - c.Layout.MarginLeft - c.Layout.MarginRight),
		Height: float64(c.Layout.Height - c.Layout.MarginTop - c.Layout.MarginBottom),
	}
}

// appearance returns the headings and colors the terminal preview shares
// with the image outputs.
func (c Config) appearance() preview.Appearance {
	return preview.Appearance{
		OrderHeading:     c.Headers.Order,
		RemainingHeading: c.Headers.Remaining,
		BufferHeading:    c.Headers.Buffer,
		Axis:             c.Colors.Axis,
		MarkLine:         c.Colors.MarkLine,
		Highlight:        c.Colors.Highlight,
	}
}
