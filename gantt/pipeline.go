package gantt

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// StateSuccess is the binding state that allows rendering.
const StateSuccess = "success"

// DataBinding is the host's snapshot of the bound data.
type DataBinding struct {
	State    string   `yaml:"state"`
	Metadata Metadata `yaml:"metadata"`
	Data     []Record `yaml:"data"`
}

// Ready reports whether the host finished loading the binding.
func (b DataBinding) Ready() bool { return b.State == StateSuccess }

// Settings tune one render.
type Settings struct {
	Location      *time.Location
	Bindings      Bindings
	LookbackDays  int
	LookaheadDays int
	MaxValueSpan  int
	SplitNumber   int
}

// DefaultSettings returns the settings of the shipped widget.
func DefaultSettings() Settings {
	return Settings{
		Location:      time.Local,
		Bindings:      DefaultBindings(),
		LookbackDays:  DefaultWeekendScanDays,
		LookaheadDays: DefaultWeekendScanDays,
		MaxValueSpan:  DefaultMaxValueSpan,
		SplitNumber:   8,
	}
}

// Frame is the render-scoped result of one pipeline run.
type Frame struct {
	Catalog  Catalog
	Rows     []Row
	Calendar Calendar
	Options  Options
	Now      time.Time
}

// VisibleRows returns the rows inside the zoom window.
func (f *Frame) VisibleRows() []Row {
	return lo.Filter(f.Rows, func(r Row, _ int) bool {
		return r.Position >= f.Options.ZoomStart && r.Position <= f.Options.ZoomEnd
	})
}

// Transform maps the frame's axis range and zoom window onto bounds.
func (f *Frame) Transform(bounds Rect) LinearTransform {
	return LinearTransform{
		Bounds:   bounds,
		TimeMin:  f.Options.AxisMin,
		TimeMax:  f.Options.AxisMax,
		ValueMin: float64(f.Options.ZoomStart),
		ValueMax: float64(f.Options.ZoomEnd),
	}
}

// Build runs the whole pipeline over one binding snapshot. The holiday list
// is read from the first row after sequencing.
func Build(b DataBinding, s Settings, now time.Time) (*Frame, error) {
	if len(b.Data) == 0 {
		return nil, ErrEmptyRowSet
	}
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	cat := NewCatalog(b.Metadata)
	rows, err := Normalize(b.Data, cat, s.Bindings, loc)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	rows = Sequence(rows)

	cal, err := BuildCalendar(rows[0].HolidayListRaw, s.LookbackDays, s.LookaheadDays, now, loc)
	if err != nil {
		return nil, fmt.Errorf("calendar: %w", err)
	}
	AdjustAll(rows, cal)

	span := s.MaxValueSpan
	if span <= 0 {
		span = DefaultMaxValueSpan
	}
	log.Debug().
		Int("rows", len(rows)).
		Int("calendar_days", len(cal)).
		Time("now", now).
		Msg("frame built")

	return &Frame{
		Catalog:  cat,
		Rows:     rows,
		Calendar: cal,
		Options:  NewOptions(rows, cal, now, span, s.SplitNumber),
		Now:      now,
	}, nil
}

// Renderer runs the pipeline behind an initialization gate.
type Renderer struct {
	Settings Settings
	Gate     *Gate
	Now      func() time.Time
}

// NewRenderer returns a renderer using the wall clock.
func NewRenderer(s Settings, g *Gate) *Renderer {
	return &Renderer{Settings: s, Gate: g, Now: time.Now}
}

// Render builds a frame from b. A binding that is not ready yields a nil
// frame and no error. Otherwise the call waits for the gate; a failed gate
// is fatal for every render.
func (r *Renderer) Render(ctx context.Context, b DataBinding) (*Frame, error) {
	if !b.Ready() {
		log.Debug().Str("state", b.State).Msg("binding not ready, skipping render")
		return nil, nil
	}
	if r.Gate != nil {
		if err := r.Gate.Wait(ctx); err != nil {
			return nil, fmt.Errorf("renderer backend: %w", err)
		}
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return Build(b, r.Settings, now())
}
