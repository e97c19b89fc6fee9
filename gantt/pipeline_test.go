package gantt

import (
	"context"
	"errors"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

const bindingDoc = `
state: success
metadata:
  dimensions:
    dimensions_0: {id: ORDER_NUMBER, label: Order}
    dimensions_1: {id: START_TIMESTAMP, label: Start}
    dimensions_2: {id: END_TIMESTAMP, label: End}
    dimensions_3: {id: WORK_CENTER, label: Work center}
    dimensions_4: {id: PROGRESS_TIMESTAMP, label: Progress}
    dimensions_5: {id: STATUS_COLOR, label: Status}
    dimensions_6: {id: NOW_TIMESTAMP, label: Now}
    dimensions_7: {id: HOLIDAYS, label: Holidays}
    dimensions_8: {id: ABSOLUTE_TIME, label: Absolute progress}
    dimensions_9: {id: NOW_TIME, label: Now time}
  mainStructureMembers:
    measures_0: {id: REMAINING_TIME, label: Remaining}
    measures_1: {id: BUFFER_TIME, label: Buffer}
    measures_2: {id: STATUS_CODE, label: Status code}
data:
  - dimensions_0: {id: "B", label: "B"}
    dimensions_1: {id: "20240102090000", label: "02.01.2024 09:00"}
    dimensions_2: {id: "20240105100000", label: "05.01.2024 10:00"}
    dimensions_3: {id: "WC02", label: "WC02"}
    dimensions_4: {id: "20240104100000", label: "04.01.2024 10:00"}
    dimensions_5: {id: "RED", label: "RED"}
    dimensions_6: {id: "20240110100000", label: "10.01.2024 10:00"}
    dimensions_7: {id: "20240103", label: "20240103"}
    dimensions_8: {id: "20240105100000", label: "20240105100000"}
    dimensions_9: {id: "20240110100000", label: "20240110100000"}
    measures_0: {raw: 600}
    measures_1: {raw: -60}
    measures_2: {raw: 401}
  - dimensions_0: {id: "A", label: "A"}
    dimensions_1: {id: "20240108080000", label: "08.01.2024 08:00"}
    dimensions_2: {id: "20240112150000", label: "12.01.2024 15:00"}
    dimensions_3: {id: "WC01", label: "WC01"}
    dimensions_4: {id: "20240109120000", label: "09.01.2024 12:00"}
    dimensions_5: {id: "GREEN", label: "GREEN"}
    dimensions_6: {id: "20240110100000", label: "10.01.2024 10:00"}
    dimensions_7: {id: "20240111", label: "20240111"}
    dimensions_8: {id: "20240109120000", label: "20240109120000"}
    dimensions_9: {id: "20240110100000", label: "20240110100000"}
    measures_0: {raw: 3000}
    measures_1: {raw: 120}
    measures_2: {raw: 402}
`

func loadBinding(t *testing.T) DataBinding {
	t.Helper()
	var b DataBinding
	if err := yaml.Unmarshal([]byte(bindingDoc), &b); err != nil {
		t.Fatalf("unmarshal binding: %v", err)
	}
	return b
}

func testSettings() Settings {
	s := DefaultSettings()
	s.Location = time.UTC
	return s
}

func TestBuild(t *testing.T) {
	now := at(2024, 1, 10, 10, 0) // Wednesday
	f, err := Build(loadBinding(t), testSettings(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(f.Rows))
	}

	a, b := f.Rows[0], f.Rows[1]
	if a.OrderNumber != "A" || a.Position != 0 || b.OrderNumber != "B" || b.Position != 1 {
		t.Fatalf("rows should be sorted by end time descending: %s@%d, %s@%d", a.OrderNumber, a.Position, b.OrderNumber, b.Position)
	}

	// A: progress day Jan 9 .. end Jan 12 21:00 holds the declared Jan 11.
	if a.RemainingMinutes != 3000-1440 {
		t.Fatalf("A: expected 1560 remaining, got %v", a.RemainingMinutes)
	}
	if a.BufferMinutes != 120 {
		t.Fatalf("A: no calendar day between Jan 9 and Jan 10, got %v", a.BufferMinutes)
	}

	// B: holidays come from the first row only, so Jan 3 is a working day.
	if b.RemainingMinutes != 600 {
		t.Fatalf("B: expected 600 remaining, got %v", b.RemainingMinutes)
	}
	// B is late: the weekend Jan 6-7 between Jan 5 and Jan 10 is added back.
	if b.BufferMinutes != -60+2*1440 {
		t.Fatalf("B: expected 2820 buffer, got %v", b.BufferMinutes)
	}

	if want := at(2024, 1, 10, 8, 0); !f.Options.MarkLine.Equal(want) {
		t.Fatalf("expected mark line %v, got %v", want, f.Options.MarkLine)
	}
	if !f.Options.AxisMin.Equal(date(2024, 1, 5)) || !f.Options.AxisMax.Equal(date(2024, 1, 15)) {
		t.Fatalf("unexpected axis range %v - %v", f.Options.AxisMin, f.Options.AxisMax)
	}
	if len(f.Options.Highlights) != len(f.Calendar) {
		t.Fatalf("every calendar day gets a highlight window")
	}
	if len(f.VisibleRows()) != 2 {
		t.Fatalf("both rows fit in the zoom window")
	}
}

func TestBuildEmptyRowSet(t *testing.T) {
	b := loadBinding(t)
	b.Data = nil
	if _, err := Build(b, testSettings(), at(2024, 1, 10, 10, 0)); !errors.Is(err, ErrEmptyRowSet) {
		t.Fatalf("expected ErrEmptyRowSet, got %v", err)
	}
}

func TestBuildPropagatesMalformedTimestamp(t *testing.T) {
	b := loadBinding(t)
	b.Data[1]["dimensions_2"] = Cell{ID: "2024-01-12", Label: "2024-01-12"}
	if _, err := Build(b, testSettings(), at(2024, 1, 10, 10, 0)); !errors.Is(err, ErrMalformedTimestamp) {
		t.Fatalf("expected ErrMalformedTimestamp, got %v", err)
	}
}

func TestFrameVisibleRows(t *testing.T) {
	f := &Frame{Options: Options{ZoomStart: 2, ZoomEnd: 3}}
	for i := 0; i < 6; i++ {
		f.Rows = append(f.Rows, Row{Position: i})
	}
	got := f.VisibleRows()
	if len(got) != 2 || got[0].Position != 2 || got[1].Position != 3 {
		t.Fatalf("unexpected visible rows %+v", got)
	}
}

func TestRendererSkipsUnreadyBinding(t *testing.T) {
	g := NewGate(func(context.Context) error {
		t.Fatalf("gate must not start for an unready binding")
		return nil
	})
	r := NewRenderer(testSettings(), g)
	b := loadBinding(t)
	b.State = "loading"
	f, err := r.Render(context.Background(), b)
	if f != nil || err != nil {
		t.Fatalf("expected a no-op, got %v, %v", f, err)
	}
}

func TestRendererWaitsForGate(t *testing.T) {
	boom := errors.New("no fonts")
	r := NewRenderer(testSettings(), NewGate(func(context.Context) error { return boom }))
	if _, err := r.Render(context.Background(), loadBinding(t)); !errors.Is(err, boom) {
		t.Fatalf("expected gate error, got %v", err)
	}

	r = NewRenderer(testSettings(), NewGate(nil))
	r.Now = func() time.Time { return at(2024, 1, 10, 10, 0) }
	f, err := r.Render(context.Background(), loadBinding(t))
	if err != nil || f == nil || len(f.Rows) != 2 {
		t.Fatalf("expected a frame, got %v, %v", f, err)
	}
}

func TestFrameTransform(t *testing.T) {
	f := &Frame{Options: Options{
		AxisMin:   date(2024, 1, 1),
		AxisMax:   date(2024, 1, 11),
		ZoomStart: 5,
		ZoomEnd:   15,
	}}
	tr := f.Transform(Rect{X: 0, Y: 0, Width: 1000, Height: 500})
	p := tr.Coord(date(2024, 1, 6), 10)
	if p.X != 500 || p.Y != 250 {
		t.Fatalf("unexpected point %+v", p)
	}
}
