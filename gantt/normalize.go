package gantt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Cell is one field of a host record. Dimensions carry id and label,
// measures carry the raw number.
type Cell struct {
	ID    string   `yaml:"id"`
	Label string   `yaml:"label"`
	Raw   *float64 `yaml:"raw"`
}

// Record is one host row keyed by field key.
type Record map[string]Cell

type valueKind int

const (
	textValue valueKind = iota
	numberValue
	timeValue
)

type value struct {
	kind   valueKind
	text   string
	number float64
	time   time.Time
}

func (v value) String() string {
	switch v.kind {
	case numberValue:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	case timeValue:
		return v.time.Format("20060102150405")
	default:
		return v.text
	}
}

// Normalize converts host records into one Row per record, in input order.
// Position is the record's input index until Sequence rewrites it.
func Normalize(records []Record, cat Catalog, b Bindings, loc *time.Location) ([]Row, error) {
	if loc == nil {
		loc = time.Local
	}
	slots := b.byField()
	fields := cat.Fields()
	rows := make([]Row, len(records))
	for i, rec := range records {
		row := Row{Position: i}
		for _, f := range fields {
			v, err := fieldValue(rec[f.Key], f, loc)
			if err != nil {
				return nil, fmt.Errorf("record %d, field %s: %w", i, f.ID, err)
			}
			for _, s := range slots[f.ID] {
				if err := row.set(s, v, loc); err != nil {
					return nil, fmt.Errorf("record %d, field %s: %w", i, f.ID, err)
				}
			}
		}
		rows[i] = row
	}
	log.Debug().Int("records", len(records)).Int("fields", len(fields)).Msg("rows normalized")
	return rows, nil
}

// fieldValue applies the per-field conversion: timestamp dimensions are
// parsed and compressed onto business time, other dimensions keep their
// label, measures keep their raw number.
func fieldValue(c Cell, f Field, loc *time.Location) (value, error) {
	if f.Role == Measure {
		if c.Raw == nil {
			return value{kind: numberValue}, nil
		}
		return value{kind: numberValue, number: *c.Raw}, nil
	}
	if strings.Contains(f.ID, TimestampMarker) {
		t, err := ParseTimestamp(c.ID, loc)
		if err != nil {
			return value{}, err
		}
		return value{kind: timeValue, time: AdjustBusinessTime(t)}, nil
	}
	return value{kind: textValue, text: c.Label}, nil
}

func (r *Row) set(s Slot, v value, loc *time.Location) error {
	switch s {
	case SlotOrderNumber:
		r.OrderNumber = v.String()
	case SlotWorkCenter:
		r.WorkCenter = v.String()
	case SlotHolidayList:
		r.HolidayListRaw = v.String()
	case SlotStatusColor:
		c, ok := ParseStatusColor(v.String())
		if !ok {
			log.Debug().Str("status", v.String()).Msg("unknown status color, using GREY")
		}
		r.StatusColor = c
	case SlotRemainingMinutes, SlotBufferMinutes:
		n, err := v.float()
		if err != nil {
			return err
		}
		if s == SlotRemainingMinutes {
			r.RemainingMinutes = n
		} else {
			r.BufferMinutes = n
		}
	case SlotStatusCode:
		// Only an exact integer can match NotStartedCode; anything else is
		// treated as code 0.
		n, err := v.float()
		if err != nil || n != math.Trunc(n) {
			log.Debug().Str("status_code", v.String()).Msg("invalid status code, using 0")
			r.StatusCode = 0
			return nil
		}
		r.StatusCode = int(n)
	case SlotStartTime, SlotEndTime, SlotProgressTime, SlotNowTimestamp:
		t, err := v.businessTime(loc)
		if err != nil {
			return err
		}
		switch s {
		case SlotStartTime:
			r.StartTime = t
		case SlotEndTime:
			r.EndTime = t
		case SlotProgressTime:
			r.ProgressTime = t
		default:
			r.NowTimestamp = t
		}
	case SlotAbsoluteProgressTime, SlotNowTime:
		t, err := v.wallTime(loc)
		if err != nil {
			return err
		}
		if s == SlotNowTime {
			r.NowTime = t
		} else {
			r.AbsoluteProgressTime = t
		}
	}
	return nil
}

func (v value) float() (float64, error) {
	switch v.kind {
	case numberValue:
		return v.number, nil
	case textValue:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedValue, v.text)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: timestamp bound to a numeric slot", ErrMalformedValue)
	}
}

// businessTime returns v on the compressed business axis.
func (v value) businessTime(loc *time.Location) (time.Time, error) {
	if v.kind == timeValue {
		return v.time, nil
	}
	t, err := ParseTimestamp(v.String(), loc)
	if err != nil {
		return time.Time{}, err
	}
	return AdjustBusinessTime(t), nil
}

// wallTime returns v as a plain clock time. Fields carrying the timestamp
// marker were already compressed by fieldValue and are used as they are.
func (v value) wallTime(loc *time.Location) (time.Time, error) {
	if v.kind == timeValue {
		return v.time, nil
	}
	return ParseTimestamp(v.String(), loc)
}
