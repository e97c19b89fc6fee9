package gantt

import "time"

// NotStartedCode is the status code of an order that has not started yet.
const NotStartedCode = 401

// Row is one normalized work order. Position, RemainingMinutes and
// BufferMinutes are rewritten by Sequence and AdjustDurations; everything
// else is fixed at normalization.
type Row struct {
	Position             int
	OrderNumber          string
	StartTime            time.Time
	EndTime              time.Time
	WorkCenter           string
	RemainingMinutes     float64
	ProgressTime         time.Time
	BufferMinutes        float64
	StatusColor          StatusColor
	NowTimestamp         time.Time
	HolidayListRaw       string
	AbsoluteProgressTime time.Time
	NowTime              time.Time
	StatusCode           int
}

// Slot names a semantic Row field a host field can be bound to.
type Slot string

const (
	SlotOrderNumber          Slot = "order_number"
	SlotStartTime            Slot = "start_time"
	SlotEndTime              Slot = "end_time"
	SlotWorkCenter           Slot = "work_center"
	SlotRemainingMinutes     Slot = "remaining_minutes"
	SlotProgressTime         Slot = "progress_time"
	SlotBufferMinutes        Slot = "buffer_minutes"
	SlotStatusColor          Slot = "status_color"
	SlotNowTimestamp         Slot = "now_timestamp"
	SlotHolidayList          Slot = "holiday_list"
	SlotAbsoluteProgressTime Slot = "absolute_progress_time"
	SlotNowTime              Slot = "now_time"
	SlotStatusCode           Slot = "status_code"
)

// Bindings maps row slots to host field ids.
type Bindings map[Slot]string

// DefaultBindings returns the field ids the work-order model ships with.
func DefaultBindings() Bindings {
	return Bindings{
		SlotOrderNumber:          "ORDER_NUMBER",
		SlotStartTime:            "START_TIMESTAMP",
		SlotEndTime:              "END_TIMESTAMP",
		SlotWorkCenter:           "WORK_CENTER",
		SlotRemainingMinutes:     "REMAINING_TIME",
		SlotProgressTime:         "PROGRESS_TIMESTAMP",
		SlotBufferMinutes:        "BUFFER_TIME",
		SlotStatusColor:          "STATUS_COLOR",
		SlotNowTimestamp:         "NOW_TIMESTAMP",
		SlotHolidayList:          "HOLIDAYS",
		SlotAbsoluteProgressTime: "ABSOLUTE_TIME",
		SlotNowTime:              "NOW_TIME",
		SlotStatusCode:           "STATUS_CODE",
	}
}

// byField inverts b: field id -> slots fed by that field.
func (b Bindings) byField() map[string][]Slot {
	out := make(map[string][]Slot, len(b))
	for s, id := range b {
		out[id] = append(out[id], s)
	}
	return out
}
