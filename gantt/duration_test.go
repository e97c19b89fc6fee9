package gantt

import (
	"testing"
	"time"
)

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestAdjustDurationsNotStartedScenario(t *testing.T) {
	// Wednesday: no weekend inside a zero-day scan window.
	cal, err := BuildCalendar("20240101", 0, 0, at(2024, 1, 3, 9, 0), time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := Row{
		StatusCode:           NotStartedCode,
		StartTime:            AdjustBusinessTime(at(2023, 12, 31, 8, 0)),
		EndTime:              AdjustBusinessTime(at(2024, 1, 2, 8, 0)),
		RemainingMinutes:     2880,
		AbsoluteProgressTime: at(2024, 1, 3, 9, 0),
		NowTime:              at(2024, 1, 3, 9, 0),
		BufferMinutes:        60,
	}
	AdjustDurations(&r, cal)
	if r.RemainingMinutes != 1440 {
		t.Fatalf("expected 1440 remaining minutes, got %v", r.RemainingMinutes)
	}
	if r.BufferMinutes != 60 {
		t.Fatalf("buffer range holds no calendar day, got %v", r.BufferMinutes)
	}
}

// The not-started branch compares the raw business start time while the
// other branch compares the truncated progress day. Both are pinned here.
func TestAdjustDurationsRemainingRangeBranches(t *testing.T) {
	cal := Calendar{at(2024, 1, 1, 0, 0)}
	base := Row{
		StartTime:            AdjustBusinessTime(at(2024, 1, 1, 8, 0)), // 03:00
		EndTime:              AdjustBusinessTime(at(2024, 1, 2, 8, 0)),
		AbsoluteProgressTime: at(2024, 1, 1, 15, 0),
		NowTime:              at(2024, 1, 1, 15, 0),
		RemainingMinutes:     2000,
	}

	notStarted := base
	notStarted.StatusCode = NotStartedCode
	AdjustDurations(&notStarted, cal)
	if notStarted.RemainingMinutes != 2000 {
		t.Fatalf("holiday midnight lies before the raw start time, got %v", notStarted.RemainingMinutes)
	}

	running := base
	running.StatusCode = 402
	AdjustDurations(&running, cal)
	if running.RemainingMinutes != 560 {
		t.Fatalf("truncated progress day includes the holiday, got %v", running.RemainingMinutes)
	}
}

func TestAdjustDurationsBufferSign(t *testing.T) {
	cal := Calendar{at(2024, 1, 6, 0, 0), at(2024, 1, 7, 0, 0)}
	tests := []struct {
		name     string
		status   StatusColor
		progress time.Time
		now      time.Time
		want     float64
	}{
		{"red adds", Red, at(2024, 1, 5, 10, 0), at(2024, 1, 8, 9, 0), 100 + 2*1440},
		{"green subtracts", Green, at(2024, 1, 5, 10, 0), at(2024, 1, 8, 9, 0), 100 - 2*1440},
		{"grey subtracts", Grey, at(2024, 1, 5, 10, 0), at(2024, 1, 8, 9, 0), 100 - 2*1440},
		{"progress after now is reordered", Green, at(2024, 1, 8, 9, 0), at(2024, 1, 5, 10, 0), 100 - 2*1440},
		{"same day", Red, at(2024, 1, 8, 7, 0), at(2024, 1, 8, 9, 0), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Row{
				StatusColor:          tt.status,
				StartTime:            at(2024, 1, 1, 0, 0),
				EndTime:              at(2024, 1, 1, 0, 0),
				AbsoluteProgressTime: tt.progress,
				NowTime:              tt.now,
				BufferMinutes:        100,
			}
			AdjustDurations(&r, cal)
			if r.BufferMinutes != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, r.BufferMinutes)
			}
		})
	}
}

func TestAdjustDurationsZeroBufferBeforeStart(t *testing.T) {
	cal := Calendar{at(2024, 1, 6, 0, 0)}
	for _, status := range []StatusColor{Green, Red, Grey} {
		r := Row{
			StatusColor:          status,
			StartTime:            at(2024, 1, 10, 3, 0),
			EndTime:              at(2024, 1, 12, 3, 0),
			AbsoluteProgressTime: at(2024, 1, 4, 0, 0),
			NowTime:              at(2024, 1, 9, 23, 0),
			BufferMinutes:        -500,
		}
		AdjustDurations(&r, cal)
		if r.BufferMinutes != 0 {
			t.Fatalf("%v: expected zero buffer before start, got %v", status, r.BufferMinutes)
		}
	}
}

func TestAdjustDurationsStartDayIsNotBeforeStart(t *testing.T) {
	r := Row{
		StatusColor:          Green,
		StartTime:            at(2024, 1, 10, 20, 0),
		EndTime:              at(2024, 1, 12, 3, 0),
		AbsoluteProgressTime: at(2024, 1, 10, 8, 0),
		NowTime:              at(2024, 1, 10, 8, 0),
		BufferMinutes:        30,
	}
	AdjustDurations(&r, nil)
	if r.BufferMinutes != 30 {
		t.Fatalf("now on the start day keeps the buffer, got %v", r.BufferMinutes)
	}
}

func TestAdjustAll(t *testing.T) {
	cal := Calendar{at(2024, 1, 2, 0, 0)}
	rows := []Row{
		{StartTime: at(2024, 1, 1, 0, 0), EndTime: at(2024, 1, 3, 0, 0), AbsoluteProgressTime: at(2024, 1, 1, 0, 0), NowTime: at(2024, 1, 1, 0, 0), RemainingMinutes: 1440},
		{StartTime: at(2024, 1, 1, 0, 0), EndTime: at(2024, 1, 1, 12, 0), AbsoluteProgressTime: at(2024, 1, 1, 0, 0), NowTime: at(2024, 1, 1, 0, 0), RemainingMinutes: 1440},
	}
	AdjustAll(rows, cal)
	if rows[0].RemainingMinutes != 0 || rows[1].RemainingMinutes != 1440 {
		t.Fatalf("unexpected remaining minutes %v, %v", rows[0].RemainingMinutes, rows[1].RemainingMinutes)
	}
}
