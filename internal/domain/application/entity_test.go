package application

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kumulworks/hris-backend-go/internal/domain/attendance"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func clockPtr(s string) *attendance.Clock {
	c, err := attendance.ParseClock(s)
	if err != nil {
		panic(err)
	}
	return &c
}

func leaveApp(lt LeaveType, duration LeaveDuration, from, to string) Application {
	return Application{
		Type:          TypeLeave,
		LeaveType:     &lt,
		LeaveDuration: &duration,
		DateFrom:      day(from),
		DateTo:        day(to),
	}
}

func TestCreditAmount(t *testing.T) {
	eight := decimal.NewFromInt(8)

	t.Run("single full day", func(t *testing.T) {
		app := leaveApp(LeaveVacation, DurationFullDay, "2026-03-09", "2026-03-09")
		if got := app.CreditAmount(eight); got.String() != "1" {
			t.Errorf("CreditAmount = %s, want 1", got)
		}
	})

	t.Run("multi day span counts inclusive calendar days", func(t *testing.T) {
		app := leaveApp(LeaveSick, DurationFullDay, "2026-03-09", "2026-03-13")
		if got := app.CreditAmount(eight); got.String() != "5" {
			t.Errorf("CreditAmount = %s, want 5", got)
		}
	})

	t.Run("half day debits the span fraction", func(t *testing.T) {
		app := leaveApp(LeaveVacation, DurationHalfDay, "2026-03-09", "2026-03-09")
		app.TimeFrom = clockPtr("08:00")
		app.TimeTo = clockPtr("12:00")
		if got := app.CreditAmount(eight); got.String() != "0.5" {
			t.Errorf("CreditAmount = %s, want 0.5", got)
		}
	})

	t.Run("unpaid leave debits nothing", func(t *testing.T) {
		app := leaveApp(LeaveUnpaid, DurationFullDay, "2026-03-09", "2026-03-11")
		if got := app.CreditAmount(eight); !got.IsZero() {
			t.Errorf("CreditAmount = %s, want 0", got)
		}
	})

	t.Run("overtime debits nothing", func(t *testing.T) {
		ot := OvertimeRegular
		app := Application{
			Type:         TypeOvertime,
			OvertimeType: &ot,
			DateFrom:     day("2026-03-09"),
			DateTo:       day("2026-03-09"),
		}
		if got := app.CreditAmount(eight); !got.IsZero() {
			t.Errorf("CreditAmount = %s, want 0", got)
		}
	})
}

func TestSpanHours(t *testing.T) {
	app := Application{TimeFrom: clockPtr("22:00"), TimeTo: clockPtr("02:00")}
	if got := app.SpanHours(); got.String() != "4" {
		t.Errorf("SpanHours = %s, want 4 (wrapped across midnight)", got)
	}

	app = Application{TimeFrom: clockPtr("17:00"), TimeTo: clockPtr("20:30")}
	if got := app.SpanHours(); got.String() != "3.5" {
		t.Errorf("SpanHours = %s, want 3.5", got)
	}

	app = Application{}
	if got := app.SpanHours(); !got.IsZero() {
		t.Errorf("SpanHours = %s, want 0 when times are missing", got)
	}
}

func TestOverlapDays(t *testing.T) {
	app := Application{DateFrom: day("2026-03-09"), DateTo: day("2026-03-13")}

	tests := []struct {
		name     string
		from, to string
		want     int64
	}{
		{"fully inside period", "2026-03-01", "2026-03-31", 5},
		{"clipped at period end", "2026-03-01", "2026-03-10", 2},
		{"clipped at period start", "2026-03-12", "2026-03-31", 2},
		{"no overlap", "2026-04-01", "2026-04-30", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := app.OverlapDays(day(tt.from), day(tt.to)); got != tt.want {
				t.Errorf("OverlapDays = %d, want %d", got, tt.want)
			}
		})
	}
}
