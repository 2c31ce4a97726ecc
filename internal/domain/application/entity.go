package application

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kumulworks/hris-backend-go/internal/domain/attendance"
	"github.com/kumulworks/hris-backend-go/internal/domain/leavecredit"
)

type Type string

const (
	TypeLeave    Type = "leave"
	TypeOvertime Type = "overtime"
)

type LeaveType string

const (
	LeaveVacation  LeaveType = "vacation"
	LeaveSick      LeaveType = "sick"
	LeaveEmergency LeaveType = "emergency"
	LeaveUnpaid    LeaveType = "unpaid"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveVacation, LeaveSick, LeaveEmergency, LeaveUnpaid:
		return true
	}
	return false
}

// CreditCategory maps a paid leave type to the ledger category it debits.
// Unpaid leave debits nothing.
func (t LeaveType) CreditCategory() (leavecredit.Category, bool) {
	switch t {
	case LeaveVacation:
		return leavecredit.CategoryVacation, true
	case LeaveSick:
		return leavecredit.CategorySick, true
	case LeaveEmergency:
		return leavecredit.CategoryEmergency, true
	}
	return "", false
}

type LeaveDuration string

const (
	DurationFullDay LeaveDuration = "full_day"
	DurationHalfDay LeaveDuration = "half_day"
)

type HalfDayPeriod string

const (
	HalfDayAM HalfDayPeriod = "am"
	HalfDayPM HalfDayPeriod = "pm"
)

type OvertimeType string

const (
	OvertimeRegular OvertimeType = "regular"
	OvertimeHoliday OvertimeType = "holiday"
	OvertimeRestDay OvertimeType = "rest_day"
)

func (t OvertimeType) Valid() bool {
	switch t {
	case OvertimeRegular, OvertimeHoliday, OvertimeRestDay:
		return true
	}
	return false
}

// Application is an employee's leave or overtime request progressing through
// supervisor then HR approval.
type Application struct {
	ID         string
	EmployeeID string
	Type       Type

	// Leave-only
	LeaveType     *LeaveType
	LeaveDuration *LeaveDuration
	HalfDayPeriod *HalfDayPeriod

	// Overtime-only
	OvertimeType *OvertimeType

	// Inclusive date range; equal endpoints for half-day leave and overtime.
	DateFrom time.Time
	DateTo   time.Time

	// Populated for half-day leave and all overtime.
	TimeFrom *attendance.Clock
	TimeTo   *attendance.Clock

	Purpose         string
	Status          Status
	RejectionReason *string

	CreatedAt time.Time
	DecidedAt *time.Time
}

// SpanHours is the time_from..time_to span in hours, wrapped across midnight
// when the span reads negative.
func (a Application) SpanHours() decimal.Decimal {
	if a.TimeFrom == nil || a.TimeTo == nil {
		return decimal.Zero
	}
	span := a.TimeTo.Seconds() - a.TimeFrom.Seconds()
	if span < 0 {
		span += 24 * 60 * 60
	}
	return decimal.NewFromInt(int64(span)).Div(decimal.NewFromInt(3600))
}

// CalendarDays is the inclusive day count of the date range.
func (a Application) CalendarDays() int64 {
	return int64(a.DateTo.Sub(a.DateFrom).Hours()/24) + 1
}

// CreditAmount is the number of leave-credit days this application debits on
// approval: calendar days for full-day leave, or the fraction of a standard
// day implied by the half-day span. Overtime and unpaid leave debit zero.
func (a Application) CreditAmount(standardDayHours decimal.Decimal) decimal.Decimal {
	if a.Type != TypeLeave || a.LeaveType == nil {
		return decimal.Zero
	}
	if _, deductible := a.LeaveType.CreditCategory(); !deductible {
		return decimal.Zero
	}
	if a.LeaveDuration != nil && *a.LeaveDuration == DurationHalfDay {
		return a.SpanHours().Div(standardDayHours)
	}
	return decimal.NewFromInt(a.CalendarDays())
}

// OverlapDays counts the application's dates that fall inside [from, to].
func (a Application) OverlapDays(from, to time.Time) int64 {
	start := a.DateFrom
	if from.After(start) {
		start = from
	}
	end := a.DateTo
	if to.Before(end) {
		end = to
	}
	if end.Before(start) {
		return 0
	}
	return int64(end.Sub(start).Hours()/24) + 1
}
