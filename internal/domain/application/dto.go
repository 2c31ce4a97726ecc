package application

import (
	"time"

	"github.com/kumulworks/hris-backend-go/internal/domain/attendance"
	"github.com/kumulworks/hris-backend-go/internal/pkg/validator"
)

// SubmitRequest carries a new leave or overtime application. The submitting
// employee comes from the caller's token, not the body.
type SubmitRequest struct {
	Type string `json:"application_type"`

	LeaveType     *string `json:"leave_type"`
	LeaveDuration *string `json:"leave_duration"`
	HalfDayPeriod *string `json:"half_day_period"`

	OvertimeType *string `json:"overtime_type"`

	DateFrom string  `json:"date_from"`
	DateTo   string  `json:"date_to"`
	TimeFrom *string `json:"time_from"`
	TimeTo   *string `json:"time_to"`

	Purpose string `json:"purpose"`
}

func (r SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Purpose) {
		errs = errs.Add("purpose", "is required")
	}

	from, okFrom := validator.IsValidDate(r.DateFrom)
	if !okFrom {
		errs = errs.Add("date_from", "must be YYYY-MM-DD")
	}
	to, okTo := validator.IsValidDate(r.DateTo)
	if !okTo {
		errs = errs.Add("date_to", "must be YYYY-MM-DD")
	}
	if okFrom && okTo && to.Before(from) {
		errs = errs.Add("date_to", "must not be before date_from")
	}

	switch Type(r.Type) {
	case TypeLeave:
		errs = r.validateLeave(errs, from, to, okFrom && okTo)
	case TypeOvertime:
		errs = r.validateOvertime(errs)
	default:
		errs = errs.Add("application_type", "must be leave or overtime")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r SubmitRequest) validateLeave(errs validator.ValidationErrors, from, to time.Time, datesOK bool) validator.ValidationErrors {
	if r.OvertimeType != nil {
		errs = errs.Add("overtime_type", "must be empty for leave applications")
	}
	if r.LeaveType == nil || !LeaveType(*r.LeaveType).Valid() {
		errs = errs.Add("leave_type", "must be vacation, sick, emergency or unpaid")
	}
	if r.LeaveDuration == nil {
		return errs.Add("leave_duration", "is required")
	}

	switch LeaveDuration(*r.LeaveDuration) {
	case DurationFullDay:
		if r.HalfDayPeriod != nil {
			errs = errs.Add("half_day_period", "must be empty for full-day leave")
		}
	case DurationHalfDay:
		if r.HalfDayPeriod == nil || (*r.HalfDayPeriod != string(HalfDayAM) && *r.HalfDayPeriod != string(HalfDayPM)) {
			errs = errs.Add("half_day_period", "must be am or pm")
		}
		if datesOK && !to.Equal(from) {
			errs = errs.Add("date_to", "must equal date_from for half-day leave")
		}
		tf, tt, ok := parseTimeRange(r.TimeFrom, r.TimeTo, &errs)
		if ok && tt.Seconds() <= tf.Seconds() {
			errs = errs.Add("time_to", "must be after time_from")
		}
	default:
		errs = errs.Add("leave_duration", "must be full_day or half_day")
	}
	return errs
}

func (r SubmitRequest) validateOvertime(errs validator.ValidationErrors) validator.ValidationErrors {
	if r.LeaveType != nil || r.LeaveDuration != nil || r.HalfDayPeriod != nil {
		errs = errs.Add("leave_type", "leave fields must be empty for overtime applications")
	}
	if r.OvertimeType == nil || !OvertimeType(*r.OvertimeType).Valid() {
		errs = errs.Add("overtime_type", "must be regular, holiday or rest_day")
	}
	// Overtime spans may wrap past midnight, so only presence and format are
	// checked here.
	parseTimeRange(r.TimeFrom, r.TimeTo, &errs)
	return errs
}

func parseTimeRange(timeFrom, timeTo *string, errs *validator.ValidationErrors) (attendance.Clock, attendance.Clock, bool) {
	var tf, tt attendance.Clock
	ok := true
	if timeFrom == nil || !validator.IsValidClock(*timeFrom) {
		*errs = errs.Add("time_from", "must be HH:MM or HH:MM:SS")
		ok = false
	} else {
		tf, _ = attendance.ParseClock(*timeFrom)
	}
	if timeTo == nil || !validator.IsValidClock(*timeTo) {
		*errs = errs.Add("time_to", "must be HH:MM or HH:MM:SS")
		ok = false
	} else {
		tt, _ = attendance.ParseClock(*timeTo)
	}
	return tf, tt, ok
}

// RejectRequest carries the optional human-readable rejection reason.
type RejectRequest struct {
	Reason *string `json:"reason"`
}

// Response is the application view returned to clients.
type Response struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	Type            string  `json:"application_type"`
	LeaveType       *string `json:"leave_type,omitempty"`
	LeaveDuration   *string `json:"leave_duration,omitempty"`
	HalfDayPeriod   *string `json:"half_day_period,omitempty"`
	OvertimeType    *string `json:"overtime_type,omitempty"`
	DateFrom        string  `json:"date_from"`
	DateTo          string  `json:"date_to"`
	TimeFrom        *string `json:"time_from,omitempty"`
	TimeTo          *string `json:"time_to,omitempty"`
	Purpose         string  `json:"purpose"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
	DecidedAt       *string `json:"decided_at,omitempty"`
}

func ToResponse(a Application) Response {
	resp := Response{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		Type:            string(a.Type),
		DateFrom:        a.DateFrom.Format("2006-01-02"),
		DateTo:          a.DateTo.Format("2006-01-02"),
		Purpose:         a.Purpose,
		Status:          string(a.Status),
		RejectionReason: a.RejectionReason,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
	}
	if a.LeaveType != nil {
		v := string(*a.LeaveType)
		resp.LeaveType = &v
	}
	if a.LeaveDuration != nil {
		v := string(*a.LeaveDuration)
		resp.LeaveDuration = &v
	}
	if a.HalfDayPeriod != nil {
		v := string(*a.HalfDayPeriod)
		resp.HalfDayPeriod = &v
	}
	if a.OvertimeType != nil {
		v := string(*a.OvertimeType)
		resp.OvertimeType = &v
	}
	if a.TimeFrom != nil {
		v := a.TimeFrom.String()
		resp.TimeFrom = &v
	}
	if a.TimeTo != nil {
		v := a.TimeTo.String()
		resp.TimeTo = &v
	}
	if a.DecidedAt != nil {
		v := a.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}
