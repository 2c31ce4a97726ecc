package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kumulworks/hris-backend-go/internal/pkg/validator"
)

// ComputeRequest names the employee and pay period to aggregate.
type ComputeRequest struct {
	EmployeeID  string `json:"employee_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (r ComputeRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = errs.Add("employee_id", "is required")
	}
	start, okStart := validator.IsValidDate(r.PeriodStart)
	if !okStart {
		errs = errs.Add("period_start", "must be YYYY-MM-DD")
	}
	end, okEnd := validator.IsValidDate(r.PeriodEnd)
	if !okEnd {
		errs = errs.Add("period_end", "must be YYYY-MM-DD")
	}
	if okStart && okEnd && end.Before(start) {
		errs = errs.Add("period_end", "must not be before period_start")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period parses the validated date range.
func (r ComputeRequest) Period() (Period, error) {
	start, err := time.Parse("2006-01-02", r.PeriodStart)
	if err != nil {
		return Period{}, err
	}
	end, err := time.Parse("2006-01-02", r.PeriodEnd)
	if err != nil {
		return Period{}, err
	}
	if end.Before(start) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Start: start, End: end}, nil
}

// RecordResponse serializes monetary fields as 2-decimal strings.
type RecordResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`

	BaseSalary    string `json:"base_salary"`
	TotalHours    string `json:"total_hours"`
	OvertimeHours string `json:"overtime_hours"`
	OvertimePay   string `json:"overtime_pay"`

	GrossPay         string `json:"gross_pay"`
	TaxDeduction     string `json:"tax_deduction"`
	NasfundDeduction string `json:"nasfund_deduction"`
	OtherDeductions  string `json:"other_deductions"`
	LateDeduction    string `json:"late_deduction"`
	Bonuses          string `json:"bonuses"`
	NetPay           string `json:"net_pay"`

	DaysWorked int `json:"days_worked"`
	DaysAbsent int `json:"days_absent"`
	DaysLate   int `json:"days_late"`

	Status   string   `json:"status"`
	Warnings []string `json:"warnings,omitempty"`
}

func ToResponse(r Record) RecordResponse {
	money := func(d decimal.Decimal) string { return d.StringFixed(2) }
	return RecordResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		PeriodStart:      r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:        r.PeriodEnd.Format("2006-01-02"),
		BaseSalary:       money(r.BaseSalary),
		TotalHours:       money(r.TotalHours),
		OvertimeHours:    money(r.OvertimeHours),
		OvertimePay:      money(r.OvertimePay),
		GrossPay:         money(r.GrossPay),
		TaxDeduction:     money(r.TaxDeduction),
		NasfundDeduction: money(r.NasfundDeduction),
		OtherDeductions:  money(r.OtherDeductions),
		LateDeduction:    money(r.LateDeduction),
		Bonuses:          money(r.Bonuses),
		NetPay:           money(r.NetPay),
		DaysWorked:       r.DaysWorked,
		DaysAbsent:       r.DaysAbsent,
		DaysLate:         r.DaysLate,
		Status:           string(r.Status),
		Warnings:         r.Warnings,
	}
}
