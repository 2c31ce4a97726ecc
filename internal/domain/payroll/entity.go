package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is an inclusive date range over which attendance and approved
// applications aggregate into one payroll record.
type Period struct {
	Start time.Time
	End   time.Time
}

// Weekdays counts Monday..Friday dates in the period; the default prorating
// policy divides by this.
func (p Period) Weekdays() int {
	count := 0
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			count++
		}
	}
	return count
}

// PayrollStatus enum
type Status string

const (
	StatusDraft Status = "draft"
	StatusPaid  Status = "paid"
)

// WarningNegativeNetPay marks a record whose unclamped net pay was negative;
// the stored net pay is clamped to zero but the shortfall is never silent.
const WarningNegativeNetPay = "negative_net_pay"

// Record - derived payroll result per employee per pay period. Recomputation
// replaces the whole row; nothing is patched incrementally.
type Record struct {
	ID          string
	EmployeeID  string
	PeriodStart time.Time
	PeriodEnd   time.Time

	BaseSalary    decimal.Decimal
	TotalHours    decimal.Decimal
	OvertimeHours decimal.Decimal
	OvertimePay   decimal.Decimal

	GrossPay         decimal.Decimal
	TaxDeduction     decimal.Decimal
	NasfundDeduction decimal.Decimal
	OtherDeductions  decimal.Decimal
	LateDeduction    decimal.Decimal
	Bonuses          decimal.Decimal
	NetPay           decimal.Decimal

	DaysWorked int
	DaysAbsent int
	DaysLate   int

	Status   Status
	Warnings []string

	ComputedAt time.Time
}

// TotalDeductions folds the four deduction fields.
func (r Record) TotalDeductions() decimal.Decimal {
	return r.TaxDeduction.Add(r.NasfundDeduction).Add(r.OtherDeductions).Add(r.LateDeduction)
}
