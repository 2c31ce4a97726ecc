package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kumulworks/hris-backend-go/internal/config"
	"github.com/kumulworks/hris-backend-go/internal/domain/application"
	"github.com/kumulworks/hris-backend-go/internal/domain/attendance"
	"github.com/kumulworks/hris-backend-go/internal/domain/employee"
	"github.com/kumulworks/hris-backend-go/internal/domain/payroll"
)

type Service struct {
	records     payroll.Repository
	attendances attendance.Repository
	apps        application.Repository
	employees   employee.Repository

	policy     config.PayrollPolicy
	zeroPolicy attendance.ZeroPolicy
}

func NewService(
	records payroll.Repository,
	attendances attendance.Repository,
	apps application.Repository,
	employees employee.Repository,
	policy config.PayrollPolicy,
	zeroPolicy attendance.ZeroPolicy,
) *Service {
	return &Service{
		records:     records,
		attendances: attendances,
		apps:        apps,
		employees:   employees,
		policy:      policy,
		zeroPolicy:  zeroPolicy,
	}
}

// Compute aggregates attendance and approved overtime for one employee over
// a period and stores the resulting payroll record. Recomputing the same
// period replaces the previous record wholesale, so repeated runs over
// unchanged inputs yield identical rows.
func (s *Service) Compute(ctx context.Context, req payroll.ComputeRequest) (payroll.Record, error) {
	if err := req.Validate(); err != nil {
		return payroll.Record{}, err
	}
	period, err := req.Period()
	if err != nil {
		return payroll.Record{}, err
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.Record{}, err
	}

	records, err := s.attendances.ListByEmployeeAndRange(ctx, req.EmployeeID, period.Start, period.End)
	if err != nil {
		return payroll.Record{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	totalHours := decimal.Zero
	var daysWorked, daysAbsent, daysLate int
	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusAbsent:
			daysAbsent++
			continue
		case attendance.StatusLate:
			daysLate++
		}
		if rec.Status.Counted() {
			daysWorked++
		}
		totalHours = totalHours.Add(rec.WorkedHours(s.zeroPolicy))
	}

	overtimeHours, overtimePay, err := s.overtime(ctx, req.EmployeeID, period, emp.HourlyRate)
	if err != nil {
		return payroll.Record{}, err
	}

	base := proratedBase(emp.BaseSalary, daysWorked, period)
	gross := base.Add(overtimePay).Add(emp.Bonuses)

	tax := gross.Mul(s.policy.TaxRate)
	nasfund := gross.Mul(s.policy.NasfundRate)
	late := s.policy.LateDeductionRate.Mul(decimal.NewFromInt(int64(daysLate)))

	net := gross.Sub(tax).Sub(nasfund).Sub(emp.OtherDeductions).Sub(late)

	var warnings []string
	if net.IsNegative() {
		warnings = append(warnings, payroll.WarningNegativeNetPay)
		net = decimal.Zero
	}

	record := payroll.Record{
		EmployeeID:       req.EmployeeID,
		PeriodStart:      period.Start,
		PeriodEnd:        period.End,
		BaseSalary:       emp.BaseSalary,
		TotalHours:       totalHours.Round(2),
		OvertimeHours:    overtimeHours.Round(2),
		OvertimePay:      overtimePay.Round(2),
		GrossPay:         gross.Round(2),
		TaxDeduction:     tax.Round(2),
		NasfundDeduction: nasfund.Round(2),
		OtherDeductions:  emp.OtherDeductions.Round(2),
		LateDeduction:    late.Round(2),
		Bonuses:          emp.Bonuses.Round(2),
		NetPay:           net.Round(2),
		DaysWorked:       daysWorked,
		DaysAbsent:       daysAbsent,
		DaysLate:         daysLate,
		Warnings:         warnings,
		Status:           payroll.StatusDraft,
		ComputedAt:       time.Now(),
	}

	stored, err := s.records.Replace(ctx, record)
	if err != nil {
		return payroll.Record{}, fmt.Errorf("failed to store payroll record: %w", err)
	}
	return stored, nil
}

// Recompute re-runs the aggregation for a period after attendance or
// application corrections. It re-reads every input and replaces the stored
// record, exactly as a first Compute would.
func (s *Service) Recompute(ctx context.Context, req payroll.ComputeRequest) (payroll.Record, error) {
	return s.Compute(ctx, req)
}

func (s *Service) GetByEmployeePeriod(ctx context.Context, employeeID string, period payroll.Period) (payroll.Record, error) {
	return s.records.GetByEmployeePeriod(ctx, employeeID, period)
}

func (s *Service) ListByPeriod(ctx context.Context, period payroll.Period) ([]payroll.Record, error) {
	return s.records.ListByPeriod(ctx, period)
}

// overtime sums approved overtime applications clipped to the period. Each
// application contributes its nightly span once per overlapping day, paid at
// the hourly rate times the type multiplier.
func (s *Service) overtime(ctx context.Context, employeeID string, period payroll.Period, hourlyRate decimal.Decimal) (hours, pay decimal.Decimal, err error) {
	apps, err := s.apps.ListApprovedOvertimeOverlapping(ctx, employeeID, period.Start, period.End)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to load overtime applications: %w", err)
	}

	hours, pay = decimal.Zero, decimal.Zero
	for _, app := range apps {
		span := app.SpanHours()
		days := app.OverlapDays(period.Start, period.End)
		if days == 0 || span.IsZero() {
			continue
		}
		appHours := span.Mul(decimal.NewFromInt(int64(days)))
		hours = hours.Add(appHours)
		pay = pay.Add(appHours.Mul(hourlyRate).Mul(s.multiplier(app.OvertimeType)))
	}
	return hours, pay, nil
}

func (s *Service) multiplier(t *application.OvertimeType) decimal.Decimal {
	if t == nil {
		return s.policy.OvertimeRegularMultiplier
	}
	switch *t {
	case application.OvertimeHoliday:
		return s.policy.OvertimeHolidayMultiplier
	case application.OvertimeRestDay:
		return s.policy.OvertimeRestDayMultiplier
	default:
		return s.policy.OvertimeRegularMultiplier
	}
}

// proratedBase scales the monthly base by attendance over the period's
// weekdays. A period with no weekdays, or no days worked, pays no base.
func proratedBase(baseSalary decimal.Decimal, daysWorked int, period payroll.Period) decimal.Decimal {
	weekdays := period.Weekdays()
	if weekdays == 0 || daysWorked == 0 {
		return decimal.Zero
	}
	return baseSalary.
		Mul(decimal.NewFromInt(int64(daysWorked))).
		Div(decimal.NewFromInt(int64(weekdays)))
}
