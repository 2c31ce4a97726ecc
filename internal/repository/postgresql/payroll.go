package postgresql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kumulworks/hris-backend-go/internal/domain/payroll"
	"github.com/kumulworks/hris-backend-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepositoryImpl{db: db}
}

// Replace implements payroll.Repository. Every derived column is overwritten
// on conflict so recomputation never leaves stale figures behind.
func (r *payrollRepositoryImpl) Replace(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			id, employee_id, period_start, period_end,
			base_salary, total_hours, overtime_hours, overtime_pay,
			gross_pay, tax_deduction, nasfund_deduction, other_deductions,
			late_deduction, bonuses, net_pay,
			days_worked, days_absent, days_late,
			status, warnings, computed_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, $11, $12,
			$13, $14, $15,
			$16, $17, $18,
			$19, $20, $21
		)
		ON CONFLICT (employee_id, period_start, period_end)
		DO UPDATE SET
			base_salary = EXCLUDED.base_salary,
			total_hours = EXCLUDED.total_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			overtime_pay = EXCLUDED.overtime_pay,
			gross_pay = EXCLUDED.gross_pay,
			tax_deduction = EXCLUDED.tax_deduction,
			nasfund_deduction = EXCLUDED.nasfund_deduction,
			other_deductions = EXCLUDED.other_deductions,
			late_deduction = EXCLUDED.late_deduction,
			bonuses = EXCLUDED.bonuses,
			net_pay = EXCLUDED.net_pay,
			days_worked = EXCLUDED.days_worked,
			days_absent = EXCLUDED.days_absent,
			days_late = EXCLUDED.days_late,
			status = EXCLUDED.status,
			warnings = EXCLUDED.warnings,
			computed_at = EXCLUDED.computed_at
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		uuid.NewString(),
		record.EmployeeID, record.PeriodStart, record.PeriodEnd,
		record.BaseSalary, record.TotalHours, record.OvertimeHours, record.OvertimePay,
		record.GrossPay, record.TaxDeduction, record.NasfundDeduction, record.OtherDeductions,
		record.LateDeduction, record.Bonuses, record.NetPay,
		record.DaysWorked, record.DaysAbsent, record.DaysLate,
		record.Status, record.Warnings, record.ComputedAt,
	).Scan(&record.ID)
	if err != nil {
		return payroll.Record{}, err
	}
	return record, nil
}

// GetByEmployeePeriod implements payroll.Repository.
func (r *payrollRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, period payroll.Period) (payroll.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, employee_id, period_start, period_end,
			   base_salary, total_hours, overtime_hours, overtime_pay,
			   gross_pay, tax_deduction, nasfund_deduction, other_deductions,
			   late_deduction, bonuses, net_pay,
			   days_worked, days_absent, days_late,
			   status, warnings, computed_at
		FROM payroll_records
		WHERE employee_id = $1 AND period_start = $2 AND period_end = $3
	`

	return scanPayrollRecord(q.QueryRow(ctx, query, employeeID, period.Start, period.End))
}

// ListByPeriod implements payroll.Repository.
func (r *payrollRepositoryImpl) ListByPeriod(ctx context.Context, period payroll.Period) ([]payroll.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, employee_id, period_start, period_end,
			   base_salary, total_hours, overtime_hours, overtime_pay,
			   gross_pay, tax_deduction, nasfund_deduction, other_deductions,
			   late_deduction, bonuses, net_pay,
			   days_worked, days_absent, days_late,
			   status, warnings, computed_at
		FROM payroll_records
		WHERE period_start = $1 AND period_end = $2
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]payroll.Record, 0)
	for rows.Next() {
		record, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanPayrollRecord(row pgx.Row) (payroll.Record, error) {
	var record payroll.Record
	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.PeriodStart, &record.PeriodEnd,
		&record.BaseSalary, &record.TotalHours, &record.OvertimeHours, &record.OvertimePay,
		&record.GrossPay, &record.TaxDeduction, &record.NasfundDeduction, &record.OtherDeductions,
		&record.LateDeduction, &record.Bonuses, &record.NetPay,
		&record.DaysWorked, &record.DaysAbsent, &record.DaysLate,
		&record.Status, &record.Warnings, &record.ComputedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, err
	}
	return record, nil
}
