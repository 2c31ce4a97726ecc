package payroll

import "context"

// Repository - interface for payroll_records table.
type Repository interface {
	// Replace upserts the record for its (employee, period) key, overwriting
	// every derived field. Recomputation is full replacement; there is no
	// partial update.
	Replace(ctx context.Context, record Record) (Record, error)

	GetByEmployeePeriod(ctx context.Context, employeeID string, period Period) (Record, error)
	ListByPeriod(ctx context.Context, period Period) ([]Record, error)
}
