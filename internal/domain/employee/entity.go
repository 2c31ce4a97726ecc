package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the read-only reference the core needs from the externally
// owned employee aggregate: approval routing (supervisor, department) and the
// pay basis payroll aggregation reads.
type Employee struct {
	ID           string
	FullName     string
	SupervisorID *string
	DepartmentID string

	BaseSalary      decimal.Decimal
	HourlyRate      decimal.Decimal
	Bonuses         decimal.Decimal
	OtherDeductions decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}
