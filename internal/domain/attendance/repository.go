package attendance

import (
	"context"
	"time"
)

// Repository - interface for attendance_records table. The (employee, date)
// uniqueness invariant is enforced at this boundary; no other component
// writes attendance rows.
type Repository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Record, error)
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)

	// ReplacePunches swaps all four punch fields and the status in one
	// statement; a half-day is never updated piecemeal.
	ReplacePunches(ctx context.Context, id string, amIn, amOut, pmIn, pmOut *Clock, status Status) error
}
