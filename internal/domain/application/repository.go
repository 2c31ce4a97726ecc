package application

import (
	"context"
	"time"
)

// Repository - interface for applications table. UpdateStatus is a
// compare-and-swap on the current status so two concurrent approvals of the
// same application cannot both succeed.
type Repository interface {
	Create(ctx context.Context, app Application) (Application, error)
	GetByID(ctx context.Context, id string) (Application, error)
	ListByEmployee(ctx context.Context, employeeID string, status *Status) ([]Application, error)
	ListByStatus(ctx context.Context, status Status) ([]Application, error)

	// UpdateStatus moves the application from the expected status to the new
	// one. Returns ErrStatusConflict when the row exists but its status is no
	// longer `from`.
	UpdateStatus(ctx context.Context, id string, from, to Status, reason *string, decidedAt *time.Time) error

	// ListApprovedOvertimeOverlapping returns approved overtime applications
	// whose date range intersects [from, to].
	ListApprovedOvertimeOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]Application, error)
}

// ErrStatusConflict signals a lost compare-and-swap; the caller re-reads the
// application to report the real current state.
var ErrStatusConflict = statusConflictError{}

type statusConflictError struct{}

func (statusConflictError) Error() string { return "application status changed concurrently" }
