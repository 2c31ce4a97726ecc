package employee

import "context"

// Repository - read-only access to the employees table. The employee
// aggregate is owned elsewhere; the core never writes it.
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
}
