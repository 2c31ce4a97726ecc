package identity

import (
	"context"

	"github.com/go-chi/jwtauth/v5"

	"github.com/kumulworks/hris-backend-go/internal/domain/employee"
)

type Capability string

const (
	CapLeaveApprove Capability = "leave.approve"
	CapLeaveManage  Capability = "leave.manage"
	CapOTApprove    Capability = "ot.approve"
	CapOTManage     Capability = "ot.manage"
)

// Checker is the guard boundary the application state machine consults before
// allowing Approve/Reject. Both calls are pure reads.
type Checker interface {
	IsSupervisorOf(ctx context.Context, actorID, employeeID string) (bool, error)
	HasCapability(ctx context.Context, actorID string, capability Capability) (bool, error)
}

// Directory resolves supervisor relations from the employee reference data
// and capabilities from the actor's token claims.
type Directory struct {
	employees employee.Repository
}

func NewDirectory(employees employee.Repository) *Directory {
	return &Directory{employees: employees}
}

func (d *Directory) IsSupervisorOf(ctx context.Context, actorID, employeeID string) (bool, error) {
	emp, err := d.employees.GetByID(ctx, employeeID)
	if err != nil {
		return false, err
	}
	return emp.SupervisorID != nil && *emp.SupervisorID == actorID, nil
}

func (d *Directory) HasCapability(ctx context.Context, actorID string, capability Capability) (bool, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return false, err
	}

	// Capabilities apply to the token holder only.
	if tokenEmployee, _ := claims["employee_id"].(string); tokenEmployee != actorID {
		return false, nil
	}

	raw, ok := claims["capabilities"].([]interface{})
	if !ok {
		return false, nil
	}
	for _, c := range raw {
		if s, ok := c.(string); ok && s == string(capability) {
			return true, nil
		}
	}
	return false, nil
}

// ActorFromContext returns the employee id of the token holder.
func ActorFromContext(ctx context.Context) (string, bool) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", false
	}
	actorID, ok := claims["employee_id"].(string)
	return actorID, ok && actorID != ""
}
