package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kumulworks/hris-backend-go/internal/domain/application"
	"github.com/kumulworks/hris-backend-go/internal/domain/attendance"
	"github.com/kumulworks/hris-backend-go/internal/domain/leavecredit"
	"github.com/kumulworks/hris-backend-go/internal/pkg/database"
	"github.com/kumulworks/hris-backend-go/internal/pkg/identity"
)

// CreditLedger is the slice of the leave-credit service the state machine
// needs: debit on approval, credit back on cancellation of an approved leave.
type CreditLedger interface {
	Debit(ctx context.Context, employeeID string, category leavecredit.Category, year int, amount decimal.Decimal) error
	Credit(ctx context.Context, employeeID string, category leavecredit.Category, year int, amount decimal.Decimal) error
}

type Service struct {
	tx      database.Transactor
	apps    application.Repository
	credits CreditLedger
	guard   identity.Checker

	standardDayHours decimal.Decimal
}

func NewService(tx database.Transactor, apps application.Repository, credits CreditLedger, guard identity.Checker, standardDayHours decimal.Decimal) *Service {
	return &Service{
		tx:               tx,
		apps:             apps,
		credits:          credits,
		guard:            guard,
		standardDayHours: standardDayHours,
	}
}

// Submit validates the type-specific invariants and persists the application
// in its initial state.
func (s *Service) Submit(ctx context.Context, employeeID string, req application.SubmitRequest) (application.Application, error) {
	if err := req.Validate(); err != nil {
		return application.Application{}, err
	}

	dateFrom, _ := time.Parse("2006-01-02", req.DateFrom)
	dateTo, _ := time.Parse("2006-01-02", req.DateTo)

	app := application.Application{
		EmployeeID: employeeID,
		Type:       application.Type(req.Type),
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		Purpose:    req.Purpose,
		Status:     application.StatusPendingSupervisor,
	}

	if req.LeaveType != nil {
		lt := application.LeaveType(*req.LeaveType)
		app.LeaveType = &lt
	}
	if req.LeaveDuration != nil {
		ld := application.LeaveDuration(*req.LeaveDuration)
		app.LeaveDuration = &ld
	}
	if req.HalfDayPeriod != nil {
		hp := application.HalfDayPeriod(*req.HalfDayPeriod)
		app.HalfDayPeriod = &hp
	}
	if req.OvertimeType != nil {
		ot := application.OvertimeType(*req.OvertimeType)
		app.OvertimeType = &ot
	}
	if req.TimeFrom != nil {
		tf, _ := attendance.ParseClock(*req.TimeFrom)
		app.TimeFrom = &tf
	}
	if req.TimeTo != nil {
		tt, _ := attendance.ParseClock(*req.TimeTo)
		app.TimeTo = &tt
	}

	created, err := s.apps.Create(ctx, app)
	if err != nil {
		return application.Application{}, fmt.Errorf("failed to create application: %w", err)
	}
	return created, nil
}

// Approve advances the application one stage, or straight to approved when
// the actor holds both the supervisor-stage and HR-stage authority. Reaching
// approved for a paid leave debits the credit ledger inside the same atomic
// unit; an insufficient balance fails the approval and the application keeps
// its prior status.
func (s *Service) Approve(ctx context.Context, id, actorID string) (application.Application, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return application.Application{}, err
	}

	target, err := s.approvalTarget(ctx, app, actorID)
	if err != nil {
		return application.Application{}, err
	}

	now := time.Now()
	var decidedAt *time.Time
	if target == application.StatusApproved {
		decidedAt = &now
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if target == application.StatusApproved {
			if err := s.debitOnApproval(txCtx, app); err != nil {
				return err
			}
		}
		return s.updateStatus(txCtx, app, target, nil, decidedAt)
	})
	if err != nil {
		return application.Application{}, err
	}

	app.Status = target
	app.DecidedAt = decidedAt
	return app, nil
}

// Reject is valid from either pending stage; the reason is stored verbatim.
// Nothing was debited yet, so the credit ledger is untouched.
func (s *Service) Reject(ctx context.Context, id, actorID string, reason *string) (application.Application, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return application.Application{}, err
	}

	if !application.CanTransition(app.Status, application.StatusRejected) {
		return application.Application{}, &application.InvalidTransitionError{
			ApplicationID: app.ID, From: app.Status, To: application.StatusRejected,
		}
	}
	if err := s.checkStageAuthority(ctx, app, actorID); err != nil {
		return application.Application{}, err
	}

	now := time.Now()
	if err := s.updateStatus(ctx, app, application.StatusRejected, reason, &now); err != nil {
		return application.Application{}, err
	}

	app.Status = application.StatusRejected
	app.RejectionReason = reason
	app.DecidedAt = &now
	return app, nil
}

// Cancel is restricted to the submitting employee. Cancelling an
// already-approved leave reverses the credit debit before the status flips,
// in one atomic unit.
func (s *Service) Cancel(ctx context.Context, id, actorID string) (application.Application, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return application.Application{}, err
	}

	if app.EmployeeID != actorID {
		return application.Application{}, application.ErrNotSubmitter
	}
	if !application.CanTransition(app.Status, application.StatusCancelled) {
		return application.Application{}, &application.InvalidTransitionError{
			ApplicationID: app.ID, From: app.Status, To: application.StatusCancelled,
		}
	}

	now := time.Now()
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if app.Status == application.StatusApproved {
			if err := s.creditOnCancellation(txCtx, app); err != nil {
				return err
			}
		}
		return s.updateStatus(txCtx, app, application.StatusCancelled, nil, &now)
	})
	if err != nil {
		return application.Application{}, err
	}

	app.Status = application.StatusCancelled
	app.DecidedAt = &now
	return app, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (application.Application, error) {
	return s.apps.GetByID(ctx, id)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string, status *application.Status) ([]application.Application, error) {
	return s.apps.ListByEmployee(ctx, employeeID, status)
}

func (s *Service) ListByStatus(ctx context.Context, status application.Status) ([]application.Application, error) {
	return s.apps.ListByStatus(ctx, status)
}

// approvalTarget runs the stage guards and resolves where this approval
// lands. The combined-authority shortcut still evaluates both stage checks;
// it only collapses them into one call.
func (s *Service) approvalTarget(ctx context.Context, app application.Application, actorID string) (application.Status, error) {
	approveCap, manageCap := stageCapabilities(app.Type)

	switch app.Status {
	case application.StatusPendingSupervisor:
		isSupervisor, err := s.guard.IsSupervisorOf(ctx, actorID, app.EmployeeID)
		if err != nil {
			return "", fmt.Errorf("supervisor check failed: %w", err)
		}
		hasApprove, err := s.guard.HasCapability(ctx, actorID, approveCap)
		if err != nil {
			return "", fmt.Errorf("capability check failed: %w", err)
		}
		if !isSupervisor && !hasApprove {
			return "", application.ErrNotAuthorized
		}
		hasManage, err := s.guard.HasCapability(ctx, actorID, manageCap)
		if err != nil {
			return "", fmt.Errorf("capability check failed: %w", err)
		}
		if hasManage {
			return application.StatusApproved, nil
		}
		return application.StatusPendingHR, nil

	case application.StatusPendingHR:
		hasManage, err := s.guard.HasCapability(ctx, actorID, manageCap)
		if err != nil {
			return "", fmt.Errorf("capability check failed: %w", err)
		}
		if !hasManage {
			return "", application.ErrNotAuthorized
		}
		return application.StatusApproved, nil

	default:
		return "", &application.InvalidTransitionError{
			ApplicationID: app.ID, From: app.Status, To: application.StatusApproved,
		}
	}
}

// checkStageAuthority guards Reject with the same per-stage authority rules
// as Approve.
func (s *Service) checkStageAuthority(ctx context.Context, app application.Application, actorID string) error {
	approveCap, manageCap := stageCapabilities(app.Type)

	switch app.Status {
	case application.StatusPendingSupervisor:
		isSupervisor, err := s.guard.IsSupervisorOf(ctx, actorID, app.EmployeeID)
		if err != nil {
			return fmt.Errorf("supervisor check failed: %w", err)
		}
		hasApprove, err := s.guard.HasCapability(ctx, actorID, approveCap)
		if err != nil {
			return fmt.Errorf("capability check failed: %w", err)
		}
		if !isSupervisor && !hasApprove {
			return application.ErrNotAuthorized
		}
	case application.StatusPendingHR:
		hasManage, err := s.guard.HasCapability(ctx, actorID, manageCap)
		if err != nil {
			return fmt.Errorf("capability check failed: %w", err)
		}
		if !hasManage {
			return application.ErrNotAuthorized
		}
	}
	return nil
}

func stageCapabilities(t application.Type) (approve, manage identity.Capability) {
	if t == application.TypeOvertime {
		return identity.CapOTApprove, identity.CapOTManage
	}
	return identity.CapLeaveApprove, identity.CapLeaveManage
}

func (s *Service) debitOnApproval(ctx context.Context, app application.Application) error {
	if app.Type != application.TypeLeave || app.LeaveType == nil {
		return nil
	}
	category, deductible := app.LeaveType.CreditCategory()
	if !deductible {
		return nil
	}
	amount := app.CreditAmount(s.standardDayHours)
	return s.credits.Debit(ctx, app.EmployeeID, category, app.DateFrom.Year(), amount)
}

func (s *Service) creditOnCancellation(ctx context.Context, app application.Application) error {
	if app.Type != application.TypeLeave || app.LeaveType == nil {
		return nil
	}
	category, deductible := app.LeaveType.CreditCategory()
	if !deductible {
		return nil
	}
	amount := app.CreditAmount(s.standardDayHours)
	return s.credits.Credit(ctx, app.EmployeeID, category, app.DateFrom.Year(), amount)
}

// updateStatus performs the compare-and-swap and translates a lost swap into
// the transition error the caller reports.
func (s *Service) updateStatus(ctx context.Context, app application.Application, to application.Status, reason *string, decidedAt *time.Time) error {
	err := s.apps.UpdateStatus(ctx, app.ID, app.Status, to, reason, decidedAt)
	if err == application.ErrStatusConflict {
		current, readErr := s.apps.GetByID(ctx, app.ID)
		if readErr != nil {
			return readErr
		}
		return &application.InvalidTransitionError{ApplicationID: app.ID, From: current.Status, To: to}
	}
	return err
}
