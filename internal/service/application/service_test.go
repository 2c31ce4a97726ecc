package application

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumulworks/hris-backend-go/internal/domain/application"
	"github.com/kumulworks/hris-backend-go/internal/domain/leavecredit"
	"github.com/kumulworks/hris-backend-go/internal/pkg/database"
	"github.com/kumulworks/hris-backend-go/internal/pkg/identity"
)

// passthroughTx runs the function without a real transaction; the fakes
// below are not transactional anyway.
type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// timeoutTx simulates a unit of work that hit its bounded deadline. The
// function never runs, matching a transaction rolled back on timeout.
type timeoutTx struct{}

func (timeoutTx) WithinTransaction(context.Context, func(ctx context.Context) error) error {
	return database.ErrStoreTimeout
}

type fakeAppRepo struct {
	apps   map[string]application.Application
	nextID int

	// when set, the first UpdateStatus call fails as a lost compare-and-swap
	conflictOnce bool
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{apps: make(map[string]application.Application)}
}

func (f *fakeAppRepo) Create(_ context.Context, app application.Application) (application.Application, error) {
	f.nextID++
	app.ID = "app-" + strconv.Itoa(f.nextID)
	app.CreatedAt = time.Now()
	f.apps[app.ID] = app
	return app, nil
}

func (f *fakeAppRepo) GetByID(_ context.Context, id string) (application.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return app, nil
}

func (f *fakeAppRepo) ListByEmployee(_ context.Context, employeeID string, status *application.Status) ([]application.Application, error) {
	out := make([]application.Application, 0)
	for _, app := range f.apps {
		if app.EmployeeID != employeeID {
			continue
		}
		if status != nil && app.Status != *status {
			continue
		}
		out = append(out, app)
	}
	return out, nil
}

func (f *fakeAppRepo) ListByStatus(_ context.Context, status application.Status) ([]application.Application, error) {
	out := make([]application.Application, 0)
	for _, app := range f.apps {
		if app.Status == status {
			out = append(out, app)
		}
	}
	return out, nil
}

func (f *fakeAppRepo) UpdateStatus(_ context.Context, id string, from, to application.Status, reason *string, decidedAt *time.Time) error {
	app, ok := f.apps[id]
	if !ok {
		return application.ErrNotFound
	}
	if f.conflictOnce {
		f.conflictOnce = false
		return application.ErrStatusConflict
	}
	if app.Status != from {
		return application.ErrStatusConflict
	}
	app.Status = to
	app.RejectionReason = reason
	app.DecidedAt = decidedAt
	f.apps[id] = app
	return nil
}

func (f *fakeAppRepo) ListApprovedOvertimeOverlapping(_ context.Context, employeeID string, from, to time.Time) ([]application.Application, error) {
	out := make([]application.Application, 0)
	for _, app := range f.apps {
		if app.EmployeeID != employeeID || app.Type != application.TypeOvertime || app.Status != application.StatusApproved {
			continue
		}
		if app.DateFrom.After(to) || app.DateTo.Before(from) {
			continue
		}
		out = append(out, app)
	}
	return out, nil
}

type creditKey struct {
	employeeID string
	category   leavecredit.Category
	year       int
}

type fakeCreditLedger struct {
	total map[creditKey]decimal.Decimal
	used  map[creditKey]decimal.Decimal
}

func newFakeCreditLedger() *fakeCreditLedger {
	return &fakeCreditLedger{
		total: make(map[creditKey]decimal.Decimal),
		used:  make(map[creditKey]decimal.Decimal),
	}
}

func (f *fakeCreditLedger) seed(employeeID string, category leavecredit.Category, year int, total, used string) {
	key := creditKey{employeeID, category, year}
	f.total[key] = decimal.RequireFromString(total)
	f.used[key] = decimal.RequireFromString(used)
}

func (f *fakeCreditLedger) Debit(_ context.Context, employeeID string, category leavecredit.Category, year int, amount decimal.Decimal) error {
	key := creditKey{employeeID, category, year}
	total, ok := f.total[key]
	if !ok {
		return leavecredit.ErrBalanceNotFound
	}
	if f.used[key].Add(amount).GreaterThan(total) {
		return &leavecredit.InsufficientCreditError{
			EmployeeID: employeeID,
			Category:   category,
			Remaining:  total.Sub(f.used[key]),
			Requested:  amount,
		}
	}
	f.used[key] = f.used[key].Add(amount)
	return nil
}

func (f *fakeCreditLedger) Credit(_ context.Context, employeeID string, category leavecredit.Category, year int, amount decimal.Decimal) error {
	key := creditKey{employeeID, category, year}
	if _, ok := f.total[key]; !ok {
		return leavecredit.ErrBalanceNotFound
	}
	f.used[key] = decimal.Max(f.used[key].Sub(amount), decimal.Zero)
	return nil
}

// fakeChecker serves supervisor edges and capability sets from maps.
type fakeChecker struct {
	supervisors  map[string]string // employee -> supervisor
	capabilities map[string][]identity.Capability
}

func (f *fakeChecker) IsSupervisorOf(_ context.Context, actorID, employeeID string) (bool, error) {
	return f.supervisors[employeeID] == actorID, nil
}

func (f *fakeChecker) HasCapability(_ context.Context, actorID string, capability identity.Capability) (bool, error) {
	for _, c := range f.capabilities[actorID] {
		if c == capability {
			return true, nil
		}
	}
	return false, nil
}

type fixture struct {
	svc     *Service
	repo    *fakeAppRepo
	credits *fakeCreditLedger
}

func newFixture() fixture {
	repo := newFakeAppRepo()
	credits := newFakeCreditLedger()
	checker := &fakeChecker{
		supervisors: map[string]string{"emp-1": "sup-1"},
		capabilities: map[string][]identity.Capability{
			"hr-1":   {identity.CapLeaveManage, identity.CapOTManage},
			"boss-1": {identity.CapLeaveApprove, identity.CapLeaveManage, identity.CapOTApprove, identity.CapOTManage},
		},
	}
	svc := NewService(passthroughTx{}, repo, credits, checker, decimal.NewFromInt(8))
	return fixture{svc: svc, repo: repo, credits: credits}
}

func submitHalfDayVacation(t *testing.T, svc *Service) application.Application {
	t.Helper()
	lt, ld, hp := "vacation", "half_day", "am"
	tf, tt := "08:00", "12:00"
	app, err := svc.Submit(context.Background(), "emp-1", application.SubmitRequest{
		Type:          "leave",
		LeaveType:     &lt,
		LeaveDuration: &ld,
		HalfDayPeriod: &hp,
		DateFrom:      "2026-03-09",
		DateTo:        "2026-03-09",
		TimeFrom:      &tf,
		TimeTo:        &tt,
		Purpose:       "family matter",
	})
	require.NoError(t, err)
	return app
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("leave starts at pending supervisor", func(t *testing.T) {
		fx := newFixture()
		app := submitHalfDayVacation(t, fx.svc)
		assert.Equal(t, application.StatusPendingSupervisor, app.Status)
		assert.NotEmpty(t, app.ID)
	})

	t.Run("overtime carries its type and times", func(t *testing.T) {
		fx := newFixture()
		ot := "regular"
		tf, tt := "17:00", "20:00"
		app, err := fx.svc.Submit(ctx, "emp-1", application.SubmitRequest{
			Type:         "overtime",
			OvertimeType: &ot,
			DateFrom:     "2026-03-09",
			DateTo:       "2026-03-09",
			TimeFrom:     &tf,
			TimeTo:       &tt,
			Purpose:      "release night",
		})
		require.NoError(t, err)
		assert.Equal(t, application.StatusPendingSupervisor, app.Status)
		require.NotNil(t, app.OvertimeType)
		assert.Equal(t, application.OvertimeRegular, *app.OvertimeType)
	})

	t.Run("missing purpose fails validation", func(t *testing.T) {
		fx := newFixture()
		lt, ld := "vacation", "full_day"
		_, err := fx.svc.Submit(ctx, "emp-1", application.SubmitRequest{
			Type:          "leave",
			LeaveType:     &lt,
			LeaveDuration: &ld,
			DateFrom:      "2026-03-09",
			DateTo:        "2026-03-10",
		})
		assert.Error(t, err)
	})
}

func TestApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("supervisor advances to pending hr without debit", func(t *testing.T) {
		fx := newFixture()
		fx.credits.seed("emp-1", leavecredit.CategoryVacation, 2026, "10", "2")
		app := submitHalfDayVacation(t, fx.svc)

		got, err := fx.svc.Approve(ctx, app.ID, "sup-1")
		require.NoError(t, err)
		assert.Equal(t, application.StatusPendingHR, got.Status)
		assert.Nil(t, got.DecidedAt)
		assert.Equal(t, "2", fx.credits.used[creditKey{"emp-1", leavecredit.CategoryVacation, 2026}].String())
	})

	t.Run("store timeout surfaces untranslated", func(t *testing.T) {
		repo := newFakeAppRepo()
		credits := newFakeCreditLedger()
		credits.seed("emp-1", leavecredit.CategoryVacation, 2026, "10", "2")
		checker := &fakeChecker{supervisors: map[string]string{"emp-1": "sup-1"}}
		svc := NewService(timeoutTx{}, repo, credits, checker, decimal.NewFromInt(8))
		app := submitHalfDayVacation(t, svc)

		_, err := svc.Approve(ctx, app.ID, "sup-1")
		assert.ErrorIs(t, err, database.ErrStoreTimeout)

		stored, err := repo.GetByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, application.StatusPendingSupervisor, stored.Status)
	})

	t.Run("hr approval debits the half day", func(t *testing.T) {
		fx := newFixture()
		fx.credits.seed("emp-1", leavecredit.CategoryVacation, 2026, "10", "2")
		app := submitHalfDayVacation(t, fx.svc)
		_, err := fx.svc.Approve(ctx, app.ID, "sup-1")
		require.NoError(t, err)

		got, err := fx.svc.Approve(ctx, app.ID, "hr-1")
		require.NoError(t, err)
		assert.Equal(t, application.StatusApproved, got.Status)
		assert.NotNil(t, got.DecidedAt)
		assert.Equal(t, "2.5", fx.credits.used[creditKey{"emp-1", leavecredit.CategoryVacation, 2026}].String())
	})

	t.Run("combined authority approves in one call", func(t *testing.T) {
		fx := newFixture()
		fx.credits.seed("emp-1", leavecredit.CategoryVacation, 2026, "10", "0")
		app := submitHalfDayVacation(t, fx.svc)

		got, err := fx.svc.Approve(ctx, app.ID, "boss-1")
		require.NoError(t, err)
		assert.Equal(t, application.StatusApproved, got.Status)
		assert.Equal(t, "0.5", fx.credits.used[creditKey{"emp-1", leavecredit.CategoryVacation, 2026}].String())
	})

	t.Run("insufficient credit keeps the pending status", func(t *testing.T) {
		fx := newFixture()
		fx.credits.seed("emp-1", leavecredit.CategoryVacation, 2026, "10", "9.8")
		app := submitHalfDayVacation(t, fx.svc)
		_, err := fx.svc.Approve(ctx, app.ID, "sup-1")
		require.NoError(t, err)

		_, err = fx.svc.Approve(ctx, app.ID, "hr-1")
		require.ErrorIs(t, err, leavecredit.ErrInsufficientCredit)

		current, err := fx.repo.GetByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, application.StatusPendingHR, current.Status)
		assert.Equal(t, "9.8", fx.credits.used[creditKey{"emp-1", leavecredit.CategoryVacation, 2026}].String())
	})

	t.Run("stranger may not approve", func(t *testing.T) {
		fx := newFixture()
		app := submitHalfDayVacation(t, fx.svc)

		_, err := fx.svc.Approve(ctx, app.ID, "emp-2")
		assert.ErrorIs(t, err, application.ErrNotAuthorized)
	})

	t.Run("supervisor without manage capability may not decide the hr stage", func(t *testing.T) {
		fx := newFixture()
		app := submitHalfDayVacation(t, fx.svc)
		_, err := fx.svc.Approve(ctx, app.ID, "sup-1")
		require.NoError(t, err)

		_, err = fx.svc.Approve(ctx, app.ID, "sup-1")
		assert.ErrorIs(t, err, application.ErrNotAuthorized)
	})

	t.Run("terminal application cannot be approved", func(t *testing.T) {
		fx := newFixture()
		fx.credits.seed("emp-1", leavecredit.CategoryVacation, 2026, "10", "0")
		app := submitHalfDayVacation(t, fx.svc)
		_, err := fx.svc.Approve(ctx, app.ID, "boss-1")
		require.NoError(t, err)

		_, err = fx.svc.Approve(ctx, app.ID, "boss-1")
		require.ErrorIs(t, err, application.ErrInvalidTransition)

		var transitionErr *application.InvalidTransitionError
		require.True(t, errors.As(err, &transitionErr))
		assert.Equal(t, application.StatusApproved, transitionErr.From)
	})

	t.Run("lost compare-and-swap reports the current state", func(t *testing.T) {
		fx := newFixture()
		app := submitHalfDayVacation(t, fx.svc)
		fx.repo.conflictOnce = true

		_, err := fx.svc.Approve(ctx, app.ID, "sup-1")
		assert.ErrorIs(t, err, application.ErrInvalidTransition)
	})

	t.Run("unpaid leave approves without touching the ledger", func(t *testing.T) {
		fx := newFixture()
		lt, ld := "unpaid", "full_day"
		app, err := fx.svc.Submit(ctx, "emp-1", application.SubmitRequest{
			Type:          "leave",
			LeaveType:     &lt,
			LeaveDuration: &ld,
			DateFrom:      "2026-03-09",
			DateTo:        "2026-03-11",
			Purpose:       "travel",
		})
		require.NoError(t, err)

		got, err := fx.svc.Approve(ctx, app.ID, "boss-1")
		require.NoError(t, err)
		assert.Equal(t, application.StatusApproved, got.Status)
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the reason and leaves the ledger alone", func(t *testing.T) {
		fx := newFixture()
		fx.credits.seed("emp-1", leavecredit.CategoryVacation, 2026, "10", "2")
		app := submitHalfDayVacation(t, fx.svc)
		_, err := fx.svc.Approve(ctx, app.ID, "sup-1")
		require.NoError(t, err)

		reason := "headcount freeze that week"
		got, err := fx.svc.Reject(ctx, app.ID, "hr-1", &reason)
		require.NoError(t, err)
		assert.Equal(t, application.StatusRejected, got.Status)
		require.NotNil(t, got.RejectionReason)
		assert.Equal(t, reason, *got.RejectionReason)
		assert.Equal(t, "2", fx.credits.used[creditKey{"emp-1", leavecredit.CategoryVacation, 2026}].String())
	})

	t.Run("supervisor may reject at stage one", func(t *testing.T) {
		fx := newFixture()
		app := submitHalfDayVacation(t, fx.svc)

		got, err := fx.svc.Reject(ctx, app.ID, "sup-1", nil)
		require.NoError(t, err)
		assert.Equal(t, application.StatusRejected, got.Status)
	})

	t.Run("rejecting a rejected application fails", func(t *testing.T) {
		fx := newFixture()
		app := submitHalfDayVacation(t, fx.svc)
		_, err := fx.svc.Reject(ctx, app.ID, "sup-1", nil)
		require.NoError(t, err)

		_, err = fx.svc.Reject(ctx, app.ID, "sup-1", nil)
		assert.ErrorIs(t, err, application.ErrInvalidTransition)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("submitter cancels a pending application", func(t *testing.T) {
		fx := newFixture()
		app := submitHalfDayVacation(t, fx.svc)

		got, err := fx.svc.Cancel(ctx, app.ID, "emp-1")
		require.NoError(t, err)
		assert.Equal(t, application.StatusCancelled, got.Status)
	})

	t.Run("only the submitter may cancel", func(t *testing.T) {
		fx := newFixture()
		app := submitHalfDayVacation(t, fx.svc)

		_, err := fx.svc.Cancel(ctx, app.ID, "sup-1")
		assert.ErrorIs(t, err, application.ErrNotSubmitter)
	})

	t.Run("cancelling an approved leave restores the balance exactly", func(t *testing.T) {
		fx := newFixture()
		fx.credits.seed("emp-1", leavecredit.CategoryVacation, 2026, "10", "2")
		app := submitHalfDayVacation(t, fx.svc)
		_, err := fx.svc.Approve(ctx, app.ID, "boss-1")
		require.NoError(t, err)
		require.Equal(t, "2.5", fx.credits.used[creditKey{"emp-1", leavecredit.CategoryVacation, 2026}].String())

		got, err := fx.svc.Cancel(ctx, app.ID, "emp-1")
		require.NoError(t, err)
		assert.Equal(t, application.StatusCancelled, got.Status)
		assert.Equal(t, "2", fx.credits.used[creditKey{"emp-1", leavecredit.CategoryVacation, 2026}].String())
	})

	t.Run("cancelled application cannot be cancelled again", func(t *testing.T) {
		fx := newFixture()
		app := submitHalfDayVacation(t, fx.svc)
		_, err := fx.svc.Cancel(ctx, app.ID, "emp-1")
		require.NoError(t, err)

		_, err = fx.svc.Cancel(ctx, app.ID, "emp-1")
		assert.ErrorIs(t, err, application.ErrInvalidTransition)
	})
}
