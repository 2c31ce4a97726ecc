package leavecredit

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumulworks/hris-backend-go/internal/domain/leavecredit"
)

type balanceKey struct {
	employeeID string
	category   leavecredit.Category
	year       int
}

// fakeBalanceRepo mirrors the conditional-update semantics of the SQL
// implementation: Debit only applies when the guard holds, Credit floors at
// zero, Delete is idempotent.
type fakeBalanceRepo struct {
	balances map[balanceKey]leavecredit.Balance
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: make(map[balanceKey]leavecredit.Balance)}
}

func (f *fakeBalanceRepo) Upsert(_ context.Context, balance leavecredit.Balance) (leavecredit.Balance, error) {
	balance.ID = "fixed-id"
	f.balances[balanceKey{balance.EmployeeID, balance.Category, balance.Year}] = balance
	return balance, nil
}

func (f *fakeBalanceRepo) GetByEmployeeCategoryYear(_ context.Context, employeeID string, category leavecredit.Category, year int) (leavecredit.Balance, error) {
	balance, ok := f.balances[balanceKey{employeeID, category, year}]
	if !ok {
		return leavecredit.Balance{}, leavecredit.ErrBalanceNotFound
	}
	return balance, nil
}

func (f *fakeBalanceRepo) GetByEmployeeYear(_ context.Context, employeeID string, year int) ([]leavecredit.Balance, error) {
	out := make([]leavecredit.Balance, 0)
	for key, balance := range f.balances {
		if key.employeeID == employeeID && key.year == year {
			out = append(out, balance)
		}
	}
	return out, nil
}

func (f *fakeBalanceRepo) Debit(_ context.Context, employeeID string, category leavecredit.Category, year int, amount decimal.Decimal) error {
	key := balanceKey{employeeID, category, year}
	balance, ok := f.balances[key]
	if !ok {
		return leavecredit.ErrBalanceNotFound
	}
	if balance.Used.Add(amount).GreaterThan(balance.Total) {
		return leavecredit.ErrInsufficientCredit
	}
	balance.Used = balance.Used.Add(amount)
	f.balances[key] = balance
	return nil
}

func (f *fakeBalanceRepo) Credit(_ context.Context, employeeID string, category leavecredit.Category, year int, amount decimal.Decimal) error {
	key := balanceKey{employeeID, category, year}
	balance, ok := f.balances[key]
	if !ok {
		return leavecredit.ErrBalanceNotFound
	}
	balance.Used = decimal.Max(balance.Used.Sub(amount), decimal.Zero)
	f.balances[key] = balance
	return nil
}

func (f *fakeBalanceRepo) Delete(_ context.Context, employeeID string, category leavecredit.Category, year int) error {
	delete(f.balances, balanceKey{employeeID, category, year})
	return nil
}

func grant(t *testing.T, svc *Service, employeeID, category, total string, year int) {
	t.Helper()
	_, err := svc.Grant(context.Background(), leavecredit.GrantRequest{
		EmployeeID: employeeID,
		Category:   category,
		Year:       year,
		Total:      total,
	})
	require.NoError(t, err)
}

func TestGrant(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a fresh balance with zero used", func(t *testing.T) {
		svc := NewService(newFakeBalanceRepo())

		balance, err := svc.Grant(ctx, leavecredit.GrantRequest{
			EmployeeID: "emp-1",
			Category:   "vacation",
			Year:       2026,
			Total:      "15",
		})
		require.NoError(t, err)
		assert.Equal(t, "15", balance.Total.String())
		assert.True(t, balance.Used.IsZero())
	})

	t.Run("migrated used is kept", func(t *testing.T) {
		svc := NewService(newFakeBalanceRepo())

		used := "3.5"
		balance, err := svc.Grant(ctx, leavecredit.GrantRequest{
			EmployeeID:   "emp-1",
			Category:     "sick",
			Year:         2026,
			Total:        "10",
			MigratedUsed: &used,
		})
		require.NoError(t, err)
		assert.Equal(t, "3.5", balance.Used.String())
		assert.Equal(t, "6.5", balance.Remaining().String())
	})

	t.Run("negative total is rejected", func(t *testing.T) {
		svc := NewService(newFakeBalanceRepo())

		_, err := svc.Grant(ctx, leavecredit.GrantRequest{
			EmployeeID: "emp-1",
			Category:   "vacation",
			Year:       2026,
			Total:      "-5",
		})
		assert.ErrorIs(t, err, leavecredit.ErrInvalidAmount)
	})

	t.Run("migrated used above total is rejected", func(t *testing.T) {
		svc := NewService(newFakeBalanceRepo())

		used := "11"
		_, err := svc.Grant(ctx, leavecredit.GrantRequest{
			EmployeeID:   "emp-1",
			Category:     "vacation",
			Year:         2026,
			Total:        "10",
			MigratedUsed: &used,
		})
		assert.ErrorIs(t, err, leavecredit.ErrInvalidAmount)
	})

	t.Run("unknown category fails validation", func(t *testing.T) {
		svc := NewService(newFakeBalanceRepo())

		_, err := svc.Grant(ctx, leavecredit.GrantRequest{
			EmployeeID: "emp-1",
			Category:   "sabbatical",
			Year:       2026,
			Total:      "10",
		})
		assert.Error(t, err)
	})
}

func TestDebit(t *testing.T) {
	ctx := context.Background()

	t.Run("consumes credit", func(t *testing.T) {
		repo := newFakeBalanceRepo()
		svc := NewService(repo)
		grant(t, svc, "emp-1", "vacation", "10", 2026)

		err := svc.Debit(ctx, "emp-1", leavecredit.CategoryVacation, 2026, decimal.NewFromFloat(2.5))
		require.NoError(t, err)

		balance, err := repo.GetByEmployeeCategoryYear(ctx, "emp-1", leavecredit.CategoryVacation, 2026)
		require.NoError(t, err)
		assert.Equal(t, "2.5", balance.Used.String())
	})

	t.Run("insufficient credit reports remaining and leaves used unchanged", func(t *testing.T) {
		repo := newFakeBalanceRepo()
		svc := NewService(repo)
		grant(t, svc, "emp-1", "vacation", "10", 2026)
		require.NoError(t, svc.Debit(ctx, "emp-1", leavecredit.CategoryVacation, 2026, decimal.NewFromInt(9)))

		err := svc.Debit(ctx, "emp-1", leavecredit.CategoryVacation, 2026, decimal.NewFromInt(2))
		require.ErrorIs(t, err, leavecredit.ErrInsufficientCredit)

		var insufficient *leavecredit.InsufficientCreditError
		require.True(t, errors.As(err, &insufficient))
		assert.Equal(t, "1", insufficient.Remaining.String())
		assert.Equal(t, "2", insufficient.Requested.String())

		balance, err := repo.GetByEmployeeCategoryYear(ctx, "emp-1", leavecredit.CategoryVacation, 2026)
		require.NoError(t, err)
		assert.Equal(t, "9", balance.Used.String())
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		svc := NewService(newFakeBalanceRepo())

		err := svc.Debit(ctx, "emp-1", leavecredit.CategoryVacation, 2026, decimal.Zero)
		assert.ErrorIs(t, err, leavecredit.ErrInvalidAmount)

		err = svc.Debit(ctx, "emp-1", leavecredit.CategoryVacation, 2026, decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, leavecredit.ErrInvalidAmount)
	})

	t.Run("missing balance", func(t *testing.T) {
		svc := NewService(newFakeBalanceRepo())

		err := svc.Debit(ctx, "emp-1", leavecredit.CategoryVacation, 2026, decimal.NewFromInt(1))
		assert.ErrorIs(t, err, leavecredit.ErrBalanceNotFound)
	})
}

func TestCredit(t *testing.T) {
	ctx := context.Background()

	t.Run("restores consumed credit", func(t *testing.T) {
		repo := newFakeBalanceRepo()
		svc := NewService(repo)
		grant(t, svc, "emp-1", "vacation", "10", 2026)
		require.NoError(t, svc.Debit(ctx, "emp-1", leavecredit.CategoryVacation, 2026, decimal.NewFromInt(4)))

		require.NoError(t, svc.Credit(ctx, "emp-1", leavecredit.CategoryVacation, 2026, decimal.NewFromInt(3)))

		balance, err := repo.GetByEmployeeCategoryYear(ctx, "emp-1", leavecredit.CategoryVacation, 2026)
		require.NoError(t, err)
		assert.Equal(t, "1", balance.Used.String())
	})

	t.Run("floors at zero", func(t *testing.T) {
		repo := newFakeBalanceRepo()
		svc := NewService(repo)
		grant(t, svc, "emp-1", "vacation", "10", 2026)
		require.NoError(t, svc.Debit(ctx, "emp-1", leavecredit.CategoryVacation, 2026, decimal.NewFromInt(1)))

		require.NoError(t, svc.Credit(ctx, "emp-1", leavecredit.CategoryVacation, 2026, decimal.NewFromInt(5)))

		balance, err := repo.GetByEmployeeCategoryYear(ctx, "emp-1", leavecredit.CategoryVacation, 2026)
		require.NoError(t, err)
		assert.True(t, balance.Used.IsZero())
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	repo := newFakeBalanceRepo()
	svc := NewService(repo)
	grant(t, svc, "emp-1", "vacation", "10", 2026)

	require.NoError(t, svc.Delete(ctx, "emp-1", leavecredit.CategoryVacation, 2026))

	_, err := repo.GetByEmployeeCategoryYear(ctx, "emp-1", leavecredit.CategoryVacation, 2026)
	assert.ErrorIs(t, err, leavecredit.ErrBalanceNotFound)

	// deleting again is a no-op
	require.NoError(t, svc.Delete(ctx, "emp-1", leavecredit.CategoryVacation, 2026))
}

func TestGetBalance(t *testing.T) {
	ctx := context.Background()

	repo := newFakeBalanceRepo()
	svc := NewService(repo)
	grant(t, svc, "emp-1", "vacation", "15", 2026)
	require.NoError(t, svc.Debit(ctx, "emp-1", leavecredit.CategoryVacation, 2026, decimal.NewFromFloat(2.5)))

	sheet, err := svc.GetBalance(ctx, "emp-1", 2026)
	require.NoError(t, err)

	assert.Equal(t, "emp-1", sheet.EmployeeID)
	assert.Equal(t, 2026, sheet.Year)

	vacation := sheet.Categories["vacation"]
	assert.Equal(t, "15.00", vacation.Total)
	assert.Equal(t, "2.50", vacation.Used)
	assert.Equal(t, "12.50", vacation.Remaining)

	// never granted categories read as zeros
	sick := sheet.Categories["sick"]
	assert.Equal(t, "0.00", sick.Total)
	assert.Equal(t, "0.00", sick.Remaining)
}
