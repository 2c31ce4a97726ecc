package leavecredit

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kumulworks/hris-backend-go/internal/domain/leavecredit"
)

// Service owns every mutation of leave-credit balances. No other component
// writes them, which is what keeps 0 <= used <= total true everywhere.
type Service struct {
	balances leavecredit.Repository
}

func NewService(balances leavecredit.Repository) *Service {
	return &Service{balances: balances}
}

// Grant creates or replaces the balance for (employee, category, year) with
// used reset to zero unless the request migrates already-used credits.
func (s *Service) Grant(ctx context.Context, req leavecredit.GrantRequest) (leavecredit.Balance, error) {
	if err := req.Validate(); err != nil {
		return leavecredit.Balance{}, err
	}

	total, err := decimal.NewFromString(req.Total)
	if err != nil {
		return leavecredit.Balance{}, fmt.Errorf("parse total: %w", err)
	}
	if total.IsNegative() {
		return leavecredit.Balance{}, leavecredit.ErrInvalidAmount
	}

	used := decimal.Zero
	if req.MigratedUsed != nil {
		used, err = decimal.NewFromString(*req.MigratedUsed)
		if err != nil {
			return leavecredit.Balance{}, fmt.Errorf("parse migrated_used: %w", err)
		}
		if used.IsNegative() || used.GreaterThan(total) {
			return leavecredit.Balance{}, leavecredit.ErrInvalidAmount
		}
	}

	balance := leavecredit.Balance{
		EmployeeID: req.EmployeeID,
		Category:   leavecredit.Category(req.Category),
		Year:       req.Year,
		Total:      total,
		Used:       used,
	}

	granted, err := s.balances.Upsert(ctx, balance)
	if err != nil {
		return leavecredit.Balance{}, fmt.Errorf("failed to grant leave credit: %w", err)
	}
	return granted, nil
}

// Debit consumes amount days of credit. The repository performs the debit as
// one conditional statement, so a shortfall leaves used untouched.
func (s *Service) Debit(ctx context.Context, employeeID string, category leavecredit.Category, year int, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return leavecredit.ErrInvalidAmount
	}

	err := s.balances.Debit(ctx, employeeID, category, year, amount)
	if errors.Is(err, leavecredit.ErrInsufficientCredit) {
		remaining := decimal.Zero
		if balance, readErr := s.balances.GetByEmployeeCategoryYear(ctx, employeeID, category, year); readErr == nil {
			remaining = balance.Remaining()
		}
		return &leavecredit.InsufficientCreditError{
			EmployeeID: employeeID,
			Category:   category,
			Remaining:  remaining,
			Requested:  amount,
		}
	}
	return err
}

// Credit reverses a prior debit; used floors at zero rather than going
// negative.
func (s *Service) Credit(ctx context.Context, employeeID string, category leavecredit.Category, year int, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return leavecredit.ErrInvalidAmount
	}
	return s.balances.Credit(ctx, employeeID, category, year, amount)
}

// Delete is the administrative removal; deleting a missing balance is a
// no-op.
func (s *Service) Delete(ctx context.Context, employeeID string, category leavecredit.Category, year int) error {
	if !category.Valid() {
		return leavecredit.ErrInvalidAmount
	}
	return s.balances.Delete(ctx, employeeID, category, year)
}

// GetBalance returns the full balance sheet for one employee and year, with
// zero rows for categories never granted.
func (s *Service) GetBalance(ctx context.Context, employeeID string, year int) (leavecredit.BalanceSheetResponse, error) {
	balances, err := s.balances.GetByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return leavecredit.BalanceSheetResponse{}, fmt.Errorf("failed to load leave credit balances: %w", err)
	}

	byCategory := make(map[leavecredit.Category]leavecredit.Balance, len(balances))
	for _, b := range balances {
		byCategory[b.Category] = b
	}

	sheet := leavecredit.BalanceSheetResponse{
		EmployeeID: employeeID,
		Year:       year,
		Categories: make(map[string]leavecredit.CategoryBalance, len(leavecredit.Categories)),
	}
	for _, category := range leavecredit.Categories {
		b := byCategory[category]
		sheet.Categories[string(category)] = leavecredit.CategoryBalance{
			Total:     b.Total.StringFixed(2),
			Used:      b.Used.StringFixed(2),
			Remaining: b.Remaining().StringFixed(2),
		}
	}
	return sheet, nil
}
