package leavecredit

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository - interface for leave_credit_balances table. Debit and Credit
// are the only mutations of used; both run as single conditional statements
// so concurrent approvals serialize instead of racing.
type Repository interface {
	Upsert(ctx context.Context, balance Balance) (Balance, error)
	GetByEmployeeCategoryYear(ctx context.Context, employeeID string, category Category, year int) (Balance, error)
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]Balance, error)

	// Debit adds amount to used. Fails with ErrInsufficientCredit when the
	// guard used + amount <= total does not hold.
	Debit(ctx context.Context, employeeID string, category Category, year int, amount decimal.Decimal) error

	// Credit subtracts amount from used, flooring at zero.
	Credit(ctx context.Context, employeeID string, category Category, year int, amount decimal.Decimal) error

	// Delete removes the balance row; deleting a missing row is not an error.
	Delete(ctx context.Context, employeeID string, category Category, year int) error
}
