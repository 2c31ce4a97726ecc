package leavecredit

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientCredit = errors.New("insufficient leave credit")
	ErrInvalidAmount      = errors.New("invalid leave credit amount")
	ErrBalanceNotFound    = errors.New("leave credit balance not found")
)

// InsufficientCreditError reports a debit that exceeds the remaining balance.
type InsufficientCreditError struct {
	EmployeeID string
	Category   Category
	Remaining  decimal.Decimal
	Requested  decimal.Decimal
}

func (e *InsufficientCreditError) Error() string {
	return fmt.Sprintf("insufficient %s credit for employee %s: remaining %s, requested %s",
		e.Category, e.EmployeeID, e.Remaining, e.Requested)
}

func (e *InsufficientCreditError) Unwrap() error {
	return ErrInsufficientCredit
}
