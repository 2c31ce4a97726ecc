package leavecredit

import (
	"github.com/shopspring/decimal"

	"github.com/kumulworks/hris-backend-go/internal/pkg/validator"
)

// GrantRequest creates or replaces a balance for a year. MigratedUsed carries
// already-consumed credits when importing from a prior system; it defaults to
// zero.
type GrantRequest struct {
	EmployeeID   string  `json:"employee_id"`
	Category     string  `json:"category"`
	Year         int     `json:"year"`
	Total        string  `json:"total"`
	MigratedUsed *string `json:"migrated_used"`
}

func (r GrantRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = errs.Add("employee_id", "is required")
	}
	if !Category(r.Category).Valid() {
		errs = errs.Add("category", "must be vacation, sick or emergency")
	}
	if r.Year < 2000 || r.Year > 2200 {
		errs = errs.Add("year", "is out of range")
	}
	if _, err := decimal.NewFromString(r.Total); err != nil {
		errs = errs.Add("total", "must be a decimal number")
	}
	if r.MigratedUsed != nil {
		if _, err := decimal.NewFromString(*r.MigratedUsed); err != nil {
			errs = errs.Add("migrated_used", "must be a decimal number")
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CategoryBalance is one category's view inside the balance sheet.
type CategoryBalance struct {
	Total     string `json:"total"`
	Used      string `json:"used"`
	Remaining string `json:"remaining"`
}

// BalanceSheetResponse is the per-employee, per-year view over all
// categories. Categories without a granted balance read as zeros.
type BalanceSheetResponse struct {
	EmployeeID string                     `json:"employee_id"`
	Year       int                        `json:"year"`
	Categories map[string]CategoryBalance `json:"categories"`
}
