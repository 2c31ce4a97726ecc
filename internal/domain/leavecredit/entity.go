package leavecredit

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryVacation  Category = "vacation"
	CategorySick      Category = "sick"
	CategoryEmergency Category = "emergency"
)

// Categories lists every trackable leave category in display order.
var Categories = []Category{CategoryVacation, CategorySick, CategoryEmergency}

func (c Category) Valid() bool {
	switch c {
	case CategoryVacation, CategorySick, CategoryEmergency:
		return true
	}
	return false
}

// Balance is the leave-credit allotment per (employee, category, year).
// Invariant: 0 <= used <= total at all times; remaining is derived, never
// stored.
type Balance struct {
	ID         string
	EmployeeID string
	Category   Category
	Year       int

	Total decimal.Decimal
	Used  decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b Balance) Remaining() decimal.Decimal {
	return b.Total.Sub(b.Used)
}
